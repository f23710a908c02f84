// Package errdefs defines the error kinds produced by the driver
// resolution and acquisition pipeline.
//
// Every failure surfaces as an *Error carrying a Kind and whatever context
// (path, command, URL, version, platform) is needed to act on it. Kinds are
// matched with errors.Is against the package sentinels, so callers may wrap
// errors freely with fmt.Errorf and %w:
//
//	if errors.Is(err, errdefs.ErrBrowserNotFound) {
//	    // ask the user for an explicit browser path
//	}
package errdefs

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Kinds do not overlap by cause.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown Kind = iota
	// KindBrowserNotFound means no browser executable was found.
	KindBrowserNotFound
	// KindCommandExecution means a subprocess could not be spawned.
	KindCommandExecution
	// KindCommandOutputParsing means subprocess output was not valid text.
	KindCommandOutputParsing
	// KindBrowserVersionParsing means no version could be read from output.
	KindBrowserVersionParsing
	// KindNetwork means an HTTP transport failure or a non-2xx status.
	KindNetwork
	// KindJSONParse means the manifest body was malformed.
	KindJSONParse
	// KindUnsupportedPlatform means the os/arch pair has no manifest key.
	KindUnsupportedPlatform
	// KindDriverVersionNotFound means no manifest entry matched the browser.
	KindDriverVersionNotFound
	// KindDriverURLNotFound means the matching entry has no download for the platform.
	KindDriverURLNotFound
	// KindIO means a filesystem operation failed.
	KindIO
	// KindZip means the archive was malformed or unreadable.
	KindZip
	// KindDriverExecutableNotFound means extraction produced no driver executable.
	KindDriverExecutableNotFound
	// KindVerification means the driver failed to run or printed unexpected output.
	KindVerification
)

var kindNames = map[Kind]string{
	KindUnknown:                  "Unknown",
	KindBrowserNotFound:          "BrowserNotFound",
	KindCommandExecution:         "CommandExecutionError",
	KindCommandOutputParsing:     "CommandOutputParsingError",
	KindBrowserVersionParsing:    "BrowserVersionParsingError",
	KindNetwork:                  "NetworkError",
	KindJSONParse:                "JsonParseError",
	KindUnsupportedPlatform:      "UnsupportedPlatform",
	KindDriverVersionNotFound:    "DriverVersionNotFound",
	KindDriverURLNotFound:        "DriverUrlNotFound",
	KindIO:                       "IoError",
	KindZip:                      "ZipError",
	KindDriverExecutableNotFound: "DriverExecutableNotFound",
	KindVerification:             "VerificationError",
}

// String returns the name of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by every pipeline component.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind Kind

	Name           string // browser or driver executable name
	Path           string // filesystem path involved
	Command        string // command line that was run
	URL            string // URL that was requested
	Output         string // raw output that could not be parsed
	BrowserVersion string
	DriverVersion  string
	Platform       string
	Detail         string // free-form detail, e.g. "non-zero exit"

	Err error // underlying cause, may be nil
}

func (e *Error) Error() string {
	var msg string

	switch e.Kind {
	case KindBrowserNotFound:
		msg = "browser not found; specify the path manually or install it in a standard location"
		if e.Name != "" {
			msg = fmt.Sprintf("browser %s not found; specify the path manually or install it in a standard location", e.Name)
		}
	case KindCommandExecution:
		msg = fmt.Sprintf("failed to execute command '%s'", e.Command)
	case KindCommandOutputParsing:
		msg = fmt.Sprintf("output of command '%s' could not be parsed", e.Command)
	case KindBrowserVersionParsing:
		msg = fmt.Sprintf("failed to parse browser version from output: '%s'", e.Output)
	case KindNetwork:
		msg = fmt.Sprintf("network request to %s failed", e.URL)
	case KindJSONParse:
		msg = fmt.Sprintf("failed to parse JSON response from %s", e.URL)
	case KindUnsupportedPlatform:
		msg = fmt.Sprintf("unsupported platform: %s", e.Platform)
	case KindDriverVersionNotFound:
		msg = fmt.Sprintf("no driver version matches browser version '%s' on platform '%s'", e.BrowserVersion, e.Platform)
	case KindDriverURLNotFound:
		msg = fmt.Sprintf("no download URL for driver version %s on platform %s", e.DriverVersion, e.Platform)
	case KindIO:
		msg = fmt.Sprintf("i/o error accessing path '%s'", e.Path)
	case KindZip:
		msg = fmt.Sprintf("failed to read zip archive '%s'", e.Path)
	case KindDriverExecutableNotFound:
		msg = fmt.Sprintf("driver executable %s not found under '%s'", e.Name, e.Path)
	case KindVerification:
		msg = fmt.Sprintf("driver verification failed for '%s'", e.Path)
	default:
		msg = "webdriver-manager error"
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. Context fields
// are not compared, so the package sentinels match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrBrowserNotFound          = &Error{Kind: KindBrowserNotFound}
	ErrCommandExecution         = &Error{Kind: KindCommandExecution}
	ErrCommandOutputParsing     = &Error{Kind: KindCommandOutputParsing}
	ErrBrowserVersionParsing    = &Error{Kind: KindBrowserVersionParsing}
	ErrNetwork                  = &Error{Kind: KindNetwork}
	ErrJSONParse                = &Error{Kind: KindJSONParse}
	ErrUnsupportedPlatform      = &Error{Kind: KindUnsupportedPlatform}
	ErrDriverVersionNotFound    = &Error{Kind: KindDriverVersionNotFound}
	ErrDriverURLNotFound        = &Error{Kind: KindDriverURLNotFound}
	ErrIO                       = &Error{Kind: KindIO}
	ErrZip                      = &Error{Kind: KindZip}
	ErrDriverExecutableNotFound = &Error{Kind: KindDriverExecutableNotFound}
	ErrVerification             = &Error{Kind: KindVerification}
)

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// BrowserNotFound reports that no executable for the named browser exists.
func BrowserNotFound(name string) *Error {
	return &Error{Kind: KindBrowserNotFound, Name: name}
}

// CommandExecution reports that command could not be spawned.
func CommandExecution(command string, err error) *Error {
	return &Error{Kind: KindCommandExecution, Command: command, Err: err}
}

// CommandOutputParsing reports that the output of command was not valid text.
func CommandOutputParsing(command string, err error) *Error {
	return &Error{Kind: KindCommandOutputParsing, Command: command, Err: err}
}

// BrowserVersionParsing reports that no version could be found in output.
func BrowserVersionParsing(output string) *Error {
	return &Error{Kind: KindBrowserVersionParsing, Output: output}
}

// Network reports a transport failure or bad status for url.
func Network(url string, err error) *Error {
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}

// JSONParse reports a malformed manifest body fetched from url.
func JSONParse(url string, err error) *Error {
	return &Error{Kind: KindJSONParse, URL: url, Err: err}
}

// UnsupportedPlatform reports an os/arch pair without a manifest key.
func UnsupportedPlatform(os, arch string) *Error {
	return &Error{Kind: KindUnsupportedPlatform, Platform: os + "-" + arch}
}

// DriverVersionNotFound reports that no manifest entry matches browserVersion.
func DriverVersionNotFound(browserVersion, platform string) *Error {
	return &Error{Kind: KindDriverVersionNotFound, BrowserVersion: browserVersion, Platform: platform}
}

// DriverURLNotFound reports that driverVersion has no download for platform.
func DriverURLNotFound(driverVersion, platform string) *Error {
	return &Error{Kind: KindDriverURLNotFound, DriverVersion: driverVersion, Platform: platform}
}

// IO reports a failed filesystem operation on path.
func IO(path string, err error) *Error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

// Zip reports an unreadable archive at path.
func Zip(path string, err error) *Error {
	return &Error{Kind: KindZip, Path: path, Err: err}
}

// DriverExecutableNotFound reports that no file called name exists under dir.
func DriverExecutableNotFound(dir, name string) *Error {
	return &Error{Kind: KindDriverExecutableNotFound, Path: dir, Name: name}
}

// Verification reports that the driver at path did not pass verification.
func Verification(path, detail string) *Error {
	return &Error{Kind: KindVerification, Path: path, Detail: detail}
}

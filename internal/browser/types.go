// Package browser finds an installed browser and reads its version.
//
// Discovery and version extraction differ per operating system, so they
// sit behind the Locator interface with one implementation per OS, chosen
// at startup by ForOS:
//   - windows: installation directories from ProgramFiles,
//     ProgramFiles(x86) and LOCALAPPDATA; chrome's version comes from
//     PowerShell, firefox's from the application.ini next to it
//   - macos: fixed application bundle paths
//   - linux: candidate executable names resolved through PATH
//
// Everywhere else the version is read by running the browser once with a
// version flag and taking the first output token that starts with a digit
// and contains a dot.
package browser

import (
	"fmt"
	"strings"
)

// Name identifies a supported browser family.
type Name string

const (
	// Chrome is Google Chrome or Chromium.
	Chrome Name = "chrome"
	// Firefox is Mozilla Firefox.
	Firefox Name = "firefox"
)

// Names lists the supported browsers.
var Names = []Name{Chrome, Firefox}

// String returns the string representation of the browser name
func (n Name) String() string {
	return string(n)
}

// ParseName parses a browser name, case-insensitively.
func ParseName(s string) (Name, error) {
	want := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, n := range Names {
		if n == want {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown browser: %q (supported: %s)", s, JoinNames(", "))
}

// JoinNames joins the supported browser names with sep.
func JoinNames(sep string) string {
	parts := make([]string, len(Names))
	for i, n := range Names {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

// versionFlag returns the flag that makes the browser print its version.
func (n Name) versionFlag() string {
	if n == Firefox {
		return "-V"
	}
	return "--version"
}

// Identity describes an installed browser. It is not modified after
// Detect returns it.
type Identity struct {
	Name    Name
	Path    string // executable that was queried, may be an unverified override
	Version string // dot-separated numeric version, e.g. "138.0.7204.158"
}

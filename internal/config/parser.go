package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

// Parser represents a Lua config parser with platform detection.
// A Parser is safe for concurrent use; every parse gets its own VM.
type Parser struct {
	detector platform.Detector
}

// NewParser creates a new config parser with the given platform detector.
// A nil detector leaves the platform global undefined.
func NewParser(detector platform.Detector) *Parser {
	return &Parser{detector: detector}
}

// ParseFile reads and parses the config file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxConfigSize {
		return nil, &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s is %d bytes, maximum is %d", path, info.Size(), MaxConfigSize),
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return p.ParseString(ctx, string(content))
}

// ParseString parses a Lua config from a string.
// This is useful for testing and in-memory config generation.
func (p *Parser) ParseString(ctx context.Context, luaCode string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	// Detect platform and inject platform table
	if p.detector != nil {
		platformInfo, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, platformInfo); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(luaCode); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("config evaluation cancelled: %w", ctx.Err())
		}
		return nil, &ParseError{
			Message: "Lua error",
			Detail:  err.Error(),
		}
	}

	return extractConfig(L)
}

// ParseError represents a config parsing error with friendly message.
type ParseError struct {
	Message string // User-friendly message
	Detail  string // Technical details (raw Lua error)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// extractConfig extracts the config from a Lua state.
// It expects a global "wdm" table with the config structure.
func extractConfig(L *lua.LState) (*Config, error) {
	wdmTable := L.GetGlobal(luaGlobalWdm)
	if wdmTable.Type() != lua.LTTable {
		return nil, &ParseError{
			Message: "missing or invalid 'wdm' table",
			Detail:  fmt.Sprintf("expected table, got %s", wdmTable.Type()),
		}
	}

	table := wdmTable.(*lua.LTable)
	config := &Config{}
	var err error

	if config.InstallDir, err = optionalString(table, luaFieldInstallDir); err != nil {
		return nil, err
	}
	if config.ManifestURL, err = optionalString(table, luaFieldManifestURL); err != nil {
		return nil, err
	}
	if config.UserAgent, err = optionalString(table, luaFieldUserAgent); err != nil {
		return nil, err
	}

	switch v := table.RawGetString(luaFieldExtractWorker); v.Type() {
	case lua.LTNil:
	case lua.LTNumber:
		n := float64(lua.LVAsNumber(v))
		if n != float64(int(n)) {
			return nil, fieldTypeError(luaFieldExtractWorker, "integer", "fractional number")
		}
		config.ExtractWorkers = int(n)
	default:
		return nil, fieldTypeError(luaFieldExtractWorker, "number", v.Type().String())
	}

	switch v := table.RawGetString(luaFieldBrowsers); v.Type() {
	case lua.LTNil:
	case lua.LTTable:
		browsers, err := extractBrowsers(v.(*lua.LTable))
		if err != nil {
			return nil, err
		}
		config.Browsers = browsers
	default:
		return nil, fieldTypeError(luaFieldBrowsers, "table", v.Type().String())
	}

	// Validate the extracted config
	if err := config.Validate(); err != nil {
		return nil, &ParseError{
			Message: "config validation failed",
			Detail:  err.Error(),
		}
	}

	return config, nil
}

// extractBrowsers extracts the browsers table. Entries whose value is nil
// (from platform conditionals) are absent from the result.
func extractBrowsers(table *lua.LTable) (map[string]BrowserConfig, error) {
	browsers := map[string]BrowserConfig{}
	var err error

	table.ForEach(func(key, value lua.LValue) {
		if err != nil {
			return
		}
		if key.Type() != lua.LTString {
			err = fieldTypeError(luaFieldBrowsers+" key", "string", key.Type().String())
			return
		}
		name := key.String()

		switch value.Type() {
		case lua.LTString:
			// Shorthand: browsers = { chrome = "/path/to/chrome" }
			browsers[name] = BrowserConfig{Path: value.String()}
		case lua.LTTable:
			var path string
			path, err = optionalString(value.(*lua.LTable), luaFieldPath)
			if err != nil {
				err = fieldTypeError(luaFieldBrowsers+"."+name+"."+luaFieldPath, "string", "non-string")
				return
			}
			browsers[name] = BrowserConfig{Path: path}
		default:
			err = fieldTypeError(luaFieldBrowsers+"."+name, "table or string", value.Type().String())
		}
	})

	if err != nil {
		return nil, err
	}
	return browsers, nil
}

// optionalString returns the string at field, "" when the field is nil.
func optionalString(table *lua.LTable, field string) (string, error) {
	switch v := table.RawGetString(field); v.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return v.String(), nil
	default:
		return "", fieldTypeError(field, "string", v.Type().String())
	}
}

func fieldTypeError(field, want, got string) *ParseError {
	return &ParseError{
		Message: "invalid config value",
		Detail:  fmt.Sprintf("%s: expected %s, got %s", field, want, got),
	}
}

// FormatError formats a ParseError for user display.
// In verbose mode, show the raw Lua error. Otherwise, show friendly message.
func FormatError(err error, verbose bool) string {
	if parseErr, ok := err.(*ParseError); ok {
		if verbose {
			return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
		}
		// Extract the most relevant part of the error
		detail := parseErr.Detail
		if idx := strings.Index(detail, "stack traceback"); idx > 0 {
			detail = strings.TrimSpace(detail[:idx])
		}
		return fmt.Sprintf("%s: %s", parseErr.Message, detail)
	}
	return err.Error()
}

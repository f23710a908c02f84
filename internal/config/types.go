package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Config represents the wdm configuration.
// This matches the Lua schema of the global "wdm" table.
type Config struct {
	// InstallDir receives extracted drivers
	InstallDir string `json:"install_dir,omitempty"`

	// ManifestURL overrides the chrome-for-testing manifest endpoint
	ManifestURL string `json:"manifest_url,omitempty"`

	// UserAgent is sent with every HTTP request
	UserAgent string `json:"user_agent,omitempty"`

	// ExtractWorkers bounds concurrent archive extractions (0 = one per CPU)
	ExtractWorkers int `json:"extract_workers,omitempty"`

	// Browsers holds per-browser settings keyed by browser name
	Browsers map[string]BrowserConfig `json:"browsers,omitempty"`
}

// BrowserConfig contains settings for one browser.
type BrowserConfig struct {
	// Path is used instead of searching for the browser
	Path string `json:"path,omitempty"`
}

// knownBrowsers are the keys accepted under browsers.
var knownBrowsers = map[string]bool{"chrome": true, "firefox": true}

// BrowserPath returns the configured path for name, or "".
func (c *Config) BrowserPath(name string) string {
	if c == nil || c.Browsers == nil {
		return ""
	}
	return c.Browsers[name].Path
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if c.ManifestURL != "" {
		if err := validateHTTPURL(c.ManifestURL); err != nil {
			return &ValidationError{Field: "manifest_url", Message: err.Error()}
		}
	}

	if c.ExtractWorkers < 0 {
		return &ValidationError{
			Field:   "extract_workers",
			Message: fmt.Sprintf("must not be negative (got %d)", c.ExtractWorkers),
		}
	}
	if c.ExtractWorkers > MaxExtractWorkers {
		return &ValidationError{
			Field:   "extract_workers",
			Message: fmt.Sprintf("too many workers (%d), maximum is %d", c.ExtractWorkers, MaxExtractWorkers),
		}
	}

	if len(c.UserAgent) > MaxStringLength {
		return &ValidationError{
			Field:   "user_agent",
			Message: fmt.Sprintf("too long (%d chars, max %d)", len(c.UserAgent), MaxStringLength),
		}
	}
	if strings.ContainsAny(c.UserAgent, "\r\n") {
		return &ValidationError{Field: "user_agent", Message: "must not contain line breaks"}
	}

	names := make([]string, 0, len(c.Browsers))
	for name := range c.Browsers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !knownBrowsers[name] {
			return &ValidationError{
				Field:   "browsers." + name,
				Message: "unknown browser (supported: chrome, firefox)",
			}
		}
	}

	return nil
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateHTTPURL checks that raw is an absolute http(s) URL with a host.
func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use https:// or http:// scheme (got: %q)", u.Scheme)
	}

	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}

	return nil
}

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

// DefaultFileName is the config file looked up under the user config dir.
const DefaultFileName = "wdm.lua"

// Overrides holds command-line values. Empty fields leave lower layers alone.
type Overrides struct {
	InstallDir  string
	ManifestURL string
}

// LoadOptions controls where Load looks and what it layers on top.
type LoadOptions struct {
	// Path is an explicit config file; it must exist when set.
	// A file named by WDM_CONFIG or the default path may be absent.
	Path string

	// Detector feeds the platform table; nil leaves it undefined
	Detector platform.Detector

	// Getenv defaults to os.Getenv
	Getenv func(string) string

	Overrides Overrides
}

// Load resolves the effective configuration. Precedence is
// overrides, then environment, then the config file, then defaults.
// It returns the config file that was read, or "" when none was.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if env := getenv(EnvConfig); env != "" {
			path = env
		} else {
			path = DefaultPath(getenv)
		}
	}

	cfg := &Config{}
	source := ""
	if path != "" {
		parsed, err := NewParser(opts.Detector).ParseFile(ctx, path)
		switch {
		case err == nil:
			cfg, source = parsed, path
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// no config file: defaults only
		default:
			return nil, "", fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if v := getenv(EnvInstallDir); v != "" {
		cfg.InstallDir = v
	}
	if v := getenv(EnvManifestURL); v != "" {
		cfg.ManifestURL = v
	}
	if opts.Overrides.InstallDir != "" {
		cfg.InstallDir = opts.Overrides.InstallDir
	}
	if opts.Overrides.ManifestURL != "" {
		cfg.ManifestURL = opts.Overrides.ManifestURL
	}

	if cfg.InstallDir == "" {
		dir, err := DefaultInstallDir()
		if err != nil {
			return nil, "", fmt.Errorf("default install dir: %w", err)
		}
		cfg.InstallDir = dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return cfg, source, nil
}

// DefaultPath returns <config dir>/wdm/wdm.lua, honouring XDG_CONFIG_HOME.
// It returns "" when no config dir can be determined.
func DefaultPath(getenv func(string) string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wdm", DefaultFileName)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wdm", DefaultFileName)
}

// DefaultInstallDir returns <cache dir>/wdm/drivers.
func DefaultInstallDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wdm", "drivers"), nil
}

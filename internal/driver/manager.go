// Package driver sequences browser detection, manifest resolution, archive
// installation and verification into a single driver installation.
//
// Each driver (currently chromedriver) implements Manager. Install runs the
// pipeline against any Manager; the steps are sequential and every call is
// independent of every other, so separate installs may run concurrently.
package driver

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/manifest"
)

// Manager is the per-driver capability set.
type Manager interface {
	// DriverName returns the executable's base name, e.g. "chromedriver".
	DriverName() string

	// BrowserVersion detects the installed browser's version. A non-empty
	// pathOverride is queried as-is instead of searching.
	BrowserVersion(ctx context.Context, pathOverride string) (string, error)

	// DriverVersion returns the driver version matching browserVersion.
	DriverVersion(ctx context.Context, browserVersion string) (string, error)

	// DownloadURL returns the archive URL for the driver line of driverVersion.
	DownloadURL(ctx context.Context, driverVersion string) (string, error)

	// Resolve returns the driver version and URL for browserVersion in one
	// manifest fetch.
	Resolve(ctx context.Context, browserVersion string) (manifest.Resolved, error)

	// Acquire downloads and unpacks url into installDir and returns the
	// driver executable's path. It does not verify the executable.
	Acquire(ctx context.Context, url, installDir string) (string, error)

	// DownloadAndInstall resolves version, acquires the archive into
	// installDir and verifies the result.
	DownloadAndInstall(ctx context.Context, version, installDir string) (string, error)

	// VerifyDriver runs the driver at path and checks its output.
	VerifyDriver(ctx context.Context, path string) error
}

// Options configures Install
type Options struct {
	// BrowserPath overrides browser discovery when non-empty
	BrowserPath string
	// InstallDir receives the extracted driver (required)
	InstallDir string
	// Logger receives one Info record per step (default: no-op)
	Logger logging.Logger
}

// Result describes a completed installation
type Result struct {
	Driver         string
	BrowserVersion string
	DriverVersion  string
	URL            string
	ExecutablePath string
}

// Install runs detect, resolve, acquire and verify in order and returns
// the verified executable's path with the versions it was resolved from.
// The first failing step ends the run.
func Install(ctx context.Context, m Manager, opts Options) (*Result, error) {
	if opts.InstallDir == "" {
		return nil, fmt.Errorf("install dir is required")
	}
	logger := logging.OrNop(opts.Logger)
	name := m.DriverName()

	browserVersion, err := m.BrowserVersion(ctx, opts.BrowserPath)
	if err != nil {
		return nil, fmt.Errorf("detect browser version: %w", err)
	}
	logger.Info("detected browser", "driver", name, "browser_version", browserVersion)

	resolved, err := m.Resolve(ctx, browserVersion)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", name, err)
	}
	logger.Info("resolved driver", "driver", name, "driver_version", resolved.DriverVersion, "url", resolved.URL)

	path, err := m.Acquire(ctx, resolved.URL, opts.InstallDir)
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", name, err)
	}
	logger.Info("installed driver", "driver", name, "path", path)

	if err := m.VerifyDriver(ctx, path); err != nil {
		return nil, fmt.Errorf("verify %s: %w", name, err)
	}
	logger.Info("verified driver", "driver", name, "path", path)

	return &Result{
		Driver:         name,
		BrowserVersion: browserVersion,
		DriverVersion:  resolved.DriverVersion,
		URL:            resolved.URL,
		ExecutablePath: path,
	}, nil
}

package browser

import (
	"context"
	"fmt"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

// Locator finds installed browsers and queries their versions on one
// operating system.
type Locator interface {
	// FindPath returns the first existing executable among the OS's
	// conventional install locations for name.
	FindPath(name Name) (string, error)

	// QueryVersion reads the version of the browser at path. It may run
	// the executable once.
	QueryVersion(ctx context.Context, name Name, path string) (string, error)
}

// ForOS returns the Locator for the operating system in info.
func ForOS(info *platform.Info) (Locator, error) {
	return forOS(info, newSystem())
}

func forOS(info *platform.Info, sys system) (Locator, error) {
	switch info.OS {
	case platform.OSWindows:
		return &windowsLocator{sys: sys}, nil
	case platform.OSMacOS:
		return &darwinLocator{sys: sys}, nil
	case platform.OSLinux:
		return &linuxLocator{sys: sys}, nil
	default:
		return nil, errdefs.UnsupportedPlatform(info.OS, info.Arch)
	}
}

// Detect returns the identity of the named browser. A non-empty
// pathOverride is used as-is; its existence is not checked, so a bad path
// surfaces as a failure to query the version.
func Detect(ctx context.Context, loc Locator, name Name, pathOverride string) (Identity, error) {
	if name != Chrome && name != Firefox {
		return Identity{}, errdefs.BrowserNotFound(name.String())
	}

	path := pathOverride
	if path == "" {
		found, err := loc.FindPath(name)
		if err != nil {
			return Identity{}, err
		}
		path = found
	}

	version, err := loc.QueryVersion(ctx, name, path)
	if err != nil {
		return Identity{}, fmt.Errorf("query %s version: %w", name, err)
	}

	return Identity{Name: name, Path: path, Version: version}, nil
}

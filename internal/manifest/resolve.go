package manifest

import (
	"context"
	"strings"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
)

// MajorLinePrefix drops the last dot-separated component of version:
// "138.0.7204.158" becomes "138.0.7204".
func MajorLinePrefix(version string) (string, error) {
	i := strings.LastIndex(version, ".")
	if i < 0 {
		return "", errdefs.BrowserVersionParsing(version)
	}
	return version[:i], nil
}

// Select picks the driver build for browserVersion on platformID. The last
// entry in document order whose version starts with the major-line prefix
// wins; versions are compared as strings, never numerically.
func Select(m *Manifest, browserVersion, platformID, driver string) (Resolved, error) {
	prefix, err := MajorLinePrefix(browserVersion)
	if err != nil {
		return Resolved{}, err
	}

	var best *Entry
	for i := range m.Versions {
		if strings.HasPrefix(m.Versions[i].Version, prefix) {
			best = &m.Versions[i]
		}
	}
	if best == nil {
		return Resolved{}, errdefs.DriverVersionNotFound(browserVersion, platformID)
	}

	downloads, ok := best.Downloads[driver]
	if !ok {
		return Resolved{}, errdefs.DriverURLNotFound(best.Version, platformID)
	}
	for _, d := range downloads {
		if d.Platform == platformID {
			return Resolved{DriverVersion: best.Version, URL: d.URL}, nil
		}
	}

	return Resolved{}, errdefs.DriverURLNotFound(best.Version, platformID)
}

// Fetcher retrieves a fresh manifest.
type Fetcher interface {
	Fetch(ctx context.Context) (*Manifest, error)
}

// Resolver resolves browser versions against a freshly fetched manifest
// for one driver artifact.
type Resolver struct {
	fetcher Fetcher
	driver  string
	logger  logging.Logger
}

// NewResolver creates a resolver for the named driver artifact.
func NewResolver(fetcher Fetcher, driver string, logger logging.Logger) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		driver:  driver,
		logger:  logging.OrNop(logger),
	}
}

// Resolve returns the driver version and download URL for browserVersion on
// platformID. A malformed version fails before the manifest is fetched.
func (r *Resolver) Resolve(ctx context.Context, browserVersion, platformID string) (Resolved, error) {
	if _, err := MajorLinePrefix(browserVersion); err != nil {
		return Resolved{}, err
	}

	m, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return Resolved{}, err
	}

	resolved, err := Select(m, browserVersion, platformID, r.driver)
	if err != nil {
		return Resolved{}, err
	}

	r.logger.Debug("manifest match",
		"driver", r.driver,
		"browser_version", browserVersion,
		"driver_version", resolved.DriverVersion,
		"platform", platformID,
		"url", resolved.URL,
	)
	return resolved, nil
}

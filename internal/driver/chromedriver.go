package driver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/binary"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/manifest"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
)

const (
	// ChromeDriverName is the chromedriver executable and manifest artifact name
	ChromeDriverName = "chromedriver"
	// ChromeDriverMarker appears in chromedriver's --version output
	ChromeDriverMarker = "ChromeDriver"
)

// ChromeDriverConfig holds configuration for the chromedriver manager
type ChromeDriverConfig struct {
	// Platform describes the host (required)
	Platform *platform.Info
	// Locator finds chrome (default: browser.ForOS(Platform))
	Locator browser.Locator
	// Fetcher supplies the manifest (default: a manifest.Client built from
	// ManifestURL, UserAgent and HTTPClient)
	Fetcher manifest.Fetcher
	// ManifestURL overrides manifest.DefaultEndpoint
	ManifestURL string
	// UserAgent is sent with manifest and archive requests
	UserAgent string
	// HTTPClient performs all requests (default: binary.NewHTTPClient())
	HTTPClient *http.Client
	// Pool runs archive extraction (default: binary.NewPool(0))
	Pool *binary.Pool
	// Logger receives progress logs (default: no-op)
	Logger logging.Logger
}

// ChromeDriver manages chromedriver for Google Chrome and Chromium.
type ChromeDriver struct {
	info      *platform.Info
	locator   browser.Locator
	resolver  *manifest.Resolver
	installer *binary.Installer
	verifier  *binary.Verifier
	logger    logging.Logger
}

var _ Manager = (*ChromeDriver)(nil)

// NewChromeDriver creates a chromedriver manager
func NewChromeDriver(config ChromeDriverConfig) (*ChromeDriver, error) {
	if config.Platform == nil {
		return nil, fmt.Errorf("platform info is required")
	}
	logger := logging.OrNop(config.Logger)

	locator := config.Locator
	if locator == nil {
		var err error
		locator, err = browser.ForOS(config.Platform)
		if err != nil {
			return nil, fmt.Errorf("create browser locator: %w", err)
		}
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = binary.NewHTTPClient()
	}
	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = binary.DefaultUserAgent
	}

	fetcher := config.Fetcher
	if fetcher == nil {
		fetcher = manifest.NewClient(manifest.ClientConfig{
			Endpoint:   config.ManifestURL,
			HTTPClient: httpClient,
			UserAgent:  userAgent,
			Logger:     logger,
			Artifacts:  []string{ChromeDriverName},
		})
	}

	return &ChromeDriver{
		info:     config.Platform,
		locator:  locator,
		resolver: manifest.NewResolver(fetcher, ChromeDriverName, logger),
		installer: binary.NewInstaller(binary.InstallerConfig{
			Downloader: binary.NewDownloader(httpClient, userAgent, logger),
			Pool:       config.Pool,
			Logger:     logger,
		}),
		verifier: binary.NewVerifier(ChromeDriverMarker),
		logger:   logger,
	}, nil
}

// DriverName returns "chromedriver".
func (c *ChromeDriver) DriverName() string {
	return ChromeDriverName
}

// BrowserVersion detects the installed chrome's version.
func (c *ChromeDriver) BrowserVersion(ctx context.Context, pathOverride string) (string, error) {
	id, err := browser.Detect(ctx, c.locator, browser.Chrome, pathOverride)
	if err != nil {
		return "", err
	}
	c.logger.Debug("browser detected", "browser", id.Name, "path", id.Path, "version", id.Version)
	return id.Version, nil
}

// Resolve maps browserVersion onto a chromedriver build for this host. The
// platform identifier is derived before the manifest is fetched, so an
// unsupported host fails without network traffic.
func (c *ChromeDriver) Resolve(ctx context.Context, browserVersion string) (manifest.Resolved, error) {
	platformID, err := c.info.Identifier()
	if err != nil {
		return manifest.Resolved{}, err
	}
	return c.resolver.Resolve(ctx, browserVersion, platformID)
}

// DriverVersion returns the chromedriver version for browserVersion.
func (c *ChromeDriver) DriverVersion(ctx context.Context, browserVersion string) (string, error) {
	resolved, err := c.Resolve(ctx, browserVersion)
	if err != nil {
		return "", err
	}
	return resolved.DriverVersion, nil
}

// DownloadURL returns the archive URL for driverVersion's major line. The
// version is matched by prefix exactly like a browser version, so the
// newest build of that line is returned.
func (c *ChromeDriver) DownloadURL(ctx context.Context, driverVersion string) (string, error) {
	resolved, err := c.Resolve(ctx, driverVersion)
	if err != nil {
		return "", err
	}
	return resolved.URL, nil
}

// Acquire installs the archive at url into installDir.
func (c *ChromeDriver) Acquire(ctx context.Context, url, installDir string) (string, error) {
	installed, err := c.installer.Install(ctx, url, installDir, c.info.ExecutableName(ChromeDriverName))
	if err != nil {
		return "", err
	}
	return installed.ExecutablePath, nil
}

// DownloadAndInstall resolves version, installs the build into installDir
// and verifies it.
func (c *ChromeDriver) DownloadAndInstall(ctx context.Context, version, installDir string) (string, error) {
	resolved, err := c.Resolve(ctx, version)
	if err != nil {
		return "", err
	}

	path, err := c.Acquire(ctx, resolved.URL, installDir)
	if err != nil {
		return "", err
	}

	if err := c.VerifyDriver(ctx, path); err != nil {
		return "", err
	}
	return path, nil
}

// VerifyDriver runs chromedriver --version and checks for the marker.
func (c *ChromeDriver) VerifyDriver(ctx context.Context, path string) error {
	return c.verifier.Verify(ctx, path)
}

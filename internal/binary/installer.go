package binary

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
)

// archiveName is the file the downloaded archive is saved as.
const archiveName = "driver.zip"

// Installer downloads a driver archive and unpacks it into an install
// directory.
type Installer struct {
	downloader *Downloader
	extractor  *Extractor
	pool       *Pool
	logger     logging.Logger
}

// InstallerConfig holds configuration for an installer
type InstallerConfig struct {
	// Downloader fetches archives (default: NewDownloader(nil, "", Logger))
	Downloader *Downloader
	// Pool runs extraction (default: NewPool(0))
	Pool *Pool
	// Logger receives progress logs (default: no-op)
	Logger logging.Logger
}

// NewInstaller creates a new installer
func NewInstaller(config InstallerConfig) *Installer {
	logger := logging.OrNop(config.Logger)

	inst := &Installer{
		downloader: config.Downloader,
		extractor:  NewExtractor(logger),
		pool:       config.Pool,
		logger:     logger,
	}
	if inst.downloader == nil {
		inst.downloader = NewDownloader(nil, "", logger)
	}
	if inst.pool == nil {
		inst.pool = NewPool(0)
	}
	return inst
}

// Install downloads url into a private temp dir, extracts the archive into
// installDir and returns the path of the file named exeName found there.
// The temp dir is removed before Install returns, on success and failure.
// exeName must already carry any platform suffix such as ".exe".
func (i *Installer) Install(ctx context.Context, url, installDir, exeName string) (*InstalledDriver, error) {
	tmpDir, err := os.MkdirTemp("", "wdm-download-*")
	if err != nil {
		return nil, errdefs.IO(os.TempDir(), err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			i.logger.Warn("failed to remove temp dir", "path", tmpDir, "error", err)
		}
	}()

	archivePath := filepath.Join(tmpDir, archiveName)

	i.logger.Info("downloading driver archive", "url", url)
	if err := i.downloader.DownloadToFile(ctx, url, archivePath); err != nil {
		return nil, err
	}

	i.logger.Info("extracting driver archive", "dest", installDir)
	err = i.pool.Run(ctx, archivePath, func() error {
		return i.extractor.ExtractZip(archivePath, installDir)
	})
	if err != nil {
		return nil, err
	}

	exePath, err := FindExecutable(installDir, exeName)
	if err != nil {
		return nil, err
	}

	i.logger.Info("driver executable located", "path", exePath)
	return &InstalledDriver{
		ExecutablePath: exePath,
		ArchivePath:    archivePath,
		TempDir:        tmpDir,
	}, nil
}

package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
)

const (
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "wdm/1.0"
	// maxRedirects bounds the redirect chain of a single request
	maxRedirects = 10
)

// NewHTTPClient returns the client used for manifest and archive requests.
// It has no Timeout; the request context bounds latency.
func NewHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
}

// Downloader streams HTTP responses to disk. Each download is one attempt.
type Downloader struct {
	client    *http.Client
	userAgent string
	logger    logging.Logger
}

// NewDownloader creates a new downloader. A nil client gets NewHTTPClient,
// an empty userAgent gets DefaultUserAgent.
func NewDownloader(client *http.Client, userAgent string, logger logging.Logger) *Downloader {
	if client == nil {
		client = NewHTTPClient()
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Downloader{
		client:    client,
		userAgent: userAgent,
		logger:    logging.OrNop(logger),
	}
}

// DownloadToFile downloads url to destPath, creating its parent directory.
// The body is written to destPath+".tmp" and renamed on success.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errdefs.IO(destDir, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errdefs.Network(url, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("User-Agent", d.userAgent)

	d.logger.Debug("downloading", "url", url, "dest", destPath)

	resp, err := d.client.Do(req)
	if err != nil {
		return errdefs.Network(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errdefs.Network(url, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return errdefs.IO(tmpPath, err)
	}

	// Track whether we need to clean up the temp file
	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	out := &fileWriter{f: tmpFile}
	n, err := io.Copy(out, resp.Body)
	if err != nil {
		if out.err != nil {
			return errdefs.IO(tmpPath, out.err)
		}
		return errdefs.Network(url, fmt.Errorf("read response body: %w", err))
	}

	if err := tmpFile.Close(); err != nil {
		return errdefs.IO(tmpPath, err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return errdefs.IO(destPath, err)
	}

	cleanupNeeded = false
	d.logger.Debug("downloaded", "url", url, "bytes", n)
	return nil
}

// fileWriter records write failures so they can be told apart from
// failures reading the response body.
type fileWriter struct {
	f   *os.File
	err error
}

func (w *fileWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

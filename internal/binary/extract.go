package binary

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
)

// Extractor handles archive extraction
type Extractor struct {
	logger logging.Logger
}

// NewExtractor creates a new extractor
func NewExtractor(logger logging.Logger) *Extractor {
	return &Extractor{logger: logging.OrNop(logger)}
}

// ExtractZip extracts a .zip archive into destDir, creating it first.
// Entries that would land outside destDir are skipped and logged. On
// non-windows systems the mode bits recorded in the archive are reapplied.
func (e *Extractor) ExtractZip(archivePath, destDir string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return errdefs.IO(archivePath, err)
	}
	defer archiveFile.Close()

	stat, err := archiveFile.Stat()
	if err != nil {
		return errdefs.IO(archivePath, err)
	}

	reader, err := zip.NewReader(archiveFile, stat.Size())
	if err != nil {
		return errdefs.Zip(archivePath, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return errdefs.IO(destDir, err)
	}

	for _, f := range reader.File {
		target, ok := enclosedPath(destDir, f.Name)
		if !ok {
			e.logger.Warn("skipping zip entry outside destination", "entry", f.Name, "dest", destDir)
			continue
		}

		if err := e.extractEntry(archivePath, f, target); err != nil {
			return err
		}
	}

	return nil
}

func (e *Extractor) extractEntry(archivePath string, f *zip.File, target string) error {
	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		if err := os.MkdirAll(target, 0755); err != nil {
			return errdefs.IO(target, err)
		}
		return applyMode(target, f.Mode())
	}

	// Create parent directory if needed
	parent := filepath.Dir(target)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return errdefs.IO(parent, err)
	}

	src, err := f.Open()
	if err != nil {
		return errdefs.Zip(archivePath, fmt.Errorf("open entry %s: %w", f.Name, err))
	}
	defer src.Close()

	outFile, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return errdefs.IO(target, err)
	}

	out := &fileWriter{f: outFile}
	if _, err := io.Copy(out, src); err != nil {
		outFile.Close()
		if out.err != nil {
			return errdefs.IO(target, out.err)
		}
		return errdefs.Zip(archivePath, fmt.Errorf("read entry %s: %w", f.Name, err))
	}

	if err := outFile.Close(); err != nil {
		return errdefs.IO(target, err)
	}

	return applyMode(target, f.Mode())
}

// applyMode reapplies the permission bits recorded for an entry.
func applyMode(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" || mode.Perm() == 0 {
		return nil
	}
	if err := os.Chmod(path, mode.Perm()); err != nil {
		return errdefs.IO(path, err)
	}
	return nil
}

// enclosedPath joins an entry name onto destDir. It reports false for names
// that are absolute or carry a volume, and for names that still resolve
// outside destDir once cleaned.
func enclosedPath(destDir, name string) (string, bool) {
	if name == "" || strings.ContainsRune(name, 0) {
		return "", false
	}

	slashed := strings.ReplaceAll(name, `\`, "/")
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return "", false
	}
	if len(slashed) >= 2 && slashed[1] == ':' {
		return "", false
	}
	root := filepath.Clean(destDir)
	target := filepath.Join(root, filepath.FromSlash(slashed))
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", false
	}
	return target, true
}

package testutil

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// ZipEntry is one entry of a test archive. Names are written verbatim, so
// traversal names like "../evil" can be produced. A name ending in "/" is a
// directory.
type ZipEntry struct {
	Name string
	Body string
	Mode os.FileMode // zero means 0644 for files, 0755 for directories
}

// ZipBytes builds a zip archive in memory.
func ZipBytes(t *testing.T, entries []ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, e := range entries {
		header := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
		mode := e.Mode
		isDir := len(e.Name) > 0 && e.Name[len(e.Name)-1] == '/'
		switch {
		case mode == 0 && isDir:
			mode = 0o755
		case mode == 0:
			mode = 0o644
		}
		if isDir {
			mode |= os.ModeDir
			header.Method = zip.Store
		}
		header.SetMode(mode)

		fw, err := w.CreateHeader(header)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", e.Name, err)
		}
		if _, err := fw.Write([]byte(e.Body)); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", e.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes a zip archive to path and returns path.
func WriteZip(t *testing.T, path string, entries []ZipEntry) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create archive dir: %v", err)
	}
	if err := os.WriteFile(path, ZipBytes(t, entries), 0o644); err != nil {
		t.Fatalf("failed to write archive: %v", err)
	}
	return path
}

// FakeDriverScript returns a shell script that prints stdout and exits
// with code when run with any arguments. stdout must not contain a
// single quote.
func FakeDriverScript(stdout string, code int) string {
	return "#!/bin/sh\nprintf '%s\\n' '" + stdout + "'\nexit " + strconv.Itoa(code) + "\n"
}


package binary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

func TestFindExecutable(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) string {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o755); err != nil {
			t.Fatal(err)
		}
		return path
	}

	want := mustWrite("chromedriver-linux64/chromedriver")
	mustWrite("chromedriver-linux64/LICENSE.chromedriver")
	mustWrite("other/chromedriver.exe")
	// A directory with the executable's name is not a match.
	if err := os.MkdirAll(filepath.Join(root, "a", "chromedriver"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindExecutable(root, "chromedriver")
	if err != nil {
		t.Fatalf("FindExecutable() error = %v", err)
	}
	if got != want {
		t.Errorf("FindExecutable() = %q, want %q", got, want)
	}

	exe, err := FindExecutable(root, "chromedriver.exe")
	if err != nil || filepath.Base(exe) != "chromedriver.exe" {
		t.Errorf("FindExecutable(.exe) = %q, %v", exe, err)
	}
}

func TestFindExecutable_NotFound(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "chromedriver-old"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := FindExecutable(root, "chromedriver")
	if !errors.Is(err, errdefs.ErrDriverExecutableNotFound) {
		t.Fatalf("FindExecutable() error = %v, want DriverExecutableNotFound", err)
	}
	var e *errdefs.Error
	if errors.As(err, &e) && (e.Path != root || e.Name != "chromedriver") {
		t.Errorf("error context = %+v", e)
	}
}

func TestFindExecutable_MissingRoot(t *testing.T) {
	_, err := FindExecutable(filepath.Join(t.TempDir(), "absent"), "chromedriver")
	if !errors.Is(err, errdefs.ErrIO) {
		t.Errorf("FindExecutable() error = %v, want IoError", err)
	}
}

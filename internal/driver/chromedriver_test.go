package driver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/browser"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/manifest"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/platform"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/testutil"
)

// fakeLocator reports a fixed chrome installation.
type fakeLocator struct {
	path    string
	version string
	err     error
	queried []string
}

func (f *fakeLocator) FindPath(name browser.Name) (string, error) {
	if f.path == "" {
		return "", errdefs.BrowserNotFound(name.String())
	}
	return f.path, nil
}

func (f *fakeLocator) QueryVersion(ctx context.Context, name browser.Name, path string) (string, error) {
	f.queried = append(f.queried, path)
	return f.version, f.err
}

// countingFetcher returns a fixed manifest and records every call.
type countingFetcher struct {
	m     *manifest.Manifest
	calls int
}

func (f *countingFetcher) Fetch(ctx context.Context) (*manifest.Manifest, error) {
	f.calls++
	return f.m, nil
}

func linux64() *platform.Info {
	return &platform.Info{OS: platform.OSLinux, Arch: platform.ArchX86_64}
}

func TestNewChromeDriver(t *testing.T) {
	if _, err := NewChromeDriver(ChromeDriverConfig{}); err == nil {
		t.Error("expected error without platform info")
	}

	_, err := NewChromeDriver(ChromeDriverConfig{Platform: &platform.Info{OS: "plan9", Arch: platform.ArchX86_64}})
	if !errors.Is(err, errdefs.ErrUnsupportedPlatform) {
		t.Errorf("expected UnsupportedPlatform for an OS without a locator, got %v", err)
	}

	c, err := NewChromeDriver(ChromeDriverConfig{Platform: linux64()})
	if err != nil {
		t.Fatalf("NewChromeDriver() error = %v", err)
	}
	if c.DriverName() != "chromedriver" {
		t.Errorf("DriverName() = %q", c.DriverName())
	}
}

func TestChromeDriver_UnsupportedPlatformBeforeNetwork(t *testing.T) {
	tests := []*platform.Info{
		{OS: platform.OSLinux, Arch: platform.ArchAArch64},
		{OS: platform.OSMacOS, Arch: platform.ArchX86},
		{OS: platform.OSWindows, Arch: platform.ArchAArch64},
	}

	for _, info := range tests {
		t.Run(info.OS+"-"+info.Arch, func(t *testing.T) {
			fetcher := &countingFetcher{m: &manifest.Manifest{}}
			c, err := NewChromeDriver(ChromeDriverConfig{Platform: info, Fetcher: fetcher, Locator: &fakeLocator{}})
			if err != nil {
				t.Fatalf("NewChromeDriver() error = %v", err)
			}

			calls := []func() error{
				func() error { _, err := c.DriverVersion(context.Background(), "138.0.7204.158"); return err },
				func() error { _, err := c.DownloadURL(context.Background(), "138.0.7204.158"); return err },
				func() error {
					_, err := c.DownloadAndInstall(context.Background(), "138.0.7204.158", t.TempDir())
					return err
				},
			}
			for i, call := range calls {
				if err := call(); !errors.Is(err, errdefs.ErrUnsupportedPlatform) {
					t.Errorf("call %d: error = %v, want UnsupportedPlatform", i, err)
				}
			}
			if fetcher.calls != 0 {
				t.Errorf("manifest fetched %d times, want 0", fetcher.calls)
			}
		})
	}
}

func TestChromeDriver_BrowserVersion(t *testing.T) {
	loc := &fakeLocator{path: "/usr/bin/google-chrome", version: "138.0.7204.158"}
	c, err := NewChromeDriver(ChromeDriverConfig{Platform: linux64(), Locator: loc})
	if err != nil {
		t.Fatal(err)
	}

	v, err := c.BrowserVersion(context.Background(), "")
	if err != nil || v != "138.0.7204.158" {
		t.Fatalf("BrowserVersion() = %q, %v", v, err)
	}

	if _, err := c.BrowserVersion(context.Background(), "/opt/chrome/chrome"); err != nil {
		t.Fatal(err)
	}
	if got := loc.queried[len(loc.queried)-1]; got != "/opt/chrome/chrome" {
		t.Errorf("override not used, queried %q", got)
	}
}

func TestChromeDriver_DriverVersionAndURL(t *testing.T) {
	fetcher := &countingFetcher{m: &manifest.Manifest{Versions: []manifest.Entry{
		{Version: "120.0.1.1", Downloads: map[string][]manifest.Download{
			"chromedriver": {{Platform: "linux64", URL: "http://x/a.zip"}},
		}},
	}}}
	c, err := NewChromeDriver(ChromeDriverConfig{Platform: linux64(), Fetcher: fetcher, Locator: &fakeLocator{}})
	if err != nil {
		t.Fatal(err)
	}

	dv, err := c.DriverVersion(context.Background(), "120.0.1.9")
	if err != nil || dv != "120.0.1.1" {
		t.Errorf("DriverVersion() = %q, %v", dv, err)
	}

	url, err := c.DownloadURL(context.Background(), dv)
	if err != nil || url != "http://x/a.zip" {
		t.Errorf("DownloadURL() = %q, %v", url, err)
	}

	if fetcher.calls != 2 {
		t.Errorf("manifest fetched %d times, want once per call", fetcher.calls)
	}
}

// pipelineServer serves a manifest whose linux64 chromedriver points back at
// an archive holding script as the driver executable.
func pipelineServer(t *testing.T, script string) (*httptest.Server, *int32) {
	t.Helper()

	archive := testutil.ZipBytes(t, []testutil.ZipEntry{
		{Name: "chromedriver-linux64/"},
		{Name: "chromedriver-linux64/chromedriver", Body: script, Mode: 0o755},
		{Name: "chromedriver-linux64/THIRD_PARTY_NOTICES.chromedriver", Body: "notices"},
	})

	var manifestHits int32
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&manifestHits, 1)
		fmt.Fprintf(w, `{"versions": [
			{"version": "120.0.1.0", "downloads": {"chromedriver": [{"platform": "linux64", "url": "%[1]s/old.zip"}]}},
			{"version": "120.0.1.1", "downloads": {"chromedriver": [{"platform": "linux64", "url": "%[1]s/chromedriver-linux64.zip"}]}},
			{"version": "121.0.0.1", "downloads": {}}
		]}`, srv.URL)
	})
	mux.HandleFunc("/chromedriver-linux64.zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(archive)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &manifestHits
}

func TestInstall_Pipeline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake drivers are shell scripts")
	}

	srv, hits := pipelineServer(t, testutil.FakeDriverScript("ChromeDriver 120.0.1.1 (deadbeef)", 0))
	c, err := NewChromeDriver(ChromeDriverConfig{
		Platform:    linux64(),
		Locator:     &fakeLocator{path: "/usr/bin/chromium", version: "120.0.1.9"},
		ManifestURL: srv.URL + "/manifest.json",
	})
	if err != nil {
		t.Fatal(err)
	}

	installDir := filepath.Join(t.TempDir(), "drivers")
	res, err := Install(context.Background(), c, Options{InstallDir: installDir})
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	want := filepath.Join(installDir, "chromedriver-linux64", "chromedriver")
	if res.ExecutablePath != want {
		t.Errorf("ExecutablePath = %q, want %q", res.ExecutablePath, want)
	}
	if res.BrowserVersion != "120.0.1.9" || res.DriverVersion != "120.0.1.1" {
		t.Errorf("Result = %+v", res)
	}
	if !strings.HasSuffix(res.URL, "/chromedriver-linux64.zip") {
		t.Errorf("URL = %q", res.URL)
	}
	if n := atomic.LoadInt32(hits); n != 1 {
		t.Errorf("manifest fetched %d times, want 1", n)
	}
}

func TestChromeDriver_DownloadAndInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake drivers are shell scripts")
	}

	srv, _ := pipelineServer(t, testutil.FakeDriverScript("ChromeDriver 120.0.1.1", 0))
	c, err := NewChromeDriver(ChromeDriverConfig{
		Platform:    linux64(),
		Locator:     &fakeLocator{},
		ManifestURL: srv.URL + "/manifest.json",
	})
	if err != nil {
		t.Fatal(err)
	}

	installDir := t.TempDir()
	path, err := c.DownloadAndInstall(context.Background(), "120.0.1.9", installDir)
	if err != nil {
		t.Fatalf("DownloadAndInstall() error = %v", err)
	}
	if !strings.HasPrefix(path, installDir) {
		t.Errorf("path %q is not under %q", path, installDir)
	}
}

func TestInstall_StepFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake drivers are shell scripts")
	}

	tests := []struct {
		name    string
		script  string
		locator *fakeLocator
		want    error
		prefix  string
	}{
		{
			name:    "browser_missing",
			script:  testutil.FakeDriverScript("ChromeDriver", 0),
			locator: &fakeLocator{},
			want:    errdefs.ErrBrowserNotFound,
			prefix:  "detect browser version",
		},
		{
			name:    "no_driver_line",
			script:  testutil.FakeDriverScript("ChromeDriver", 0),
			locator: &fakeLocator{path: "/c", version: "99.0.1.2"},
			want:    errdefs.ErrDriverVersionNotFound,
			prefix:  "resolve chromedriver",
		},
		{
			name:    "no_driver_download",
			script:  testutil.FakeDriverScript("ChromeDriver", 0),
			locator: &fakeLocator{path: "/c", version: "121.0.0.7"},
			want:    errdefs.ErrDriverURLNotFound,
			prefix:  "resolve chromedriver",
		},
		{
			name:    "verification_fails",
			script:  testutil.FakeDriverScript("not the driver", 0),
			locator: &fakeLocator{path: "/c", version: "120.0.1.9"},
			want:    errdefs.ErrVerification,
			prefix:  "verify chromedriver",
		},
		{
			name:    "driver_crashes",
			script:  testutil.FakeDriverScript("ChromeDriver 120.0.1.1", 134),
			locator: &fakeLocator{path: "/c", version: "120.0.1.9"},
			want:    errdefs.ErrVerification,
			prefix:  "verify chromedriver",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := pipelineServer(t, tt.script)
			c, err := NewChromeDriver(ChromeDriverConfig{
				Platform:    linux64(),
				Locator:     tt.locator,
				ManifestURL: srv.URL + "/manifest.json",
			})
			if err != nil {
				t.Fatal(err)
			}

			_, err = Install(context.Background(), c, Options{InstallDir: t.TempDir()})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Install() error = %v, want kind %v", err, errdefs.KindOf(tt.want))
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("Install() error = %q, want prefix %q", err, tt.prefix)
			}
		})
	}
}

func TestInstall_RequiresInstallDir(t *testing.T) {
	c, err := NewChromeDriver(ChromeDriverConfig{Platform: linux64(), Locator: &fakeLocator{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Install(context.Background(), c, Options{}); err == nil {
		t.Error("expected error without install dir")
	}
}

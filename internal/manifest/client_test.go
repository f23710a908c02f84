package manifest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

const sampleManifest = `{
  "timestamp": "2025-07-20T08:09:49.694Z",
  "versions": [
    {
      "version": "113.0.5672.0",
      "revision": "1121455",
      "downloads": {
        "chrome": [{"platform": "linux64", "url": "https://example.test/113/chrome-linux64.zip"}]
      }
    },
    {
      "version": "138.0.7204.157",
      "revision": "1465706",
      "downloads": {
        "chrome": [{"platform": "linux64", "url": "https://example.test/157/chrome-linux64.zip"}],
        "chromedriver": [
          {"platform": "linux64", "url": "https://example.test/157/chromedriver-linux64.zip"},
          {"platform": "mac-arm64", "url": "https://example.test/157/chromedriver-mac-arm64.zip"}
        ]
      }
    },
    {
      "version": "138.0.7204.158",
      "revision": "1465706",
      "downloads": {
        "chromedriver": [
          {"platform": "linux64", "url": "https://example.test/158/chromedriver-linux64.zip"},
          {"platform": "win64", "url": "https://example.test/158/chromedriver-win64.zip"}
        ]
      }
    }
  ]
}`

func serve(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &userAgent
}

func TestClient_Fetch(t *testing.T) {
	srv, ua := serve(t, http.StatusOK, sampleManifest)
	c := NewClient(ClientConfig{Endpoint: srv.URL, UserAgent: "wdm-test/1.0"})

	m, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(m.Versions) != 3 {
		t.Fatalf("len(Versions) = %d, want 3", len(m.Versions))
	}
	if m.Versions[0].Version != "113.0.5672.0" || m.Versions[2].Version != "138.0.7204.158" {
		t.Errorf("document order not preserved: %+v", m.Versions)
	}
	if _, ok := m.Versions[0].Downloads["chromedriver"]; ok {
		t.Error("entry without chromedriver should not gain one")
	}
	if got := m.Versions[1].Downloads["chromedriver"][1]; got.Platform != "mac-arm64" {
		t.Errorf("download = %+v", got)
	}
	if *ua != "wdm-test/1.0" {
		t.Errorf("User-Agent = %q", *ua)
	}
}

func TestClient_FetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"not_found", http.StatusNotFound, "missing", errdefs.ErrNetwork},
		{"server_error", http.StatusInternalServerError, sampleManifest, errdefs.ErrNetwork},
		{"malformed_json", http.StatusOK, `{"versions": [`, errdefs.ErrJSONParse},
		{"missing_versions", http.StatusOK, `{"timestamp": "x"}`, errdefs.ErrJSONParse},
		{"versions_not_array", http.StatusOK, `{"versions": {}}`, errdefs.ErrJSONParse},
		{"entry_without_version", http.StatusOK, `{"versions": [{"downloads": {}}]}`, errdefs.ErrJSONParse},
		{"entry_without_downloads", http.StatusOK, `{"versions": [{"version": "1.2"}]}`, errdefs.ErrJSONParse},
		{"download_missing_url", http.StatusOK, `{"versions": [{"version": "1.2", "downloads": {"chromedriver": [{"platform": "linux64"}]}}]}`, errdefs.ErrJSONParse},
		{"driver_list_not_array", http.StatusOK, `{"versions": [{"version": "1.2", "downloads": {"chromedriver": {"url": "x"}}}]}`, errdefs.ErrJSONParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)
			c := NewClient(ClientConfig{Endpoint: srv.URL})

			_, err := c.Fetch(context.Background())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Fetch() error = %v, want kind %v", err, errdefs.KindOf(tt.want))
			}
			var e *errdefs.Error
			if errors.As(err, &e) && e.URL != srv.URL {
				t.Errorf("error URL = %q, want %q", e.URL, srv.URL)
			}
		})
	}
}

func TestParse_TolerantDownloads(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDriver bool
	}{
		{
			name: "null driver list",
			body: `{"versions": [{"version": "120.0.1.1", "downloads": {"chromedriver": null}}]}`,
		},
		{
			name: "malformed unrelated artifact",
			body: `{"versions": [{"version": "120.0.1.1", "downloads": {
				"mojojs": {"url": "x"},
				"chrome": [{"platform": 7}],
				"chromedriver": [{"platform": "linux64", "url": "https://example.test/cd.zip"}]
			}}]}`,
			wantDriver: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse([]byte(tt.body), "chromedriver")
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(m.Versions) != 1 {
				t.Fatalf("len(Versions) = %d, want 1", len(m.Versions))
			}

			_, ok := m.Versions[0].Downloads["chromedriver"]
			if ok != tt.wantDriver {
				t.Errorf("chromedriver present = %v, want %v", ok, tt.wantDriver)
			}
			if _, ok := m.Versions[0].Downloads["mojojs"]; ok {
				t.Error("artifact not asked for should not be decoded")
			}
		})
	}
}

func TestSelect_NullDriverList(t *testing.T) {
	m, err := Parse([]byte(`{"versions": [{"version": "120.0.1.1", "downloads": {"chromedriver": null}}]}`), "chromedriver")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	_, err = Select(m, "120.0.1.5", "linux64", "chromedriver")
	if !errors.Is(err, errdefs.ErrDriverURLNotFound) {
		t.Errorf("Select() error = %v, want DriverURLNotFound", err)
	}
}

func TestClient_FetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(ClientConfig{Endpoint: url})
	if _, err := c.Fetch(context.Background()); !errors.Is(err, errdefs.ErrNetwork) {
		t.Errorf("Fetch() error = %v, want NetworkError", err)
	}
}

func TestClient_FetchCancelled(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, sampleManifest)
	c := NewClient(ClientConfig{Endpoint: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled in chain", err)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(ClientConfig{})
	if c.Endpoint() != DefaultEndpoint {
		t.Errorf("Endpoint() = %q", c.Endpoint())
	}
	if !strings.HasPrefix(DefaultEndpoint, "https://googlechromelabs.github.io/") {
		t.Errorf("DefaultEndpoint = %q", DefaultEndpoint)
	}
}

func TestResolveAgainstServer(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, sampleManifest)
	r := NewResolver(NewClient(ClientConfig{Endpoint: srv.URL}), "chromedriver", nil)

	got, err := r.Resolve(context.Background(), "138.0.7204.100", "linux64")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.DriverVersion != "138.0.7204.158" || got.URL != "https://example.test/158/chromedriver-linux64.zip" {
		t.Errorf("Resolve() = %+v", got)
	}

	// The newest 138.0.7204 build has no mac-arm64 driver; the older one
	// that does is not consulted.
	_, err = r.Resolve(context.Background(), "138.0.7204.100", "mac-arm64")
	if !errors.Is(err, errdefs.ErrDriverURLNotFound) {
		t.Errorf("Resolve() error = %v, want DriverURLNotFound", err)
	}

	_, err = r.Resolve(context.Background(), "99.0.1.1", "linux64")
	if !errors.Is(err, errdefs.ErrDriverVersionNotFound) {
		t.Errorf("Resolve() error = %v, want DriverVersionNotFound", err)
	}
}

package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/logging"
)

// ClientConfig holds configuration for a manifest client
type ClientConfig struct {
	// Endpoint is the manifest URL (default: DefaultEndpoint)
	Endpoint string
	// HTTPClient performs the request (default: http.DefaultClient)
	HTTPClient *http.Client
	// UserAgent is sent when non-empty
	UserAgent string
	// Logger receives request logs (default: no-op)
	Logger logging.Logger
	// Artifacts names the download lists to decode (default: DefaultArtifact)
	Artifacts []string
}

// Client fetches the version manifest
type Client struct {
	endpoint   string
	httpClient *http.Client
	userAgent  string
	logger     logging.Logger
	artifacts  []string
}

// NewClient creates a new manifest client
func NewClient(config ClientConfig) *Client {
	c := &Client{
		endpoint:   config.Endpoint,
		httpClient: config.HTTPClient,
		userAgent:  config.UserAgent,
		logger:     logging.OrNop(config.Logger),
		artifacts:  config.Artifacts,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultEndpoint
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if len(c.artifacts) == 0 {
		c.artifacts = []string{DefaultArtifact}
	}
	return c
}

// Endpoint returns the manifest URL the client fetches.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Fetch issues one GET against the endpoint and parses the body.
func (c *Client) Fetch(ctx context.Context) (*Manifest, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errdefs.Network(c.endpoint, fmt.Errorf("create request: %w", err))
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("fetching manifest", "url", c.endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errdefs.Network(c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errdefs.Network(c.endpoint, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errdefs.Network(c.endpoint, fmt.Errorf("read response body: %w", err))
	}

	m, err := Parse(body, c.artifacts...)
	if err != nil {
		return nil, errdefs.JSONParse(c.endpoint, err)
	}

	c.logger.Debug("manifest fetched", "url", c.endpoint, "versions", len(m.Versions))
	return m, nil
}

// Parse decodes a manifest document. Every entry needs a string version and
// a downloads object. Only the named artifacts are decoded; each one present
// must be a list of platform/url string pairs, and a null list counts as
// absent. Other keys under downloads are ignored.
func Parse(body []byte, artifacts ...string) (*Manifest, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON document")
	}

	versions := gjson.GetBytes(body, "versions")
	if !versions.IsArray() {
		return nil, errors.New(`missing "versions" array`)
	}

	m := &Manifest{}
	var parseErr error

	versions.ForEach(func(_, v gjson.Result) bool {
		entry, err := parseEntry(v, artifacts)
		if err != nil {
			parseErr = fmt.Errorf("versions[%d]: %w", len(m.Versions), err)
			return false
		}
		m.Versions = append(m.Versions, entry)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return m, nil
}

func parseEntry(v gjson.Result, artifacts []string) (Entry, error) {
	version := v.Get("version")
	if version.Type != gjson.String {
		return Entry{}, errors.New(`"version" must be a string`)
	}

	downloads := v.Get("downloads")
	if !downloads.IsObject() {
		return Entry{}, errors.New(`"downloads" must be an object`)
	}

	entry := Entry{Version: version.String(), Downloads: map[string][]Download{}}
	for _, name := range artifacts {
		list := downloads.Get(gjson.Escape(name))
		if !list.Exists() || list.Type == gjson.Null {
			continue
		}
		if !list.IsArray() {
			return Entry{}, fmt.Errorf("downloads.%s must be an array", name)
		}

		var items []Download
		for _, d := range list.Array() {
			p, u := d.Get("platform"), d.Get("url")
			if p.Type != gjson.String || u.Type != gjson.String {
				return Entry{}, fmt.Errorf("downloads.%s: platform and url must be strings", name)
			}
			items = append(items, Download{Platform: p.String(), URL: u.String()})
		}
		entry.Downloads[name] = items
	}

	return entry, nil
}

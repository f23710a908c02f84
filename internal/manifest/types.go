// Package manifest maps a browser version onto a driver build listed in the
// chrome-for-testing version manifest.
//
// The manifest is fetched once per resolution and never cached. Entries are
// kept in document order, which the publisher sorts ascending; selection
// relies on that order and does not re-sort.
package manifest

// DefaultEndpoint is the known-good-versions manifest with download URLs.
const DefaultEndpoint = "https://googlechromelabs.github.io/chrome-for-testing/known-good-versions-with-downloads.json"

// DefaultArtifact is the download list a client decodes when none is named.
const DefaultArtifact = "chromedriver"

// Download is one platform build of a manifest entry.
type Download struct {
	Platform string // platform identifier, e.g. "linux64"
	URL      string
}

// Entry is one released version and its downloads, keyed by artifact name
// ("chrome", "chromedriver", ...). An artifact may be absent.
type Entry struct {
	Version   string
	Downloads map[string][]Download
}

// Manifest is the parsed version manifest, in document order.
type Manifest struct {
	Versions []Entry
}

// Resolved is the outcome of a resolution.
type Resolved struct {
	DriverVersion string
	URL           string
}

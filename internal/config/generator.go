package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Generator generates Lua configuration code from Go structs.
type Generator struct {
	indent string // Indentation string (default: two spaces)
	now    func() time.Time
}

// NewGenerator creates a new Lua config generator.
func NewGenerator() *Generator {
	return &Generator{
		indent: "  ", // Two spaces
		now:    time.Now,
	}
}

// Generate generates Lua code from a Config struct.
// The output is formatted and human-readable, and parses back into an
// equal Config.
func (g *Generator) Generate(config *Config) (string, error) {
	if config == nil {
		return "", fmt.Errorf("generate config: nil config")
	}
	if err := config.Validate(); err != nil {
		return "", err
	}

	var buf bytes.Buffer

	// Write header comment
	buf.WriteString("-- wdm configuration\n")
	buf.WriteString("-- Generated: ")
	buf.WriteString(g.now().Format(time.RFC3339))
	buf.WriteString("\n")
	buf.WriteString("-- The read-only `platform` table is available here, e.g.\n")
	buf.WriteString("--   install_dir = platform.is_windows and \"C:\\\\drivers\" or nil,\n\n")

	buf.WriteString(luaGlobalWdm)
	buf.WriteString(" = {\n")

	g.writeString(&buf, luaFieldInstallDir, config.InstallDir)
	g.writeString(&buf, luaFieldManifestURL, config.ManifestURL)
	g.writeString(&buf, luaFieldUserAgent, config.UserAgent)
	if config.ExtractWorkers > 0 {
		fmt.Fprintf(&buf, "%s%s = %d,\n", g.indent, luaFieldExtractWorker, config.ExtractWorkers)
	}

	if len(config.Browsers) > 0 {
		g.writeBrowsers(&buf, config.Browsers)
	}

	buf.WriteString("}\n")

	return buf.String(), nil
}

// writeString writes key = "value", skipping empty values.
func (g *Generator) writeString(buf *bytes.Buffer, key, value string) {
	if value == "" {
		return
	}
	buf.WriteString(g.indent)
	buf.WriteString(key)
	buf.WriteString(" = ")
	buf.WriteString(g.quoteLuaString(value))
	buf.WriteString(",\n")
}

// writeBrowsers writes the browsers section in name order.
func (g *Generator) writeBrowsers(buf *bytes.Buffer, browsers map[string]BrowserConfig) {
	names := make([]string, 0, len(browsers))
	for name := range browsers {
		names = append(names, name)
	}
	sort.Strings(names)

	buf.WriteString(g.indent)
	buf.WriteString(luaFieldBrowsers)
	buf.WriteString(" = {\n")

	for _, name := range names {
		buf.WriteString(g.indent)
		buf.WriteString(g.indent)
		buf.WriteString(name)
		buf.WriteString(" = {")
		if path := browsers[name].Path; path != "" {
			buf.WriteString(" ")
			buf.WriteString(luaFieldPath)
			buf.WriteString(" = ")
			buf.WriteString(g.quoteLuaString(path))
			buf.WriteString(" ")
		}
		buf.WriteString("},\n")
	}

	buf.WriteString(g.indent)
	buf.WriteString("},\n")
}

// quoteLuaString quotes a string for Lua, handling special characters.
func (g *Generator) quoteLuaString(s string) string {
	// Use double quotes and escape special characters
	s = strings.ReplaceAll(s, "\\", "\\\\") // Escape backslashes first
	s = strings.ReplaceAll(s, "\"", "\\\"") // Escape double quotes
	s = strings.ReplaceAll(s, "\n", "\\n")  // Escape newlines
	s = strings.ReplaceAll(s, "\r", "\\r")  // Escape carriage returns
	s = strings.ReplaceAll(s, "\t", "\\t")  // Escape tabs
	return "\"" + s + "\""
}

package browser

import (
	"bufio"
	"context"
	"strings"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// queryCLIVersion runs the browser with its version flag and parses stdout.
func queryCLIVersion(ctx context.Context, sys system, name Name, path string) (string, error) {
	out, err := sys.output(ctx, path, name.versionFlag())
	if err != nil {
		return "", err
	}
	return parseVersionOutput(out)
}

// parseVersionOutput returns the first whitespace-separated token that
// starts with an ASCII digit and contains a dot, e.g. "138.0.7204.158" out
// of "Google Chrome 138.0.7204.158 ".
func parseVersionOutput(out string) (string, error) {
	for _, field := range strings.Fields(out) {
		if field[0] >= '0' && field[0] <= '9' && strings.Contains(field, ".") {
			return field, nil
		}
	}
	return "", errdefs.BrowserVersionParsing(out)
}

// parseApplicationIni returns the value of the first Version= line in an
// application.ini document.
func parseApplicationIni(content string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if value, ok := strings.CutPrefix(line, "Version="); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value), nil
		}
	}
	return "", errdefs.BrowserVersionParsing(content)
}

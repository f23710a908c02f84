package browser

import (
	"context"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// linuxExecNames are resolved through PATH, in order.
var linuxExecNames = map[Name][]string{
	Chrome: {
		"google-chrome",
		"google-chrome-stable",
		"chromium-browser",
		"chromium",
	},
	Firefox: {
		"firefox",
	},
}

type linuxLocator struct {
	sys system
}

func (l *linuxLocator) FindPath(name Name) (string, error) {
	for _, candidate := range linuxExecNames[name] {
		if found, err := l.sys.lookPath(candidate); err == nil {
			return found, nil
		}
	}
	return "", errdefs.BrowserNotFound(name.String())
}

func (l *linuxLocator) QueryVersion(ctx context.Context, name Name, path string) (string, error) {
	return queryCLIVersion(ctx, l.sys, name, path)
}

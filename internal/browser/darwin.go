package browser

import (
	"context"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

var darwinExePaths = map[Name][]string{
	Chrome: {
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	},
	Firefox: {
		"/Applications/Firefox.app/Contents/MacOS/firefox",
	},
}

type darwinLocator struct {
	sys system
}

func (l *darwinLocator) FindPath(name Name) (string, error) {
	for _, candidate := range darwinExePaths[name] {
		if l.sys.exists(candidate) {
			return candidate, nil
		}
	}
	return "", errdefs.BrowserNotFound(name.String())
}

func (l *darwinLocator) QueryVersion(ctx context.Context, name Name, path string) (string, error) {
	return queryCLIVersion(ctx, l.sys, name, path)
}

package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// windowsInstallDirs are the environment variables naming the directories
// browsers install under, in search order.
var windowsInstallDirs = []string{"ProgramFiles", "ProgramFiles(x86)", "LOCALAPPDATA"}

// windowsExePaths are the executable paths relative to an install directory.
var windowsExePaths = map[Name][]string{
	Chrome:  {"Google", "Chrome", "Application", "chrome.exe"},
	Firefox: {"Mozilla Firefox", "firefox.exe"},
}

type windowsLocator struct {
	sys system
}

func (l *windowsLocator) FindPath(name Name) (string, error) {
	rel, ok := windowsExePaths[name]
	if !ok {
		return "", errdefs.BrowserNotFound(name.String())
	}

	for _, env := range windowsInstallDirs {
		base := l.sys.getenv(env)
		if base == "" {
			continue
		}
		candidate := filepath.Join(append([]string{base}, rel...)...)
		if l.sys.exists(candidate) {
			return candidate, nil
		}
	}

	return "", errdefs.BrowserNotFound(name.String())
}

// QueryVersion asks PowerShell for chrome's file version, because
// chrome.exe --version prints nothing on Windows. Firefox's version is read
// from the application.ini in its install directory.
func (l *windowsLocator) QueryVersion(ctx context.Context, name Name, path string) (string, error) {
	if name == Firefox {
		return l.firefoxVersion(path)
	}

	// single-quoted PowerShell strings escape ' by doubling it
	quoted := strings.ReplaceAll(path, "'", "''")
	script := fmt.Sprintf("(Get-Command '%s').Version.ToString()", quoted)
	out, err := l.sys.output(ctx, "powershell", "-Command", script)
	if err != nil {
		return "", err
	}

	version := strings.TrimSpace(out)
	if version == "" {
		return "", errdefs.BrowserVersionParsing(out)
	}
	return version, nil
}

func (l *windowsLocator) firefoxVersion(path string) (string, error) {
	iniPath := filepath.Join(filepath.Dir(path), "application.ini")

	content, err := l.sys.readFile(iniPath)
	if err != nil {
		return "", errdefs.IO(iniPath, err)
	}

	return parseApplicationIni(string(content))
}

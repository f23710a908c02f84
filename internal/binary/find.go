package binary

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// errFound stops the walk once the executable is found.
var errFound = errors.New("found")

// FindExecutable walks root and returns the first regular file whose base
// name is exactly name. The walk is lexical, so the result is stable for a
// given tree.
func FindExecutable(root, name string) (string, error) {
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && d.Name() == name {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", errdefs.IO(root, err)
	}

	if found == "" {
		return "", errdefs.DriverExecutableNotFound(root, name)
	}
	return found, nil
}

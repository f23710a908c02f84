// Package lock provides an exclusive lock file for an install directory,
// so that two wdm processes never extract into the same directory at once.
package lock

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// FileName is the lock file created inside the locked directory.
	FileName = ".wdm.lock"

	// StaleThreshold is the maximum age of a lock before it's considered stale.
	StaleThreshold = 10 * time.Minute
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("install directory is locked: another wdm process may be running")

// Lock represents a held install directory lock.
type Lock struct {
	path  string
	token string
	file  *os.File
}

// Acquire takes the lock for dir, creating dir if needed. It does not wait:
// a live lock held by someone else yields ErrLocked. A lock older than
// StaleThreshold is removed and acquisition is attempted once more.
func Acquire(ctx context.Context, dir string) (*Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, FileName)
	file, err := create(lockPath)
	if errors.Is(err, os.ErrExist) {
		stale, statErr := isStale(lockPath)
		if statErr != nil || !stale {
			return nil, ErrLocked
		}
		// Remove stale lock and retry once
		if err := os.Remove(lockPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale lock: %w", err)
		}
		file, err = create(lockPath)
		if errors.Is(err, os.ErrExist) {
			return nil, ErrLocked
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create lock file: %w", err)
	}

	l := &Lock{path: lockPath, token: uuid.NewString(), file: file}

	// Write lock metadata (PID, owner token and timestamp)
	lockData := fmt.Sprintf("pid=%d\ntoken=%s\ntimestamp=%s\n",
		os.Getpid(), l.token, time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(lockData); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("sync lock file: %w", err)
	}

	return l, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release releases the lock. The file is only removed while it still
// carries this lock's token, so a lock taken over as stale survives.
func (l *Lock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
	if l.path == "" {
		return nil
	}

	owner, err := readToken(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			l.path = ""
			return nil
		}
		return fmt.Errorf("read lock file: %w", err)
	}
	if owner != l.token {
		l.path = ""
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	l.path = ""
	return nil
}

func create(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0o600)
}

// isStale checks if a lock file is older than StaleThreshold.
func isStale(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > StaleThreshold, nil
}

// readToken returns the token= value recorded in the lock file.
func readToken(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if value, ok := strings.CutPrefix(scanner.Text(), "token="); ok {
			return value, nil
		}
	}
	return "", scanner.Err()
}

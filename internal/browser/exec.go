package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"unicode/utf8"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// commandRunner runs a command once and returns its standard output.
// A non-zero exit status is not an error; only failing to run is.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if ctx.Err() != nil {
		return out, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}
	return out, err
}

// system holds the OS seams the locators use, replaced in tests.
type system struct {
	getenv   func(string) string
	exists   func(string) bool
	lookPath func(string) (string, error)
	readFile func(string) ([]byte, error)
	run      commandRunner
}

func newSystem() system {
	return system{
		getenv:   os.Getenv,
		exists:   fileExists,
		lookPath: exec.LookPath,
		readFile: os.ReadFile,
		run:      runCommand,
	}
}

// output runs name with args and returns its stdout as text.
func (s system) output(ctx context.Context, name string, args ...string) (string, error) {
	command := commandString(name, args...)

	out, err := s.run(ctx, name, args...)
	if err != nil {
		return "", errdefs.CommandExecution(command, err)
	}

	if !utf8.Valid(out) {
		return "", errdefs.CommandOutputParsing(command, errors.New("output is not valid UTF-8"))
	}

	return string(out), nil
}

func commandString(name string, args ...string) string {
	s := fmt.Sprintf("'%s'", name)
	for _, a := range args {
		s += " " + a
	}
	return s
}

// fileExists checks if a regular file exists at path
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

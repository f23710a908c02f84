package binary

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/ZebulonRouseFrantzich/webdriver-manager/internal/errdefs"
)

// Verifier checks that an installed driver runs and identifies itself.
type Verifier struct {
	// Flag is the single argument the driver is run with (default "--version")
	Flag string
	// Marker must appear in the driver's stdout
	Marker string
}

// NewVerifier creates a verifier that expects marker in the --version output
func NewVerifier(marker string) *Verifier {
	return &Verifier{Flag: "--version", Marker: marker}
}

// Verify runs the driver at path once with the version flag. It fails on a
// spawn error, a non-zero exit, non-UTF-8 output, or output without the
// marker.
func (v *Verifier) Verify(ctx context.Context, path string) error {
	flag := v.Flag
	if flag == "" {
		flag = "--version"
	}
	command := fmt.Sprintf("'%s' %s", path, flag)

	out, err := exec.CommandContext(ctx, path, flag).Output()
	if err != nil {
		if ctx.Err() != nil {
			return errdefs.CommandExecution(command, ctx.Err())
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return errdefs.Verification(path, fmt.Sprintf("non-zero exit (status %d)", exitErr.ExitCode()))
		}
		return errdefs.CommandExecution(command, err)
	}

	if !utf8.Valid(out) {
		return errdefs.CommandOutputParsing(command, errors.New("output is not valid UTF-8"))
	}

	if !strings.Contains(string(out), v.Marker) {
		return errdefs.Verification(path, fmt.Sprintf("unexpected output: %q", strings.TrimSpace(string(out))))
	}

	return nil
}

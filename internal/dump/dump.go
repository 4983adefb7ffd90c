package dump

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBin is the dump tool invoked to turn a binary darshan log into text.
const DefaultBin = "darshan-parser"

// Extension all darshan logs must carry.
const Extension = ".darshan"

// ErrBadExtension reports an input file that is not a .darshan log.
var ErrBadExtension = errors.New("log file must have " + Extension + " extension")

// ToolError reports a non-zero exit from the dump tool, carrying its
// diagnostic output verbatim.
type ToolError struct {
	Code   int
	Stderr string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "(no diagnostic output)"
	}
	return fmt.Sprintf("%s exited with code %d: %s", DefaultBin, e.Code, msg)
}

// Runner invokes the dump tool. The zero value is not usable; use New.
type Runner struct {
	Bin     string
	Timeout time.Duration
}

// New returns a Runner with defaults applied.
func New(bin string, timeout time.Duration) *Runner {
	if bin == "" {
		bin = DefaultBin
	}
	return &Runner{Bin: bin, Timeout: timeout}
}

// Run validates the log path, executes the dump tool on it, and returns the
// tool's stdout as the raw log document. No retries: a non-zero exit is a
// hard failure surfaced as *ToolError.
func (r *Runner) Run(ctx context.Context, logPath string) (string, error) {
	if _, err := os.Stat(logPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("darshan log file not found: %s", logPath)
		}
		return "", err
	}
	if !strings.HasSuffix(logPath, Extension) {
		return "", ErrBadExtension
	}
	if _, err := exec.LookPath(r.Bin); err != nil {
		return "", fmt.Errorf("%s not found in PATH", r.Bin)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.Bin, "--show-incomplete", logPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ToolError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", fmt.Errorf("running %s: %w", r.Bin, err)
	}

	return stdout.String(), nil
}

// BaseName returns the log's base name with the .darshan extension stripped,
// used to derive default output directory names.
func BaseName(logPath string) string {
	return strings.TrimSuffix(filepath.Base(logPath), Extension)
}

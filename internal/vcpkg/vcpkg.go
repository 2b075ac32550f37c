package vcpkg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultBin is the binary looked up on PATH when nothing else is configured.
const DefaultBin = "vcpkg"

// ExitError reports a vcpkg invocation that exited non-zero.
type ExitError struct {
	Dir  string
	Args []string
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("vcpkg %s in %s: exit status %d", strings.Join(e.Args, " "), e.Dir, e.Code)
}

// Unwrap returns the underlying *exec.ExitError.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// UpdateOpts configures x-update-baseline.
type UpdateOpts struct {
	AddInitialBaseline bool
	DryRun             bool
}

func (o UpdateOpts) args() []string {
	args := []string{"x-update-baseline"}
	if o.AddInitialBaseline {
		args = append(args, "--add-initial-baseline")
	}
	if o.DryRun {
		args = append(args, "--dry-run")
	}
	return args
}

// Runner invokes a vcpkg binary. Output is streamed to Stdout and Stderr,
// which default to the process's own.
type Runner struct {
	Bin    string
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner for bin, resolved with Resolve.
func NewRunner(bin string) *Runner {
	return &Runner{Bin: Resolve(bin), Stdout: os.Stdout, Stderr: os.Stderr}
}

// UpdateBaseline runs `vcpkg x-update-baseline` with dir as the working
// directory and waits for it to finish.
func (r *Runner) UpdateBaseline(ctx context.Context, dir string, opts UpdateOpts) error {
	return r.run(ctx, dir, opts.args()...)
}

// Version returns the first line of `vcpkg version`.
func (r *Runner) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.bin(), "version") //nolint:gosec // binary comes from flag, env or PATH
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("vcpkg version: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	first, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(first), nil
}

// Path returns the absolute path of the binary, or an error if it cannot be found.
func (r *Runner) Path() (string, error) {
	return exec.LookPath(r.bin())
}

func (r *Runner) bin() string {
	if r.Bin == "" {
		return DefaultBin
	}
	return r.Bin
}

// run executes a vcpkg command in the given directory.
func (r *Runner) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, r.bin(), args...) //nolint:gosec // binary comes from flag, env or PATH
	cmd.Dir = dir
	cmd.Stdout = writerOr(r.Stdout, os.Stdout)
	cmd.Stderr = writerOr(r.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return &ExitError{Dir: dir, Args: args, Code: ee.ExitCode(), Err: err}
		}
		return fmt.Errorf("running vcpkg %s in %s: %w", strings.Join(args, " "), dir, err)
	}
	return nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// Resolve picks the vcpkg binary: explicit if non-empty, then the binary
// inside $VCPKG_ROOT, then DefaultBin for PATH lookup.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if root := os.Getenv("VCPKG_ROOT"); root != "" {
		candidate := filepath.Join(root, exeName())
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return DefaultBin
}

func exeName() string {
	if runtime.GOOS == "windows" {
		return DefaultBin + ".exe"
	}
	return DefaultBin
}

package surface

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"tapscore-core/taperr"
)

// EnvPath overrides the psa executable location.
const EnvPath = "TAP_PSA_PATH"

// Runner produces the raw accessibility report for a structure file.
type Runner interface {
	Run(ctx context.Context, structurePath string) ([]byte, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, structurePath string) ([]byte, error)

func (f RunnerFunc) Run(ctx context.Context, structurePath string) ([]byte, error) {
	return f(ctx, structurePath)
}

// DefaultBinary is the executable name searched on $PATH.
func DefaultBinary() string {
	if runtime.GOOS == "darwin" {
		return "psa_mac"
	}
	return "psa"
}

// ResolveBinary picks the psa executable: explicit path, then $TAP_PSA_PATH,
// then DefaultBinary on $PATH.
func ResolveBinary(explicit string) (string, error) {
	p := strings.TrimSpace(explicit)
	if p == "" {
		p = strings.TrimSpace(os.Getenv(EnvPath))
	}
	if p == "" {
		found, err := exec.LookPath(DefaultBinary())
		if err != nil {
			return "", taperr.Wrap(taperr.ToolUnavailable, opRun, "psa executable was not found on $PATH", err)
		}
		return found, nil
	}
	if st, err := os.Stat(p); err != nil {
		return "", taperr.Wrap(taperr.ToolUnavailable, opRun, "psa executable was not found", err)
	} else if st.IsDir() {
		return "", taperr.Newf(taperr.ToolUnavailable, opRun, "%s is a directory", p)
	}
	return p, nil
}

// ExecRunner runs the psa binary as `psa -t <structure>`. The call blocks
// until the process exits; there is no timeout and no retry.
type ExecRunner struct {
	Path string
}

// NewExecRunner resolves the binary up front so a missing tool fails before
// any structure is read.
func NewExecRunner(explicit string) (*ExecRunner, error) {
	p, err := ResolveBinary(explicit)
	if err != nil {
		return nil, err
	}
	return &ExecRunner{Path: p}, nil
}

func (r *ExecRunner) Run(ctx context.Context, structurePath string) ([]byte, error) {
	if _, err := os.Stat(r.Path); err != nil {
		return nil, taperr.Wrap(taperr.ToolUnavailable, opRun, "psa executable was not found", err)
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Path, "-t", structurePath)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	var execErr *exec.Error
	if errors.As(runErr, &execErr) {
		return nil, taperr.Wrap(taperr.ToolUnavailable, opRun, "cannot start psa", runErr)
	}
	// A non-zero exit with a report on stdout is still usable.
	if stdout.Len() == 0 {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "psa produced no output"
		}
		return nil, taperr.Wrap(taperr.ToolExecutionFailure, opRun, msg, runErr)
	}
	return stdout.Bytes(), nil
}

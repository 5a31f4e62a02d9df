// Package kubectl shells out to the kubectl binary with the configured
// credentials file injected into the child environment.
package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"kubemon/pkg/logging"
)

const subsystem = "KubectlRunner"

// DefaultTimeout bounds every one-shot kubectl invocation.
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a kubectl invocation exceeds the runner timeout.
var ErrTimeout = errors.New("command timeout")

// Runner executes kubectl commands against a fixed credentials file.
// The zero value is not usable; construct with NewRunner.
type Runner struct {
	// Binary is the executable to spawn. Overridable in tests.
	Binary string
	// Kubeconfig is exported as KUBECONFIG in the child environment.
	Kubeconfig string
	// Timeout bounds each Run call.
	Timeout time.Duration
}

// NewRunner returns a Runner for the given credentials file.
func NewRunner(kubeconfig string) *Runner {
	return &Runner{
		Binary:     "kubectl",
		Kubeconfig: kubeconfig,
		Timeout:    DefaultTimeout,
	}
}

// Run executes the binary once and returns its trimmed stdout.
// A run that exceeds the timeout fails with ErrTimeout; a non-zero exit
// fails with the child's stderr folded into the error.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logging.Debug(subsystem, "Running: %s %s", r.Binary, strings.Join(args, " "))

	cmd := r.buildCmd(runCtx, args)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	runErr := cmd.Run()
	stdout := strings.TrimSpace(stdoutBuf.String())

	if runErr != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			logging.Warn(subsystem, "Timed out after %s: %s %s", timeout, r.Binary, strings.Join(args, " "))
			return "", ErrTimeout
		}
		stderr := strings.TrimSpace(stderrBuf.String())
		if stderr != "" {
			return stdout, fmt.Errorf("%s %s: %w: %s", r.Binary, strings.Join(args, " "), runErr, stderr)
		}
		return stdout, fmt.Errorf("%s %s: %w", r.Binary, strings.Join(args, " "), runErr)
	}
	return stdout, nil
}

// Command builds an exec.Cmd for a long-running child such as a port-forward.
// The caller owns starting, stopping and reaping it; no timeout is applied.
func (r *Runner) Command(ctx context.Context, args ...string) *exec.Cmd {
	return r.buildCmd(ctx, args)
}

func (r *Runner) buildCmd(ctx context.Context, args []string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Env = append(os.Environ(), "KUBECONFIG="+r.Kubeconfig)
	return cmd
}

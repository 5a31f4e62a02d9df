// Package tunnel manages kubectl port-forward children, one per probed
// service. A tunnel is opened, polled until its local port accepts
// connections, and torn down again as soon as its probe finishes.
package tunnel

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"kubemon/internal/kubectl"
	"kubemon/pkg/logging"
)

const subsystem = "Tunnel"

// Readiness polling knobs. Package-level so tests can tighten them.
var (
	settleTimeout = 10 * time.Second
	pollInterval  = 100 * time.Millisecond
	dialTimeout   = 250 * time.Millisecond
)

// For mocking in tests
var newTunnelCmd = func(ctx context.Context, runner *kubectl.Runner, args []string) *exec.Cmd {
	return runner.Command(ctx, args...)
}

// Spec names the forwarding target.
type Spec struct {
	Service    string
	Namespace  string
	LocalPort  int
	RemotePort int
}

// Tunnel is a live port-forward child process.
type Tunnel struct {
	Spec

	cmd       *exec.Cmd
	waitErr   chan error
	closeOnce sync.Once
}

// Addr returns the local dial address of the tunnel.
func (t *Tunnel) Addr() string {
	return fmt.Sprintf("localhost:%d", t.LocalPort)
}

// Open spawns the port-forward child and waits until the local port accepts
// connections. Child diagnostics go to /dev/null; the port either opens or
// the deadline kills the child and Open fails.
func Open(ctx context.Context, runner *kubectl.Runner, spec Spec) (*Tunnel, error) {
	t := &Tunnel{
		Spec:    spec,
		waitErr: make(chan error, 1),
	}

	cmd := newTunnelCmd(ctx, runner, buildArgs(spec))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting port-forward for %s: %w", spec.Service, err)
	}
	t.cmd = cmd

	go func() {
		t.waitErr <- cmd.Wait()
		close(t.waitErr)
	}()

	logging.Debug(subsystem, "Forwarding %s: localhost:%d -> %d (pid %d)",
		spec.Service, spec.LocalPort, spec.RemotePort, cmd.Process.Pid)

	if err := t.awaitReady(ctx); err != nil {
		t.Close()
		return nil, fmt.Errorf("port-forward for %s not ready: %w", spec.Service, err)
	}
	return t, nil
}

// awaitReady polls the local port until it accepts a connection, the child
// exits, or the settle deadline passes.
func (t *Tunnel) awaitReady(ctx context.Context) error {
	addr := t.Addr()
	return wait.PollUntilContextTimeout(ctx, pollInterval, settleTimeout, true,
		func(context.Context) (bool, error) {
			select {
			case err := <-t.waitErr:
				if err != nil {
					return false, fmt.Errorf("child exited: %w", err)
				}
				return false, errors.New("child exited before port opened")
			default:
			}
			conn, err := net.DialTimeout("tcp", addr, dialTimeout)
			if err != nil {
				return false, nil
			}
			conn.Close()
			return true, nil
		})
}

// Close stops the child, SIGTERM first and SIGKILL as fallback, then reaps
// it. Safe to call more than once; only the first call does the work.
func (t *Tunnel) Close() error {
	var closeErr error
	t.closeOnce.Do(func() {
		if t.cmd.Process != nil {
			if err := t.cmd.Process.Signal(syscall.SIGTERM); err != nil {
				t.cmd.Process.Kill()
			}
		}
		// Receives the real exit error once; reads after channel close
		// return nil, so a reap that already happened is a no-op here.
		err := <-t.waitErr
		if err != nil && !stoppedBySignal(err) {
			closeErr = err
			logging.Warn(subsystem, "Port-forward for %s exited with error: %v", t.Service, err)
			return
		}
		logging.Debug(subsystem, "Port-forward for %s stopped", t.Service)
	})
	return closeErr
}

func buildArgs(spec Spec) []string {
	args := []string{"port-forward"}
	if spec.Namespace != "" && spec.Namespace != "default" {
		args = append(args, "--namespace", spec.Namespace)
	}
	target := spec.Service
	if !strings.HasPrefix(target, "service/") && !strings.HasPrefix(target, "pod/") && !strings.HasPrefix(target, "pods/") {
		target = "service/" + target
	}
	return append(args, target, fmt.Sprintf("%d:%d", spec.LocalPort, spec.RemotePort))
}

// stoppedBySignal reports whether the exit error is the expected result of
// our own SIGTERM or SIGKILL rather than a child failure.
func stoppedBySignal(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "signal: terminated") ||
		strings.Contains(msg, "signal: killed") ||
		strings.Contains(msg, "signal: interrupt")
}

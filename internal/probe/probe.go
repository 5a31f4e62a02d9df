// Package probe runs the per-service connectivity tests. Each service gets
// its own short-lived tunnel: open, test, tear down, then on to the next.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"kubemon/internal/config"
	"kubemon/internal/kubectl"
	"kubemon/internal/tunnel"
	"kubemon/pkg/logging"
)

const subsystem = "Probe"

// LocalPortOffset shifts a service's declared port onto the local tunnel
// port, keeping the whole range clear of anything already bound locally.
const LocalPortOffset = 8000

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultTCPTimeout  = 5 * time.Second
)

// Canonical outcome messages. These are part of the report contract, so
// scripts matching on them keep working.
const (
	MsgPortOpen          = "Port open"
	MsgPortClosed        = "Port closed"
	MsgConnectionTimeout = "Connection timeout"
	MsgConnectionRefused = "Connection refused"
	MsgRequestTimeout    = "Request timeout"
)

// Outcome captures a single connectivity test.
// Elapsed carries the measured latency for completed dials and requests, the
// configured timeout for timeouts, and zero for everything that failed
// before timing meant anything.
type Outcome struct {
	Success bool
	Message string
	Elapsed time.Duration
}

// Result pairs a probed target with its outcome.
type Result struct {
	Target config.ServiceTarget
	Outcome
}

// tunnelConn is the slice of tunnel.Tunnel the prober needs.
type tunnelConn interface {
	Addr() string
	Close() error
}

// For mocking in tests
var openTunnelFn = func(ctx context.Context, runner *kubectl.Runner, spec tunnel.Spec) (tunnelConn, error) {
	return tunnel.Open(ctx, runner, spec)
}

// Prober tunnels to services and tests them, one at a time.
type Prober struct {
	Runner    *kubectl.Runner
	Namespace string

	// Offset maps a remote port onto the local tunnel port.
	Offset int
	// HTTPTimeout bounds the probe request for HTTP targets.
	HTTPTimeout time.Duration
	// TCPTimeout bounds the dial for TCP and gRPC targets.
	TCPTimeout time.Duration
}

// NewProber returns a Prober with the production timeouts and port offset.
func NewProber(runner *kubectl.Runner, namespace string) *Prober {
	return &Prober{
		Runner:      runner,
		Namespace:   namespace,
		Offset:      LocalPortOffset,
		HTTPTimeout: defaultHTTPTimeout,
		TCPTimeout:  defaultTCPTimeout,
	}
}

// LocalPort returns the local end of the tunnel for a service port.
func (p *Prober) LocalPort(remote int) int {
	return p.Offset + remote
}

// Probe opens a tunnel to the target and tests it. The tunnel is released
// before Probe returns, whatever the outcome.
func (p *Prober) Probe(ctx context.Context, target config.ServiceTarget) Outcome {
	local := p.LocalPort(target.Port)
	tn, err := openTunnelFn(ctx, p.Runner, tunnel.Spec{
		Service:    target.Name,
		Namespace:  p.Namespace,
		LocalPort:  local,
		RemotePort: target.Port,
	})
	if err != nil {
		logging.Error(subsystem, err, "Could not tunnel to %s", target.Name)
		return Outcome{Success: false, Message: err.Error(), Elapsed: 0}
	}
	defer tn.Close()

	if target.Protocol.IsHTTP() {
		return p.probeHTTP(ctx, tn.Addr(), target.Path)
	}
	return p.probeTCP(ctx, tn.Addr())
}

// ProbeAll tests every target in order. Strictly sequential: each service
// holds its tunnel alone, so a shared port offset can never collide.
func (p *Prober) ProbeAll(ctx context.Context, targets []config.ServiceTarget) []Result {
	results := make([]Result, 0, len(targets))
	for _, target := range targets {
		logging.Info(subsystem, "Testing %s (port %d, %s)", target.Name, target.Port, target.Protocol)
		outcome := p.Probe(ctx, target)
		results = append(results, Result{Target: target, Outcome: outcome})
	}
	return results
}

func (p *Prober) probeHTTP(ctx context.Context, addr, path string) Outcome {
	url := "http://" + addr + path
	client := &http.Client{Timeout: p.HTTPTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{Success: false, Message: err.Error(), Elapsed: 0}
	}

	start := time.Now()
	resp, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout():
			// Report the budget, not the measurement: the request was cut
			// off at exactly the configured timeout.
			return Outcome{Success: false, Message: MsgRequestTimeout, Elapsed: p.HTTPTimeout}
		case errors.Is(err, syscall.ECONNREFUSED):
			return Outcome{Success: false, Message: MsgConnectionRefused, Elapsed: 0}
		default:
			return Outcome{Success: false, Message: err.Error(), Elapsed: 0}
		}
	}
	defer resp.Body.Close()

	return Outcome{
		Success: resp.StatusCode == http.StatusOK,
		Message: fmt.Sprintf("HTTP %d", resp.StatusCode),
		Elapsed: elapsed,
	}
}

func (p *Prober) probeTCP(ctx context.Context, addr string) Outcome {
	dialer := net.Dialer{Timeout: p.TCPTimeout}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	elapsed := time.Since(start)
	if err == nil {
		conn.Close()
		return Outcome{Success: true, Message: MsgPortOpen, Elapsed: elapsed}
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr) && netErr.Timeout():
		return Outcome{Success: false, Message: MsgConnectionTimeout, Elapsed: p.TCPTimeout}
	case errors.Is(err, syscall.ECONNREFUSED):
		return Outcome{Success: false, Message: MsgPortClosed, Elapsed: elapsed}
	default:
		return Outcome{Success: false, Message: err.Error(), Elapsed: 0}
	}
}

package tunnel

import (
	"context"
	"net"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kubemon/internal/kubectl"
)

func withTunnelCmd(t *testing.T, fn func(ctx context.Context, runner *kubectl.Runner, args []string) *exec.Cmd) {
	t.Helper()
	original := newTunnelCmd
	t.Cleanup(func() { newTunnelCmd = original })
	newTunnelCmd = fn
}

func withSettleTimeout(t *testing.T, d time.Duration) {
	t.Helper()
	original := settleTimeout
	t.Cleanup(func() { settleTimeout = original })
	settleTimeout = d
}

// listenLocal opens a throwaway listener so the readiness poll has something
// to connect to, and returns its port.
func listenLocal(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{
			name: "service name gets prefixed",
			spec: Spec{Service: "cart", LocalPort: 16883, RemotePort: 8883},
			want: []string{"port-forward", "service/cart", "16883:8883"},
		},
		{
			name: "default namespace stays implicit",
			spec: Spec{Service: "cart", Namespace: "default", LocalPort: 16883, RemotePort: 8883},
			want: []string{"port-forward", "service/cart", "16883:8883"},
		},
		{
			name: "custom namespace is passed through",
			spec: Spec{Service: "cart", Namespace: "shop", LocalPort: 16883, RemotePort: 8883},
			want: []string{"port-forward", "--namespace", "shop", "service/cart", "16883:8883"},
		},
		{
			name: "pod target keeps its prefix",
			spec: Spec{Service: "pod/cart-0", LocalPort: 16883, RemotePort: 8883},
			want: []string{"port-forward", "pod/cart-0", "16883:8883"},
		},
		{
			name: "explicit service prefix is not doubled",
			spec: Spec{Service: "service/cart", LocalPort: 16883, RemotePort: 8883},
			want: []string{"port-forward", "service/cart", "16883:8883"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArgs(tt.spec))
		})
	}
}

func TestOpen_ReadyOncePortAccepts(t *testing.T) {
	port := listenLocal(t)
	withTunnelCmd(t, func(ctx context.Context, _ *kubectl.Runner, _ []string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "60")
	})

	runner := kubectl.NewRunner("test-kubeconfig.yaml")
	tn, err := Open(context.Background(), runner, Spec{Service: "cart", LocalPort: port, RemotePort: 8883})
	require.NoError(t, err)

	assert.Equal(t, "localhost:"+strconv.Itoa(port), tn.Addr())
	assert.NoError(t, tn.Close(), "termination by our own signal is a clean stop")
}

func TestOpen_FailsWhenChildExitsEarly(t *testing.T) {
	port := listenLocal(t)
	withTunnelCmd(t, func(ctx context.Context, _ *kubectl.Runner, _ []string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	})

	runner := kubectl.NewRunner("test-kubeconfig.yaml")
	_, err := Open(context.Background(), runner, Spec{Service: "cart", LocalPort: port, RemotePort: 8883})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited")
}

func TestOpen_TimesOutWhenPortNeverOpens(t *testing.T) {
	withSettleTimeout(t, 400*time.Millisecond)

	var spawned *exec.Cmd
	withTunnelCmd(t, func(ctx context.Context, _ *kubectl.Runner, _ []string) *exec.Cmd {
		spawned = exec.CommandContext(ctx, "sleep", "60")
		return spawned
	})

	// Grab a free port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	runner := kubectl.NewRunner("test-kubeconfig.yaml")
	_, err = Open(context.Background(), runner, Spec{Service: "cart", LocalPort: port, RemotePort: 8883})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")

	require.NotNil(t, spawned)
	assert.NotNil(t, spawned.ProcessState, "failed open must reap the child")
}

func TestClose_Idempotent(t *testing.T) {
	port := listenLocal(t)
	withTunnelCmd(t, func(ctx context.Context, _ *kubectl.Runner, _ []string) *exec.Cmd {
		return exec.CommandContext(ctx, "sleep", "60")
	})

	runner := kubectl.NewRunner("test-kubeconfig.yaml")
	tn, err := Open(context.Background(), runner, Spec{Service: "cart", LocalPort: port, RemotePort: 8883})
	require.NoError(t, err)

	assert.NoError(t, tn.Close())
	assert.NoError(t, tn.Close())
}

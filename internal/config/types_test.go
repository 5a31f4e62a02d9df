package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "kind-kubeconfig.yaml", cfg.Kubeconfig)
	require.Len(t, cfg.Services, 8)

	byName := map[string]ServiceTarget{}
	for _, svc := range cfg.Services {
		byName[svc.Name] = svc
	}
	assert.Equal(t, 8080, byName["frontend"].Port)
	assert.Equal(t, ProtocolHTTP, byName["frontend"].Protocol)
	assert.Equal(t, "/", byName["frontend"].Path)
	assert.Equal(t, 8883, byName["cart"].Port)
	assert.Equal(t, ProtocolGRPC, byName["cart"].Protocol)
	assert.Equal(t, 8881, byName["product"].Port)
	assert.Equal(t, 8882, byName["user"].Port)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ServiceTarget
		wantPath string
		wantProt Protocol
	}{
		{
			name:     "http without path gets root",
			in:       ServiceTarget{Name: "web", Port: 80, Protocol: ProtocolHTTP},
			wantPath: "/",
			wantProt: ProtocolHTTP,
		},
		{
			name:     "grpc target drops stray path",
			in:       ServiceTarget{Name: "rpc", Port: 9000, Protocol: ProtocolGRPC, Path: "/healthz"},
			wantPath: "",
			wantProt: ProtocolGRPC,
		},
		{
			name:     "missing protocol defaults to tcp",
			in:       ServiceTarget{Name: "raw", Port: 5432},
			wantPath: "",
			wantProt: ProtocolTCP,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Kubeconfig: "kc.yaml", Services: []ServiceTarget{tt.in}}
			cfg.Normalize()
			assert.Equal(t, tt.wantPath, cfg.Services[0].Path)
			assert.Equal(t, tt.wantProt, cfg.Services[0].Protocol)
		})
	}
}

func TestNormalize_IntervalFloor(t *testing.T) {
	cfg := Config{Kubeconfig: "kc.yaml"}
	cfg.Normalize()
	assert.Equal(t, 60*time.Second, cfg.Monitor.Interval)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "empty kubeconfig",
			cfg:     Config{},
			wantErr: "kubeconfig",
		},
		{
			name: "nameless service",
			cfg: Config{
				Kubeconfig: "kc.yaml",
				Services:   []ServiceTarget{{Port: 80, Protocol: ProtocolHTTP}},
			},
			wantErr: "name must not be empty",
		},
		{
			name: "port out of range",
			cfg: Config{
				Kubeconfig: "kc.yaml",
				Services:   []ServiceTarget{{Name: "x", Port: 0, Protocol: ProtocolTCP}},
			},
			wantErr: "out of range",
		},
		{
			name: "unknown protocol",
			cfg: Config{
				Kubeconfig: "kc.yaml",
				Services:   []ServiceTarget{{Name: "x", Port: 80, Protocol: "udp"}},
			},
			wantErr: "unknown protocol",
		},
		{
			name: "valid",
			cfg: Config{
				Kubeconfig: "kc.yaml",
				Services:   []ServiceTarget{{Name: "x", Port: 80, Protocol: ProtocolTCP}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

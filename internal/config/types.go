package config

import (
	"fmt"
	"time"
)

// Protocol selects how a service target is probed. HTTP targets get a GET
// request through the tunnel; gRPC and plain TCP targets get a raw port dial.
type Protocol string

const (
	ProtocolHTTP Protocol = "http"
	ProtocolGRPC Protocol = "grpc"
	ProtocolTCP  Protocol = "tcp"
)

// IsHTTP reports whether the target is probed with an HTTP request.
func (p Protocol) IsHTTP() bool {
	return p == ProtocolHTTP
}

// ServiceTarget describes one service to tunnel to and probe. Targets are
// built once at startup and passed into the engine by value.
type ServiceTarget struct {
	Name     string   `yaml:"name"`
	Port     int      `yaml:"port"`
	Protocol Protocol `yaml:"protocol"`
	Path     string   `yaml:"path,omitempty"`
}

// MonitorSettings holds the continuous mode options.
type MonitorSettings struct {
	Interval time.Duration `yaml:"interval,omitempty"`
}

// Config is the top-level configuration for kubemon.
type Config struct {
	Kubeconfig string          `yaml:"kubeconfig"`
	Namespace  string          `yaml:"namespace,omitempty"`
	Monitor    MonitorSettings `yaml:"monitor"`
	Services   []ServiceTarget `yaml:"services"`
}

// Normalize fills derivable fields and strips ones that do not apply.
// HTTP targets without a path get "/"; non-HTTP targets never carry a path.
func (c *Config) Normalize() {
	if c.Monitor.Interval <= 0 {
		c.Monitor.Interval = 60 * time.Second
	}
	for i := range c.Services {
		t := &c.Services[i]
		if t.Protocol == "" {
			t.Protocol = ProtocolTCP
		}
		if t.Protocol.IsHTTP() {
			if t.Path == "" {
				t.Path = "/"
			}
		} else {
			t.Path = ""
		}
	}
}

// Validate checks the config for values the engine cannot work with.
func (c Config) Validate() error {
	if c.Kubeconfig == "" {
		return fmt.Errorf("kubeconfig path must not be empty")
	}
	for i, t := range c.Services {
		if t.Name == "" {
			return fmt.Errorf("service %d: name must not be empty", i)
		}
		if t.Port < 1 || t.Port > 65535 {
			return fmt.Errorf("service %q: port %d out of range", t.Name, t.Port)
		}
		switch t.Protocol {
		case ProtocolHTTP, ProtocolGRPC, ProtocolTCP:
		default:
			return fmt.Errorf("service %q: unknown protocol %q", t.Name, t.Protocol)
		}
	}
	return nil
}

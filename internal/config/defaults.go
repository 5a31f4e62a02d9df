package config

import "time"

// DefaultConfig returns the built-in configuration: the gomall demo services
// on a local kind cluster. The frontend is probed over HTTP; every other
// service speaks gRPC and is probed with a plain TCP dial.
func DefaultConfig() Config {
	return Config{
		Kubeconfig: "kind-kubeconfig.yaml",
		Namespace:  "default",
		Monitor: MonitorSettings{
			Interval: 60 * time.Second,
		},
		Services: []ServiceTarget{
			{Name: "frontend", Port: 8080, Protocol: ProtocolHTTP, Path: "/"},
			{Name: "cart", Port: 8883, Protocol: ProtocolGRPC},
			{Name: "checkout", Port: 8884, Protocol: ProtocolGRPC},
			{Name: "email", Port: 8885, Protocol: ProtocolGRPC},
			{Name: "order", Port: 8885, Protocol: ProtocolGRPC},
			{Name: "payment", Port: 8886, Protocol: ProtocolGRPC},
			{Name: "product", Port: 8881, Protocol: ProtocolGRPC},
			{Name: "user", Port: 8882, Protocol: ProtocolGRPC},
		},
	}
}

package kube

import "strings"

// ServiceKind is the coarse display classification of a cluster service.
type ServiceKind string

const (
	ServiceKindHTTP       ServiceKind = "HTTP"
	ServiceKindMiddleware ServiceKind = "Middleware"
	ServiceKindGRPC       ServiceKind = "gRPC"
)

// ServiceInfo is one row of `kubectl get services --no-headers`.
type ServiceInfo struct {
	Name       string      `json:"name" yaml:"name"`
	Type       string      `json:"type" yaml:"type"`
	ClusterIP  string      `json:"clusterIP" yaml:"clusterIP"`
	ExternalIP string      `json:"externalIP" yaml:"externalIP"`
	Ports      string      `json:"ports" yaml:"ports"`
	Kind       ServiceKind `json:"kind" yaml:"kind"`
}

// ParseServiceTable parses headerless kubectl service output positionally.
// The builtin kubernetes API service is filtered out; rows with fewer than
// four columns are dropped.
func ParseServiceTable(output string) []ServiceInfo {
	var services []ServiceInfo
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || strings.Contains(line, "kubernetes") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 4 {
			continue
		}
		svc := ServiceInfo{
			Name:       parts[0],
			Type:       parts[1],
			ClusterIP:  parts[2],
			ExternalIP: parts[3],
			Kind:       classifyService(parts[0]),
		}
		if len(parts) > 4 {
			svc.Ports = parts[4]
		}
		services = append(services, svc)
	}
	return services
}

// classifyService maps a service name onto its display kind. The frontend is
// the only HTTP entrypoint; gomall-prefixed services are shared middleware
// (Redis, MySQL and friends); everything else is an application gRPC service.
func classifyService(name string) ServiceKind {
	switch {
	case name == "frontend":
		return ServiceKindHTTP
	case strings.HasPrefix(name, "gomall-"):
		return ServiceKindMiddleware
	default:
		return ServiceKindGRPC
	}
}

// Package kube turns kubectl table output into typed records and applies the
// cluster health rules to them.
package kube

import (
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"

	"kubemon/pkg/logging"
)

const subsystem = "Kube"

// PodStatus is one row of `kubectl get pods -o wide --no-headers`.
type PodStatus struct {
	Name      string `json:"name" yaml:"name"`
	Ready     string `json:"ready" yaml:"ready"`
	Phase     string `json:"phase" yaml:"phase"`
	Restarts  int    `json:"restarts" yaml:"restarts"`
	Age       string `json:"age" yaml:"age"`
	Namespace string `json:"namespace" yaml:"namespace"`
}

// ParsePodTable parses headerless kubectl pod output positionally. The
// output itself carries no namespace column, so every row is stamped with
// the namespace the listing was scoped to (empty means "default").
// Rows with fewer than five columns are dropped without comment; rows whose
// restart column is not a number are dropped with a warning. One bad row
// never discards the rest of the listing.
func ParsePodTable(output, namespace string) []PodStatus {
	if namespace == "" {
		namespace = "default"
	}
	var pods []PodStatus
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 5 {
			continue
		}
		restarts, err := strconv.Atoi(parts[3])
		if err != nil {
			logging.Warn(subsystem, "Dropping pod row with non-numeric restart count %q: %s", parts[3], parts[0])
			continue
		}
		pods = append(pods, PodStatus{
			Name:      parts[0],
			Ready:     parts[1],
			Phase:     parts[2],
			Restarts:  restarts,
			Age:       parts[4],
			Namespace: namespace,
		})
	}
	return pods
}

// Healthy reports whether the pod is running with every container ready.
func (p PodStatus) Healthy() bool {
	if p.Phase != string(corev1.PodRunning) {
		return false
	}
	ready, total, ok := strings.Cut(p.Ready, "/")
	if !ok {
		return false
	}
	readyN, err := strconv.Atoi(ready)
	if err != nil {
		return false
	}
	totalN, err := strconv.Atoi(total)
	if err != nil {
		return false
	}
	return readyN == totalN
}

// Severity grades a pod's restart count.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityWarning
	SeverityCritical
)

// criticalRestarts is the count above which restarts stop being routine
// crash-loop noise and point at a persistent fault.
const criticalRestarts = 5

// RestartSeverity classifies the restart count: zero is benign, up to five
// is a warning, above five is critical.
func (p PodStatus) RestartSeverity() Severity {
	switch {
	case p.Restarts > criticalRestarts:
		return SeverityCritical
	case p.Restarts > 0:
		return SeverityWarning
	default:
		return SeverityNone
	}
}

// FleetHealthy reports whether every pod in the list is healthy.
// An empty list is unhealthy: no visible pods means nothing verified.
func FleetHealthy(pods []PodStatus) bool {
	if len(pods) == 0 {
		return false
	}
	for _, p := range pods {
		if !p.Healthy() {
			return false
		}
	}
	return true
}

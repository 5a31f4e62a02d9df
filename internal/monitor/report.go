package monitor

import (
	"time"

	"kubemon/internal/kube"
	"kubemon/internal/probe"
)

// ConnectivityRecord is the report form of one probe result.
type ConnectivityRecord struct {
	Service  string  `json:"service" yaml:"service"`
	Port     int     `json:"port" yaml:"port"`
	Protocol string  `json:"protocol" yaml:"protocol"`
	Success  bool    `json:"success" yaml:"success"`
	Message  string  `json:"message" yaml:"message"`
	Seconds  float64 `json:"seconds" yaml:"seconds"`
}

// Report is the outcome of one monitoring round. It serializes to JSON and
// YAML for scripting and feeds the table renderer for humans.
type Report struct {
	Timestamp  time.Time          `json:"timestamp" yaml:"timestamp"`
	Kubeconfig string             `json:"kubeconfig" yaml:"kubeconfig"`
	Services   []kube.ServiceInfo `json:"services,omitempty" yaml:"services,omitempty"`

	Pods        []kube.PodStatus `json:"pods,omitempty" yaml:"pods,omitempty"`
	PodsChecked bool             `json:"podsChecked" yaml:"podsChecked"`
	PodsHealthy bool             `json:"podsHealthy" yaml:"podsHealthy"`

	Connectivity       []ConnectivityRecord `json:"connectivity,omitempty" yaml:"connectivity,omitempty"`
	ConnectivityTested bool                 `json:"connectivityTested" yaml:"connectivityTested"`
	ConnectivityPassed bool                 `json:"connectivityPassed" yaml:"connectivityPassed"`

	Healthy bool   `json:"healthy" yaml:"healthy"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func toConnectivityRecords(results []probe.Result) []ConnectivityRecord {
	records := make([]ConnectivityRecord, 0, len(results))
	for _, r := range results {
		records = append(records, ConnectivityRecord{
			Service:  r.Target.Name,
			Port:     r.Target.Port,
			Protocol: string(r.Target.Protocol),
			Success:  r.Success,
			Message:  r.Message,
			Seconds:  r.Elapsed.Seconds(),
		})
	}
	return records
}

// allPassed mirrors FleetHealthy's fail-closed stance: probing nothing
// verifies nothing, so an empty result set is a failure, not a pass.
func allPassed(records []ConnectivityRecord) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if !r.Success {
			return false
		}
	}
	return true
}

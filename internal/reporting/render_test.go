package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kubemon/internal/kube"
	"kubemon/internal/monitor"
)

func TestPodSection_HealthyFleet(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.PodSection([]kube.PodStatus{
		{Name: "frontend-abc", Ready: "1/1", Phase: "Running", Restarts: 0, Age: "2d"},
		{Name: "cart-def", Ready: "1/1", Phase: "Running", Restarts: 0, Age: "2d"},
	}, true)

	out := buf.String()
	assert.Contains(t, out, "Checking Pod Status...")
	assert.Contains(t, out, "frontend-abc")
	assert.Contains(t, out, "No restarts")
	assert.Contains(t, out, "All 2 pods are healthy and running!")
}

func TestPodSection_RestartIndicators(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.PodSection([]kube.PodStatus{
		{Name: "wobbly", Ready: "1/1", Phase: "Running", Restarts: 3, Age: "1d"},
		{Name: "doomed", Ready: "0/1", Phase: "CrashLoopBackOff", Restarts: 7, Age: "1d"},
	}, false)

	out := buf.String()
	assert.Contains(t, out, "3 restarts")
	assert.Contains(t, out, IconWarning)
	assert.Contains(t, out, "7 restarts")
	assert.Contains(t, out, IconAlarm)
	assert.Contains(t, out, "Some pods are not healthy")
}

func TestPodSection_Empty(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.PodSection(nil, false)

	assert.Contains(t, buf.String(), "No pods found")
}

func TestServiceSection(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.ServiceSection([]kube.ServiceInfo{
		{Name: "frontend", Type: "ClusterIP", ClusterIP: "10.96.1.2", ExternalIP: "<none>", Ports: "8080/TCP", Kind: kube.ServiceKindHTTP},
		{Name: "gomall-redis", Type: "ClusterIP", ClusterIP: "10.96.3.4", ExternalIP: "<none>", Ports: "6379/TCP", Kind: kube.ServiceKindMiddleware},
	})

	out := buf.String()
	assert.Contains(t, out, "Service Information...")
	assert.Contains(t, out, "frontend")
	assert.Contains(t, out, IconGlobe)
	assert.Contains(t, out, "Middleware")
	assert.Contains(t, out, IconDatabase)
}

func TestConnectivitySection(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.ConnectivitySection([]monitor.ConnectivityRecord{
		{Service: "frontend", Port: 8080, Protocol: "http", Success: true, Message: "HTTP 200", Seconds: 0.12},
		{Service: "cart", Port: 8883, Protocol: "grpc", Success: false, Message: "Port closed", Seconds: 1.5},
	}, false)

	out := buf.String()
	assert.Contains(t, out, "HTTP 200")
	assert.Contains(t, out, "0.12s")
	assert.Contains(t, out, "Port closed")
	assert.Contains(t, out, "1.50s")
	assert.Contains(t, out, "Some connectivity tests failed")
}

func TestFullReport_SkipsConnectivityWhenUnhealthy(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.FullReport(monitor.Report{
		Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		PodsChecked: true,
		Pods: []kube.PodStatus{
			{Name: "payment-xyz", Ready: "0/1", Phase: "CrashLoopBackOff", Restarts: 9, Age: "3h"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Skipping connectivity tests due to unhealthy pods")
	assert.Contains(t, out, "Pod health issues detected")
	assert.NotContains(t, out, "Running Service Connectivity Tests")
}

func TestFullReport_CredentialsFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.FullReport(monitor.Report{
		Timestamp: time.Now(),
		Error:     "kubeconfig file not found: kind-kubeconfig.yaml",
	})

	out := buf.String()
	assert.Contains(t, out, "kubeconfig file not found")
	assert.NotContains(t, out, "Checking Pod Status")
	assert.NotContains(t, out, "Summary:")
}

func TestSummary_AllHealthy(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Summary(monitor.Report{
		Healthy:            true,
		PodsChecked:        true,
		PodsHealthy:        true,
		ConnectivityTested: true,
		ConnectivityPassed: true,
	})

	out := buf.String()
	assert.Contains(t, out, "All checks passed!")
	assert.Contains(t, out, "All pods are running")
	assert.Contains(t, out, "All services are accessible")
}

func TestContinuousNotices(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.RoundHeader(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	r.WaitingNotice(60 * time.Second)
	r.StoppedNotice()

	out := buf.String()
	assert.Contains(t, out, "2025-06-01 12:00:00")
	assert.Contains(t, out, "Waiting 1m0s for next check...")
	assert.Contains(t, out, "Monitoring stopped by user")
}

// Package monitor orchestrates the individual checks into monitoring rounds:
// service inventory, pod health, then connectivity probing, with the probes
// skipped outright whenever the pod fleet is unhealthy.
package monitor

import (
	"context"
	"time"

	"kubemon/internal/config"
	"kubemon/internal/kube"
	"kubemon/internal/kubectl"
	"kubemon/internal/probe"
	"kubemon/pkg/logging"
)

const subsystem = "Monitor"

// CommandRunner executes one kubectl invocation.
type CommandRunner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ConnectivityProber tests the configured service targets in order.
type ConnectivityProber interface {
	ProbeAll(ctx context.Context, targets []config.ServiceTarget) []probe.Result
}

// For mocking in tests
var validateKubeconfigFn = kube.ValidateKubeconfig

// Monitor runs health checks against one cluster.
type Monitor struct {
	cfg    config.Config
	runner CommandRunner
	prober ConnectivityProber
}

// New builds a Monitor wired to the real kubectl binary.
func New(cfg config.Config) *Monitor {
	runner := kubectl.NewRunner(cfg.Kubeconfig)
	return &Monitor{
		cfg:    cfg,
		runner: runner,
		prober: probe.NewProber(runner, cfg.Namespace),
	}
}

// Config returns the configuration the monitor was built with.
func (m *Monitor) Config() config.Config {
	return m.cfg
}

// Services lists the cluster services, minus the builtin API service.
func (m *Monitor) Services(ctx context.Context) ([]kube.ServiceInfo, error) {
	out, err := m.runner.Run(ctx, m.withNamespace("get", "services", "--no-headers")...)
	if err != nil {
		return nil, err
	}
	return kube.ParseServiceTable(out), nil
}

// Pods lists the pods in the monitored namespace.
func (m *Monitor) Pods(ctx context.Context) ([]kube.PodStatus, error) {
	out, err := m.runner.Run(ctx, m.withNamespace("get", "pods", "-o", "wide", "--no-headers")...)
	if err != nil {
		return nil, err
	}
	return kube.ParsePodTable(out, m.cfg.Namespace), nil
}

// CheckPods reports pod records and fleet health. A failed listing leaves
// the fleet unhealthy with the failure recorded in the report.
func (m *Monitor) CheckPods(ctx context.Context) Report {
	report := Report{
		Timestamp:   time.Now(),
		Kubeconfig:  m.cfg.Kubeconfig,
		PodsChecked: true,
	}
	pods, err := m.Pods(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to get pod status")
		report.Error = err.Error()
		return report
	}
	report.Pods = pods
	report.PodsHealthy = kube.FleetHealthy(pods)
	report.Healthy = report.PodsHealthy
	return report
}

// CheckConnectivity probes every configured service, without consulting pod
// health first.
func (m *Monitor) CheckConnectivity(ctx context.Context) Report {
	return m.CheckConnectivityTargets(ctx, m.cfg.Services)
}

// CheckConnectivityTargets probes only the given targets, in order.
func (m *Monitor) CheckConnectivityTargets(ctx context.Context, targets []config.ServiceTarget) Report {
	report := Report{
		Timestamp:          time.Now(),
		Kubeconfig:         m.cfg.Kubeconfig,
		ConnectivityTested: true,
	}
	report.Connectivity = toConnectivityRecords(m.prober.ProbeAll(ctx, targets))
	report.ConnectivityPassed = allPassed(report.Connectivity)
	report.Healthy = report.ConnectivityPassed
	return report
}

// CheckServices reports the service inventory only.
func (m *Monitor) CheckServices(ctx context.Context) Report {
	report := Report{
		Timestamp:  time.Now(),
		Kubeconfig: m.cfg.Kubeconfig,
	}
	services, err := m.Services(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to get service info")
		report.Error = err.Error()
		return report
	}
	report.Services = services
	report.Healthy = true
	return report
}

// FullCheck runs the complete round: credentials precondition, service
// inventory, pod health, then connectivity. Probing a cluster whose pods are
// already broken would only report noise, so an unhealthy fleet skips the
// connectivity stage entirely.
func (m *Monitor) FullCheck(ctx context.Context) Report {
	report := Report{
		Timestamp:  time.Now(),
		Kubeconfig: m.cfg.Kubeconfig,
	}

	if err := validateKubeconfigFn(m.cfg.Kubeconfig); err != nil {
		logging.Error(subsystem, err, "Credentials precondition failed")
		report.Error = err.Error()
		return report
	}

	services, err := m.Services(ctx)
	if err != nil {
		// Inventory is informational; a failed listing does not abort the round.
		logging.Warn(subsystem, "Failed to get service info: %v", err)
	} else {
		report.Services = services
	}

	report.PodsChecked = true
	pods, err := m.Pods(ctx)
	if err != nil {
		logging.Error(subsystem, err, "Failed to get pod status")
		report.Error = err.Error()
		return report
	}
	report.Pods = pods
	report.PodsHealthy = kube.FleetHealthy(pods)

	if !report.PodsHealthy {
		logging.Warn(subsystem, "Pod fleet unhealthy, skipping connectivity tests")
		return report
	}

	report.ConnectivityTested = true
	report.Connectivity = toConnectivityRecords(m.prober.ProbeAll(ctx, m.cfg.Services))
	report.ConnectivityPassed = allPassed(report.Connectivity)
	report.Healthy = report.PodsHealthy && report.ConnectivityPassed
	return report
}

// Loop runs FullCheck forever, waiting interval between rounds, until the
// context is cancelled. Cancellation also cuts an in-flight round short;
// tunnels release through their deferred close either way.
func (m *Monitor) Loop(ctx context.Context, interval time.Duration, each func(Report)) {
	for {
		report := m.FullCheck(ctx)
		if each != nil {
			each(report)
		}
		select {
		case <-ctx.Done():
			logging.Info(subsystem, "Continuous monitoring stopped")
			return
		case <-time.After(interval):
		}
	}
}

func (m *Monitor) withNamespace(args ...string) []string {
	if m.cfg.Namespace != "" && m.cfg.Namespace != "default" {
		return append(args, "-n", m.cfg.Namespace)
	}
	return args
}

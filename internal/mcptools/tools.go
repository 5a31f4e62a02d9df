// Package mcptools exposes the cluster health checks as MCP tools so that
// agents can drive kubemon over the Model Context Protocol.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"kubemon/internal/config"
	"kubemon/internal/monitor"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// HealthChecker is the monitoring surface the tools call into.
type HealthChecker interface {
	Config() config.Config
	FullCheck(ctx context.Context) monitor.Report
	CheckPods(ctx context.Context) monitor.Report
	CheckServices(ctx context.Context) monitor.Report
	CheckConnectivityTargets(ctx context.Context, targets []config.ServiceTarget) monitor.Report
}

// Tools provides MCP tools backed by a cluster monitor.
type Tools struct {
	monitor HealthChecker
}

// New creates the tool set for the given monitor.
func New(m HealthChecker) *Tools {
	return &Tools{monitor: m}
}

// ServerTools returns all tools with their handlers attached.
func (t *Tools) ServerTools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("cluster_health",
				mcp.WithDescription("Run the full health check: credentials, service inventory, pod health, and service connectivity"),
			),
			Handler: t.HandleClusterHealth,
		},
		{
			Tool: mcp.NewTool("pods_list",
				mcp.WithDescription("List pods in the monitored namespace with phase, readiness, and restart counts"),
			),
			Handler: t.HandlePodsList,
		},
		{
			Tool: mcp.NewTool("services_list",
				mcp.WithDescription("List cluster services with type, cluster IP, and exposed ports"),
			),
			Handler: t.HandleServicesList,
		},
		{
			Tool: mcp.NewTool("connectivity_test",
				mcp.WithDescription("Probe configured services through kubectl port-forward tunnels"),
				mcp.WithString("service",
					mcp.Description("Probe only the named service instead of all configured ones"),
				),
			),
			Handler: t.HandleConnectivityTest,
		},
	}
}

// HandleClusterHealth handles the cluster_health tool call
func (t *Tools) HandleClusterHealth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return reportResult(t.monitor.FullCheck(ctx)), nil
}

// HandlePodsList handles the pods_list tool call
func (t *Tools) HandlePodsList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return reportResult(t.monitor.CheckPods(ctx)), nil
}

// HandleServicesList handles the services_list tool call
func (t *Tools) HandleServicesList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return reportResult(t.monitor.CheckServices(ctx)), nil
}

// HandleConnectivityTest handles the connectivity_test tool call
func (t *Tools) HandleConnectivityTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := ""
	if req.Params.Arguments != nil {
		if args, ok := req.Params.Arguments.(map[string]interface{}); ok {
			name, _ = args["service"].(string)
		}
	}

	targets := t.monitor.Config().Services
	if name != "" {
		targets = filterTargets(targets, name)
		if len(targets) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("No configured service named '%s'", name)), nil
		}
	}

	return reportResult(t.monitor.CheckConnectivityTargets(ctx, targets)), nil
}

func filterTargets(targets []config.ServiceTarget, name string) []config.ServiceTarget {
	var matched []config.ServiceTarget
	for _, target := range targets {
		if target.Name == name {
			matched = append(matched, target)
		}
	}
	return matched
}

func reportResult(report monitor.Report) *mcp.CallToolResult {
	resultJSON, _ := json.MarshalIndent(report, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(resultJSON)),
		},
	}
}

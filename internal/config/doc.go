// Package config provides configuration management for kubemon.
//
// This package implements a layered configuration system. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones:
//
//  1. Default Configuration (embedded in binary)
//     - The gomall demo services on a local kind cluster
//     - Ensures kubemon works out-of-the-box
//
//  2. User Configuration (~/.config/kubemon/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.kubemon/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share configuration via version control
//
// # Configuration Structure
//
// The configuration file uses YAML format:
//
//	kubeconfig: "kind-kubeconfig.yaml"
//	namespace: "default"
//	monitor:
//	  interval: 60s
//	services:
//	  - name: "frontend"
//	    port: 8080
//	    protocol: "http"
//	    path: "/"
//	  - name: "cart"
//	    port: 8883
//	    protocol: "grpc"
//
// A services list in an overlay replaces the whole list rather than merging
// by name: the list order is the probe order, and a partial merge would
// silently reorder it.
//
// The loaded Config is immutable by convention: it is built once at startup,
// normalized and validated, then passed into the engine by value.
package config

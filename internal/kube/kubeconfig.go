package kube

import (
	"fmt"
	"os"

	"k8s.io/client-go/tools/clientcmd"
)

// ValidateKubeconfig checks that the credentials file exists and loads as a
// kubeconfig with at least one cluster. Every cluster command depends on this
// file, so a full check refuses to start without it.
func ValidateKubeconfig(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("kubeconfig file not found: %s", path)
		}
		return fmt.Errorf("kubeconfig file not readable: %w", err)
	}
	cfg, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("kubeconfig file %s is not valid: %w", path, err)
	}
	if len(cfg.Clusters) == 0 {
		return fmt.Errorf("kubeconfig file %s defines no clusters", path)
	}
	return nil
}

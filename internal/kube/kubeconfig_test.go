package kube

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: kind-kind
contexts:
- context:
    cluster: kind-kind
    user: kind-kind
  name: kind-kind
current-context: kind-kind
users:
- name: kind-kind
  user: {}
`

func writeKubeconfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kubeconfig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestValidateKubeconfig_Valid(t *testing.T) {
	path := writeKubeconfig(t, validKubeconfig)
	assert.NoError(t, ValidateKubeconfig(path))
}

func TestValidateKubeconfig_NotFound(t *testing.T) {
	err := ValidateKubeconfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateKubeconfig_Unparsable(t *testing.T) {
	path := writeKubeconfig(t, "clusters: [unclosed")
	err := ValidateKubeconfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid")
}

func TestValidateKubeconfig_NoClusters(t *testing.T) {
	path := writeKubeconfig(t, "apiVersion: v1\nkind: Config\n")
	err := ValidateKubeconfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clusters")
}

package kube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceTableFixture = `kubernetes     ClusterIP   10.96.0.1      <none>   443/TCP    3d
frontend       ClusterIP   10.96.12.34    <none>   8080/TCP   2d1h
cart           ClusterIP   10.96.56.78    <none>   8883/TCP   2d1h
gomall-redis   ClusterIP   10.96.90.12    <none>   6379/TCP   2d1h`

func TestParseServiceTable(t *testing.T) {
	services := ParseServiceTable(serviceTableFixture)
	require.Len(t, services, 3, "builtin kubernetes service must be filtered out")

	assert.Equal(t, ServiceInfo{
		Name:       "frontend",
		Type:       "ClusterIP",
		ClusterIP:  "10.96.12.34",
		ExternalIP: "<none>",
		Ports:      "8080/TCP",
		Kind:       ServiceKindHTTP,
	}, services[0])
	assert.Equal(t, ServiceKindGRPC, services[1].Kind)
	assert.Equal(t, ServiceKindMiddleware, services[2].Kind)
}

func TestParseServiceTable_DropsShortRows(t *testing.T) {
	services := ParseServiceTable("cart ClusterIP 10.96.1.2 <none> 8883/TCP\nbroken row\n")
	require.Len(t, services, 1)
	assert.Equal(t, "cart", services[0].Name)
}

func TestParseServiceTable_MissingPortsColumn(t *testing.T) {
	services := ParseServiceTable("cart ClusterIP 10.96.1.2 <none>")
	require.Len(t, services, 1)
	assert.Empty(t, services[0].Ports)
}

func TestParseServiceTable_EmptyInput(t *testing.T) {
	assert.Empty(t, ParseServiceTable(""))
}

func TestClassifyService(t *testing.T) {
	assert.Equal(t, ServiceKindHTTP, classifyService("frontend"))
	assert.Equal(t, ServiceKindMiddleware, classifyService("gomall-mysql"))
	assert.Equal(t, ServiceKindMiddleware, classifyService("gomall-redis"))
	assert.Equal(t, ServiceKindGRPC, classifyService("checkout"))
}

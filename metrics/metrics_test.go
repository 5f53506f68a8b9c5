package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	assert.Equal(t, "address_registry", Namespace("github.com/groundfi/address-registry"))
	assert.Equal(t, "addressd", Namespace("addressd"))
}

func TestMetricsServer(t *testing.T) {
	m, err := New("github.com/groundfi/address-registry", "127.0.0.1:0")
	require.NoError(t, err)

	m.ObserveLookup("GroundWeb", ResultFound)
	m.ObserveLookup("GroundWeb", ResultFound)
	m.ObserveLookup("Ground_Test", ResultUnknownName)
	m.ObserveDNSQuery("NXDOMAIN")
	m.ObserveBookLoad("GroundWeb", "builtin")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.lookups.WithLabelValues("GroundWeb", ResultFound)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.lookups.WithLabelValues("Ground_Test", ResultUnknownName)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dnsQueries.WithLabelValues("NXDOMAIN")))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "address_registry_lookups_total"))
	assert.True(t, strings.Contains(w.Body.String(), "address_registry_book_loads_total"))
}

func TestMetricsServer_NilReceiver(t *testing.T) {
	var m *MetricsServer
	assert.NotPanics(t, func() {
		m.ObserveLookup("GroundWeb", ResultFound)
		m.ObserveDNSQuery("NOERROR")
		m.ObserveBookLoad("GroundWeb", "builtin")
	})
}

package httpserver

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groundfi/address-registry/api"
	"github.com/groundfi/address-registry/registry"
)

func newTestServer(t *testing.T) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg, err := registry.DefaultRegistry()
	require.NoError(t, err)

	srv, err := New(&api.HTTPServerConfig{
		ListenAddr:               "127.0.0.1:0",
		Log:                      logger,
		DrainDuration:            time.Millisecond,
		GracefulShutdownDuration: time.Second,
	}, reg, nil)
	require.NoError(t, err)
	return srv
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_Lookup(t *testing.T) {
	router := newTestServer(t).getRouter()

	w := doGet(t, router, "/api/v1/addresses/GroundWeb/StableCoin")
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AddressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "03b3f6ed782696c5fc9e7a426461e081562e5ab9fd1a817ae2f401", string(resp.Address))

	w = doGet(t, router, "/api/v1/addresses/GroundWeb/DoesNotExist")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_DrainUndrain(t *testing.T) {
	router := newTestServer(t).getRouter()

	assert.Equal(t, http.StatusOK, doGet(t, router, "/livez").Code)
	assert.Equal(t, http.StatusOK, doGet(t, router, "/readyz").Code)

	w := doGet(t, router, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, w.Body.String())
	w = doGet(t, router, "/drain")
	assert.JSONEq(t, `{"status":"already draining"}`, w.Body.String())

	w = doGet(t, router, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, http.StatusOK, doGet(t, router, "/livez").Code)

	w = doGet(t, router, "/undrain")
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	w = doGet(t, router, "/undrain")
	assert.JSONEq(t, `{"status":"already ready"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, doGet(t, router, "/readyz").Code)
}

func TestServer_DNSRequiresZone(t *testing.T) {
	reg, err := registry.DefaultRegistry()
	require.NoError(t, err)

	_, err = New(&api.HTTPServerConfig{
		ListenAddr: "127.0.0.1:0",
		DNSAddr:    "127.0.0.1:0",
		Log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, reg, nil)
	assert.Error(t, err)
}

func TestServer_PprofDisabled(t *testing.T) {
	router := newTestServer(t).getRouter()
	assert.Equal(t, http.StatusNotFound, doGet(t, router, "/debug/pprof/").Code)
}

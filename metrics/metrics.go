// Package metrics exposes Prometheus counters for address lookups and serves
// them on a dedicated listener.
package metrics

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Lookup results used as the "result" label.
const (
	ResultFound              = "found"
	ResultUnknownName        = "unknown_name"
	ResultUnknownEnvironment = "unknown_environment"
)

type MetricsServer struct {
	registry *prometheus.Registry
	srv      *http.Server

	lookups    *prometheus.CounterVec
	dnsQueries *prometheus.CounterVec
	bookLoads  *prometheus.CounterVec
}

// New creates the collectors under a namespace derived from pkg and prepares
// a server for listenAddr. Nothing listens until ListenAndServe is called.
func New(pkg, listenAddr string) (*MetricsServer, error) {
	namespace := Namespace(pkg)
	reg := prometheus.NewRegistry()

	m := &MetricsServer{
		registry: reg,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Address lookups served over HTTP, by environment and result.",
		}, []string{"environment", "result"}),
		dnsQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dns_queries_total",
			Help:      "DNS queries answered, by response code.",
		}, []string{"rcode"}),
		bookLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "book_loads_total",
			Help:      "Address books loaded, by environment and origin.",
		}, []string{"environment", "origin"}),
	}

	for _, c := range []prometheus.Collector{
		m.lookups,
		m.dnsQueries,
		m.bookLoads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	m.srv = &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return m, nil
}

// Namespace turns a module path into a Prometheus namespace,
// e.g. "github.com/groundfi/address-registry" becomes "address_registry".
func Namespace(pkg string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(path.Base(pkg))
}

func (m *MetricsServer) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsServer) Handler() http.Handler {
	return m.srv.Handler
}

// ObserveLookup counts one lookup. Safe on a nil receiver.
func (m *MetricsServer) ObserveLookup(environment, result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(environment, result).Inc()
}

// ObserveDNSQuery counts one DNS answer. Safe on a nil receiver.
func (m *MetricsServer) ObserveDNSQuery(rcode string) {
	if m == nil {
		return
	}
	m.dnsQueries.WithLabelValues(rcode).Inc()
}

// ObserveBookLoad counts one loaded book. Safe on a nil receiver.
func (m *MetricsServer) ObserveBookLoad(environment, origin string) {
	if m == nil {
		return
	}
	m.bookLoads.WithLabelValues(environment, origin).Inc()
}

func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}

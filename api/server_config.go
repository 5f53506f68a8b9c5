package api

import (
	"log/slog"
	"time"
)

// HTTPServerConfig configures the address registry server.
type HTTPServerConfig struct {
	// ListenAddr is the address the lookup API listens on.
	ListenAddr string

	// MetricsAddr is the address of the Prometheus endpoint.
	// The metrics listener is not started when empty.
	MetricsAddr string

	// DNSAddr is the UDP address of the TXT responder.
	// No DNS listener is started when empty.
	DNSAddr string

	// DNSZone is the zone TXT records are published under, e.g. "addresses.ground.".
	DNSZone string

	EnablePprof bool

	Log *slog.Logger

	// DrainDuration is how long /drain keeps the server reporting not ready
	// before the drain is logged as complete.
	DrainDuration time.Duration

	// GracefulShutdownDuration bounds the wait for in-flight requests on shutdown.
	GracefulShutdownDuration time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

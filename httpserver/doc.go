/*
Package httpserver runs the address registry service.

A Server combines the lookup API from api/addresshandler with the
operational endpoints every deployment carries:

  - GET /livez - liveness probe
  - GET /readyz - readiness probe, 503 while draining
  - GET /drain - mark the server not ready ahead of a shutdown
  - GET /undrain - mark the server ready again
  - /debug/* - pprof, when enabled

Prometheus metrics are served on a separate listener (MetricsAddr), and a
DNS TXT responder from package dnsserver is started alongside the HTTP API
when DNSAddr is set.

	srv, err := httpserver.New(cfg, reg, nil)
	if err != nil {
		return err
	}
	srv.RunInBackground()
	defer srv.Shutdown()
*/
package httpserver

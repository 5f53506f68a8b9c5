package dnsserver

import (
	"context"
	"log/slog"

	"github.com/miekg/dns"

	"github.com/groundfi/address-registry/metrics"
)

// Server runs a Responder on a UDP listener.
type Server struct {
	responder *Responder
	metrics   *metrics.MetricsServer
	log       *slog.Logger
	srv       *dns.Server
}

// NewServer creates a DNS server for responder listening on addr.
// m may be nil.
func NewServer(responder *Responder, addr string, m *metrics.MetricsServer, log *slog.Logger) *Server {
	s := &Server{
		responder: responder,
		metrics:   m,
		log:       log,
	}
	s.srv = &dns.Server{
		Addr:    addr,
		Net:     "udp",
		Handler: s,
	}
	return s
}

// ServeDNS implements dns.Handler.
func (s *Server) ServeDNS(w dns.ResponseWriter, req *dns.Msg) {
	resp := s.responder.Answer(req)
	s.metrics.ObserveDNSQuery(dns.RcodeToString[resp.Rcode])

	if len(req.Question) > 0 {
		s.log.Debug("DNS query",
			slog.String("name", req.Question[0].Name),
			slog.String("type", dns.TypeToString[req.Question[0].Qtype]),
			slog.String("rcode", dns.RcodeToString[resp.Rcode]))
	}

	if err := w.WriteMsg(resp); err != nil {
		s.log.Error("Failed to write DNS response", "err", err)
	}
}

// ListenAndServe blocks serving queries until Shutdown.
func (s *Server) ListenAndServe() error {
	s.log.Info("Starting DNS server",
		slog.String("listenAddress", s.srv.Addr),
		slog.String("zone", s.responder.Zone()))
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.ShutdownContext(ctx)
}

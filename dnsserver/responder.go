package dnsserver

import (
	"strings"

	"github.com/miekg/dns"

	"github.com/groundfi/address-registry/interfaces"
)

// DefaultTTL is the TTL of published TXT records, in seconds.
const DefaultTTL = 300

// Responder answers TXT queries for <name>.<environment>.<zone> from an
// AddressDirectory. Labels are matched case-insensitively.
type Responder struct {
	dir  interfaces.AddressDirectory
	zone string
	ttl  uint32
}

// NewResponder creates a responder authoritative for zone.
func NewResponder(dir interfaces.AddressDirectory, zone string) *Responder {
	return &Responder{
		dir:  dir,
		zone: strings.ToLower(dns.Fqdn(zone)),
		ttl:  DefaultTTL,
	}
}

// Zone returns the fully qualified zone the responder serves.
func (r *Responder) Zone() string {
	return r.zone
}

// QueryName returns the owner name a record is published under.
func QueryName(zone string, env interfaces.Environment, name interfaces.Name) string {
	return strings.ToLower(string(name) + "." + string(env) + "." + dns.Fqdn(zone))
}

// Answer builds the reply to req. Only the first question is answered.
//
// Names outside the zone are refused. Unknown environments and names
// answer NXDOMAIN. Known names queried for a type other than TXT answer
// NOERROR with no records.
func (r *Responder) Answer(req *dns.Msg) *dns.Msg {
	m := new(dns.Msg)
	m.SetReply(req)
	m.Authoritative = true

	if len(req.Question) == 0 {
		m.SetRcode(req, dns.RcodeFormatError)
		return m
	}
	q := req.Question[0]

	qname := strings.ToLower(dns.Fqdn(q.Name))
	if !dns.IsSubDomain(r.zone, qname) {
		m.Authoritative = false
		m.SetRcode(req, dns.RcodeRefused)
		return m
	}

	labels := dns.SplitDomainName(qname)
	rel := labels[:len(labels)-dns.CountLabel(r.zone)]

	switch len(rel) {
	case 0:
		return m
	case 1:
		if _, err := r.book(rel[0]); err != nil {
			m.SetRcode(req, dns.RcodeNameError)
		}
		return m
	case 2:
	default:
		m.SetRcode(req, dns.RcodeNameError)
		return m
	}

	book, err := r.book(rel[1])
	if err != nil {
		m.SetRcode(req, dns.RcodeNameError)
		return m
	}

	record, ok := findRecord(book, rel[0])
	if !ok {
		m.SetRcode(req, dns.RcodeNameError)
		return m
	}

	if q.Qtype == dns.TypeTXT || q.Qtype == dns.TypeANY {
		m.Answer = append(m.Answer, &dns.TXT{
			Hdr: dns.RR_Header{
				Name:   q.Name,
				Rrtype: dns.TypeTXT,
				Class:  dns.ClassINET,
				Ttl:    r.ttl,
			},
			Txt: []string{string(record.Address)},
		})
	}

	return m
}

func (r *Responder) book(label string) (interfaces.AddressBook, error) {
	env, err := interfaces.NewEnvironment(label)
	if err != nil {
		return nil, err
	}
	return r.dir.Book(env)
}

func findRecord(book interfaces.AddressBook, label string) (interfaces.Record, bool) {
	for _, record := range book.Records() {
		if strings.EqualFold(string(record.Name), label) {
			return record, true
		}
	}
	return interfaces.Record{}, false
}

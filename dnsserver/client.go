package dnsserver

import (
	"fmt"

	"github.com/miekg/dns"

	"github.com/groundfi/address-registry/interfaces"
)

// Resolve looks up name in env by querying the TXT record published under
// zone at the DNS server serverAddr (host:port).
func Resolve(serverAddr, zone string, env interfaces.Environment, name interfaces.Name) (interfaces.Address, error) {
	if err := env.Validate(); err != nil {
		return "", err
	}

	m1 := new(dns.Msg)
	m1.Id = dns.Id()
	m1.SetQuestion(QueryName(zone, env, name), dns.TypeTXT)

	c := new(dns.Client)
	in, _, err := c.Exchange(m1, serverAddr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	switch in.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return "", fmt.Errorf("%w: %s", interfaces.ErrUnknownName, name)
	default:
		return "", fmt.Errorf("dns query for %s failed: %s", m1.Question[0].Name, dns.RcodeToString[in.Rcode])
	}

	for _, answer := range in.Answer {
		if txt, ok := answer.(*dns.TXT); ok && len(txt.Txt) > 0 {
			return interfaces.NewAddress(txt.Txt[0])
		}
	}

	return "", fmt.Errorf("%w: %s", interfaces.ErrUnknownName, name)
}

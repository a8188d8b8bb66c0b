package resolver

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"github.com/miekg/dns"

	"github.com/hostfission/dnset/pkg/log"
	"github.com/hostfission/dnset/pkg/types"
)

// Family selects the DNS record type for an address lookup
type Family string

const (
	FamilyIPv4 Family = "A"
	FamilyIPv6 Family = "AAAA"
)

// Families lists both address families in query order
var Families = []Family{FamilyIPv4, FamilyIPv6}

// Lookup performs a single-family address lookup for one domain.
// Implementations return the address literals from the answer section;
// an empty slice means no records. Errors are treated the same as an
// empty answer by the resolver.
type Lookup interface {
	LookupAddrs(ctx context.Context, domain string, family Family) ([]string, error)
}

const (
	// DefaultResolvConf is where nameservers are read from when none
	// are configured explicitly
	DefaultResolvConf = "/etc/resolv.conf"

	// DefaultTimeout bounds a single DNS exchange
	DefaultTimeout = 5 * time.Second
)

// DNSLookup is the production Lookup backed by miekg/dns. Each call
// issues one query per (domain, family) against the configured
// nameservers in order, returning the first usable answer.
type DNSLookup struct {
	client  *dns.Client
	servers []string
}

// NewDNSLookup creates a DNS lookup using the given nameservers
// (host:port). With no servers it falls back to /etc/resolv.conf.
func NewDNSLookup(servers []string, timeout time.Duration) (*DNSLookup, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if len(servers) == 0 {
		conf, err := dns.ClientConfigFromFile(DefaultResolvConf)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", DefaultResolvConf, err)
		}
		for _, s := range conf.Servers {
			servers = append(servers, s+":"+conf.Port)
		}
	}
	if len(servers) == 0 {
		return nil, fmt.Errorf("no nameservers available")
	}

	return &DNSLookup{
		client:  &dns.Client{Timeout: timeout},
		servers: servers,
	}, nil
}

// LookupAddrs queries one record type for one domain
func (l *DNSLookup) LookupAddrs(ctx context.Context, domain string, family Family) ([]string, error) {
	if domain == "" {
		return nil, nil
	}

	qtype := dns.TypeA
	if family == FamilyIPv6 {
		qtype = dns.TypeAAAA
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), qtype)
	msg.RecursionDesired = true

	var lastErr error
	for _, server := range l.servers {
		resp, _, err := l.client.ExchangeContext(ctx, msg, server)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("query for %s %s returned %s", domain, family, dns.RcodeToString[resp.Rcode])
			continue
		}

		var addrs []string
		for _, rr := range resp.Answer {
			switch record := rr.(type) {
			case *dns.A:
				addrs = append(addrs, record.A.String())
			case *dns.AAAA:
				addrs = append(addrs, record.AAAA.String())
			}
		}
		return addrs, nil
	}

	return nil, fmt.Errorf("all nameservers failed for %s %s: %w", domain, family, lastErr)
}

// Resolver turns a domain directive into a deduplicated, provenance
// tagged address list
type Resolver struct {
	lookup Lookup
}

// New creates a resolver on top of the given lookup
func New(lookup Lookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// Resolve resolves every domain in directive order across both address
// families. Addresses are collected in first-seen order; an address
// already seen under an earlier domain keeps its original attribution
// and is not repeated. A failed or empty lookup contributes nothing for
// that domain and never aborts the remaining domains.
func (r *Resolver) Resolve(ctx context.Context, domains []string) types.Resolution {
	logger := log.WithComponent("resolver")

	res := types.Resolution{
		Provenance: make(map[string]string),
	}

	for _, domain := range domains {
		found := 0
		for _, family := range Families {
			addrs, err := r.lookup.LookupAddrs(ctx, domain, family)
			if err != nil {
				logger.Debug().
					Str("domain", domain).
					Str("family", string(family)).
					Err(err).
					Msg("lookup failed")
				continue
			}

			for _, addr := range addrs {
				parsed, err := netip.ParseAddr(addr)
				if err != nil {
					logger.Debug().
						Str("domain", domain).
						Str("addr", addr).
						Msg("discarding unparseable address")
					continue
				}
				found++

				canonical := parsed.String()
				if _, seen := res.Provenance[canonical]; seen {
					// first domain in directive order wins
					continue
				}
				res.Provenance[canonical] = domain
				res.Addrs = append(res.Addrs, canonical)
			}
		}

		if found == 0 {
			res.Empty = append(res.Empty, domain)
		}
	}

	return res
}

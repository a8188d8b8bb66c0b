/*
Package resolver turns a domain directive into a deduplicated,
provenance-tagged address list.

Resolution is a pure function of (domain list, Lookup): no state
survives between calls and nothing is cached, so every pass reflects
the answers DNS gives right now.

For each domain, both an A and an AAAA query are issued independently;
the answers are validated as address literals and folded into a single
ordered list. Two invariants hold on the result:

  - each address appears exactly once, in first-seen order
  - each address is attributed to the first domain in directive order
    that resolved to it (first-domain-wins)

A domain that fails to resolve, or resolves to nothing in both
families, contributes zero addresses and is reported in
Resolution.Empty; it never aborts the remaining domains.

The production Lookup queries the nameservers from /etc/resolv.conf
(or a configured override) with miekg/dns. Tests substitute a fake.
*/
package resolver

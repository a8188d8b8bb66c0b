// Package directive extracts the domain list that marks an ipset as
// managed by dnset from the set's free-text comment.
package directive

import "strings"

const (
	// Marker is the comment prefix that puts an ipset under dnset
	// management. Everything after it is an underscore-separated
	// domain list.
	Marker = "auto_dns_"

	// Separator splits the domain list. A structural consequence is
	// that managed domains cannot themselves contain underscores;
	// this matches the established comment encoding and is kept for
	// compatibility with sets tagged by older tooling.
	Separator = "_"
)

// Directive is the decoded instruction extracted from an ipset comment
type Directive struct {
	Domains []string
}

// Parse extracts a domain directive from an ipset comment. The marker
// match is case-sensitive and anchored at the start of the string.
// Returns false when the comment carries no directive at all, which
// means the ipset is not managed by dnset. A comment that is exactly
// the marker yields a present directive with zero domains.
//
// Tokens are trimmed of surrounding whitespace but otherwise passed
// through untouched; domain syntax is not validated here. An empty
// token simply resolves to nothing downstream.
func Parse(comment string) (Directive, bool) {
	rest, ok := strings.CutPrefix(comment, Marker)
	if !ok {
		return Directive{}, false
	}

	if rest == "" {
		return Directive{}, true
	}

	tokens := strings.Split(rest, Separator)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}

	return Directive{Domains: tokens}, true
}

package types

import "fmt"

// ScopeKind identifies the level at which an IP set is defined
type ScopeKind string

const (
	ScopeCluster   ScopeKind = "cluster"
	ScopeNode      ScopeKind = "node"
	ScopeVM        ScopeKind = "vm"
	ScopeContainer ScopeKind = "container"
)

// ScopeRef locates one firewall scope in the Proxmox API tree.
// Node is empty for the cluster scope; VMID is zero unless the
// scope is a VM or container.
type ScopeRef struct {
	Kind ScopeKind
	Node string
	VMID int
}

// IPSetRoot returns the API path of the ipset collection for this scope
func (s ScopeRef) IPSetRoot() string {
	switch s.Kind {
	case ScopeNode:
		return fmt.Sprintf("/nodes/%s/firewall/ipset", s.Node)
	case ScopeVM:
		return fmt.Sprintf("/nodes/%s/qemu/%d/firewall/ipset", s.Node, s.VMID)
	case ScopeContainer:
		return fmt.Sprintf("/nodes/%s/lxc/%d/firewall/ipset", s.Node, s.VMID)
	default:
		return "/cluster/firewall/ipset"
	}
}

// SetPath returns the API path of a named ipset within this scope
func (s ScopeRef) SetPath(name string) string {
	return s.IPSetRoot() + "/" + name
}

// String renders the scope for log output, e.g. "vm/pve1/101"
func (s ScopeRef) String() string {
	switch s.Kind {
	case ScopeNode:
		return fmt.Sprintf("node/%s", s.Node)
	case ScopeVM, ScopeContainer:
		return fmt.Sprintf("%s/%s/%d", s.Kind, s.Node, s.VMID)
	default:
		return string(ScopeCluster)
	}
}

// IPSet is a named firewall address set as reported by the API.
// The set itself is created and deleted by the operator; dnset only
// rewrites its member list.
type IPSet struct {
	Name    string
	Comment string
}

// Member is a single address inside an ipset. CIDR holds the address
// literal as the API reports it (a bare address or address/prefix);
// Comment records the domain that produced it.
type Member struct {
	CIDR    string
	Comment string
}

// Resolution is the outcome of resolving one domain directive.
// Addrs preserves first-seen order across domains and contains no
// duplicates. Provenance maps each address to the first domain in
// directive order that resolved to it. Empty lists the domains that
// produced no addresses in either family.
type Resolution struct {
	Addrs      []string
	Provenance map[string]string
	Empty      []string
}

// Result summarizes the reconciliation of a single ipset
type Result struct {
	Scope    ScopeRef
	Set      string
	Skipped  bool // no directive in the set comment
	Resolved int  // addresses resolved from the directive
	Deleted  int  // members removed during the clear phase
	Created  int  // members added during the populate phase
	Failures int  // member operations that returned an error
}

// RunReport aggregates one full pass across every scope
type RunReport struct {
	Sets     int
	Skipped  int
	Applied  int
	Failures int
}

// Add folds one set result into the report
func (r *RunReport) Add(res Result) {
	r.Sets++
	if res.Skipped {
		r.Skipped++
		return
	}
	if res.Created > 0 {
		r.Applied++
	}
	r.Failures += res.Failures
}

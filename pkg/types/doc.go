/*
Package types defines the shared data model for dnset.

The types package holds the structures passed between the walker, resolver,
and reconciler: firewall scopes, IP sets and their members, DNS resolution
results, and per-run reporting. It has no dependencies on the rest of the
codebase so every other package can import it freely.

# Data Model

	ScopeRef ──locates──▶ IPSet ──contains──▶ Member
	                        │
	                        ▼ (comment carries the directive)
	                   Resolution ──drives──▶ Result / RunReport

ScopeRef identifies one of the four firewall levels Proxmox exposes:

  - cluster:   /cluster/firewall/ipset
  - node:      /nodes/<node>/firewall/ipset
  - vm:        /nodes/<node>/qemu/<vmid>/firewall/ipset
  - container: /nodes/<node>/lxc/<vmid>/firewall/ipset

IPSet and Member mirror what the API reports; dnset never creates or
deletes sets, only rewrites their member lists.

Resolution is rebuilt from scratch on every run. Its invariants:

  - Addrs contains each address exactly once, in first-seen order
  - Provenance maps every address in Addrs to the first domain in
    directive order whose answers contained it

# Usage

	ref := types.ScopeRef{Kind: types.ScopeVM, Node: "pve1", VMID: 101}
	path := ref.SetPath("blocklist") // /nodes/pve1/qemu/101/firewall/ipset/blocklist

# Integration Points

This package is imported by:

  - pkg/directive: parses IPSet.Comment into a domain list
  - pkg/resolver: produces Resolution
  - pkg/walker: yields (ScopeRef, IPSet) pairs
  - pkg/reconciler: consumes all of the above, emits Result and RunReport
*/
package types

/*
Package walker enumerates firewall ipsets across every Proxmox scope.

The walk order is fixed: the cluster collection first, then for each
node its own firewall sets, the sets of its VMs (qemu), and the sets
of its containers (lxc). Each discovered set is handed to a VisitFunc
strictly sequentially.

Enumeration is best-effort at every level. A node that does not expose
a sub-resource, a scope whose listing fails, or a response in an
unexpected shape contributes nothing and is logged; sibling scopes are
always still walked.
*/
package walker

package walker

import (
	"context"
	"fmt"

	"github.com/hostfission/dnset/pkg/log"
	"github.com/hostfission/dnset/pkg/pve"
	"github.com/hostfission/dnset/pkg/types"
)

// Getter is the read-only slice of the API gateway the walker needs
type Getter interface {
	Get(ctx context.Context, path string) (pve.Value, error)
}

// VisitFunc receives one discovered ipset. The walker calls it
// strictly sequentially.
type VisitFunc func(ref types.ScopeRef, set types.IPSet)

// Walker enumerates every firewall ipset across the cluster, node,
// VM, and container scopes. Enumeration failures at any level are
// logged and skipped; they never abort sibling scopes.
type Walker struct {
	api Getter

	// NodeFilter, when non-empty, restricts the walk to the ipsets
	// of a single node and its guests. The cluster scope is skipped
	// because cluster sets do not belong to any node.
	NodeFilter string
}

// New creates a walker over the given gateway
func New(api Getter) *Walker {
	return &Walker{api: api}
}

// Walk discovers ipsets in a fixed order (cluster, then per node:
// node, VMs, containers) and hands each one to visit
func (w *Walker) Walk(ctx context.Context, visit VisitFunc) {
	if w.NodeFilter == "" {
		w.walkScope(ctx, types.ScopeRef{Kind: types.ScopeCluster}, visit)
	}

	for _, node := range w.listNodes(ctx) {
		if w.NodeFilter != "" && node != w.NodeFilter {
			continue
		}

		w.walkScope(ctx, types.ScopeRef{Kind: types.ScopeNode, Node: node}, visit)

		for _, vmid := range w.listGuests(ctx, node, "qemu") {
			w.walkScope(ctx, types.ScopeRef{Kind: types.ScopeVM, Node: node, VMID: vmid}, visit)
		}
		for _, vmid := range w.listGuests(ctx, node, "lxc") {
			w.walkScope(ctx, types.ScopeRef{Kind: types.ScopeContainer, Node: node, VMID: vmid}, visit)
		}
	}
}

// listNodes returns the names of every cluster node, or nothing when
// the node index cannot be read
func (w *Walker) listNodes(ctx context.Context) []string {
	logger := log.WithComponent("walker")

	v, err := w.api.Get(ctx, "/nodes")
	if err != nil {
		logger.Warn().Err(err).Msg("failed to list nodes")
		return nil
	}

	var nodes []string
	for _, m := range v.List() {
		if name := m.Str("node"); name != "" {
			nodes = append(nodes, name)
		}
	}
	return nodes
}

// listGuests returns the vmids of every guest of the given kind
// ("qemu" or "lxc") on one node. Nodes that do not expose the
// sub-resource just contribute nothing.
func (w *Walker) listGuests(ctx context.Context, node, kind string) []int {
	logger := log.WithComponent("walker")

	v, err := w.api.Get(ctx, fmt.Sprintf("/nodes/%s/%s", node, kind))
	if err != nil {
		logger.Debug().Str("node", node).Str("kind", kind).Err(err).Msg("guest enumeration failed")
		return nil
	}

	var vmids []int
	for _, m := range v.List() {
		if vmid := m.Int("vmid"); vmid > 0 {
			vmids = append(vmids, vmid)
		}
	}
	return vmids
}

// walkScope reads one scope's ipset collection and visits each set
func (w *Walker) walkScope(ctx context.Context, ref types.ScopeRef, visit VisitFunc) {
	logger := log.WithScope(ref.String())

	v, err := w.api.Get(ctx, ref.IPSetRoot())
	if err != nil {
		logger.Debug().Err(err).Msg("ipset enumeration failed")
		return
	}

	for _, m := range v.List() {
		name := m.Str("name")
		if name == "" {
			continue
		}
		visit(ref, types.IPSet{
			Name:    name,
			Comment: m.Str("comment"),
		})
	}
}

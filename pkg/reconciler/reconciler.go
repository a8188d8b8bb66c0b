package reconciler

import (
	"context"

	"github.com/hostfission/dnset/pkg/directive"
	"github.com/hostfission/dnset/pkg/log"
	"github.com/hostfission/dnset/pkg/metrics"
	"github.com/hostfission/dnset/pkg/pve"
	"github.com/hostfission/dnset/pkg/types"
)

// Gateway is the slice of the API client the reconciler mutates
// through
type Gateway interface {
	Get(ctx context.Context, path string) (pve.Value, error)
	CreateMember(ctx context.Context, setPath, cidr, comment string) error
	DeleteMember(ctx context.Context, setPath, cidr string) error
}

// Resolver resolves a domain directive into addresses
type Resolver interface {
	Resolve(ctx context.Context, domains []string) types.Resolution
}

// Reconciler drives one ipset from its comment directive to its
// resolved member list. It holds no state across calls; every
// reconciliation starts from what the API and DNS report right now.
type Reconciler struct {
	api      Gateway
	resolver Resolver

	// DryRun logs the member operations a run would perform without
	// calling the API
	DryRun bool
}

// New creates a reconciler
func New(api Gateway, resolver Resolver) *Reconciler {
	return &Reconciler{api: api, resolver: resolver}
}

// ReconcileSet runs the full pipeline for one ipset: inspect the
// comment, resolve the directive, then replace the member list with
// the resolved addresses. The two early exits are an absent directive
// (the set is not managed, skip silently) and an empty resolution
// (leave the existing members alone rather than wiping a firewall
// rule on a transient DNS failure).
//
// Member operations are best-effort: each delete and create is
// attempted independently and failures are logged and counted, never
// propagated.
func (r *Reconciler) ReconcileSet(ctx context.Context, ref types.ScopeRef, set types.IPSet) types.Result {
	logger := log.WithIPSet(ref.String(), set.Name)
	result := types.Result{Scope: ref, Set: set.Name}

	metrics.SetsInspected.Inc()

	dir, managed := directive.Parse(set.Comment)
	if !managed {
		result.Skipped = true
		metrics.SetsSkipped.Inc()
		logger.Debug().Msg("no domain directive, skipping")
		return result
	}

	if len(dir.Domains) == 0 {
		logger.Info().Msg("directive present but names no domains")
		return result
	}

	resolution := r.resolver.Resolve(ctx, dir.Domains)
	result.Resolved = len(resolution.Addrs)

	metrics.DomainsResolved.Add(float64(len(dir.Domains) - len(resolution.Empty)))
	metrics.DomainsEmpty.Add(float64(len(resolution.Empty)))

	for _, domain := range resolution.Empty {
		logger.Info().Str("domain", domain).Msg("domain resolved to no addresses")
	}

	if len(resolution.Addrs) == 0 {
		logger.Warn().
			Strs("domains", dir.Domains).
			Msg("no addresses resolved, leaving existing members untouched")
		return result
	}

	setPath := ref.SetPath(set.Name)

	// Clear: delete every current member by address. An empty, null,
	// or malformed member listing means nothing to clear.
	for _, member := range r.currentMembers(ctx, setPath) {
		if r.DryRun {
			logger.Info().Str("cidr", member.CIDR).Msg("dry-run: would delete member")
			result.Deleted++
			continue
		}
		if err := r.api.DeleteMember(ctx, setPath, member.CIDR); err != nil {
			logger.Error().Err(err).Str("cidr", member.CIDR).Msg("failed to delete member")
			result.Failures++
			metrics.MemberOpFailures.Inc()
			continue
		}
		result.Deleted++
		metrics.MembersDeleted.Inc()
	}

	// Populate: one member per resolved address, tagged with the
	// domain that produced it.
	for _, addr := range resolution.Addrs {
		domain := resolution.Provenance[addr]
		if r.DryRun {
			logger.Info().Str("cidr", addr).Str("domain", domain).Msg("dry-run: would create member")
			result.Created++
			continue
		}
		if err := r.api.CreateMember(ctx, setPath, addr, domain); err != nil {
			logger.Error().Err(err).Str("cidr", addr).Msg("failed to create member")
			result.Failures++
			metrics.MemberOpFailures.Inc()
			continue
		}
		result.Created++
		metrics.MembersCreated.Inc()
	}

	if result.Created > 0 {
		metrics.SetsApplied.Inc()
	}

	logger.Info().
		Int("resolved", result.Resolved).
		Int("deleted", result.Deleted).
		Int("created", result.Created).
		Int("failures", result.Failures).
		Msg("ipset reconciled")

	return result
}

// currentMembers reads the set's member list, degrading any read
// problem to "no members"
func (r *Reconciler) currentMembers(ctx context.Context, setPath string) []types.Member {
	v, err := r.api.Get(ctx, setPath)
	if err != nil {
		logger := log.WithComponent("reconciler")
		logger.Debug().Err(err).Str("path", setPath).Msg("member listing unreadable, assuming empty")
		return nil
	}

	var members []types.Member
	for _, m := range v.List() {
		cidr := m.Str("cidr")
		if cidr == "" {
			continue
		}
		members = append(members, types.Member{
			CIDR:    cidr,
			Comment: m.Str("comment"),
		})
	}
	return members
}

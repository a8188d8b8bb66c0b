/*
Package reconciler drives firewall ipset membership to match the
current DNS resolution of the domains named in each set's comment.

The reconciler is the core of dnset. Everything else — the walker, the
gateway, the resolver — exists to feed it one (scope, ipset) pair at a
time.

# Pipeline

Each ipset moves through a strictly linear pipeline with two early
exits:

	┌──────────┐   no directive   ┌──────┐
	│ Inspect  │─────────────────▶│ Skip │
	└────┬─────┘                  └──────┘
	     │ directive
	     ▼
	┌──────────┐   zero addrs     ┌──────────────────┐
	│ Resolve  │─────────────────▶│ Report, no change │
	└────┬─────┘                  └──────────────────┘
	     │ addresses
	     ▼
	┌──────────────────────┐
	│ Fetch current members │  (unreadable ⇒ treated as empty)
	└────┬─────────────────┘
	     ▼
	┌──────────┐  best-effort delete of every current member
	│  Clear   │
	└────┬─────┘
	     ▼
	┌──────────┐  best-effort create per resolved address,
	│ Populate │  member comment = originating domain
	└────┬─────┘
	     ▼
	   Done

# Full replace, not minimal diff

When anything resolved at all, the member list is rebuilt from scratch:
every existing member is deleted and every resolved address created.
This converges to exactly the current DNS state without tracking stale
entries, at the cost of a brief window where the set is smaller than
intended if a run is interrupted. The periodic loop re-converges on
the next pass. Running twice against unchanged DNS answers produces an
identical member list both times.

The one exception: a resolution that produced no addresses at all
leaves the set untouched. Wiping a firewall rule because DNS flaked
for one pass would be far worse than serving slightly stale members.

# Failure isolation

Nothing in this package returns an error. A failed member operation is
logged, counted in Result.Failures, and the pipeline moves on; a
failed member listing is treated as an empty set. Failures never
escalate past the single ipset being reconciled.

# Runner

Runner wraps a full pass (walker × reconciler) behind RunOnce, and a
Start/Stop ticker loop for daemon mode. Each pass carries a generated
run ID in its log context and feeds the run metrics and the health
endpoint's last-run timestamp.
*/
package reconciler

/*
Package metrics exposes Prometheus metrics and a JSON health report
for the dnset daemon.

All metrics are package-level collectors registered at init, following
the usual client_golang pattern: counters for inspected/skipped/applied
ipsets, resolved and empty domains, member operations and their
failures, plus a histogram for full-pass duration.

The health endpoint reports per-component status, process uptime, and
the completion time of the last reconciliation pass. Serve mounts
/metrics, /health, and /live on one listener; it is only started in
daemon mode, `dnset sync` runs without any HTTP surface.
*/
package metrics

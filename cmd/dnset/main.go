package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hostfission/dnset/pkg/config"
	"github.com/hostfission/dnset/pkg/log"
	"github.com/hostfission/dnset/pkg/metrics"
	"github.com/hostfission/dnset/pkg/pve"
	"github.com/hostfission/dnset/pkg/reconciler"
	"github.com/hostfission/dnset/pkg/resolver"
	"github.com/hostfission/dnset/pkg/walker"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var (
	flagConfig   string
	flagLogLevel string
	flagLogJSON  bool
	flagNode     string
	flagDryRun   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dnset",
	Short: "dnset - DNS-driven firewall ipset synchronization for Proxmox VE",
	Long: `dnset keeps Proxmox firewall ipsets in sync with DNS.

Tag an ipset comment with "auto_dns_<domain>[_<domain>...]" and dnset
re-resolves those domains on every pass, replacing the set's members
with the resolved addresses. Each member is tagged with the domain
that produced it.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"dnset version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug enables the full API/DNS trace)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "log as JSON instead of console output")

	syncCmd.Flags().StringVar(&flagNode, "node", "", "restrict the pass to one node and its guests")
	syncCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "log intended member changes without applying them")

	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(daemonCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass over every scope",
	Long: `Run a single pass: enumerate ipsets across the cluster, node, VM,
and container scopes, and rewrite the members of every set carrying a
domain directive.

Per-domain resolution failures and per-member API failures are logged
and do not affect the exit status; only configuration and connection
setup errors exit non-zero.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		runner, err := buildRunner(cfg)
		if err != nil {
			return err
		}

		report := runner.RunOnce(cmd.Context())

		fmt.Printf("Reconciled %d ipsets: %d applied, %d skipped, %d failures\n",
			report.Sets, report.Applied, report.Skipped, report.Failures)
		return nil
	},
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run reconciliation passes on a fixed interval",
	Long: `Run dnset as a long-lived process. The first pass starts
immediately; subsequent passes run every daemon.interval. When
daemon.metrics_addr is set, Prometheus metrics and a JSON health
report are served over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}

		runner, err := buildRunner(cfg)
		if err != nil {
			return err
		}

		metrics.SetVersion(Version)
		metrics.RegisterComponent("pve", true, "")
		metrics.RegisterComponent("resolver", true, "")

		if addr := cfg.Daemon.MetricsAddr; addr != "" {
			go func() {
				if err := metrics.Serve(addr); err != nil {
					log.Errorf("metrics endpoint failed", err)
				}
			}()
			log.Logger.Info().Str("addr", addr).Msg("serving metrics and health")
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		runner.Start(ctx)
		log.Logger.Info().
			Dur("interval", cfg.Daemon.Interval.Std()).
			Msg("daemon started")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		log.Info("shutting down")
		runner.Stop()
		return nil
	},
}

// setup loads configuration, applies flag overrides, and initializes
// logging
func setup() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogJSON {
		cfg.Log.JSON = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.JSON,
	})

	return cfg, nil
}

// buildRunner wires the gateway, resolver, walker, and reconciler
func buildRunner(cfg *config.Config) (*reconciler.Runner, error) {
	client, err := pve.NewClient(pve.Config{
		Endpoint:           cfg.PVE.Endpoint,
		TokenID:            cfg.PVE.TokenID,
		TokenSecret:        cfg.PVE.TokenSecret,
		InsecureSkipVerify: cfg.PVE.InsecureSkipVerify,
		Timeout:            cfg.PVE.Timeout.Std(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	lookup, err := resolver.NewDNSLookup(cfg.DNS.Nameservers, cfg.DNS.Timeout.Std())
	if err != nil {
		return nil, fmt.Errorf("failed to create DNS lookup: %w", err)
	}

	w := walker.New(client)
	w.NodeFilter = flagNode

	rec := reconciler.New(client, resolver.New(lookup))
	rec.DryRun = flagDryRun

	return reconciler.NewRunner(w, rec, cfg.Daemon.Interval.Std()), nil
}

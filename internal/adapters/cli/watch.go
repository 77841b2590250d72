package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Zackmartin238/HyFlipper/internal/application/logging"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
)

// watchFlags holds the flags shared by every watch subcommand
type watchFlags struct {
	interval time.Duration
	rounds   int
}

func (f *watchFlags) bind(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.interval, "interval", time.Minute, "Time between refreshes")
	cmd.Flags().IntVar(&f.rounds, "rounds", 0, "Stop after this many refreshes (0 = until interrupted)")
}

// NewWatchCommand creates the watch command with one subcommand per mode
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a query on an interval",
		Long: `Re-run a query every --interval until interrupted.

The result cache is purged between rounds (unless cache.ttl already expires
entries), so every round sees fresh provider data. When metrics.enabled is set
the Prometheus endpoint stays up for the whole session.

Examples:
  hyflipper watch supply --interval 2m --min-margin 1000000
  hyflipper watch auctions -k hyperion --bin --interval 30s
  hyflipper watch profit --limit 5 --rounds 10`,
	}

	cmd.AddCommand(newWatchAuctionsCommand())
	cmd.AddCommand(newWatchProfitCommand())
	cmd.AddCommand(newWatchSupplyCommand())

	return cmd
}

func newWatchAuctionsCommand() *cobra.Command {
	var (
		flags auctionFlags
		watch watchFlags
	)

	cmd := &cobra.Command{
		Use:   "auctions",
		Short: "Watch an auction search",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), watch, flags.config(), flags.showLore)
		},
	}

	flags.bind(cmd)
	watch.bind(cmd)

	return cmd
}

func newWatchProfitCommand() *cobra.Command {
	var (
		flags profitFlags
		watch watchFlags
	)

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Watch the Kat profit ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), watch, flags.config(), false)
		},
	}

	flags.bind(cmd)
	watch.bind(cmd)

	return cmd
}

func newWatchSupplyCommand() *cobra.Command {
	var (
		flags supplyFlags
		watch watchFlags
	)

	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Watch the low-supply margin ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cmd.OutOrStdout(), watch, flags.config(), false)
		},
	}

	flags.bind(cmd)
	watch.bind(cmd)

	return cmd
}

// runWatch runs qcfg every interval until ctx ends or the round budget is spent.
// An unavailable round is printed and the loop carries on.
func runWatch(ctx context.Context, out io.Writer, flags watchFlags, qcfg query.Config, showLore bool) error {
	if flags.interval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}
	if err := qcfg.Validate(); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.close()

	ticker := time.NewTicker(flags.interval)
	defer ticker.Stop()

	for round := 1; ; round++ {
		if a.cache != nil && a.cfg.Cache.TTL == 0 && round > 1 {
			a.cache.Purge()
		}

		outcome, err := a.run(ctx, qcfg)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\n=== Round %d at %s ===\n", round, outcome.FinishedAt.UTC().Format(time.RFC3339))
		if err := renderOutcome(out, outcome, renderOptions{JSON: jsonOutput, ShowLore: showLore}); err != nil {
			return err
		}

		if flags.rounds > 0 && round >= flags.rounds {
			return nil
		}

		select {
		case <-ctx.Done():
			a.logger.Log(logging.LevelInfo, "Watch stopped", map[string]interface{}{"rounds": round})
			return nil
		case <-ticker.C:
		}
	}
}

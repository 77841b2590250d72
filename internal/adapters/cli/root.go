package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// errQueryUnavailable marks a run that ended UNAVAILABLE; the reason was already printed
var errQueryUnavailable = errors.New("query unavailable")

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hyflipper",
		Short: "HyFlipper - SkyBlock auction house market scanner",
		Long: `HyFlipper aggregates SkyBlock auction house data from Hypixel and Coflnet,
filters and ranks it, and prints flipping candidates.

Each query runs on a background worker; results from the remote feeds are
cached for the lifetime of the process.

Examples:
  hyflipper auctions --keyword hyperion --sort price-ascending
  hyflipper auctions --keyword "aspect of the end" --bin --limit 20
  hyflipper profit --limit 15 --profitable
  hyflipper supply --min-margin 1000000
  hyflipper watch supply --interval 2m
  hyflipper config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/hyflipper)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewAuctionsCommand())
	rootCmd.AddCommand(NewProfitCommand())
	rootCmd.AddCommand(NewSupplyCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command; SIGINT/SIGTERM cancel the running query
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if errors.Is(err, errQueryUnavailable) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

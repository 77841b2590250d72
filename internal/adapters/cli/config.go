package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zackmartin238/HyFlipper/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect HyFlipper configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (HYF_* prefix, e.g. HYF_CACHE_TTL=5m)
2. Config file (config.yaml)
3. Default values

Examples:
  hyflipper config show
  hyflipper --config ./configs/dev.yaml config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the effective configuration after merging file, environment and defaults.

Example:
  hyflipper config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(os.Stderr, "Using default configuration.")
				cfg = config.Default()
			}

			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "HyFlipper Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "\nProviders:")
			fmt.Fprintf(out, "  Auctions URL:     %s\n", cfg.Providers.AuctionsURL)
			fmt.Fprintf(out, "  Items URL:        %s\n", cfg.Providers.ItemsURL)
			fmt.Fprintf(out, "  Kat Profit URL:   %s\n", cfg.Providers.KatProfitURL)
			fmt.Fprintf(out, "  Low Supply URL:   %s\n", cfg.Providers.LowSupplyURL)
			fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Providers.Timeout)
			fmt.Fprintf(out, "  Rate Limit:       %g req/s (burst: %d)\n",
				cfg.Providers.RateLimit.Requests, cfg.Providers.RateLimit.Burst)
			fmt.Fprintf(out, "  Circuit Breaker:  %d failures, %s cooldown\n",
				cfg.Providers.CircuitBreaker.MaxFailures, cfg.Providers.CircuitBreaker.Cooldown)
			fmt.Fprintf(out, "  Max Pages:        %s\n", unlimited(cfg.Providers.MaxPages))

			fmt.Fprintln(out, "\nCache:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Cache.Enabled)
			fmt.Fprintf(out, "  Max Entries:      %d\n", cfg.Cache.MaxEntries)
			if cfg.Cache.TTL > 0 {
				fmt.Fprintf(out, "  TTL:              %s\n", cfg.Cache.TTL)
			} else {
				fmt.Fprintf(out, "  TTL:              session\n")
			}

			fmt.Fprintln(out, "\nQuery:")
			fmt.Fprintf(out, "  Cancel Previous:  %t\n", cfg.Query.CancelSuperseded)
			fmt.Fprintf(out, "  Default Limit:    %s\n", unlimited(cfg.Query.DefaultLimit))
			if cfg.Query.Timeout > 0 {
				fmt.Fprintf(out, "  Timeout:          %s\n", cfg.Query.Timeout)
			} else {
				fmt.Fprintf(out, "  Timeout:          none\n")
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			return nil
		},
	}

	return cmd
}

func unlimited(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}

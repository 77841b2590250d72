package cli

import (
	"github.com/spf13/cobra"
)

// NewProfitCommand creates the Kat upgrade profit ranking command
func NewProfitCommand() *cobra.Command {
	var flags profitFlags

	cmd := &cobra.Command{
		Use:   "profit",
		Short: "Rank Kat pet upgrades by profit",
		Long: `Rank Kat rarity upgrades by expected profit.

Profit = median sale price - (original pet + materials + Kat fee).
Costs are shown abbreviated (k/m/b); ordering always uses exact values.

Examples:
  hyflipper profit
  hyflipper profit --limit 10 --profitable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAndRender(cmd.Context(), cmd.OutOrStdout(), flags.config(), false)
		},
	}

	flags.bind(cmd)

	return cmd
}

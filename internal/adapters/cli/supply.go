package cli

import (
	"github.com/spf13/cobra"
)

// NewSupplyCommand creates the low-supply margin ranking command
func NewSupplyCommand() *cobra.Command {
	var flags supplyFlags

	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Rank low-supply items by real margin",
		Long: `Rank low-supply items by the gap between their median price and the
lowest Buy It Now price.

Margin      = second lowest BIN - lowest BIN
Real Margin = median - lowest BIN (used for ranking)

Examples:
  hyflipper supply
  hyflipper supply --min-margin 500000 --limit 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAndRender(cmd.Context(), cmd.OutOrStdout(), flags.config(), false)
		},
	}

	flags.bind(cmd)

	return cmd
}

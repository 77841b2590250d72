package cli

import (
	"github.com/spf13/cobra"
)

// NewAuctionsCommand creates the auction search command
func NewAuctionsCommand() *cobra.Command {
	var flags auctionFlags

	cmd := &cobra.Command{
		Use:   "auctions",
		Short: "Search active auctions",
		Long: `Fetch every page of the Hypixel auction house, keep listings whose item
name contains the keyword and print them in the chosen order.

--bin selects Buy It Now listings; without it only bid auctions are shown.

Examples:
  hyflipper auctions --keyword hyperion
  hyflipper auctions -k "necron's handle" --bin --sort price-ascending -n 10
  hyflipper auctions -k "dark claymore" --sort soonest-ending --lore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAndRender(cmd.Context(), cmd.OutOrStdout(), flags.config(), flags.showLore)
		},
	}

	flags.bind(cmd)

	return cmd
}

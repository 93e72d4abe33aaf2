package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrader",
	Short: "A paper-trading simulator driven by trading recommendations",
	Long: `Papertrader replays a price feed through a simulated account.

Each tick it checks the open position's stop loss and target, applies the
recommendation (Buy, Sell or Neutral) and records every open and close.

It provides tools for:
  - Running a session from a configuration file
  - Querying the trade journal
  - Performance statistics for recorded sessions`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

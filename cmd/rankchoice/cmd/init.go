package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/rankchoice/cmd/rankchoice/common"
)

var rootCmd = &cobra.Command{
	Use:   os.Args[0],
	Short: "rank-choice poll ledger node and client",
	Long: `Runs a rank-choice poll ledger node, and talks to one:
  node      run a node with its HTTP API
  tx        sign and submit a poll or latest-value transaction
  poll      look up a poll and its ballots
  key       generate a keypair`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(c *cobra.Command, args []string) {
		c.Usage()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		common.PrintError(rootCmd, err)
	}
}

func SetArgs(s []string) {
	rootCmd.SetArgs(s)
}

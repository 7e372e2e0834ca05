package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	profileFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - factor scoring and portfolio construction",
	Long: `folio scores stocks on a multi-factor model and allocates a budget
across the best of them with a mean-variance optimizer.

Usage:
  go run ./cmd/folio [command]

Examples:
  go run ./cmd/folio score AAPL MSFT NVDA --profile high
  go run ./cmd/folio recommend AAPL
  go run ./cmd/folio allocate AAPL MSFT NVDA --amount 10000
  go run ./cmd/folio supplychain "coffee shop"
  go run ./cmd/folio api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "medium", "risk profile (low|medium|high)")
}

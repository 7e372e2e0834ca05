package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/contracts"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score SYMBOL...",
	Short: "Score tickers on the multi-factor model",
	Long: `Scores each ticker on returns, growth, fundamentals, volatility,
beta and sentiment under the selected risk profile, and prints the batch
sorted by score.

Example:
  go run ./cmd/folio score AAPL MSFT NVDA --profile high`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScore,
}

var scoreVerbose bool

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().BoolVar(&scoreVerbose, "breakdown", false, "print per-factor contributions")
}

func runScore(cmd *cobra.Command, args []string) error {
	profile, err := contracts.ParseRiskProfile(profileFlag)
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	symbols := upperAll(args)
	results, err := p.advisor.ScoreTickers(context.Background(), symbols, profile)
	if err != nil {
		return fmt.Errorf("score tickers: %w", err)
	}

	fmt.Printf("Scores (%s profile)\n\n", profile)
	fmt.Printf("%-8s %7s %9s %8s %7s %6s  %s\n",
		"SYMBOL", "SCORE", "ANN.RET", "VOL", "BETA", "FUND", "RISK")
	for _, r := range results {
		fmt.Printf("%-8s %7.3f %8.1f%% %7.1f%% %7.2f %6.2f  %s\n",
			r.Symbol, r.Score,
			r.Returns.Annualized*100,
			r.Volatility.Annualized*100,
			r.Beta.Beta,
			r.Fundamentals.Composite,
			r.Volatility.Assessment)

		if scoreVerbose {
			printContributions(r)
		}
	}

	return nil
}

func printContributions(r contracts.ScoreResult) {
	for _, c := range r.Contributions {
		fmt.Printf("    %-12s %+8.4f  (%5.1f%% of pool)\n",
			c.Factor, c.Contribution, c.Share*100)
	}
	fmt.Println()
}

func upperAll(symbols []string) []string {
	out := make([]string, len(symbols))
	for i, s := range symbols {
		out[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	return out
}

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/contracts"
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend SYMBOL",
	Short: "Map one ticker's score to an action",
	Long: `Scores a single ticker and maps it onto an action label with
profile-dependent thresholds.

Example:
  go run ./cmd/folio recommend AAPL --profile low`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	profile, err := contracts.ParseRiskProfile(profileFlag)
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	symbol := upperAll(args)[0]
	rec, err := p.advisor.Recommend(context.Background(), symbol, profile)
	if err != nil {
		return fmt.Errorf("recommend %s: %w", symbol, err)
	}

	fmt.Printf("%s (%s profile)\n", rec.Symbol, rec.Profile)
	fmt.Printf("  Action:     %s\n", rec.Action)
	fmt.Printf("  Score:      %.3f\n", rec.Score)
	fmt.Printf("  Confidence: %s\n", rec.Confidence)
	if len(rec.RiskNotes) > 0 {
		fmt.Println("  Risk notes:")
		for _, note := range rec.RiskNotes {
			fmt.Printf("    - %s\n", note)
		}
	}

	return nil
}

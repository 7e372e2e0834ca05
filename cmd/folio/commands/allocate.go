package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/contracts"
)

// allocateCmd represents the allocate command
var allocateCmd = &cobra.Command{
	Use:   "allocate SYMBOL...",
	Short: "Allocate a budget across the best-scoring tickers",
	Long: `Scores the tickers, filters by minimum score, and splits the budget
with a mean-variance optimizer under a per-stock weight cap.

Example:
  go run ./cmd/folio allocate AAPL MSFT NVDA --amount 10000 --max-weight 0.3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAllocate,
}

var (
	allocateAmount       float64
	allocateMinScore     float64
	allocateRiskAversion float64
	allocateMaxWeight    float64
)

func init() {
	rootCmd.AddCommand(allocateCmd)

	allocateCmd.Flags().Float64Var(&allocateAmount, "amount", 10000, "investment budget in dollars")
	allocateCmd.Flags().Float64Var(&allocateMinScore, "min-score", 0.60, "minimum score to stay in the candidate set")
	allocateCmd.Flags().Float64Var(&allocateRiskAversion, "risk-aversion", 2.0, "risk aversion coefficient (>= 0)")
	allocateCmd.Flags().Float64Var(&allocateMaxWeight, "max-weight", 0.3, "maximum weight per stock (0, 1]")
}

func runAllocate(cmd *cobra.Command, args []string) error {
	profile, err := contracts.ParseRiskProfile(profileFlag)
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	req := contracts.AllocationRequest{
		InvestmentAmount:  decimal.NewFromFloat(allocateAmount),
		MinScore:          allocateMinScore,
		RiskAversion:      allocateRiskAversion,
		MaxWeightPerStock: allocateMaxWeight,
		Profile:           profile,
	}

	symbols := upperAll(args)
	allocation, err := p.advisor.BuildPortfolio(context.Background(), symbols, req)
	if err != nil {
		return fmt.Errorf("build portfolio: %w", err)
	}

	if allocation.IsEmpty() {
		fmt.Println("No candidates passed the filters; nothing to allocate.")
		return nil
	}

	fmt.Printf("Allocation of $%s (%s profile)\n\n", allocation.Requested.StringFixed(2), profile)
	fmt.Printf("%-8s %10s %8s %12s\n", "SYMBOL", "PRICE", "WEIGHT", "AMOUNT")
	for _, pos := range allocation.Positions {
		fmt.Printf("%-8s %10.2f %7.1f%% %12s\n",
			pos.Symbol, pos.Price, pos.Weight*100, "$"+pos.Amount.StringFixed(2))
	}
	fmt.Printf("\nTotal invested: $%s\n", allocation.TotalInvested.StringFixed(2))

	return nil
}

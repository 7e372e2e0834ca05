package commands

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/contracts"
	"github.com/wonny/folio/internal/store"
	"github.com/wonny/folio/internal/supplychain"
)

// supplychainCmd represents the supplychain command
var supplychainCmd = &cobra.Command{
	Use:   "supplychain PRODUCT",
	Short: "Discover a product's supply chain and optionally invest in it",
	Long: `Asks the text-generation service for the industries behind a product,
maps each industry to a public ticker, and optionally runs the resulting
ticker list through the allocator.

Example:
  go run ./cmd/folio supplychain "coffee shop" --invest --amount 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runSupplyChain,
}

var (
	chainInvest   bool
	chainAmount   float64
	chainMerchant string
)

func init() {
	rootCmd.AddCommand(supplychainCmd)

	supplychainCmd.Flags().BoolVar(&chainInvest, "invest", false, "allocate a budget across the chain's tickers")
	supplychainCmd.Flags().Float64Var(&chainAmount, "amount", 10000, "budget when --invest is set")
	supplychainCmd.Flags().StringVar(&chainMerchant, "merchant", "", "merchant ID to persist the chain under")
}

func runSupplyChain(cmd *cobra.Command, args []string) error {
	profile, err := contracts.ParseRiskProfile(profileFlag)
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	generator, err := supplychain.NewGeminiGenerator(context.Background(), p.cfg, p.log)
	if err != nil {
		return err
	}
	discovery := supplychain.NewDiscovery(generator, p.log)

	product := args[0]
	chain, err := discovery.Discover(context.Background(), product)
	if err != nil {
		return fmt.Errorf("discover supply chain: %w", err)
	}

	fmt.Printf("Supply chain for %q (%s)\n\n", chain.Product, chain.Season)
	for _, industry := range chain.Industries {
		ticker := industry.Ticker
		if ticker == "" {
			ticker = "-"
		}
		fmt.Printf("  %-30s %s\n", industry.Name, ticker)
	}

	if chainMerchant != "" {
		records, err := store.New(p.cfg.Store.Dir, p.log)
		if err != nil {
			return err
		}
		if err := records.SaveChain(chainMerchant, chain); err != nil {
			return fmt.Errorf("persist supply chain: %w", err)
		}
		fmt.Printf("\nChain saved for merchant %s\n", chainMerchant)
	}

	if !chainInvest {
		return nil
	}

	tickers := chain.Tickers()
	if len(tickers) == 0 {
		fmt.Println("\nNo tickers discovered; nothing to allocate.")
		return nil
	}

	req := contracts.AllocationRequest{
		InvestmentAmount:  decimal.NewFromFloat(chainAmount),
		MinScore:          0.60,
		RiskAversion:      2.0,
		MaxWeightPerStock: 0.3,
		Profile:           profile,
	}

	allocation, err := p.advisor.BuildPortfolio(context.Background(), tickers, req)
	if err != nil {
		return fmt.Errorf("build portfolio: %w", err)
	}

	if allocation.IsEmpty() {
		fmt.Println("\nNo chain tickers passed the score filter.")
		return nil
	}

	fmt.Printf("\nAllocation of $%s across the chain\n\n", allocation.Requested.StringFixed(2))
	for _, pos := range allocation.Positions {
		fmt.Printf("  %-8s %7.1f%%  $%s\n", pos.Symbol, pos.Weight*100, pos.Amount.StringFixed(2))
	}
	fmt.Printf("\nTotal invested: $%s\n", allocation.TotalInvested.StringFixed(2))

	return nil
}

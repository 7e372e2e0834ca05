package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/api"
	"github.com/wonny/folio/internal/api/handlers"
	"github.com/wonny/folio/internal/banking"
	"github.com/wonny/folio/internal/scheduler"
	"github.com/wonny/folio/internal/scheduler/jobs"
	"github.com/wonny/folio/internal/store"
	"github.com/wonny/folio/internal/supplychain"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the HTTP API server with the full pipeline wired in.

Endpoints:
  GET  /health                                 - Health check
  POST /api/scores                             - Score a batch of tickers
  GET  /api/recommendations/{symbol}           - Action for one ticker
  POST /api/portfolio                          - Allocate a budget
  POST /api/supplychains                       - Discover a supply chain
  GET  /api/accounts/{id}/opportunities        - Spend-ranked opportunities

Example:
  go run ./cmd/folio api
  go run ./cmd/folio api --port 8090 --watchlist AAPL,MSFT`,
	RunE: runAPIServer,
}

var (
	apiPort      string
	apiWatchlist string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().StringVar(&apiWatchlist, "watchlist", "", "comma-separated symbols warmed on a schedule")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}
	defer p.close()

	cfg, log := p.cfg, p.log
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// Supply-chain discovery degrades to a clear error when no API key is
	// configured; the rest of the API stays usable.
	var generator supplychain.TextGenerator = supplychain.DisabledGenerator{}
	if cfg.Gemini.APIKey != "" {
		g, err := supplychain.NewGeminiGenerator(context.Background(), cfg, log)
		if err != nil {
			return fmt.Errorf("initialize text generator: %w", err)
		}
		generator = g
	} else {
		log.Warn("GOOGLE_API_KEY not set, supply-chain discovery disabled")
	}
	discovery := supplychain.NewDiscovery(generator, log)

	records, err := store.New(cfg.Store.Dir, log)
	if err != nil {
		return err
	}

	bank := banking.New(cfg.Banking.APIKey, cfg.Banking.BaseURL, log)

	advisorHandler := handlers.NewAdvisorHandler(p.advisor, log)
	chainHandler := handlers.NewSupplyChainHandler(discovery, bank, records, log)

	router := api.NewRouter(advisorHandler, chainHandler, log)
	server := api.New(cfg, log, router)

	// Background refresh jobs keep the snapshot cache warm.
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewBenchmarkRefreshJob(p.provider, log)); err != nil {
		return err
	}
	if watchlist := splitWatchlist(apiWatchlist); len(watchlist) > 0 {
		if err := sched.AddJob(jobs.NewWatchlistWarmJob(p.provider, watchlist, log)); err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

func splitWatchlist(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

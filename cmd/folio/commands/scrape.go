package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/folio/internal/scrape"
	"github.com/wonny/folio/pkg/config"
	"github.com/wonny/folio/pkg/logger"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape URL",
	Short: "Fetch a page and print its metadata",
	Long: `Fetches a web page and prints its title, description, headings and
links, the same extraction used to enrich merchant research.

Example:
  go run ./cmd/folio scrape https://example.org`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	meta, err := scrape.New(log).FetchPageMetadata(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Title:       %s\n", meta.Title)
	if meta.Description != "" {
		fmt.Printf("Description: %s\n", meta.Description)
	}
	fmt.Printf("Words:       %d\n", meta.WordCount)

	if len(meta.Headings) > 0 {
		fmt.Println("\nHeadings:")
		for _, h := range meta.Headings {
			fmt.Printf("  %s\n", h)
		}
	}
	if len(meta.Links) > 0 {
		fmt.Println("\nLinks:")
		for _, l := range meta.Links {
			fmt.Printf("  %s\n", l)
		}
	}

	return nil
}

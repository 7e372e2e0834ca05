// Package supplychain discovers the industries behind a product and maps
// each to a public ticker, using a generative text service as the source.
package supplychain

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/folio/pkg/logger"
)

// maxIndustries caps how many industries one discovery keeps; model
// answers beyond that are noise.
const maxIndustries = 10

// Industry is one supply-chain link with its representative ticker.
type Industry struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker,omitempty"`
}

// Chain is the discovered supply chain for one product or merchant.
type Chain struct {
	Product    string     `json:"product"`
	Season     string     `json:"season,omitempty"`
	Industries []Industry `json:"industries"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Tickers returns the distinct tickers across the chain, in order.
func (c Chain) Tickers() []string {
	seen := make(map[string]bool)
	var tickers []string
	for _, ind := range c.Industries {
		if ind.Ticker == "" || seen[ind.Ticker] {
			continue
		}
		seen[ind.Ticker] = true
		tickers = append(tickers, ind.Ticker)
	}
	return tickers
}

// Discovery turns products into supply chains.
type Discovery struct {
	generator TextGenerator
	logger    *logger.Logger
}

// NewDiscovery creates a discovery service.
func NewDiscovery(generator TextGenerator, log *logger.Logger) *Discovery {
	return &Discovery{
		generator: generator,
		logger:    log,
	}
}

// Discover asks for the industries in the product's supply chain, then
// maps each industry to one ticker. Industries the model cannot map stay
// in the chain without a ticker.
func (d *Discovery) Discover(ctx context.Context, product string) (Chain, error) {
	chain := Chain{
		Product:   product,
		Season:    SeasonFromDate(time.Now()),
		CreatedAt: time.Now().UTC(),
	}

	prompt := fmt.Sprintf(
		"List the industries involved in the supply chain of %s. "+
			"Answer with a comma-separated list of industry names only, no explanations.",
		product)

	text, err := d.generator.GenerateText(ctx, prompt)
	if err != nil {
		return Chain{}, fmt.Errorf("industry discovery failed: %w", err)
	}

	industries := parseList(text)
	if len(industries) > maxIndustries {
		industries = industries[:maxIndustries]
	}

	for _, name := range industries {
		industry := Industry{Name: name}
		if ticker, err := d.tickerFor(ctx, name); err != nil {
			d.logger.WithError(err).WithField("industry", name).
				Warn("Ticker lookup failed, keeping industry unmapped")
		} else {
			industry.Ticker = ticker
		}
		chain.Industries = append(chain.Industries, industry)
	}

	d.logger.WithFields(map[string]interface{}{
		"product":    product,
		"industries": len(chain.Industries),
		"tickers":    len(chain.Tickers()),
	}).Info("Discovered supply chain")

	return chain, nil
}

// tickerFor maps one industry to a representative public ticker.
func (d *Discovery) tickerFor(ctx context.Context, industry string) (string, error) {
	prompt := fmt.Sprintf(
		"Name one publicly traded US company that is a leader in the %s industry. "+
			"Answer with the stock ticker symbol only.",
		industry)

	text, err := d.generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}

	ticker := parseTicker(text)
	if ticker == "" {
		return "", fmt.Errorf("no ticker in answer %q", text)
	}
	return ticker, nil
}

package scrape

import (
	"context"
	"fmt"
	"sort"
)

// Adapter is implemented once per auction-house site. Both methods are
// best-effort: extraction misses become empty fields and per-item fetch
// failures become warnings, never errors that abort the pass.
type Adapter interface {
	// ScrapeAuctions pulls the house's listing pages and enriches each
	// auction from its detail page.
	ScrapeAuctions(ctx context.Context) ([]AuctionRecord, []string)
	// ScrapeLots pulls the lot catalog of one auction. Requires
	// auction.ExternalUrl; fails soft with an empty result when missing.
	ScrapeLots(ctx context.Context, auction AuctionRecord) ([]LotRecord, []string)
}

// Constructor builds an adapter instance for one house.
type Constructor func(cfg HouseConfig) Adapter

var registry = map[string]Constructor{}

// Register maps a strategy key to an adapter constructor. Called from
// adapter package init; a duplicate key is a programming error.
func Register(strategy string, c Constructor) {
	if _, exists := registry[strategy]; exists {
		panic(fmt.Sprintf("scrape: adapter already registered for strategy %q", strategy))
	}

	registry[strategy] = c
}

// New resolves the adapter for the house's strategy.
func New(cfg HouseConfig) (Adapter, error) {
	c, ok := registry[cfg.Strategy]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for strategy %q", cfg.Strategy)
	}

	return c(cfg), nil
}

// Strategies lists the registered strategy keys, sorted.
func Strategies() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

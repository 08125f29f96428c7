package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAdapter struct {
	cfg HouseConfig
}

func (a *nopAdapter) ScrapeAuctions(context.Context) ([]AuctionRecord, []string) {
	return nil, nil
}

func (a *nopAdapter) ScrapeLots(context.Context, AuctionRecord) ([]LotRecord, []string) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register("registry_test", func(cfg HouseConfig) Adapter {
		return &nopAdapter{cfg: cfg}
	})

	t.Run("resolves registered strategy", func(t *testing.T) {
		adapter, err := New(HouseConfig{Strategy: "registry_test", Name: "Casa de Prueba"})

		require.NoError(t, err)
		require.IsType(t, &nopAdapter{}, adapter)
		assert.Equal(t, "Casa de Prueba", adapter.(*nopAdapter).cfg.Name)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := New(HouseConfig{Strategy: "telepathy"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "telepathy")
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Register("registry_test", func(cfg HouseConfig) Adapter {
				return &nopAdapter{cfg: cfg}
			})
		})
	})

	t.Run("strategies are sorted", func(t *testing.T) {
		assert.Contains(t, Strategies(), "registry_test")
		assert.IsNonDecreasing(t, Strategies())
	})
}

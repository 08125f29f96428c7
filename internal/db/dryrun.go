package db

import (
	"context"

	"github.com/martillo-arte/subastas-parser/internal/scrape"
)

// DryRunStore reads through to the real store but swallows all writes, so
// a dry run exercises the full scrape path without touching the catalog.
type DryRunStore struct {
	*Store
}

func NewDryRunStore(store *Store) *DryRunStore {
	return &DryRunStore{Store: store}
}

func (s *DryRunStore) CreateAuction(ctx context.Context, houseId int, record scrape.AuctionRecord) (int64, error) {
	return 0, nil
}

func (s *DryRunStore) CreateLot(ctx context.Context, auctionId int64, artistId int64, record scrape.LotRecord) (int64, error) {
	return 0, nil
}

func (s *DryRunStore) FindOrCreateArtist(ctx context.Context, name string) (int64, error) {
	id, err := s.Store.findArtist(ctx, name)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *DryRunStore) UpdateHouseLastScraped(ctx context.Context, houseId int) error {
	return nil
}

func (s *DryRunStore) WriteScrapeLog(ctx context.Context, entry *ScrapeLogModel) error {
	return nil
}

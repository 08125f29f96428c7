package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/martillo-arte/subastas-parser/internal/db"
	"github.com/martillo-arte/subastas-parser/internal/extract"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/scrape"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	maxJobAttempts = 3

	TaskTypeFull          = "full"
	TaskTypeSingleAuction = "single_auction"

	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job-level retry delay, grows linearly with the attempt number.
// Distinct from the HTTP-level retry inside internal/fetch.
var jobRetryBaseDelay = 60 * time.Second

// Store is the persistence interface consumed by scrape jobs; db.Store is
// the production implementation. Find/Create pairs are keyed on natural
// keys so replays and concurrent runs stay idempotent.
type Store interface {
	GetHouse(ctx context.Context, houseId int) (*db.HouseModel, error)
	FindAuction(ctx context.Context, houseId int, externalId string) (int64, error)
	CreateAuction(ctx context.Context, houseId int, record scrape.AuctionRecord) (int64, error)
	FindLot(ctx context.Context, auctionId int64, lotNumber string) (int64, error)
	CreateLot(ctx context.Context, auctionId int64, artistId int64, record scrape.LotRecord) (int64, error)
	FindOrCreateArtist(ctx context.Context, name string) (int64, error)
	UpdateHouseLastScraped(ctx context.Context, houseId int) error
	WriteScrapeLog(ctx context.Context, entry *db.ScrapeLogModel) error
}

// JobResult is the summary every scrape job produces. Operators inspect
// Errors rather than rely on propagated failures: a run is best-effort.
type JobResult struct {
	HouseId         int
	Status          string
	AuctionsFound   int
	AuctionsScraped int
	LotsScraped     int
	Errors          []string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// NewHouseConfig assembles the adapter input from the house row and
// global settings.
func NewHouseConfig(house *db.HouseModel, config *util.Config) scrape.HouseConfig {
	return scrape.HouseConfig{
		Id:        house.Id,
		Name:      house.Name,
		Strategy:  house.Strategy,
		BaseUrl:   house.BaseUrl,
		Currency:  house.Currency,
		UserAgent: config.ScrapeUserAgent.Value,
		Delay:     config.ScrapeDelayDuration(),
		Timeout:   config.ScrapeTimeoutDuration(),
	}
}

// RunHouseScrape pulls one house end-to-end: auctions, then lots of every
// first-seen auction. Per-item failures land in the error list; a fatal
// failure retries the whole job from scratch, there is no partial resume.
func RunHouseScrape(ctx context.Context, store Store, config *util.Config, houseId int) *JobResult {
	logger := log.GetLogger().WithField("HouseId", houseId)

	result := &JobResult{
		HouseId:   houseId,
		Status:    StatusStarted,
		StartedAt: time.Now().UTC(),
	}

	var lastErr error
	for attempt := 1; attempt <= maxJobAttempts; attempt++ {
		result.AuctionsFound = 0
		result.AuctionsScraped = 0
		result.LotsScraped = 0
		result.Errors = nil

		err := runHouseOnce(ctx, store, config, houseId, result, logger)
		if err == nil {
			result.Status = StatusCompleted
			result.FinishedAt = time.Now().UTC()
			logger.WithFields(logrus.Fields{
				"AuctionsFound":   result.AuctionsFound,
				"AuctionsScraped": result.AuctionsScraped,
				"LotsScraped":     result.LotsScraped,
				"ErrorCount":      len(result.Errors),
			}).Info("house scrape completed")

			return result
		}

		lastErr = err
		logger.WithField("Attempt", attempt).Errorf("house scrape failed: %v", err)

		if attempt < maxJobAttempts {
			delay := time.Duration(attempt) * jobRetryBaseDelay
			logger.Warnf("retrying house scrape in %v", delay)
			if sleepErr := util.Sleep(ctx, delay); sleepErr != nil {
				break
			}
		}
	}

	result.Status = StatusFailed
	result.FinishedAt = time.Now().UTC()
	result.Errors = append(result.Errors, lastErr.Error())

	// best effort, the failure may well be the store itself
	endTime := result.FinishedAt
	_ = store.WriteScrapeLog(ctx, &db.ScrapeLogModel{
		HouseId:        houseId,
		TaskType:       TaskTypeFull,
		Status:         StatusFailed,
		StartTime:      &result.StartedAt,
		EndTime:        &endTime,
		ItemsProcessed: result.AuctionsScraped,
		ItemsCreated:   result.LotsScraped,
		ErrorMessage:   lastErr.Error(),
	})

	return result
}

func runHouseOnce(ctx context.Context, store Store, config *util.Config, houseId int, result *JobResult, logger log.Logger) error {
	house, err := store.GetHouse(ctx, houseId)
	if err != nil {
		return err
	}

	houseLogger := logger.WithFields(logrus.Fields{
		"HouseName": house.Name,
		"Strategy":  house.Strategy,
	})

	adapter, err := scrape.New(NewHouseConfig(house, config))
	if err != nil {
		return err
	}

	startTime := time.Now().UTC()
	if err := store.WriteScrapeLog(ctx, &db.ScrapeLogModel{
		HouseId:   houseId,
		TaskType:  TaskTypeFull,
		Status:    StatusStarted,
		StartTime: &startTime,
	}); err != nil {
		return fmt.Errorf("writing start log: %w", err)
	}

	houseLogger.Info("starting house scrape")

	auctions, warnings := adapter.ScrapeAuctions(ctx)
	result.AuctionsFound = len(auctions)
	result.Errors = append(result.Errors, warnings...)

	for _, auction := range auctions {
		auctionId, created, err := saveAuction(ctx, store, houseId, auction)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("saving auction %q: %v", auction.Title, err))
			continue
		}
		if !created {
			houseLogger.WithField("Auction", auction.Title).Debug("auction already exists, skipping lots")
			continue
		}

		result.AuctionsScraped++

		lots, lotWarnings := adapter.ScrapeLots(ctx, auction)
		result.Errors = append(result.Errors, lotWarnings...)

		for _, lot := range lots {
			created, err := saveLot(ctx, store, auctionId, lot)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("saving lot %s of auction %q: %v", lot.LotNumber, auction.Title, err))
				continue
			}
			if created {
				result.LotsScraped++
			}
		}
	}

	if err := store.UpdateHouseLastScraped(ctx, houseId); err != nil {
		return fmt.Errorf("updating last scrape timestamp: %w", err)
	}

	endTime := time.Now().UTC()
	if err := store.WriteScrapeLog(ctx, &db.ScrapeLogModel{
		HouseId:        houseId,
		TaskType:       TaskTypeFull,
		Status:         StatusCompleted,
		StartTime:      &startTime,
		EndTime:        &endTime,
		ItemsProcessed: result.AuctionsScraped,
		ItemsCreated:   result.LotsScraped,
	}); err != nil {
		houseLogger.Warnf("failed to write completion log: %v", err)
	}

	return nil
}

// RunSingleAuction pulls the lot catalog of one auction URL through the
// house's adapter. Records are not persisted, the summary only reports
// what the catalog currently holds.
func RunSingleAuction(ctx context.Context, store Store, config *util.Config, houseId int, auctionUrl string) *JobResult {
	logger := log.GetLogger().WithFields(logrus.Fields{
		"HouseId":    houseId,
		"AuctionUrl": auctionUrl,
		"TaskType":   TaskTypeSingleAuction,
	})

	result := &JobResult{
		HouseId:   houseId,
		Status:    StatusStarted,
		StartedAt: time.Now().UTC(),
	}

	house, err := store.GetHouse(ctx, houseId)
	if err != nil {
		return failResult(result, err)
	}

	adapter, err := scrape.New(NewHouseConfig(house, config))
	if err != nil {
		return failResult(result, err)
	}

	auction := scrape.AuctionRecord{
		Title:       "Manual auction scrape",
		ExternalId:  extract.ExternalIdFromUrl(auctionUrl),
		ExternalUrl: auctionUrl,
		Status:      scrape.StatusActive,
	}

	lots, warnings := adapter.ScrapeLots(ctx, auction)
	result.Errors = append(result.Errors, warnings...)
	result.AuctionsFound = 1
	result.LotsScraped = len(lots)
	result.Status = StatusCompleted
	result.FinishedAt = time.Now().UTC()

	logger.WithField("LotCount", len(lots)).Info("single auction scrape completed")

	return result
}

func failResult(result *JobResult, err error) *JobResult {
	result.Status = StatusFailed
	result.FinishedAt = time.Now().UTC()
	result.Errors = append(result.Errors, err.Error())

	return result
}

func saveAuction(ctx context.Context, store Store, houseId int, record scrape.AuctionRecord) (id int64, created bool, err error) {
	if record.ExternalId != "" {
		id, err = store.FindAuction(ctx, houseId, record.ExternalId)
		if err != nil {
			return 0, false, err
		}
		if id != 0 {
			return id, false, nil
		}
	}

	id, err = store.CreateAuction(ctx, houseId, record)
	if err != nil {
		return 0, false, err
	}

	return id, true, nil
}

func saveLot(ctx context.Context, store Store, auctionId int64, lot scrape.LotRecord) (created bool, err error) {
	existingId, err := store.FindLot(ctx, auctionId, lot.LotNumber)
	if err != nil {
		return false, err
	}
	if existingId != 0 {
		return false, nil
	}

	var artistId int64
	if lot.ArtistName != "" {
		artistId, err = store.FindOrCreateArtist(ctx, lot.ArtistName)
		if err != nil {
			return false, fmt.Errorf("resolving artist %q: %w", lot.ArtistName, err)
		}
	}

	if _, err := store.CreateLot(ctx, auctionId, artistId, lot); err != nil {
		return false, err
	}

	return true, nil
}

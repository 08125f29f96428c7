package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/martillo-arte/subastas-parser/internal"
	"github.com/martillo-arte/subastas-parser/internal/db"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	// adapters register themselves with the strategy registry
	_ "github.com/martillo-arte/subastas-parser/internal/scrape/bogota"
	_ "github.com/martillo-arte/subastas-parser/internal/scrape/duran"
)

func Run(ctx context.Context, connection bun.IDB, config *util.Config) error {
	var houseId int
	var auctionUrl string
	var frequency string
	var dryRun bool
	flag.IntVar(&houseId, "house", 0, "scrape a single house by id")
	flag.StringVar(&auctionUrl, "auction-url", "", "scrape one auction page of the house given by -house")
	flag.StringVar(&frequency, "frequency", "", "scrape every active house with this frequency (daily or weekly)")
	flag.BoolVar(&dryRun, "dry", false, "dry run, skip all writes")
	flag.Parse()

	logger := log.GetLogger()

	if dryRun {
		logger = log.AddGlobalField("DryRun", dryRun)
	}

	baseStore := db.NewStore(connection)
	var store internal.Store = baseStore
	if dryRun {
		store = db.NewDryRunStore(baseStore)
	}

	switch {
	case auctionUrl != "":
		if houseId == 0 {
			return errors.New("-auction-url requires -house")
		}

		result := internal.RunSingleAuction(ctx, store, config, houseId, auctionUrl)
		logResult(logger, result)
		if result.Status == internal.StatusFailed {
			return fmt.Errorf("auction scrape of house %d failed", houseId)
		}

		return nil

	case houseId != 0:
		result := runWithTimeout(ctx, store, config, houseId)
		logResult(logger, result)
		if result.Status == internal.StatusFailed {
			return fmt.Errorf("scrape of house %d failed", houseId)
		}

		return nil

	case frequency != "":
		if frequency != "daily" && frequency != "weekly" {
			return fmt.Errorf("unknown frequency %q, expected daily or weekly", frequency)
		}

		logger.WithField("Frequency", frequency).Debug("retrieving houses from db")
		houses, err := baseStore.GetHousesByFrequency(ctx, frequency)
		if err != nil {
			return err
		}
		logger.WithField("HouseCount", len(houses)).Info("retrieved houses from db")

		failed := 0
		for _, house := range houses {
			result := runWithTimeout(ctx, store, config, house.Id)
			logResult(logger, result)
			if result.Status == internal.StatusFailed {
				failed++
			}
		}

		if failed > 0 {
			logger.WithField("FailedCount", failed).Warn("some house scrapes failed")
		}

		return nil

	default:
		return errors.New("nothing to do, pass -house, -auction-url or -frequency")
	}
}

// runWithTimeout caps one full house scrape at the configured wall-clock
// budget so a stuck site cannot hold a scheduled run forever.
func runWithTimeout(ctx context.Context, store internal.Store, config *util.Config, houseId int) *internal.JobResult {
	jobCtx, cancel := context.WithTimeout(ctx, config.ScrapeJobTimeoutDuration())
	defer cancel()

	return internal.RunHouseScrape(jobCtx, store, config, houseId)
}

func logResult(logger log.Logger, result *internal.JobResult) {
	entry := logger.WithFields(logrus.Fields{
		"HouseId":         result.HouseId,
		"Status":          result.Status,
		"AuctionsFound":   result.AuctionsFound,
		"AuctionsScraped": result.AuctionsScraped,
		"LotsScraped":     result.LotsScraped,
		"Duration":        result.FinishedAt.Sub(result.StartedAt).String(),
	})

	for _, msg := range result.Errors {
		entry.Warn(msg)
	}

	if result.Status == internal.StatusFailed {
		entry.Error("scrape job failed")
		return
	}

	entry.Info("scrape job finished")
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/martillo-arte/subastas-parser/internal/scrape"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

func GetConnection(config *util.Config) (*bun.DB, error) {
	sqlDb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DbConnectionString.Value)))
	db := bun.NewDB(sqlDb, pgdialect.New())

	db.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithEnabled(false),

		// BUNDEBUG=1 logs failed queries
		// BUNDEBUG=2 logs all queries
		bundebug.FromEnv("BUNDEBUG")))

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// Store implements the persistence interface consumed by scrape jobs.
// All creates rely on natural-key conflict targets, so concurrent
// rescrapes of the same house stay idempotent.
type Store struct {
	db bun.IDB
}

func NewStore(db bun.IDB) *Store {
	return &Store{db: db}
}

func (s *Store) GetHouse(ctx context.Context, houseId int) (*HouseModel, error) {
	house := new(HouseModel)

	err := s.db.NewSelect().Model(house).Where("h.id = ?", houseId).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("house with id %d not found", houseId)
	}
	if err != nil {
		return nil, err
	}

	return house, nil
}

func (s *Store) GetHousesByFrequency(ctx context.Context, frequency string) (houses []*HouseModel, err error) {
	err = s.db.NewSelect().
		Model(&houses).
		Where("h.scrape_frequency = ?", frequency).
		Where("h.status = 'active'").
		Order("id").
		Scan(ctx)

	return houses, err
}

func (s *Store) FindAuction(ctx context.Context, houseId int, externalId string) (int64, error) {
	var id int64

	err := s.db.NewSelect().
		Model((*AuctionModel)(nil)).
		Column("id").
		Where("house_id = ?", houseId).
		Where("external_id = ?", externalId).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Store) CreateAuction(ctx context.Context, houseId int, record scrape.AuctionRecord) (int64, error) {
	model := &AuctionModel{
		HouseId:     houseId,
		Title:       record.Title,
		Description: record.Description,
		StartDate:   record.StartDate,
		EndDate:     record.EndDate,
		Location:    record.Location,
		AuctionType: string(record.AuctionType),
		Slug:        record.Slug,
		ExternalId:  record.ExternalId,
		ExternalUrl: record.ExternalUrl,
		Status:      string(record.Status),
	}

	res, err := s.db.NewInsert().Model(model).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		// concurrent writer got there first
		return s.FindAuction(ctx, houseId, record.ExternalId)
	}

	return model.Id, nil
}

func (s *Store) FindLot(ctx context.Context, auctionId int64, lotNumber string) (int64, error) {
	var id int64

	err := s.db.NewSelect().
		Model((*LotModel)(nil)).
		Column("id").
		Where("auction_id = ?", auctionId).
		Where("lot_number = ?", lotNumber).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Store) CreateLot(ctx context.Context, auctionId int64, artistId int64, record scrape.LotRecord) (int64, error) {
	model := &LotModel{
		AuctionId:         auctionId,
		LotNumber:         record.LotNumber,
		Title:             record.Title,
		Description:       record.Description,
		Category:          record.Category,
		EstimatedPriceMin: record.EstimatedPriceMin,
		EstimatedPriceMax: record.EstimatedPriceMax,
		FinalPrice:        record.FinalPrice,
		Sold:              record.Sold,
		Currency:          record.Currency,
		Images:            record.Images,
		Dimensions:        record.Dimensions,
		Medium:            record.Medium,
		ExternalId:        record.ExternalId,
		ExternalUrl:       record.ExternalUrl,
	}
	if artistId != 0 {
		model.ArtistId = &artistId
	}

	res, err := s.db.NewInsert().Model(model).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return s.FindLot(ctx, auctionId, record.LotNumber)
	}

	return model.Id, nil
}

func (s *Store) findArtist(ctx context.Context, name string) (int64, error) {
	var id int64

	err := s.db.NewSelect().
		Model((*ArtistModel)(nil)).
		Column("id").
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return id, nil
}

// FindOrCreateArtist resolves an artist by case-insensitive exact name,
// creating the record when no match exists.
func (s *Store) FindOrCreateArtist(ctx context.Context, name string) (int64, error) {
	id, err := s.findArtist(ctx, name)
	if err != nil {
		return 0, err
	}
	if id != 0 {
		return id, nil
	}

	model := &ArtistModel{Name: name}
	res, err := s.db.NewInsert().Model(model).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, err
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return s.findArtist(ctx, name)
	}

	return model.Id, nil
}

func (s *Store) UpdateHouseLastScraped(ctx context.Context, houseId int) error {
	now := time.Now().UTC()

	_, err := s.db.NewUpdate().
		Model((*HouseModel)(nil)).
		Set("last_scrape = ?", now).
		Where("id = ?", houseId).
		Exec(ctx)

	return err
}

func (s *Store) WriteScrapeLog(ctx context.Context, entry *ScrapeLogModel) error {
	_, err := s.db.NewInsert().Model(entry).Exec(ctx)

	return err
}

package db

import (
	"time"

	"github.com/uptrace/bun"
)

type HouseModel struct {
	bun.BaseModel `bun:"table:auction_houses,alias:h"`

	Id              int        `bun:"id,pk,autoincrement"`
	Name            string     `bun:"name,notnull"`
	Country         string     `bun:"country"`
	Website         string     `bun:"website"`
	Description     string     `bun:"description"`
	Strategy        string     `bun:"strategy,notnull"`
	BaseUrl         string     `bun:"base_url"`
	Currency        string     `bun:"currency"`
	ScrapeFrequency string     `bun:"scrape_frequency,notnull,default:'weekly'"`
	Status          string     `bun:"status,notnull,default:'active'"`
	LastScrape      *time.Time `bun:"last_scrape"`
}

type AuctionModel struct {
	bun.BaseModel `bun:"table:auctions,alias:a"`

	Id          int64      `bun:"id,pk,autoincrement"`
	HouseId     int        `bun:"house_id,notnull"`
	Title       string     `bun:"title,notnull"`
	Description string     `bun:"description"`
	StartDate   *time.Time `bun:"start_date"`
	EndDate     *time.Time `bun:"end_date"`
	Location    string     `bun:"location"`
	AuctionType string     `bun:"auction_type,notnull,default:'live'"`
	Slug        string     `bun:"slug"`
	ExternalId  string     `bun:"external_id"`
	ExternalUrl string     `bun:"external_url"`
	Status      string     `bun:"status,notnull,default:'upcoming'"`
}

type LotModel struct {
	bun.BaseModel `bun:"table:lots,alias:l"`

	Id                int64    `bun:"id,pk,autoincrement"`
	AuctionId         int64    `bun:"auction_id,notnull"`
	LotNumber         string   `bun:"lot_number,notnull"`
	Title             string   `bun:"title,notnull"`
	Description       string   `bun:"description"`
	ArtistId          *int64   `bun:"artist_id"`
	Category          string   `bun:"category"`
	EstimatedPriceMin *float64 `bun:"estimated_price_min"`
	EstimatedPriceMax *float64 `bun:"estimated_price_max"`
	FinalPrice        *float64 `bun:"final_price"`
	Sold              bool     `bun:"sold,notnull,default:false"`
	Currency          string   `bun:"currency,notnull,default:'USD'"`
	Images            []string `bun:"images,array"`
	Dimensions        string   `bun:"dimensions"`
	Medium            string   `bun:"medium"`
	ExternalId        string   `bun:"external_id"`
	ExternalUrl       string   `bun:"external_url"`
}

type ArtistModel struct {
	bun.BaseModel `bun:"table:artists,alias:ar"`

	Id   int64  `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull"`
}

type ScrapeLogModel struct {
	bun.BaseModel `bun:"table:scraping_logs,alias:sl"`

	Id             int64      `bun:"id,pk,autoincrement"`
	HouseId        int        `bun:"house_id,notnull"`
	TaskType       string     `bun:"task_type,notnull"`
	Status         string     `bun:"status,notnull"`
	StartTime      *time.Time `bun:"start_time"`
	EndTime        *time.Time `bun:"end_time"`
	ItemsProcessed int        `bun:"items_processed,notnull,default:0"`
	ItemsCreated   int        `bun:"items_created,notnull,default:0"`
	ErrorMessage   string     `bun:"error_message"`
}

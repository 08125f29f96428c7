package scrape

import "time"

type AuctionStatus string

const (
	StatusUpcoming  AuctionStatus = "upcoming"
	StatusActive    AuctionStatus = "active"
	StatusCompleted AuctionStatus = "completed"
)

type AuctionType string

const (
	TypeLive   AuctionType = "live"
	TypeOnline AuctionType = "online"
	TypeHybrid AuctionType = "hybrid"
)

// AuctionRecord is one scraped auction, built once per pass and handed to
// the persistence layer, which decides insert-vs-skip on the
// (house, ExternalId) natural key.
type AuctionRecord struct {
	Title       string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
	AuctionType AuctionType
	Slug        string
	ExternalId  string
	ExternalUrl string
	Status      AuctionStatus
}

// LotRecord is one scraped lot. ExternalId is derived as
// "{auction external id}_{lot number}" when both are known; the
// (auction, LotNumber) pair is the dedup key.
type LotRecord struct {
	LotNumber         string
	Title             string
	Description       string
	ArtistName        string
	Category          string
	EstimatedPriceMin *float64
	EstimatedPriceMax *float64
	FinalPrice        *float64
	Sold              bool
	Currency          string
	Images            []string
	Dimensions        string
	Medium            string
	ExternalId        string
	ExternalUrl       string
}

// HouseConfig is the immutable input to an adapter instance, assembled by
// the orchestration layer from the house row and global settings.
type HouseConfig struct {
	Id        int
	Name      string
	Strategy  string
	BaseUrl   string
	Currency  string
	UserAgent string
	Delay     time.Duration
	Timeout   time.Duration
}

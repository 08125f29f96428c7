// Package bogota scrapes Bogotá Auctions (https://www.bogotaauctions.com),
// a static-HTML site with Spanish-language catalog pages.
package bogota

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/martillo-arte/subastas-parser/internal/extract"
	"github.com/martillo-arte/subastas-parser/internal/fetch"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/scrape"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseUrl  = "https://www.bogotaauctions.com"
	defaultCurrency = "COP"
	defaultLocation = "Bogotá, Colombia"

	activePath     = "/es/subastas-activas"
	historicalPath = "/es/subastas-historicas"

	activeLinkSelector     = "a.titulo-subasta"
	historicalLinkSelector = `a.titulo-subasta, a[href*="subasta"]`

	lotSelector       = "div.lote"
	lotNumberSelector = `span.numero, .lot-number, [class*="number"]`
	lotTitleSelector  = `h3, h2, .title, [class*="title"]`
	lotDescSelector   = ".descripcion, .description, p"
	lotPriceSelector  = `.precio, .price, [class*="price"]`

	descriptionSelector = "div.descripcion-subasta, div.description"
)

// Tried in order when the primary lot selector matches nothing; the first
// fallback with at least one match is used alone, never combined.
var lotFallbackSelectors = []string{
	`div[class*="lot"]`,
	`div[class*="item"]`,
	"article",
	".auction-lot",
}

type Adapter struct {
	cfg    scrape.HouseConfig
	client *fetch.Client
	logger log.Logger
}

func init() {
	scrape.Register("html_static", New)
}

func New(cfg scrape.HouseConfig) scrape.Adapter {
	if cfg.BaseUrl == "" {
		cfg.BaseUrl = defaultBaseUrl
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}

	return &Adapter{
		cfg: cfg,
		client: fetch.NewClient(fetch.Options{
			UserAgent: cfg.UserAgent,
			Delay:     cfg.Delay,
			Timeout:   cfg.Timeout,
		}),
		logger: log.GetLogger().WithFields(logrus.Fields{
			"Adapter": "bogota",
			"House":   cfg.Name,
		}),
	}
}

func (a *Adapter) ScrapeAuctions(ctx context.Context) ([]scrape.AuctionRecord, []string) {
	var records []scrape.AuctionRecord
	var warnings []string

	active, warns := a.scrapeListing(ctx, a.cfg.BaseUrl+activePath, activeLinkSelector, scrape.StatusActive)
	records = append(records, active...)
	warnings = append(warnings, warns...)

	historical, warns := a.scrapeListing(ctx, a.cfg.BaseUrl+historicalPath, historicalLinkSelector, scrape.StatusCompleted)
	records = append(records, historical...)
	warnings = append(warnings, warns...)

	a.logger.WithField("AuctionCount", len(records)).Info("scraped auction listings")

	return records, warnings
}

func (a *Adapter) scrapeListing(ctx context.Context, url, linkSelector string, status scrape.AuctionStatus) ([]scrape.AuctionRecord, []string) {
	doc, err := a.fetchDocument(ctx, url)
	if err != nil {
		return nil, []string{fmt.Sprintf("listing %s: %v", url, err)}
	}

	var records []scrape.AuctionRecord
	var warnings []string

	doc.Find(linkSelector).Each(func(_ int, link *goquery.Selection) {
		record, err := a.auctionFromLink(ctx, link, status)
		if err != nil {
			warnings = append(warnings, err.Error())
			return
		}
		if record != nil {
			records = append(records, *record)
		}
	})

	return records, warnings
}

// auctionFromLink builds a record from a listing link, enriching it from
// the detail page. A link without href or text is not an auction and
// yields nil, nil.
func (a *Adapter) auctionFromLink(ctx context.Context, link *goquery.Selection, status scrape.AuctionStatus) (*scrape.AuctionRecord, error) {
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return nil, nil
	}

	title := util.CleanText(link.Text())
	if title == "" {
		return nil, nil
	}

	auctionUrl := extract.ResolveUrl(href, a.cfg.BaseUrl)

	details, err := a.fetchAuctionDetails(ctx, auctionUrl)
	if err != nil {
		return nil, fmt.Errorf("auction %q detail page: %w", title, err)
	}

	return &scrape.AuctionRecord{
		Title:       title,
		Description: details.description,
		StartDate:   details.startDate,
		EndDate:     details.endDate,
		Location:    defaultLocation,
		AuctionType: details.auctionType,
		Slug:        extract.Slug(href),
		ExternalId:  extract.ExternalIdFromUrl(href),
		ExternalUrl: auctionUrl,
		Status:      status,
	}, nil
}

type detailPage struct {
	description string
	startDate   *time.Time
	endDate     *time.Time
	auctionType scrape.AuctionType
}

func (a *Adapter) fetchAuctionDetails(ctx context.Context, url string) (detailPage, error) {
	details := detailPage{auctionType: scrape.TypeHybrid}

	doc, err := a.fetchDocument(ctx, url)
	if err != nil {
		return details, err
	}

	details.description = util.CleanText(doc.Find(descriptionSelector).First().Text())

	pageText := doc.Text()
	details.startDate, details.endDate = extract.DatesFromText(pageText)
	if details.startDate != nil && details.endDate != nil && details.endDate.Before(*details.startDate) {
		// first-seen-wins date heuristic, left unsorted on purpose
		a.logger.WithField("Url", url).Warn("extracted end date precedes start date")
	}

	lower := strings.ToLower(pageText)
	switch {
	case strings.Contains(lower, "virtual") || strings.Contains(lower, "online"):
		details.auctionType = scrape.TypeOnline
	case strings.Contains(lower, "presencial") || strings.Contains(lower, "live"):
		details.auctionType = scrape.TypeLive
	}

	return details, nil
}

func (a *Adapter) ScrapeLots(ctx context.Context, auction scrape.AuctionRecord) ([]scrape.LotRecord, []string) {
	if auction.ExternalUrl == "" {
		return nil, []string{fmt.Sprintf("auction %q has no external url, skipping lots", auction.Title)}
	}

	doc, err := a.fetchDocument(ctx, auction.ExternalUrl)
	if err != nil {
		return nil, []string{fmt.Sprintf("lots page %s: %v", auction.ExternalUrl, err)}
	}

	elements := doc.Find(lotSelector)
	if elements.Length() == 0 {
		for _, fallback := range lotFallbackSelectors {
			if found := doc.Find(fallback); found.Length() > 0 {
				a.logger.WithField("Selector", fallback).Debug("primary lot selector matched nothing, using fallback")
				elements = found
				break
			}
		}
	}

	var lots []scrape.LotRecord
	var warnings []string

	elements.Each(func(_ int, sel *goquery.Selection) {
		lot := a.lotFromElement(sel, auction)
		if lot == nil {
			return
		}
		if lot.EstimatedPriceMin != nil && lot.EstimatedPriceMax != nil && *lot.EstimatedPriceMin > *lot.EstimatedPriceMax {
			warnings = append(warnings, fmt.Sprintf("lot %s of auction %q: inverted estimate range", lot.LotNumber, auction.Title))
		}
		lots = append(lots, *lot)
	})

	a.logger.WithFields(logrus.Fields{
		"Auction":  auction.Title,
		"LotCount": len(lots),
	}).Info("scraped lots")

	return lots, warnings
}

// lotFromElement extracts one lot. A lot without a resolvable title has no
// viable identity and is dropped.
func (a *Adapter) lotFromElement(sel *goquery.Selection, auction scrape.AuctionRecord) *scrape.LotRecord {
	title := util.CleanText(sel.Find(lotTitleSelector).First().Text())
	if title == "" {
		return nil
	}

	lotNumber := util.CleanText(sel.Find(lotNumberSelector).First().Text())
	if lotNumber == "" {
		lotNumber = "N/A"
	}

	description := util.CleanText(sel.Find(lotDescSelector).First().Text())
	fullText := sel.Text()

	priceInfo := extract.ParsePriceRange(sel.Find(lotPriceSelector).First().Text())

	var externalId string
	if auction.ExternalId != "" {
		externalId = fmt.Sprintf("%s_%s", auction.ExternalId, lotNumber)
	}

	return &scrape.LotRecord{
		LotNumber:         lotNumber,
		Title:             title,
		Description:       description,
		ArtistName:        extract.ArtistFromText(title + " " + description),
		Category:          extract.CategoryFromText(fullText),
		EstimatedPriceMin: priceInfo.Min,
		EstimatedPriceMax: priceInfo.Max,
		FinalPrice:        priceInfo.Final,
		Sold:              priceInfo.Sold,
		Currency:          a.cfg.Currency,
		Images:            extract.Images(sel, a.cfg.BaseUrl),
		Dimensions:        extract.DimensionsFromText(fullText),
		Medium:            extract.MediumFromText(fullText),
		ExternalId:        externalId,
	}
}

func (a *Adapter) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := a.client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	return doc, nil
}

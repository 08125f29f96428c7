// Package duran scrapes Durán Arte y Subastas
// (https://www.duran-subastas.com), a Madrid house with static Spanish
// catalog pages. The markup differs enough from Bogotá Auctions that the
// selectors and lot layout are bespoke, but the extraction pipeline is the
// shared one.
package duran

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/martillo-arte/subastas-parser/internal/extract"
	"github.com/martillo-arte/subastas-parser/internal/fetch"
	"github.com/martillo-arte/subastas-parser/internal/log"
	"github.com/martillo-arte/subastas-parser/internal/scrape"
	"github.com/martillo-arte/subastas-parser/internal/util"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseUrl  = "https://www.duran-subastas.com"
	defaultCurrency = "EUR"
	defaultLocation = "Madrid, España"

	upcomingPath = "/es/subastas/proximas"
	pastPath     = "/es/subastas/anteriores"

	auctionLinkSelector = `a.enlace-subasta, a[href*="subasta"]`

	lotSelector       = "div.lote-item"
	lotNumberSelector = `span.num-lote, [class*="numero"], [class*="number"]`
	lotTitleSelector  = `h3, h4, .titulo, [class*="title"]`
	lotDescSelector   = ".descripcion, .texto, p"
)

var lotFallbackSelectors = []string{
	`div[class*="lote"]`,
	`li[class*="lot"]`,
	"article",
}

type Adapter struct {
	cfg    scrape.HouseConfig
	client *fetch.Client
	logger log.Logger
}

func init() {
	scrape.Register("html_duran", New)
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
			"Adapter": "duran",
			"House":   cfg.Name,
		}),
	}
}

func (a *Adapter) ScrapeAuctions(ctx context.Context) ([]scrape.AuctionRecord, []string) {
	var records []scrape.AuctionRecord
	var warnings []string

	upcoming, warns := a.scrapeListing(ctx, a.cfg.BaseUrl+upcomingPath, scrape.StatusActive)
	records = append(records, upcoming...)
	warnings = append(warnings, warns...)

	past, warns := a.scrapeListing(ctx, a.cfg.BaseUrl+pastPath, scrape.StatusCompleted)
	records = append(records, past...)
	warnings = append(warnings, warns...)

	a.logger.WithField("AuctionCount", len(records)).Info("scraped auction listings")

	return records, warnings
}

func (a *Adapter) scrapeListing(ctx context.Context, url string, status scrape.AuctionStatus) ([]scrape.AuctionRecord, []string) {
	doc, err := a.fetchDocument(ctx, url)
	if err != nil {
		return nil, []string{fmt.Sprintf("listing %s: %v", url, err)}
	}

	var records []scrape.AuctionRecord
	var warnings []string

	doc.Find(auctionLinkSelector).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		title := util.CleanText(link.Text())
		if title == "" {
			return
		}

		auctionUrl := extract.ResolveUrl(href, a.cfg.BaseUrl)

		record := scrape.AuctionRecord{
			Title:       title,
			Location:    defaultLocation,
			AuctionType: scrape.TypeLive,
			Slug:        extract.Slug(href),
			ExternalId:  extract.ExternalIdFromUrl(href),
			ExternalUrl: auctionUrl,
			Status:      status,
		}

		if err := a.enrichAuction(ctx, &record); err != nil {
			warnings = append(warnings, fmt.Sprintf("auction %q detail page: %v", title, err))
			return
		}

		records = append(records, record)
	})

	return records, warnings
}

func (a *Adapter) enrichAuction(ctx context.Context, record *scrape.AuctionRecord) error {
	doc, err := a.fetchDocument(ctx, record.ExternalUrl)
	if err != nil {
		return err
	}

	record.Description = util.CleanText(doc.Find("div.descripcion, div.texto-subasta").First().Text())

	pageText := doc.Text()
	record.StartDate, record.EndDate = extract.DatesFromText(pageText)

	// Durán runs live room sales by default; online-only sales say so.
	if strings.Contains(strings.ToLower(pageText), "online") {
		record.AuctionType = scrape.TypeOnline
	}

	return nil
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
		title := util.CleanText(sel.Find(lotTitleSelector).First().Text())
		if title == "" {
			return
		}

		lotNumber := util.CleanText(sel.Find(lotNumberSelector).First().Text())
		if lotNumber == "" {
			lotNumber = "N/A"
		}

		description := util.CleanText(sel.Find(lotDescSelector).First().Text())
		fullText := sel.Text()

		priceInfo := extract.ParsePriceRange(sel.Find(`.estimacion, .precio, [class*="price"]`).First().Text())
		if priceInfo.Min != nil && priceInfo.Max != nil && *priceInfo.Min > *priceInfo.Max {
			warnings = append(warnings, fmt.Sprintf("lot %s of auction %q: inverted estimate range", lotNumber, auction.Title))
		}

		var externalId string
		if auction.ExternalId != "" {
			externalId = fmt.Sprintf("%s_%s", auction.ExternalId, lotNumber)
		}

		lots = append(lots, scrape.LotRecord{
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
		})
	})

	a.logger.WithFields(logrus.Fields{
		"Auction":  auction.Title,
		"LotCount": len(lots),
	}).Info("scraped lots")

	return lots, warnings
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

package duran

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/martillo-arte/subastas-parser/internal/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(baseUrl string) scrape.Adapter {
	return New(scrape.HouseConfig{
		Name:    "Durán Arte y Subastas",
		BaseUrl: baseUrl,
	})
}

func TestScrapeAuctions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(upcomingPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a class="enlace-subasta" href="/es/subasta-650">Subasta 650: Pintura Antigua</a>
		</body></html>`)
	})
	mux.HandleFunc(pastPath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>Sin resultados</p></body></html>`)
	})
	mux.HandleFunc("/es/subasta-650", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="descripcion">Sesión presencial en sala</div>
			<p>Apertura: 10/09/2026 18:00 Cierre: 12/09/2026 21:00</p>
		</body></html>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	records, warnings := newTestAdapter(server.URL).ScrapeAuctions(context.Background())

	require.Len(t, records, 1)
	assert.Empty(t, warnings)

	record := records[0]
	assert.Equal(t, "Subasta 650: Pintura Antigua", record.Title)
	assert.Equal(t, "650", record.ExternalId)
	assert.Equal(t, "subasta-650", record.Slug)
	assert.Equal(t, scrape.StatusActive, record.Status)
	assert.Equal(t, scrape.TypeLive, record.AuctionType)
	assert.Equal(t, "Madrid, España", record.Location)
	assert.Equal(t, "Sesión presencial en sala", record.Description)
	require.NotNil(t, record.StartDate)
	require.NotNil(t, record.EndDate)
}

func TestScrapeLots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/es/subasta-650", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="lote-item">
				<span class="num-lote">12</span>
				<h4>Bodegón de caza</h4>
				<p class="descripcion">óleo sobre tabla, 40 x 60 cm</p>
				<span class="estimacion">800 - 1.200</span>
			</div>
		</body></html>`)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	auction := scrape.AuctionRecord{
		Title:       "Subasta 650",
		ExternalId:  "650",
		ExternalUrl: server.URL + "/es/subasta-650",
	}

	lots, warnings := newTestAdapter(server.URL).ScrapeLots(context.Background(), auction)

	require.Len(t, lots, 1)
	assert.Empty(t, warnings)

	lot := lots[0]
	assert.Equal(t, "12", lot.LotNumber)
	assert.Equal(t, "650_12", lot.ExternalId)
	assert.Equal(t, "Bodegón de caza", lot.Title)
	assert.Equal(t, "EUR", lot.Currency)
	assert.Equal(t, "Óleo", lot.Medium)
	assert.Equal(t, "40 x 60", lot.Dimensions)
	require.NotNil(t, lot.EstimatedPriceMin)
	require.NotNil(t, lot.EstimatedPriceMax)
	assert.Equal(t, float64(800), *lot.EstimatedPriceMin)
	assert.Equal(t, float64(1200), *lot.EstimatedPriceMax)
}

package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

func marketCfg(url string) *config.Config {
	return &config.Config{
		FearGreedURL: url,
		CoinGecko: config.CoinGecko{
			Timeout: 5 * time.Second,
		},
	}
}

func TestClassifyFearGreed(t *testing.T) {
	testCases := []struct {
		value int
		want  string
	}{
		{0, "Extreme Fear"},
		{25, "Extreme Fear"},
		{26, "Fear"},
		{45, "Fear"},
		{46, "Neutral"},
		{55, "Neutral"},
		{56, "Greed"},
		{75, "Greed"},
		{76, "Extreme Greed"},
		{100, "Extreme Greed"},
	}
	for _, tc := range testCases {
		if got := ClassifyFearGreed(tc.value); got != tc.want {
			t.Errorf("ClassifyFearGreed(%d) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestGetFearGreedIndexFromAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"value":"72","value_classification":"Greed","timestamp":"1767225600"}]}`))
	}))
	defer server.Close()

	svc := NewMarketDataService(marketCfg(server.URL), &stubMarket{})

	data := svc.GetFearGreedIndex()
	if data.Value != 72 {
		t.Errorf("Value = %d, want 72", data.Value)
	}
	if data.ValueClassification != "Greed" {
		t.Errorf("ValueClassification = %q, want Greed", data.ValueClassification)
	}
}

func TestGetFearGreedIndexFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewMarketDataService(marketCfg(server.URL), &stubMarket{})

	data := svc.GetFearGreedIndex()
	if data.Value < 30 || data.Value > 70 {
		t.Errorf("el valor de reserva %d está fuera del rango 30-70", data.Value)
	}
	if data.ValueClassification != ClassifyFearGreed(data.Value) {
		t.Errorf("clasificación %q no corresponde al valor %d", data.ValueClassification, data.Value)
	}
}

func TestGetMarketPulseRanges(t *testing.T) {
	svc := NewMarketDataService(marketCfg("http://localhost:0"), &stubMarket{})

	pulse := svc.GetMarketPulse()
	values := map[string]float64{
		"trading_volume":   pulse.TradingVolume,
		"volatility":       pulse.Volatility,
		"liquidity":        pulse.Liquidity,
		"network_activity": pulse.NetworkActivity,
	}
	for name, v := range values {
		if v < 10 || v > 100 {
			t.Errorf("%s = %f, fuera del rango 10-100", name, v)
		}
	}
}

func TestGetTopCoinsLimit(t *testing.T) {
	testCases := []struct {
		limit int
		want  int
	}{
		{0, 50},
		{-5, 50},
		{300, 50},
		{20, 20},
		{250, 250},
	}
	for _, tc := range testCases {
		var gotPerPage int
		market := &stubMarket{
			marketsPage: func(perPage int) ([]models.MarketCoin, error) {
				gotPerPage = perPage
				return nil, nil
			},
		}
		svc := NewMarketDataService(marketCfg("http://localhost:0"), market)

		if _, err := svc.GetTopCoins(tc.limit); err != nil {
			t.Fatalf("GetTopCoins(%d) error = %v", tc.limit, err)
		}
		if gotPerPage != tc.want {
			t.Errorf("GetTopCoins(%d) pidió %d monedas, want %d", tc.limit, gotPerPage, tc.want)
		}
	}
}

func TestGetMarketMovers(t *testing.T) {
	market := &stubMarket{
		marketsPage: func(perPage int) ([]models.MarketCoin, error) {
			return []models.MarketCoin{
				{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", PriceChangePercentage24h: 2.1, PriceChange24h: 1000},
				{ID: "dogecoin", Symbol: "doge", Name: "Dogecoin", PriceChangePercentage24h: 18.4, PriceChange24h: 0.02},
				{ID: "terra", Symbol: "luna", Name: "Terra", PriceChangePercentage24h: -32.8, PriceChange24h: -4.5},
			}, nil
		},
	}
	svc := NewMarketDataService(marketCfg("http://localhost:0"), market)

	movers, err := svc.GetMarketMovers()
	if err != nil {
		t.Fatalf("GetMarketMovers() error = %v", err)
	}
	if movers.TopGainer.Symbol != "doge" {
		t.Errorf("TopGainer = %q, want doge", movers.TopGainer.Symbol)
	}
	if movers.TopLoser.Symbol != "luna" {
		t.Errorf("TopLoser = %q, want luna", movers.TopLoser.Symbol)
	}
}

func TestGetMarketMoversEmptyListing(t *testing.T) {
	market := &stubMarket{
		marketsPage: func(perPage int) ([]models.MarketCoin, error) {
			return []models.MarketCoin{}, nil
		},
	}
	svc := NewMarketDataService(marketCfg("http://localhost:0"), market)

	if _, err := svc.GetMarketMovers(); err == nil {
		t.Fatalf("GetMarketMovers() con listado vacío debe devolver error")
	}
}

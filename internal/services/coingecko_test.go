package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
)

func newTestGecko(t *testing.T, handler http.HandlerFunc) (*CoinGeckoClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		CoinGecko: config.CoinGecko{
			URL:     server.URL,
			Timeout: 5 * time.Second,
		},
	}
	return NewCoinGeckoClient(cfg), server
}

func TestMarketsByIDs(t *testing.T) {
	client, _ := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			t.Errorf("path = %q, want /coins/markets", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "bitcoin,ethereum" {
			t.Errorf("ids = %q, want bitcoin,ethereum", got)
		}
		if got := r.URL.Query().Get("vs_currency"); got != "usd" {
			t.Errorf("vs_currency = %q, want usd", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50000},
			{"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3000}
		]`))
	})

	coins, err := client.MarketsByIDs([]string{"bitcoin", "ethereum"})
	if err != nil {
		t.Fatalf("MarketsByIDs() error = %v", err)
	}
	if len(coins) != 2 {
		t.Fatalf("len(coins) = %d, want 2", len(coins))
	}
	if coins[0].ID != "bitcoin" || coins[0].CurrentPrice != 50000 {
		t.Errorf("coins[0] = %+v, want bitcoin/50000", coins[0])
	}
}

func TestMarketsByIDsErrorStatus(t *testing.T) {
	client, _ := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.MarketsByIDs([]string{"bitcoin"}); err == nil {
		t.Fatalf("MarketsByIDs() con 429 debe devolver error")
	}
}

func TestSimplePrices(t *testing.T) {
	client, _ := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("path = %q, want /simple/price", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin":{"usd":50000},"ethereum":{"usd":3000}}`))
	})

	prices, err := client.SimplePrices([]string{"bitcoin", "ethereum", "desconocida"})
	if err != nil {
		t.Fatalf("SimplePrices() error = %v", err)
	}

	if price, ok := prices.USD("bitcoin"); !ok || price != 50000 {
		t.Errorf("USD(bitcoin) = %f/%v, want 50000/true", price, ok)
	}
	// Un id ausente en la respuesta es precio desconocido, no error
	if _, ok := prices.USD("desconocida"); ok {
		t.Errorf("USD(desconocida) debe reportar ausente")
	}
}

func TestSimplePricesEmptyInput(t *testing.T) {
	requests := 0
	client, _ := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
	})

	prices, err := client.SimplePrices(nil)
	if err != nil {
		t.Fatalf("SimplePrices(nil) error = %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("prices = %v, want mapa vacío", prices)
	}
	if requests != 0 {
		t.Errorf("se hizo una petición HTTP con la lista vacía")
	}
}

func TestCoinsList(t *testing.T) {
	client, _ := newTestGecko(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/list" {
			t.Errorf("path = %q, want /coins/list", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"}]`))
	})

	list, err := client.CoinsList()
	if err != nil {
		t.Fatalf("CoinsList() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != "bitcoin" {
		t.Errorf("list = %+v, want [bitcoin]", list)
	}
}

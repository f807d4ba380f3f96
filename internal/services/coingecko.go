package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/go-resty/resty/v2"
)

// CoinGeckoClient encapsula las llamadas REST al proveedor de precios
type CoinGeckoClient struct {
	client *resty.Client
}

func NewCoinGeckoClient(cfg *config.Config) *CoinGeckoClient {
	client := resty.New().
		SetBaseURL(cfg.CoinGecko.URL).
		SetTimeout(cfg.CoinGecko.Timeout).
		SetHeader("Accept", "application/json")
	return &CoinGeckoClient{client: client}
}

// MarketsByIDs consulta /coins/markets filtrando por ids canónicos
func (c *CoinGeckoClient) MarketsByIDs(ids []string) ([]models.MarketCoin, error) {
	resp, err := c.client.R().
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"ids":         strings.Join(ids, ","),
			"order":       "market_cap_desc",
			"per_page":    fmt.Sprintf("%d", len(ids)),
			"sparkline":   "false",
		}).
		Get("/coins/markets")

	if err != nil {
		log.Printf("Error en la petición a /coins/markets: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("respuesta %d de /coins/markets", resp.StatusCode())
	}

	var coins []models.MarketCoin
	if err := json.Unmarshal(resp.Body(), &coins); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}
	return coins, nil
}

// MarketsPage obtiene una página del listado de mercado ordenado por capitalización
func (c *CoinGeckoClient) MarketsPage(perPage int) ([]models.MarketCoin, error) {
	resp, err := c.client.R().
		SetQueryParams(map[string]string{
			"vs_currency": "usd",
			"order":       "market_cap_desc",
			"per_page":    fmt.Sprintf("%d", perPage),
			"sparkline":   "false",
		}).
		Get("/coins/markets")

	if err != nil {
		log.Printf("Error en la petición a /coins/markets: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("respuesta %d de /coins/markets", resp.StatusCode())
	}

	var coins []models.MarketCoin
	if err := json.Unmarshal(resp.Body(), &coins); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}
	return coins, nil
}

// CoinsList descarga el directorio completo de monedas
func (c *CoinGeckoClient) CoinsList() ([]models.CoinListEntry, error) {
	resp, err := c.client.R().Get("/coins/list")
	if err != nil {
		log.Printf("Error en la petición a /coins/list: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("respuesta %d de /coins/list", resp.StatusCode())
	}

	var list []models.CoinListEntry
	if err := json.Unmarshal(resp.Body(), &list); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}
	return list, nil
}

// SimplePrices obtiene los precios en USD de varios coin_ids en una sola llamada.
// Un id ausente en la respuesta significa precio desconocido, no error.
func (c *CoinGeckoClient) SimplePrices(coinIDs []string) (models.SimplePrices, error) {
	if len(coinIDs) == 0 {
		return models.SimplePrices{}, nil
	}

	resp, err := c.client.R().
		SetQueryParams(map[string]string{
			"ids":           strings.Join(coinIDs, ","),
			"vs_currencies": "usd",
		}).
		Get("/simple/price")

	if err != nil {
		log.Printf("Error en la petición a /simple/price: %v", err)
		return nil, fmt.Errorf("error en la petición HTTP: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("respuesta %d de /simple/price", resp.StatusCode())
	}

	var prices models.SimplePrices
	if err := json.Unmarshal(resp.Body(), &prices); err != nil {
		return nil, fmt.Errorf("error decodificando JSON: %v", err)
	}
	return prices, nil
}

package models

// CoinPrice es el resultado de resolver un ticker contra el proveedor de precios
type CoinPrice struct {
	Price  float64 `json:"price"`
	Name   string  `json:"name"`
	CoinID string  `json:"coin_id"`
}

// MarketCoin es una entrada del endpoint /coins/markets de CoinGecko
type MarketCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	LastUpdated              string  `json:"last_updated"`
}

// CoinListEntry es una entrada del directorio completo /coins/list
type CoinListEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SimplePrices mapea coin_id -> moneda -> precio (/simple/price).
// La ausencia de un id pedido significa "desconocido", no error.
type SimplePrices map[string]map[string]float64

// USD devuelve el precio en USD de un coin_id y si estaba presente
func (p SimplePrices) USD(coinID string) (float64, bool) {
	entry, ok := p[coinID]
	if !ok {
		return 0, false
	}
	price, ok := entry["usd"]
	return price, ok
}

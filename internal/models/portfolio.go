package models

// PortfolioEntry es el eco de una compra dentro de un agregado del portafolio
type PortfolioEntry struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	PriceUsed float64 `json:"price_used"`
	TotalCost float64 `json:"total_cost"`
	Timestamp string  `json:"timestamp"`
	Name      string  `json:"name"`
	CoinID    string  `json:"coin_id"`
}

// AggregatedHolding agrupa todas las compras de un mismo ticker.
// Si dos monedas distintas comparten ticker se fusionan en un solo agregado;
// es el comportamiento documentado, no un bug a corregir.
type AggregatedHolding struct {
	Symbol                 string           `json:"symbol"`
	Name                   string           `json:"name"`
	CoinID                 string           `json:"coin_id"`
	TotalQuantity          float64          `json:"total_quantity"`
	AverageBuyPrice        float64          `json:"average_buy_price"`
	TotalInvested          float64          `json:"total_invested"`
	CurrentPrice           float64          `json:"current_price"`
	CurrentValue           float64          `json:"current_value"`
	ProfitOrLoss           float64          `json:"profit_or_loss"`
	ProfitOrLossPercentage float64          `json:"profit_or_loss_percentage"`
	Entries                []PortfolioEntry `json:"entries"`
}

// PortfolioSummary es el resumen completo del portafolio de un usuario
type PortfolioSummary struct {
	TotalPortfolioValue         float64             `json:"total_portfolio_value"`
	TotalInvested               float64             `json:"total_invested"`
	TotalProfitOrLoss           float64             `json:"total_profit_or_loss"`
	TotalProfitOrLossPercentage float64             `json:"total_profit_or_loss_percentage"`
	Holdings                    []AggregatedHolding `json:"holdings"`
}

package models

import "time"

// PortfolioHolding representa una compra registrada de una criptomoneda.
// Cada fila es un evento de compra individual, nunca se fusionan.
type PortfolioHolding struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	CoinID       string    `json:"coin_id"`
	Amount       float64   `json:"amount"`
	AvgPrice     float64   `json:"avg_price"`
	PurchaseDate string    `json:"purchase_date"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AddAssetRequest es el payload para agregar un activo al portafolio
type AddAssetRequest struct {
	Symbol           string   `json:"symbol" binding:"required"`
	Quantity         float64  `json:"quantity" binding:"required,gt=0"`
	UseRealTimePrice *bool    `json:"use_real_time_price"`
	CustomPrice      *float64 `json:"custom_price"`
}

// RealTime indica si se debe usar el precio en tiempo real (por defecto true)
func (r *AddAssetRequest) RealTime() bool {
	return r.UseRealTimePrice == nil || *r.UseRealTimePrice
}

// CreateHoldingParams contiene los datos para persistir una nueva tenencia
type CreateHoldingParams struct {
	Symbol       string
	Name         string
	CoinID       string
	Amount       float64
	AvgPrice     float64
	PurchaseDate string
	Notes        string
}

// UpdateHoldingParams contiene los campos opcionales de una actualización parcial
type UpdateHoldingParams struct {
	Symbol       *string  `json:"symbol,omitempty"`
	Name         *string  `json:"name,omitempty"`
	CoinID       *string  `json:"coin_id,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
	AvgPrice     *float64 `json:"avg_price,omitempty"`
	PurchaseDate *string  `json:"purchase_date,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

package models

import "time"

// PortfolioSnapshot guarda el valor del portafolio de un usuario en un momento dado.
// Se conserva como máximo un registro por usuario por día (el de mayor valor).
type PortfolioSnapshot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Date             time.Time `json:"date"`
	TotalValue       float64   `json:"total_value"`
	TotalInvested    float64   `json:"total_invested"`
	Profit           float64   `json:"profit"`
	ProfitPercentage float64   `json:"profit_percentage"`
	CreatedAt        time.Time `json:"created_at"`
}

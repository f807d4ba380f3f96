package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/google/uuid"
)

// HoldingsRepository maneja la persistencia de las tenencias del portafolio.
// Todas las operaciones están acotadas por user_id: una fila ajena se comporta
// igual que una fila inexistente.
type HoldingsRepository struct {
	db *sql.DB
}

func NewHoldingsRepository(db *sql.DB) *HoldingsRepository {
	return &HoldingsRepository{db: db}
}

// GetHoldings devuelve todas las tenencias del usuario, la más reciente primero
func (r *HoldingsRepository) GetHoldings(userID string) ([]models.PortfolioHolding, error) {
	query := `
		SELECT id, user_id, symbol, name, coin_id, amount, avg_price, purchase_date, COALESCE(notes, ''), created_at
		FROM portfolio_holdings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holdings []models.PortfolioHolding
	for rows.Next() {
		var h models.PortfolioHolding
		var purchaseDate time.Time
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Symbol,
			&h.Name,
			&h.CoinID,
			&h.Amount,
			&h.AvgPrice,
			&purchaseDate,
			&h.Notes,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		h.PurchaseDate = purchaseDate.Format("2006-01-02")
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// CreateHolding persiste una nueva tenencia y devuelve el registro creado
func (r *HoldingsRepository) CreateHolding(userID string, params models.CreateHoldingParams) (*models.PortfolioHolding, error) {
	holding := &models.PortfolioHolding{
		ID:           uuid.NewString(),
		UserID:       userID,
		Symbol:       params.Symbol,
		Name:         params.Name,
		CoinID:       params.CoinID,
		Amount:       params.Amount,
		AvgPrice:     params.AvgPrice,
		PurchaseDate: params.PurchaseDate,
		Notes:        params.Notes,
		CreatedAt:    time.Now(),
	}

	query := `
		INSERT INTO portfolio_holdings (id, user_id, symbol, name, coin_id, amount, avg_price, purchase_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		holding.ID,
		holding.UserID,
		holding.Symbol,
		holding.Name,
		holding.CoinID,
		holding.Amount,
		holding.AvgPrice,
		holding.PurchaseDate,
		holding.Notes,
		holding.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("error al crear la tenencia: %v", err)
	}

	return holding, nil
}

// GetHolding obtiene una tenencia puntual del usuario
func (r *HoldingsRepository) GetHolding(userID, holdingID string) (*models.PortfolioHolding, error) {
	query := `
		SELECT id, user_id, symbol, name, coin_id, amount, avg_price, purchase_date, COALESCE(notes, ''), created_at
		FROM portfolio_holdings
		WHERE user_id = $1 AND id = $2`

	var h models.PortfolioHolding
	var purchaseDate time.Time
	err := r.db.QueryRow(query, userID, holdingID).Scan(
		&h.ID,
		&h.UserID,
		&h.Symbol,
		&h.Name,
		&h.CoinID,
		&h.Amount,
		&h.AvgPrice,
		&purchaseDate,
		&h.Notes,
		&h.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrHoldingNotFound
	}
	if err != nil {
		return nil, err
	}
	h.PurchaseDate = purchaseDate.Format("2006-01-02")
	return &h, nil
}

// UpdateHolding aplica una actualización parcial y devuelve el registro resultante
func (r *HoldingsRepository) UpdateHolding(userID, holdingID string, params models.UpdateHoldingParams) (*models.PortfolioHolding, error) {
	current, err := r.GetHolding(userID, holdingID)
	if err != nil {
		return nil, err
	}

	if params.Symbol != nil {
		current.Symbol = *params.Symbol
	}
	if params.Name != nil {
		current.Name = *params.Name
	}
	if params.CoinID != nil {
		current.CoinID = *params.CoinID
	}
	if params.Amount != nil {
		current.Amount = *params.Amount
	}
	if params.AvgPrice != nil {
		current.AvgPrice = *params.AvgPrice
	}
	if params.PurchaseDate != nil {
		current.PurchaseDate = *params.PurchaseDate
	}
	if params.Notes != nil {
		current.Notes = *params.Notes
	}

	query := `
		UPDATE portfolio_holdings
		SET symbol = $1, name = $2, coin_id = $3, amount = $4, avg_price = $5, purchase_date = $6, notes = $7
		WHERE user_id = $8 AND id = $9`

	result, err := r.db.Exec(query,
		current.Symbol,
		current.Name,
		current.CoinID,
		current.Amount,
		current.AvgPrice,
		current.PurchaseDate,
		current.Notes,
		userID,
		holdingID,
	)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrHoldingNotFound
	}

	return current, nil
}

// DeleteHolding elimina exactamente una tenencia del usuario.
// Borrar un id inexistente o ajeno falla, nunca es un no-op silencioso.
func (r *HoldingsRepository) DeleteHolding(userID, holdingID string) error {
	query := `DELETE FROM portfolio_holdings WHERE user_id = $1 AND id = $2`

	result, err := r.db.Exec(query, userID, holdingID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrHoldingNotFound
	}

	return nil
}

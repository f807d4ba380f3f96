package repository

import (
	"database/sql"
	"log"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/google/uuid"
)

// SnapshotRepository guarda el historial del valor del portafolio
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot guarda un snapshot diario del portafolio. Se conserva un único
// registro por usuario por día: solo se reemplaza si el valor nuevo supera al existente.
func (r *SnapshotRepository) SaveSnapshot(userID string, totalValue, totalInvested, profit, profitPercentage float64) error {
	if totalValue <= 0 || totalInvested <= 0 {
		log.Printf("No se guardó el snapshot porque los valores no son válidos: totalValue=%f, totalInvested=%f", totalValue, totalInvested)
		return nil
	}

	currentTime := time.Now()
	dayStart := time.Date(currentTime.Year(), currentTime.Month(), currentTime.Day(), 0, 0, 0, 0, currentTime.Location())
	nextDay := dayStart.AddDate(0, 0, 1)

	existingQuery := `
		SELECT id, total_value FROM portfolio_snapshots
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY total_value DESC LIMIT 1`

	var existingID string
	var existingValue float64
	err := r.db.QueryRow(existingQuery, userID, dayStart, nextDay).Scan(&existingID, &existingValue)

	if err == nil {
		if existingValue >= totalValue {
			return nil
		}

		updateQuery := `
			UPDATE portfolio_snapshots
			SET total_value = $1, total_invested = $2, profit = $3, profit_percentage = $4, date = $5
			WHERE id = $6`

		_, err := r.db.Exec(updateQuery, totalValue, totalInvested, profit, profitPercentage, currentTime, existingID)
		if err != nil {
			log.Printf("Error al actualizar snapshot existente: %v", err)
		}
		return err
	}

	if err != sql.ErrNoRows {
		log.Printf("Error al verificar snapshot existente: %v", err)
		return err
	}

	insertQuery := `
		INSERT INTO portfolio_snapshots (id, user_id, date, total_value, total_invested, profit, profit_percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.Exec(insertQuery,
		uuid.NewString(),
		userID,
		currentTime,
		totalValue,
		totalInvested,
		profit,
		profitPercentage,
	)
	if err != nil {
		log.Printf("Error al guardar nuevo snapshot: %v", err)
	}
	return err
}

// GetSnapshots obtiene los snapshots del usuario desde una fecha dada, en orden cronológico
func (r *SnapshotRepository) GetSnapshots(userID string, since time.Time) ([]models.PortfolioSnapshot, error) {
	query := `
		SELECT id, user_id, date, total_value, total_invested, profit, profit_percentage, created_at
		FROM portfolio_snapshots
		WHERE user_id = $1 AND date >= $2
		ORDER BY date ASC`

	rows, err := r.db.Query(query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []models.PortfolioSnapshot
	for rows.Next() {
		var s models.PortfolioSnapshot
		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Date,
			&s.TotalValue,
			&s.TotalInvested,
			&s.Profit,
			&s.ProfitPercentage,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

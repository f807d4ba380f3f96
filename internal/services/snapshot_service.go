package services

import (
	"context"
	"fmt"
	"log"
)

// UserLister obtiene los ids de todos los usuarios registrados
type UserLister interface {
	GetAllUserIDs() ([]string, error)
}

// SnapshotStore persiste el historial del valor del portafolio
type SnapshotStore interface {
	SaveSnapshot(userID string, totalValue, totalInvested, profit, profitPercentage float64) error
}

// SnapshotService recorre los usuarios y guarda el valor actual de cada
// portafolio. Corre como job periódico del scheduler.
type SnapshotService struct {
	users     UserLister
	portfolio *PortfolioService
	store     SnapshotStore
	tokens    *TokenSource
}

func NewSnapshotService(users UserLister, portfolio *PortfolioService, store SnapshotStore, tokens *TokenSource) *SnapshotService {
	return &SnapshotService{
		users:     users,
		portfolio: portfolio,
		store:     store,
		tokens:    tokens,
	}
}

// Run toma un snapshot del portafolio de cada usuario. Exige una credencial
// vigente antes de tocar el almacén; sin credencial no se intenta nada.
func (s *SnapshotService) Run(ctx context.Context) error {
	if _, err := s.tokens.Token(ctx); err != nil {
		return fmt.Errorf("no se pudo obtener una credencial para el job de snapshots: %w", err)
	}

	userIDs, err := s.users.GetAllUserIDs()
	if err != nil {
		return fmt.Errorf("error al obtener usuarios: %v", err)
	}

	saved := 0
	for _, userID := range userIDs {
		summary, err := s.portfolio.GetPortfolio(userID)
		if err != nil {
			log.Printf("Error al calcular el portafolio de %s: %v", userID, err)
			continue
		}

		err = s.store.SaveSnapshot(
			userID,
			summary.TotalPortfolioValue,
			summary.TotalInvested,
			summary.TotalProfitOrLoss,
			summary.TotalProfitOrLossPercentage,
		)
		if err != nil {
			log.Printf("Error al guardar snapshot para %s: %v", userID, err)
			continue
		}
		saved++
	}

	log.Printf("Snapshots guardados para %d de %d usuarios", saved, len(userIDs))
	return nil
}

package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
)

var (
	// ErrValidation indica entrada inválida del usuario; se detecta antes de
	// cualquier llamada de red o de base de datos
	ErrValidation = errors.New("datos inválidos")
	// ErrPriceUnavailable indica que la resolución de precio agotó todas las estrategias
	ErrPriceUnavailable = errors.New("precio no disponible")
)

// HoldingStore es el contrato del adaptador de persistencia de tenencias
type HoldingStore interface {
	GetHoldings(userID string) ([]models.PortfolioHolding, error)
	CreateHolding(userID string, params models.CreateHoldingParams) (*models.PortfolioHolding, error)
	UpdateHolding(userID, holdingID string, params models.UpdateHoldingParams) (*models.PortfolioHolding, error)
	DeleteHolding(userID, holdingID string) error
}

// PriceResolver es el contrato del servicio de precios que usa el portafolio
type PriceResolver interface {
	GetCoinPrice(symbol string) (models.CoinPrice, error)
	BatchPrices(coinIDs []string) (models.SimplePrices, error)
}

// PortfolioService implementa el alta de activos y la agregación del portafolio
type PortfolioService struct {
	store  HoldingStore
	prices PriceResolver
	now    func() time.Time
}

func NewPortfolioService(store HoldingStore, prices PriceResolver) *PortfolioService {
	return &PortfolioService{
		store:  store,
		prices: prices,
		now:    time.Now,
	}
}

// AddAsset valida la entrada, resuelve el precio y persiste una nueva tenencia.
// La validación falla antes de tocar la red o la base de datos.
func (s *PortfolioService) AddAsset(userID string, req models.AddAssetRequest) (*models.PortfolioEntry, error) {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: el símbolo es requerido", ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a cero", ErrValidation)
	}
	if !req.RealTime() && (req.CustomPrice == nil || *req.CustomPrice <= 0) {
		return nil, fmt.Errorf("%w: se requiere un precio personalizado cuando no se usa el precio en tiempo real", ErrValidation)
	}

	var priceUsed float64
	var name, coinID string

	if req.RealTime() {
		coin, err := s.prices.GetCoinPrice(symbol)
		if err != nil {
			// Sin precio real no se escribe nada
			return nil, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
		}
		priceUsed = coin.Price
		name = coin.Name
		coinID = coin.CoinID
	} else {
		priceUsed = *req.CustomPrice

		// Resolución solo para mostrar nombre e id; si falla no aborta el alta
		coin, err := s.prices.GetCoinPrice(symbol)
		if err != nil {
			name = strings.ToUpper(symbol)
			coinID = strings.ToLower(symbol)
		} else {
			name = coin.Name
			coinID = coin.CoinID
		}
	}

	totalCost := req.Quantity * priceUsed
	timestamp := s.now()

	holding, err := s.store.CreateHolding(userID, models.CreateHoldingParams{
		Symbol:       strings.ToUpper(symbol),
		Name:         name,
		CoinID:       coinID,
		Amount:       req.Quantity,
		AvgPrice:     priceUsed,
		PurchaseDate: timestamp.Format("2006-01-02"),
		Notes:        fmt.Sprintf("Added via API - Total cost: $%.2f", totalCost),
	})
	if err != nil {
		return nil, err
	}

	return &models.PortfolioEntry{
		ID:        holding.ID,
		Symbol:    strings.ToUpper(symbol),
		Quantity:  req.Quantity,
		PriceUsed: priceUsed,
		TotalCost: totalCost,
		Timestamp: timestamp.Format(time.RFC3339),
		Name:      name,
		CoinID:    coinID,
	}, nil
}

// GetPortfolio agrupa las tenencias del usuario por ticker y calcula el resumen.
// Un fallo total o parcial del lote de precios degrada al precio promedio de
// compra de cada agregado, nunca aborta.
func (s *PortfolioService) GetPortfolio(userID string) (*models.PortfolioSummary, error) {
	holdings, err := s.store.GetHoldings(userID)
	if err != nil {
		return nil, err
	}

	if len(holdings) == 0 {
		return &models.PortfolioSummary{Holdings: []models.AggregatedHolding{}}, nil
	}

	// Coin ids distintos en orden de aparición
	var coinIDs []string
	seen := make(map[string]bool)
	for _, h := range holdings {
		if !seen[h.CoinID] {
			seen[h.CoinID] = true
			coinIDs = append(coinIDs, h.CoinID)
		}
	}

	currentPrices, err := s.prices.BatchPrices(coinIDs)
	if err != nil {
		log.Printf("Error al obtener precios actuales, usando precio promedio de compra: %v", err)
		currentPrices = nil
	}

	// Agrupar por ticker preservando el orden de aparición
	grouped := make(map[string]*models.AggregatedHolding)
	var order []string

	for _, h := range holdings {
		group, exists := grouped[h.Symbol]
		if !exists {
			group = &models.AggregatedHolding{
				Symbol: h.Symbol,
				Name:   h.Name,
				CoinID: h.CoinID,
			}
			grouped[h.Symbol] = group
			order = append(order, h.Symbol)
		}

		group.Entries = append(group.Entries, models.PortfolioEntry{
			ID:        h.ID,
			Symbol:    h.Symbol,
			Quantity:  h.Amount,
			PriceUsed: h.AvgPrice,
			TotalCost: h.Amount * h.AvgPrice,
			Timestamp: h.PurchaseDate,
			Name:      h.Name,
			CoinID:    h.CoinID,
		})
		group.TotalQuantity += h.Amount
		group.TotalInvested += h.Amount * h.AvgPrice
	}

	summary := &models.PortfolioSummary{
		Holdings: make([]models.AggregatedHolding, 0, len(order)),
	}

	for _, symbol := range order {
		group := grouped[symbol]

		if group.TotalQuantity > 0 {
			group.AverageBuyPrice = group.TotalInvested / group.TotalQuantity
		}

		price, ok := currentPrices.USD(group.CoinID)
		if ok && price > 0 {
			group.CurrentPrice = price
		} else {
			group.CurrentPrice = group.AverageBuyPrice
		}

		group.CurrentValue = group.TotalQuantity * group.CurrentPrice
		group.ProfitOrLoss = group.CurrentValue - group.TotalInvested
		if group.TotalInvested > 0 {
			group.ProfitOrLossPercentage = (group.ProfitOrLoss / group.TotalInvested) * 100
		}

		summary.TotalPortfolioValue += group.CurrentValue
		summary.TotalInvested += group.TotalInvested
		summary.Holdings = append(summary.Holdings, *group)
	}

	summary.TotalProfitOrLoss = summary.TotalPortfolioValue - summary.TotalInvested
	if summary.TotalInvested > 0 {
		summary.TotalProfitOrLossPercentage = (summary.TotalProfitOrLoss / summary.TotalInvested) * 100
	}

	return summary, nil
}

// ListHoldings devuelve las tenencias crudas del usuario
func (s *PortfolioService) ListHoldings(userID string) ([]models.PortfolioHolding, error) {
	return s.store.GetHoldings(userID)
}

// UpdateAsset aplica una actualización parcial sobre una tenencia
func (s *PortfolioService) UpdateAsset(userID, holdingID string, params models.UpdateHoldingParams) (*models.PortfolioHolding, error) {
	return s.store.UpdateHolding(userID, holdingID, params)
}

// DeleteAsset elimina una tenencia del usuario
func (s *PortfolioService) DeleteAsset(userID, holdingID string) error {
	return s.store.DeleteHolding(userID, holdingID)
}

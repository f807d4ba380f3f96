package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

type stubHoldingStore struct {
	holdings []models.PortfolioHolding
}

func (s *stubHoldingStore) GetHoldings(userID string) ([]models.PortfolioHolding, error) {
	return s.holdings, nil
}

func (s *stubHoldingStore) CreateHolding(userID string, params models.CreateHoldingParams) (*models.PortfolioHolding, error) {
	return &models.PortfolioHolding{ID: "h-1", UserID: userID, Symbol: params.Symbol}, nil
}

func (s *stubHoldingStore) UpdateHolding(userID, holdingID string, params models.UpdateHoldingParams) (*models.PortfolioHolding, error) {
	return nil, repository.ErrHoldingNotFound
}

func (s *stubHoldingStore) DeleteHolding(userID, holdingID string) error {
	return repository.ErrHoldingNotFound
}

type stubPriceResolver struct {
	err error
}

func (s *stubPriceResolver) GetCoinPrice(symbol string) (models.CoinPrice, error) {
	if s.err != nil {
		return models.CoinPrice{}, s.err
	}
	return models.CoinPrice{Price: 50000, Name: "Bitcoin", CoinID: "bitcoin"}, nil
}

func (s *stubPriceResolver) BatchPrices(coinIDs []string) (models.SimplePrices, error) {
	return models.SimplePrices{}, nil
}

func setupPortfolioRouter(t *testing.T, prices *stubPriceResolver) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	InitPortfolio(services.NewPortfolioService(&stubHoldingStore{}, prices), nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "user-test")
	})
	router.POST("/assets", AddAsset)
	router.DELETE("/holdings/:id", DeleteHolding)
	return router
}

func TestAddAssetStatusCodes(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		resolveErr error
		wantStatus int
	}{
		{
			name:       "alta exitosa",
			body:       `{"symbol":"btc","quantity":0.5}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "cantidad inválida",
			body:       `{"symbol":"btc","quantity":-1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "precio personalizado faltante",
			body:       `{"symbol":"btc","quantity":1,"use_real_time_price":false}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "moneda irresoluble",
			body:       `{"symbol":"zzzz","quantity":1}`,
			resolveErr: services.ErrCoinNotFound,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "cuerpo malformado",
			body:       `{"symbol":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupPortfolioRouter(t, &stubPriceResolver{err: tc.resolveErr})

			req := httptest.NewRequest(http.MethodPost, "/assets", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			if recorder.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", recorder.Code, tc.wantStatus, recorder.Body.String())
			}
		})
	}
}

func TestDeleteHoldingNotFound(t *testing.T) {
	router := setupPortfolioRouter(t, &stubPriceResolver{})

	req := httptest.NewRequest(http.MethodDelete, "/holdings/ajeno-123", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

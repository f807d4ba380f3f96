package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/models"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

var (
	portfolioService *services.PortfolioService
	snapshotRepo     *repository.SnapshotRepository
)

func InitPortfolio(ps *services.PortfolioService, sr *repository.SnapshotRepository) {
	portfolioService = ps
	snapshotRepo = sr
}

// AddAsset registra una nueva compra en el portafolio del usuario
func AddAsset(c *gin.Context) {
	var req models.AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userId")

	entry, err := portfolioService.AddAsset(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPriceUnavailable), errors.Is(err, services.ErrCoinNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al guardar el activo"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Activo agregado exitosamente",
		"asset":   entry,
	})
}

// GetPortfolio devuelve el resumen agregado del portafolio del usuario
func GetPortfolio(c *gin.Context) {
	userID := c.GetString("userId")

	summary, err := portfolioService.GetPortfolio(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al calcular el portafolio"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetHoldings devuelve las tenencias crudas, una por compra
func GetHoldings(c *gin.Context) {
	userID := c.GetString("userId")

	holdings, err := portfolioService.ListHoldings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener las tenencias"})
		return
	}

	if holdings == nil {
		holdings = []models.PortfolioHolding{}
	}
	c.JSON(http.StatusOK, gin.H{"holdings": holdings})
}

// UpdateHolding aplica una actualización parcial sobre una tenencia
func UpdateHolding(c *gin.Context) {
	userID := c.GetString("userId")
	holdingID := c.Param("id")

	var params models.UpdateHoldingParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	holding, err := portfolioService.UpdateAsset(userID, holdingID, params)
	if err != nil {
		if errors.Is(err, repository.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenencia no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al actualizar la tenencia"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tenencia actualizada",
		"holding": holding,
	})
}

// DeleteHolding elimina una tenencia; un id ajeno o inexistente devuelve 404
func DeleteHolding(c *gin.Context) {
	userID := c.GetString("userId")
	holdingID := c.Param("id")

	if err := portfolioService.DeleteAsset(userID, holdingID); err != nil {
		if errors.Is(err, repository.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tenencia no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al eliminar la tenencia"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tenencia eliminada"})
}

// GetPortfolioHistory devuelve los snapshots diarios del valor del portafolio
func GetPortfolioHistory(c *gin.Context) {
	userID := c.GetString("userId")

	days := 30
	if raw := c.Query("days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}

	since := time.Now().AddDate(0, 0, -days)
	snapshots, err := snapshotRepo.GetSnapshots(userID, since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al obtener el historial"})
		return
	}

	if snapshots == nil {
		snapshots = []models.PortfolioSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
}

package middleware

import (
	"net/http"
	"strconv"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-gonic/gin"
)

var marketService *services.MarketDataService

func InitMarket(ms *services.MarketDataService) {
	marketService = ms
}

// GetFearGreedIndex devuelve el índice de miedo y codicia actual
func GetFearGreedIndex(c *gin.Context) {
	c.JSON(http.StatusOK, marketService.GetFearGreedIndex())
}

// GetMarketPulse devuelve los indicadores del pulso del mercado
func GetMarketPulse(c *gin.Context) {
	c.JSON(http.StatusOK, marketService.GetMarketPulse())
}

// GetMarketSentiment devuelve el resumen de sentimiento del mercado
func GetMarketSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, marketService.GetSentiment())
}

// GetTopCoins devuelve el listado de las principales monedas por capitalización
func GetTopCoins(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	coins, err := marketService.GetTopCoins(limit)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al obtener el listado de mercado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// GetMarketMovers devuelve la moneda que más subió y la que más bajó en 24h
func GetMarketMovers(c *gin.Context) {
	movers, err := marketService.GetMarketMovers()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al obtener los movimientos del mercado"})
		return
	}

	c.JSON(http.StatusOK, movers)
}

package main

import (
	"context"
	"log"

	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/config"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/database"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/middleware"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/repository"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/scheduler"
	routes "github.com/AgusMolinaCode/Portfolio_Api.git/internal/server"
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Cargar configuración (incluye .env si existe)
	cfg := config.MustLoad()

	// Crear el router de Gin
	router := gin.Default()

	// Configurar CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.AllowedOrigin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Admin-Key"}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	// Inicializar base de datos
	if err := database.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatalf("Error al inicializar la base de datos: %v", err)
	}
	defer database.DB.Close()

	// Inicializar auth (local y Clerk)
	middleware.InitAuth(cfg)
	middleware.InitClerk(cfg)

	// Construir los servicios del portafolio
	gecko := services.NewCoinGeckoClient(cfg)
	priceService := services.NewPriceService(gecko, cfg.CoinGecko.CacheTTL)
	holdingsRepo := repository.NewHoldingsRepository(database.DB)
	portfolioService := services.NewPortfolioService(holdingsRepo, priceService)
	marketService := services.NewMarketDataService(cfg, gecko)
	snapshotRepo := repository.NewSnapshotRepository(database.DB)
	userRepo := repository.NewUserRepository()

	middleware.InitPortfolio(portfolioService, snapshotRepo)
	middleware.InitMarket(marketService)

	// Credencial de servicio para los jobs; se renueva antes de expirar
	tokenSource := services.NewTokenSource(func(ctx context.Context) (string, error) {
		return middleware.GenerateToken("system")
	})
	snapshotService := services.NewSnapshotService(userRepo, portfolioService, snapshotRepo, tokenSource)

	// Jobs periódicos: renovación de credencial y snapshots del portafolio
	sched := scheduler.New()
	sched.NewIntervalJob("token-refresh", tokenSource.Refresh, cfg.TokenRefresh, true)
	sched.NewIntervalJob("portfolio-snapshots", snapshotService.Run, cfg.SnapshotEvery, false)
	sched.Start()
	defer sched.Stop()

	// Configurar las rutas
	routes.RegisterRoutes(router)

	// Iniciar el servidor
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

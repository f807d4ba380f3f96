package routes

import (
	"github.com/AgusMolinaCode/Portfolio_Api.git/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine) {
	router.POST("/signup", middleware.Signup)
	router.POST("/login", middleware.Login)
	router.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)

	// Webhook de Clerk para sincronizar usuarios
	router.POST("/webhooks/clerk", middleware.ClerkWebhookHandler)

	// Datos de mercado: públicos, no requieren sesión
	market := router.Group("/market")
	{
		market.GET("/fear-greed", middleware.GetFearGreedIndex)
		market.GET("/pulse", middleware.GetMarketPulse)
		market.GET("/sentiment", middleware.GetMarketSentiment)
		market.GET("/coins", middleware.GetTopCoins)
		market.GET("/movers", middleware.GetMarketMovers)
	}

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.PUT("/users", middleware.UpdateUser)
		protected.DELETE("/users", middleware.DeleteUser)

		protected.POST("/assets", middleware.AddAsset)
		protected.GET("/holdings", middleware.GetHoldings)
		protected.PUT("/holdings/:id", middleware.UpdateHolding)
		protected.DELETE("/holdings/:id", middleware.DeleteHolding)
		protected.GET("/portfolio", middleware.GetPortfolio)
		protected.GET("/portfolio/history", middleware.GetPortfolioHistory)
	}

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/users", middleware.GetUsers)
		admin.GET("/users/:id", middleware.GetUser)
		admin.DELETE("/users/:id", middleware.DeleteUserByAdmin)
		admin.GET("/users/email/:email", middleware.GetUserByEmail)
	}
}

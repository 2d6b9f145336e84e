package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/IN4XI4/xlo-server/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth endpoints (open)
		v1.POST("/auth/register", handler.Register)
		v1.POST("/auth/login", handler.Login)
		v1.GET("/auth/me", middleware.Auth(authCfg), handler.GetProfile)

		// All remaining endpoints act on the authenticated user
		auth := v1.Group("", middleware.Auth(authCfg))
		{
			// Catalog listings, annotated with the caller's ownership
			auth.GET("/catalog/items", handler.ListCatalogItems)
			auth.GET("/catalog/colors", handler.ListCatalogColors)
			auth.GET("/catalog/skin-colors", handler.ListCatalogSkinColors)

			// Purchases
			auth.POST("/catalog/items/:id/buy", handler.BuyItem)
			auth.POST("/catalog/colors/:id/buy", handler.BuyColor)
			auth.POST("/catalog/skin-colors/:id/buy", handler.BuySkinColor)

			// Unlock listings
			auth.GET("/unlocks/items", handler.ListUnlockedItems)
			auth.GET("/unlocks/items/grouped", handler.GetGroupedUnlocks)
			auth.GET("/unlocks/items/defaults", handler.GetDefaultUnlocks)
			auth.GET("/unlocks/colors", handler.GetUnlockedColors)

			// Avatar
			auth.GET("/avatar/my-avatar", handler.GetAvatar)
			auth.PUT("/avatar", handler.UpdateAvatar)

			// Wallet
			auth.GET("/wallet/balance", handler.GetWalletBalance)
			auth.GET("/wallet/ledger", handler.ListWalletSpends)
		}

		// Wallet credits come from the payment service (API key only)
		v1.POST("/wallet/credit", middleware.APIKeyAuth(authCfg), handler.CreditWallet)
	}
}

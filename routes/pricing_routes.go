package routes

import (
	"github.com/gin-gonic/gin"

	"driveshare/internal/handlers"
	"driveshare/internal/middleware"
)

// SetupPricingRoutes sets up routes for smart pricing
func SetupPricingRoutes(r *gin.RouterGroup, pricingHandler *handlers.PricingHandler, jwtSecret string) {
	// Public estimate routes used before signup
	pricing := r.Group("/pricing")
	{
		pricing.POST("/quick-estimate", pricingHandler.GetQuickEstimate)
		pricing.GET("/market-range", pricingHandler.GetMarketPriceRange)
	}

	// Host-only pricing routes
	hostPricing := r.Group("/pricing")
	hostPricing.Use(middleware.AuthRequired(jwtSecret), middleware.HostRequired())
	{
		hostPricing.POST("/smart-price", pricingHandler.GetSmartPrice)
		hostPricing.POST("/earnings", pricingHandler.EstimateEarnings)
		hostPricing.GET("/listings/:id", pricingHandler.GetListingSmartPrice)
	}
}

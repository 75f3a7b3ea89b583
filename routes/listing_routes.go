package routes

import (
	"github.com/gin-gonic/gin"

	"driveshare/internal/handlers"
	"driveshare/internal/middleware"
)

// SetupListingRoutes sets up routes for listings and favorites
func SetupListingRoutes(r *gin.RouterGroup, listingHandler *handlers.ListingHandler, jwtSecret string) {
	// Public browse routes
	listings := r.Group("/listings")
	{
		listings.GET("/", listingHandler.SearchListings)
		listings.GET("/:id", listingHandler.GetListing)
	}

	// Authenticated favorites
	favorites := r.Group("/listings")
	favorites.Use(middleware.AuthRequired(jwtSecret))
	{
		favorites.POST("/:id/favorite", listingHandler.AddFavorite)
		favorites.DELETE("/:id/favorite", listingHandler.RemoveFavorite)
	}

	authed := r.Group("/favorites")
	authed.Use(middleware.AuthRequired(jwtSecret))
	{
		authed.GET("/", listingHandler.GetFavorites)
	}

	// Host management routes
	hostListings := r.Group("/host/listings")
	hostListings.Use(middleware.AuthRequired(jwtSecret), middleware.HostRequired())
	{
		hostListings.POST("/", listingHandler.CreateListing)
		hostListings.GET("/", listingHandler.GetMyListings)
		hostListings.PUT("/:id", listingHandler.UpdateListing)
		hostListings.DELETE("/:id", listingHandler.DeleteListing)
		hostListings.PUT("/:id/publish", listingHandler.PublishListing)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"driveshare/internal/handlers"
	"driveshare/internal/middleware"
)

// SetupBookingRoutes sets up routes for the booking flow
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("/eligibility", bookingHandler.CheckEligibility)
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.GET("/", bookingHandler.GetMyBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
	}

	// Host approval routes for pending bookings
	hostBookings := r.Group("/bookings")
	hostBookings.Use(middleware.AuthRequired(jwtSecret), middleware.HostRequired())
	{
		hostBookings.PUT("/:id/confirm", bookingHandler.ConfirmBooking)
		hostBookings.PUT("/:id/decline", bookingHandler.DeclineBooking)
	}
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/services"
	"driveshare/internal/utils"
	"driveshare/internal/validators"
)

type BookingHandler struct {
	bookingService services.BookingService
}

func NewBookingHandler(bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CheckEligibility previews the caller's booking eligibility for a listing
func (h *BookingHandler) CheckEligibility(c *gin.Context) {
	guestID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.EligibilityCheckRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	listingID, err := primitive.ObjectIDFromHex(request.ListingID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	eligibility, err := h.bookingService.CheckEligibility(c.Request.Context(), guestID, listingID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ELIGIBILITY_CHECK_FAILED", "Failed to check eligibility: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Eligibility checked successfully", eligibility)
}

// CreateBooking runs the risk assessment and creates the booking
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	guestID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.BookingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	listingID, err := primitive.ObjectIDFromHex(request.ListingID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), guestID, listingID, request.StartDate, request.EndDate)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingBlocked):
			utils.ErrorResponse(c, http.StatusForbidden, "BOOKING_BLOCKED", err.Error())
		case errors.Is(err, services.ErrInvalidDateRange):
			utils.BadRequestResponse(c, "Booking length out of allowed range")
		case errors.Is(err, services.ErrListingUnavailable):
			utils.ConflictResponse(c, "Listing is not available for booking")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_FAILED", "Failed to create booking: "+err.Error())
		}
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking retrieves a booking by ID
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, "Booking retrieved successfully", booking)
}

// GetMyBookings lists the caller's bookings with pagination
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	guestID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	params := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingService.GetGuestBookings(c.Request.Context(), guestID, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKINGS_FETCH_FAILED", "Failed to get bookings: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved successfully", bookings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(bookings),
	})
}

// ConfirmBooking lets the host approve a pending booking
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingService.ConfirmBooking, "Booking confirmed successfully")
}

// DeclineBooking lets the host decline a pending booking
func (h *BookingHandler) DeclineBooking(c *gin.Context) {
	h.transition(c, h.bookingService.DeclineBooking, "Booking declined successfully")
}

// CancelBooking lets the guest cancel their own booking
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingService.CancelBooking, "Booking cancelled successfully")
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, actorID, bookingID primitive.ObjectID) (*models.Booking, error), message string) {
	actorID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := fn(c.Request.Context(), actorID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotListingHost), errors.Is(err, services.ErrNotBookingOwner):
			utils.ForbiddenResponse(c)
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, "Booking cannot change to the requested status")
		default:
			utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_UPDATE_FAILED", "Failed to update booking: "+err.Error())
		}
		return
	}

	utils.SuccessResponse(c, message, booking)
}

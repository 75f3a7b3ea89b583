package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/services"
	"driveshare/internal/utils"
	"driveshare/internal/validators"
	"driveshare/pkg/pricing"
)

type PricingHandler struct {
	pricingService services.PricingService
}

func NewPricingHandler(pricingService services.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// GetSmartPrice calculates a full smart price recommendation from raw
// vehicle and host inputs
func (h *PricingHandler) GetSmartPrice(c *gin.Context) {
	var request validators.SmartPriceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	factors := &pricing.PricingFactors{
		VehicleType: pricing.VehicleType(request.VehicleType),
		Make:        request.Make,
		Model:       request.Model,
		ModelYear:   request.ModelYear,
		Location: pricing.Location{
			City:      request.City,
			State:     request.State,
			Latitude:  request.Latitude,
			Longitude: request.Longitude,
		},
		Features:    request.Features,
		InstantBook: request.InstantBook,
	}
	if request.HostRating > 0 || request.HostTrips > 0 {
		factors.HostReputation = &pricing.HostReputation{
			Rating:         request.HostRating,
			TripsCompleted: request.HostTrips,
			ResponseRate:   request.HostResponseRate,
		}
	}

	result, err := h.pricingService.GetSmartPrice(c.Request.Context(), factors)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_FAILED", "Failed to calculate smart price: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Smart price calculated successfully", result)
}

// GetListingSmartPrice calculates the smart price for an existing listing
func (h *PricingHandler) GetListingSmartPrice(c *gin.Context) {
	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	result, err := h.pricingService.GetSmartPriceForListing(c.Request.Context(), listingID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PRICING_FAILED", "Failed to calculate smart price: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Smart price calculated successfully", result)
}

// GetQuickEstimate returns the lightweight estimate used during listing
// onboarding
func (h *PricingHandler) GetQuickEstimate(c *gin.Context) {
	var request validators.QuickEstimateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	estimate, err := h.pricingService.GetQuickEstimate(c.Request.Context(), &pricing.QuickEstimateInput{
		VehicleType: pricing.VehicleType(request.VehicleType),
		ModelYear:   request.ModelYear,
		City:        request.City,
		Features:    request.Features,
		InstantBook: request.InstantBook,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ESTIMATE_FAILED", "Failed to calculate estimate: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Estimate calculated successfully", estimate)
}

// GetMarketPriceRange returns the illustrative market range for a vehicle
// type and city
func (h *PricingHandler) GetMarketPriceRange(c *gin.Context) {
	var request validators.MarketRangeRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	priceRange, err := h.pricingService.GetMarketPriceRange(c.Request.Context(), pricing.VehicleType(request.VehicleType), request.City, c.Query("state"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "MARKET_RANGE_FAILED", "Failed to get market price range: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Market price range retrieved successfully", priceRange)
}

// EstimateEarnings projects host earnings for a rate and protection plan
func (h *PricingHandler) EstimateEarnings(c *gin.Context) {
	var request validators.EarningsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	estimate, err := h.pricingService.EstimateEarnings(c.Request.Context(), request.DailyRate, request.ProtectionPlan, request.UtilizationRate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "EARNINGS_FAILED", "Failed to estimate earnings: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Earnings estimated successfully", estimate)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/services"
	"driveshare/internal/utils"
	"driveshare/internal/validators"
	"driveshare/pkg/pricing"
)

type ListingHandler struct {
	listingService services.ListingService
}

func NewListingHandler(listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// CreateListing creates a new draft listing for the authenticated host
func (h *ListingHandler) CreateListing(c *gin.Context) {
	hostID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	var request validators.ListingCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	listing, err := h.listingService.CreateListing(c.Request.Context(), hostID, &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTING_CREATE_FAILED", "Failed to create listing: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Listing created successfully", listing)
}

// UpdateListing updates an existing listing owned by the caller
func (h *ListingHandler) UpdateListing(c *gin.Context) {
	hostID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	var request validators.ListingUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	listing, err := h.listingService.UpdateListing(c.Request.Context(), hostID, listingID, &request)
	if err != nil {
		if errors.Is(err, services.ErrNotListingOwner) {
			utils.ForbiddenResponse(c)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTING_UPDATE_FAILED", "Failed to update listing: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Listing updated successfully", listing)
}

// DeleteListing removes a listing owned by the caller
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	hostID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.DeleteListing(c.Request.Context(), hostID, listingID); err != nil {
		if errors.Is(err, services.ErrNotListingOwner) {
			utils.ForbiddenResponse(c)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTING_DELETE_FAILED", "Failed to delete listing: "+err.Error())
		return
	}

	utils.NoContentResponse(c)
}

// PublishListing moves a draft listing to active
func (h *ListingHandler) PublishListing(c *gin.Context) {
	hostID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	listing, err := h.listingService.PublishListing(c.Request.Context(), hostID, listingID)
	if err != nil {
		if errors.Is(err, services.ErrNotListingOwner) {
			utils.ForbiddenResponse(c)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTING_PUBLISH_FAILED", "Failed to publish listing: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Listing published successfully", listing)
}

// GetListing retrieves a listing by ID
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	listing, err := h.listingService.GetListing(c.Request.Context(), listingID)
	if err != nil {
		utils.NotFoundResponse(c, "Listing")
		return
	}

	utils.SuccessResponse(c, "Listing retrieved successfully", listing)
}

// GetMyListings lists the caller's own listings
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	hostID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listings, err := h.listingService.GetHostListings(c.Request.Context(), hostID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTINGS_FETCH_FAILED", "Failed to get listings: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Listings retrieved successfully", listings)
}

// SearchListings searches active listings with filters and pagination
func (h *ListingHandler) SearchListings(c *gin.Context) {
	var request validators.ListingSearchRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	filter := &interfaces.ListingSearchFilter{
		City:        request.City,
		VehicleType: pricing.VehicleType(request.VehicleType),
		InstantBook: request.InstantBook,
		MaxRate:     request.MaxRate,
	}
	params := utils.GetPaginationParams(c)

	listings, total, err := h.listingService.SearchListings(c.Request.Context(), filter, params)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "LISTING_SEARCH_FAILED", "Failed to search listings: "+err.Error())
		return
	}

	utils.SuccessResponseWithMeta(c, "Listings retrieved successfully", listings, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
		Total:      total,
		Count:      len(listings),
	})
}

// AddFavorite adds a listing to the caller's favorites
func (h *ListingHandler) AddFavorite(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.AddFavorite(c.Request.Context(), userID, listingID); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FAVORITE_ADD_FAILED", "Failed to add favorite: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Listing added to favorites", nil)
}

// RemoveFavorite removes a listing from the caller's favorites
func (h *ListingHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.RemoveFavorite(c.Request.Context(), userID, listingID); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FAVORITE_REMOVE_FAILED", "Failed to remove favorite: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Listing removed from favorites", nil)
}

// GetFavorites lists the caller's favorited listings
func (h *ListingHandler) GetFavorites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c)
		return
	}

	listings, err := h.listingService.GetFavorites(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FAVORITES_FETCH_FAILED", "Failed to get favorites: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Favorites retrieved successfully", listings)
}

package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/utils"
	"driveshare/internal/validators"
	"driveshare/pkg/cache"
	"driveshare/pkg/geo"
	"driveshare/pkg/logger"
	"driveshare/pkg/pricing"
)

var ErrNotListingOwner = errors.New("listing does not belong to this host")

type ListingService interface {
	CreateListing(ctx context.Context, hostID primitive.ObjectID, req *validators.ListingCreateRequest) (*models.Listing, error)
	UpdateListing(ctx context.Context, hostID, listingID primitive.ObjectID, req *validators.ListingUpdateRequest) (*models.Listing, error)
	DeleteListing(ctx context.Context, hostID, listingID primitive.ObjectID) error
	PublishListing(ctx context.Context, hostID, listingID primitive.ObjectID) (*models.Listing, error)

	GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	GetHostListings(ctx context.Context, hostID primitive.ObjectID) ([]*models.Listing, error)
	SearchListings(ctx context.Context, filter *interfaces.ListingSearchFilter, params *utils.PaginationParams) ([]*models.Listing, int64, error)

	AddFavorite(ctx context.Context, userID, listingID primitive.ObjectID) error
	RemoveFavorite(ctx context.Context, userID, listingID primitive.ObjectID) error
	GetFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Listing, error)
}

type listingService struct {
	listingRepo interfaces.ListingRepository
	cache       *cache.RedisCache
	geocoder    geo.Geocoder
	logger      *logger.Logger
}

func NewListingService(
	listingRepo interfaces.ListingRepository,
	redisCache *cache.RedisCache,
	geocoder geo.Geocoder,
	log *logger.Logger,
) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		cache:       redisCache,
		geocoder:    geocoder,
		logger:      log,
	}
}

func (s *listingService) CreateListing(ctx context.Context, hostID primitive.ObjectID, req *validators.ListingCreateRequest) (*models.Listing, error) {
	listing := &models.Listing{
		HostID:         hostID,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		VehicleType:    pricing.VehicleType(req.VehicleType),
		City:           req.City,
		State:          req.State,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Features:       req.Features,
		Photos:         req.Photos,
		DailyRate:      req.DailyRate,
		ProtectionPlan: req.ProtectionPlan,
		InstantBook:    req.InstantBook,
		Status:         models.ListingStatusDraft,
	}
	if listing.ProtectionPlan == "" {
		listing.ProtectionPlan = "host_standard"
	}

	// Fill in the city from coordinates when the client sent only a pin.
	if listing.City == "" && listing.Latitude != 0 && listing.Longitude != 0 && s.geocoder != nil {
		if addr, err := s.geocoder.ReverseGeocode(ctx, listing.Latitude, listing.Longitude); err == nil && addr != nil {
			listing.City = addr.City
			if listing.State == "" {
				listing.State = addr.State
			}
		} else if err != nil {
			s.logger.WithError(err).Warn("reverse geocode failed for new listing")
		}
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.WithListingID(listing.ID.Hex()).Info("listing created")
	return listing, nil
}

func (s *listingService) UpdateListing(ctx context.Context, hostID, listingID primitive.ObjectID, req *validators.ListingUpdateRequest) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.HostID != hostID {
		return nil, ErrNotListingOwner
	}

	updates := make(map[string]interface{})
	if req.DailyRate != nil {
		updates["daily_rate"] = *req.DailyRate
	}
	if req.ProtectionPlan != nil {
		updates["protection_plan"] = *req.ProtectionPlan
	}
	if req.InstantBook != nil {
		updates["instant_book"] = *req.InstantBook
	}
	if req.Features != nil {
		updates["features"] = req.Features
	}
	if req.Photos != nil {
		updates["photos"] = req.Photos
	}
	if req.Status != nil {
		updates["status"] = models.ListingStatus(*req.Status)
	}

	if len(updates) == 0 {
		return listing, nil
	}

	if err := s.listingRepo.Update(ctx, listingID, updates); err != nil {
		return nil, err
	}

	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *listingService) DeleteListing(ctx context.Context, hostID, listingID primitive.ObjectID) error {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.HostID != hostID {
		return ErrNotListingOwner
	}

	return s.listingRepo.Delete(ctx, listingID)
}

func (s *listingService) PublishListing(ctx context.Context, hostID, listingID primitive.ObjectID) (*models.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.HostID != hostID {
		return nil, ErrNotListingOwner
	}

	if err := s.listingRepo.UpdateStatus(ctx, listingID, models.ListingStatusActive); err != nil {
		return nil, err
	}

	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *listingService) GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	return s.listingRepo.GetByID(ctx, id)
}

func (s *listingService) GetHostListings(ctx context.Context, hostID primitive.ObjectID) ([]*models.Listing, error) {
	return s.listingRepo.GetByHostID(ctx, hostID)
}

func (s *listingService) SearchListings(ctx context.Context, filter *interfaces.ListingSearchFilter, params *utils.PaginationParams) ([]*models.Listing, int64, error) {
	return s.listingRepo.Search(ctx, filter, params)
}

func (s *listingService) AddFavorite(ctx context.Context, userID, listingID primitive.ObjectID) error {
	if s.cache == nil {
		return fmt.Errorf("favorites are unavailable without redis")
	}

	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return err
	}

	return s.cache.AddFavorite(ctx, userID.Hex(), listingID.Hex())
}

func (s *listingService) RemoveFavorite(ctx context.Context, userID, listingID primitive.ObjectID) error {
	if s.cache == nil {
		return fmt.Errorf("favorites are unavailable without redis")
	}

	return s.cache.RemoveFavorite(ctx, userID.Hex(), listingID.Hex())
}

func (s *listingService) GetFavorites(ctx context.Context, userID primitive.ObjectID) ([]*models.Listing, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("favorites are unavailable without redis")
	}

	ids, err := s.cache.GetFavorites(ctx, userID.Hex())
	if err != nil {
		return nil, err
	}

	var listings []*models.Listing
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		listing, err := s.listingRepo.GetByID(ctx, objectID)
		if err != nil {
			// Listing may have been deleted since it was favorited.
			continue
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

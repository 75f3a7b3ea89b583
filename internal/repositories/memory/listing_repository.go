package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/utils"
	"driveshare/pkg/pricing"
)

var ErrNotFound = errors.New("not found")

// ListingRepository is the in-memory implementation used for demo mode and
// tests. State is injected per instance, never package level, so each test
// starts fresh.
type ListingRepository struct {
	mu       sync.RWMutex
	listings map[primitive.ObjectID]*models.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{
		listings: make(map[primitive.ObjectID]*models.Listing),
	}
}

func (r *ListingRepository) Create(ctx context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *ListingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}

	applyListingUpdates(listing, updates)
	listing.UpdatedAt = time.Now()
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *ListingRepository) GetByHostID(ctx context.Context, hostID primitive.ObjectID) ([]*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Listing
	for _, listing := range r.listings {
		if listing.HostID == hostID {
			copied := *listing
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *ListingRepository) Search(ctx context.Context, filter *interfaces.ListingSearchFilter, params *utils.PaginationParams) ([]*models.Listing, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Listing
	for _, listing := range r.listings {
		if listing.Status != models.ListingStatusActive {
			continue
		}
		if filter != nil {
			if filter.City != "" && listing.City != filter.City {
				continue
			}
			if filter.VehicleType != "" && listing.VehicleType != filter.VehicleType {
				continue
			}
			if filter.InstantBook != nil && listing.InstantBook != *filter.InstantBook {
				continue
			}
			if filter.MaxRate > 0 && listing.DailyRate > filter.MaxRate {
				continue
			}
		}
		copied := *listing
		matched = append(matched, &copied)
	}

	total := int64(len(matched))
	if params != nil {
		start := params.GetSkip()
		if start > len(matched) {
			start = len(matched)
		}
		end := start + params.GetLimit()
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}

func (r *ListingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ListingStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *ListingRepository) CountByCityAndType(ctx context.Context, city string, vehicleType pricing.VehicleType) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, listing := range r.listings {
		if listing.Status == models.ListingStatusActive && listing.City == city && listing.VehicleType == vehicleType {
			count++
		}
	}
	return count, nil
}

func applyListingUpdates(listing *models.Listing, updates map[string]interface{}) {
	for key, value := range updates {
		switch key {
		case "daily_rate":
			if v, ok := value.(int); ok {
				listing.DailyRate = v
			}
		case "instant_book":
			if v, ok := value.(bool); ok {
				listing.InstantBook = v
			}
		case "status":
			if v, ok := value.(models.ListingStatus); ok {
				listing.Status = v
			}
		case "features":
			if v, ok := value.([]string); ok {
				listing.Features = v
			}
		case "photos":
			if v, ok := value.([]string); ok {
				listing.Photos = v
			}
		case "protection_plan":
			if v, ok := value.(string); ok {
				listing.ProtectionPlan = v
			}
		case "city":
			if v, ok := value.(string); ok {
				listing.City = v
			}
		case "state":
			if v, ok := value.(string); ok {
				listing.State = v
			}
		}
	}
}

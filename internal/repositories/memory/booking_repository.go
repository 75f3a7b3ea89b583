package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/utils"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[primitive.ObjectID]*models.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[primitive.ObjectID]*models.Booking),
	}
}

func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, booking := range r.bookings {
		if booking.Reference == reference {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *BookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}

	for key, value := range updates {
		switch key {
		case "status":
			if v, ok := value.(models.BookingStatus); ok {
				booking.Status = v
			}
		case "confirmed_at":
			if v, ok := value.(time.Time); ok {
				booking.ConfirmedAt = &v
			}
		case "cancelled_at":
			if v, ok := value.(time.Time); ok {
				booking.CancelledAt = &v
			}
		}
	}
	booking.UpdatedAt = time.Now()
	return nil
}

func (r *BookingRepository) GetByGuestID(ctx context.Context, guestID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Booking
	for _, booking := range r.bookings {
		if booking.GuestID == guestID {
			copied := *booking
			matched = append(matched, &copied)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

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

func (r *BookingRepository) GetByListingID(ctx context.Context, listingID primitive.ObjectID) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*models.Booking
	for _, booking := range r.bookings {
		if booking.ListingID == listingID {
			copied := *booking
			matched = append(matched, &copied)
		}
	}
	return matched, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	updates := map[string]interface{}{
		"status": status,
	}

	switch status {
	case models.BookingStatusConfirmed:
		updates["confirmed_at"] = time.Now()
	case models.BookingStatusCancelled:
		updates["cancelled_at"] = time.Now()
	}

	return r.Update(ctx, id, updates)
}

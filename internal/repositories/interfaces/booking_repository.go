package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/utils"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByReference(ctx context.Context, reference string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	GetByGuestID(ctx context.Context, guestID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByListingID(ctx context.Context, listingID primitive.ObjectID) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
}

package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/utils"
	"driveshare/pkg/pricing"
)

// ListingSearchFilter narrows a listing search. Zero values match anything.
type ListingSearchFilter struct {
	City        string
	VehicleType pricing.VehicleType
	InstantBook *bool
	MaxRate     int
}

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	GetByHostID(ctx context.Context, hostID primitive.ObjectID) ([]*models.Listing, error)
	Search(ctx context.Context, filter *ListingSearchFilter, params *utils.PaginationParams) ([]*models.Listing, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ListingStatus) error
	CountByCityAndType(ctx context.Context, city string, vehicleType pricing.VehicleType) (int64, error)
}

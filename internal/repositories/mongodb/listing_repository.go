package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/utils"
	"driveshare/pkg/pricing"
)

type listingRepository struct {
	collection *mongo.Collection
}

func NewListingRepository(db *mongo.Database) interfaces.ListingRepository {
	return &listingRepository{
		collection: db.Collection("listings"),
	}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	listing.ID = primitive.NewObjectID()
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, listing)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	var listing models.Listing
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("listing not found")
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}

func (r *listingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}

func (r *listingRepository) GetByHostID(ctx context.Context, hostID primitive.ObjectID) ([]*models.Listing, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"host_id": hostID})
	if err != nil {
		return nil, fmt.Errorf("failed to get host listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []*models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode host listings: %w", err)
	}

	return listings, nil
}

func (r *listingRepository) Search(ctx context.Context, filter *interfaces.ListingSearchFilter, params *utils.PaginationParams) ([]*models.Listing, int64, error) {
	query := bson.M{"status": models.ListingStatusActive}
	if filter != nil {
		if filter.City != "" {
			query["city"] = filter.City
		}
		if filter.VehicleType != "" {
			query["vehicle_type"] = filter.VehicleType
		}
		if filter.InstantBook != nil {
			query["instant_book"] = *filter.InstantBook
		}
		if filter.MaxRate > 0 {
			query["daily_rate"] = bson.M{"$lte": filter.MaxRate}
		}
	}

	if params == nil {
		params = utils.DefaultPaginationParams()
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, query, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []*models.Listing
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings: %w", err)
	}

	return listings, total, nil
}

func (r *listingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ListingStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

func (r *listingRepository) CountByCityAndType(ctx context.Context, city string, vehicleType pricing.VehicleType) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"status":       models.ListingStatusActive,
		"city":         city,
		"vehicle_type": vehicleType,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count listings by city and type: %w", err)
	}

	return count, nil
}

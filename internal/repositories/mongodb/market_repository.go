package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/pkg/pricing"
)

type marketDataRepository struct {
	collection *mongo.Collection
}

func NewMarketDataRepository(db *mongo.Database) interfaces.MarketDataRepository {
	return &marketDataRepository{
		collection: db.Collection("market_stats"),
	}
}

func (r *marketDataRepository) GetStat(ctx context.Context, city string, vehicleType pricing.VehicleType) (*models.MarketStat, error) {
	var stat models.MarketStat
	err := r.collection.FindOne(ctx, bson.M{
		"city":         city,
		"vehicle_type": vehicleType,
	}).Decode(&stat)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get market stat: %w", err)
	}

	return &stat, nil
}

func (r *marketDataRepository) Upsert(ctx context.Context, stat *models.MarketStat) error {
	if stat.ID.IsZero() {
		stat.ID = primitive.NewObjectID()
	}
	if stat.ObservedAt.IsZero() {
		stat.ObservedAt = time.Now()
	}

	filter := bson.M{
		"city":         stat.City,
		"vehicle_type": stat.VehicleType,
	}
	update := bson.M{"$set": bson.M{
		"state":              stat.State,
		"average_daily_rate": stat.AverageDailyRate,
		"demand_level":       stat.DemandLevel,
		"competitor_count":   stat.CompetitorCount,
		"seasonal_factor":    stat.SeasonalFactor,
		"observed_at":        stat.ObservedAt,
	}}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert market stat: %w", err)
	}

	return nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/pkg/pricing"
)

// MarketStat is a stored market observation for a city and vehicle type,
// refreshed out of band by an aggregation job.
type MarketStat struct {
	ID               primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	City             string              `json:"city" bson:"city" validate:"required"`
	State            string              `json:"state" bson:"state"`
	VehicleType      pricing.VehicleType `json:"vehicle_type" bson:"vehicle_type" validate:"required"`
	AverageDailyRate float64             `json:"average_daily_rate" bson:"average_daily_rate"`
	DemandLevel      pricing.DemandLevel `json:"demand_level" bson:"demand_level"`
	CompetitorCount  int                 `json:"competitor_count" bson:"competitor_count"`
	SeasonalFactor   float64             `json:"seasonal_factor" bson:"seasonal_factor"`
	ObservedAt       time.Time           `json:"observed_at" bson:"observed_at"`
}

// Snapshot converts the stored stat into the engine's input form.
func (m *MarketStat) Snapshot() *pricing.MarketSnapshot {
	return &pricing.MarketSnapshot{
		AverageDailyRate: m.AverageDailyRate,
		DemandLevel:      m.DemandLevel,
		CompetitorCount:  m.CompetitorCount,
		SeasonalFactor:   m.SeasonalFactor,
	}
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/pkg/pricing"
)

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusActive    ListingStatus = "active"
	ListingStatusPaused    ListingStatus = "paused"
	ListingStatusSuspended ListingStatus = "suspended"
)

// Listing is a host's vehicle offered for rent.
type Listing struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	HostID         primitive.ObjectID  `json:"host_id" bson:"host_id" validate:"required"`
	Make           string              `json:"make" bson:"make" validate:"required"`
	Model          string              `json:"model" bson:"model" validate:"required"`
	Year           int                 `json:"year" bson:"year" validate:"required"`
	VehicleType    pricing.VehicleType `json:"vehicle_type" bson:"vehicle_type" validate:"required"`
	City           string              `json:"city" bson:"city" validate:"required"`
	State          string              `json:"state" bson:"state"`
	Latitude       float64             `json:"latitude" bson:"latitude"`
	Longitude      float64             `json:"longitude" bson:"longitude"`
	Features       []string            `json:"features" bson:"features"`
	Photos         []string            `json:"photos" bson:"photos"`
	DailyRate      int                 `json:"daily_rate" bson:"daily_rate" validate:"required,min=1"`
	ProtectionPlan string              `json:"protection_plan" bson:"protection_plan" default:"host_standard"`
	InstantBook    bool                `json:"instant_book" bson:"instant_book" default:"false"`
	Status         ListingStatus       `json:"status" bson:"status" default:"draft"`
	TripsCompleted int                 `json:"trips_completed" bson:"trips_completed" default:"0"`
	AverageRating  float64             `json:"average_rating" bson:"average_rating" default:"0"`
	CreatedAt      time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at" bson:"updated_at"`
}

// PricingFactors assembles the engine input for this listing together with
// its host's reputation and an optional market snapshot.
func (l *Listing) PricingFactors(host *User, market *pricing.MarketSnapshot) *pricing.PricingFactors {
	factors := &pricing.PricingFactors{
		VehicleType: l.VehicleType,
		Make:        l.Make,
		Model:       l.Model,
		ModelYear:   l.Year,
		Location: pricing.Location{
			City:      l.City,
			State:     l.State,
			Latitude:  l.Latitude,
			Longitude: l.Longitude,
		},
		Features:    l.Features,
		InstantBook: l.InstantBook,
		Market:      market,
	}

	if host != nil && host.HostProfile != nil {
		factors.HostReputation = &pricing.HostReputation{
			Rating:         host.HostProfile.Rating,
			TripsCompleted: host.HostProfile.TripsCompleted,
			ResponseRate:   host.HostProfile.ResponseRate,
		}
	}

	return factors
}

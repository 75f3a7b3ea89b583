package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/pkg/risk"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusDeclined  BookingStatus = "declined"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a guest's reservation of a listing. The risk decision taken at
// booking time is snapshotted for audit; eligibility itself is recomputed on
// every attempt, never read back from here.
type Booking struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Reference    string             `json:"reference" bson:"reference"`
	ListingID    primitive.ObjectID `json:"listing_id" bson:"listing_id" validate:"required"`
	GuestID      primitive.ObjectID `json:"guest_id" bson:"guest_id" validate:"required"`
	HostID       primitive.ObjectID `json:"host_id" bson:"host_id"`
	StartDate    time.Time          `json:"start_date" bson:"start_date" validate:"required"`
	EndDate      time.Time          `json:"end_date" bson:"end_date" validate:"required"`
	DailyRate    int                `json:"daily_rate" bson:"daily_rate"`
	TotalAmount  int                `json:"total_amount" bson:"total_amount"`
	Status       BookingStatus      `json:"status" bson:"status" default:"pending"`
	RiskDecision *risk.Score        `json:"risk_decision,omitempty" bson:"risk_decision,omitempty"`
	Restrictions []string           `json:"restrictions,omitempty" bson:"restrictions,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
	ConfirmedAt  *time.Time         `json:"confirmed_at,omitempty" bson:"confirmed_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// Days reports the rental length in whole days, minimum one.
func (b *Booking) Days() int {
	days := int(b.EndDate.Sub(b.StartDate).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

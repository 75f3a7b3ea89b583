package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/pkg/risk"
)

type UserType string

const (
	UserTypeGuest UserType = "guest"
	UserTypeHost  UserType = "host"
	UserTypeAdmin UserType = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusDeleted   UserStatus = "deleted"
)

// HostProfile carries reputation stats surfaced to pricing.
type HostProfile struct {
	Rating         float64 `json:"rating" bson:"rating"`
	TripsCompleted int     `json:"trips_completed" bson:"trips_completed"`
	ResponseRate   float64 `json:"response_rate" bson:"response_rate"`
}

// GuestProfile carries the identity and history attributes the risk engine
// scores a booking attempt against.
type GuestProfile struct {
	IDVerified        bool      `json:"id_verified" bson:"id_verified"`
	FaceMatchVerified bool      `json:"face_match_verified" bson:"face_match_verified"`
	CompletedTrips    int       `json:"completed_trips" bson:"completed_trips"`
	AverageRating     float64   `json:"average_rating" bson:"average_rating"`
	AtFaultClaims     int       `json:"at_fault_claims" bson:"at_fault_claims"`
	DateOfBirth       time.Time `json:"date_of_birth" bson:"date_of_birth"`
}

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Email        string             `json:"email" bson:"email" validate:"required,email"`
	FirstName    string             `json:"first_name" bson:"first_name" validate:"required"`
	LastName     string             `json:"last_name" bson:"last_name" validate:"required"`
	Phone        string             `json:"phone" bson:"phone"`
	UserType     UserType           `json:"user_type" bson:"user_type" default:"guest"`
	Status       UserStatus         `json:"status" bson:"status" default:"active"`
	GuestProfile *GuestProfile      `json:"guest_profile,omitempty" bson:"guest_profile,omitempty"`
	HostProfile  *HostProfile       `json:"host_profile,omitempty" bson:"host_profile,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// AccountAgeMonths reports whole months since signup as of now.
func (u *User) AccountAgeMonths(now time.Time) int {
	if u.CreatedAt.IsZero() || u.CreatedAt.After(now) {
		return 0
	}
	years := now.Year() - u.CreatedAt.Year()
	months := int(now.Month()) - int(u.CreatedAt.Month())
	total := years*12 + months
	if now.Day() < u.CreatedAt.Day() {
		total--
	}
	if total < 0 {
		return 0
	}
	return total
}

// DriverAge reports the guest's age in whole years, or 0 when the date of
// birth is unknown.
func (u *User) DriverAge(now time.Time) int {
	if u.GuestProfile == nil || u.GuestProfile.DateOfBirth.IsZero() {
		return 0
	}
	dob := u.GuestProfile.DateOfBirth
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// RiskInput builds the risk engine input from the stored guest profile.
func (u *User) RiskInput(now time.Time) *risk.CalculationInput {
	input := &risk.CalculationInput{
		UserID:           u.ID.Hex(),
		AccountAgeMonths: u.AccountAgeMonths(now),
		DriverAge:        u.DriverAge(now),
	}

	if u.GuestProfile != nil {
		input.IDVerified = u.GuestProfile.IDVerified
		input.FaceMatchVerified = u.GuestProfile.FaceMatchVerified
		input.CompletedTrips = u.GuestProfile.CompletedTrips
		input.AverageRating = u.GuestProfile.AverageRating
		input.AtFaultClaims = u.GuestProfile.AtFaultClaims
	}

	return input
}

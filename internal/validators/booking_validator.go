package validators

import "time"

type BookingCreateRequest struct {
	ListingID string    `json:"listing_id" validate:"required,object_id"`
	StartDate time.Time `json:"start_date" validate:"required,future_date"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
}

type BookingCancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

// EligibilityCheckRequest lets a client preview a guest's booking
// eligibility before committing to a booking attempt.
type EligibilityCheckRequest struct {
	ListingID string `json:"listing_id" validate:"required,object_id"`
}

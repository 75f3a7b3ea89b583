package risk

import "time"

// Level is the coarse risk tier derived from a numeric score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelVeryHigh Level = "very_high"
)

type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// CalculationInput collects the renter attributes the score is computed
// from. The caller validates shape; out-of-range numerics are clamped
// defensively by the scorer.
type CalculationInput struct {
	UserID            string  `json:"user_id"`
	IDVerified        bool    `json:"id_verified"`
	FaceMatchVerified bool    `json:"face_match_verified"`
	CompletedTrips    int     `json:"completed_trips"`
	AverageRating     float64 `json:"average_rating"`
	AtFaultClaims     int     `json:"at_fault_claims"`
	AccountAgeMonths  int     `json:"account_age_months"`
	DriverAge         int     `json:"driver_age"`
}

// Factor explains one contribution to the score for UI display.
type Factor struct {
	Name        string `json:"name"`
	Impact      Impact `json:"impact"`
	Weight      int    `json:"weight"`
	Description string `json:"description"`
}

// Score is the scoring result. Higher scores mean lower risk; the value is
// always clamped to [0,100].
type Score struct {
	Score                  int       `json:"score"`
	Level                  Level     `json:"level"`
	Factors                []Factor  `json:"factors"`
	CanInstantBook         bool      `json:"can_instant_book"`
	RequiresManualApproval bool      `json:"requires_manual_approval"`
	Restrictions           []string  `json:"restrictions"`
	CalculatedAt           time.Time `json:"calculated_at"`
}

// BookingEligibility is the decision record returned to the booking flow.
// Derived per booking attempt, never persisted as-is.
type BookingEligibility struct {
	Eligible         bool     `json:"eligible"`
	CanInstantBook   bool     `json:"can_instant_book"`
	RequiresApproval bool     `json:"requires_approval"`
	Restrictions     []string `json:"restrictions"`
	BlockedReason    string   `json:"blocked_reason,omitempty"`
	Risk             *Score   `json:"risk_score"`
}

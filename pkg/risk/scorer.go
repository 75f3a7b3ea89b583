package risk

import (
	"context"
	"errors"
	"math"
	"time"
)

var ErrNilInput = errors.New("risk: nil input")

// Weights holds the point values of the additive scoring model. They are
// configuration rather than hard constants so product can retune tiers
// without a code change.
type Weights struct {
	BaseOffset               int     `json:"base_offset"`
	IdentityVerification     int     `json:"identity_verification"`
	IDOnlyCreditFraction     float64 `json:"id_only_credit_fraction"`
	TripHistory              int     `json:"trip_history"`
	RatingExcellent          int     `json:"rating_excellent"`
	RatingGood               int     `json:"rating_good"`
	ClaimPenalty             int     `json:"claim_penalty"`
	MaxClaimPenalty          int     `json:"max_claim_penalty"`
	EstablishedAccount       int     `json:"established_account"`
	EstablishedAccountMonths int     `json:"established_account_months"`
	YoungDriver              int     `json:"young_driver"`
	YoungDriverAgeLimit      int     `json:"young_driver_age_limit"`
}

// Thresholds maps a score onto a risk tier. Scores at or above Low are low
// risk, at or above Medium are medium, at or above High are high, and
// anything below is very high.
type Thresholds struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

type Config struct {
	Weights    Weights    `json:"weights"`
	Thresholds Thresholds `json:"thresholds"`
}

func DefaultConfig() *Config {
	return &Config{
		Weights: Weights{
			BaseOffset:               45,
			IdentityVerification:     20,
			IDOnlyCreditFraction:     0.5,
			TripHistory:              15,
			RatingExcellent:          10,
			RatingGood:               5,
			ClaimPenalty:             10,
			MaxClaimPenalty:          30,
			EstablishedAccount:       5,
			EstablishedAccountMonths: 12,
			YoungDriver:              10,
			YoungDriverAgeLimit:      25,
		},
		Thresholds: Thresholds{
			Low:    80,
			Medium: 60,
			High:   40,
		},
	}
}

// Scorer computes booking risk scores. It holds no mutable state and is safe
// for concurrent use.
type Scorer struct {
	config *Config
	now    func() time.Time
}

func NewScorer(config *Config) *Scorer {
	if config == nil {
		config = DefaultConfig()
	}
	return &Scorer{
		config: config,
		now:    time.Now,
	}
}

// CalculateRiskScore runs the additive point model over the renter
// attributes. More verification, history and rating never lower the score;
// more claims or a younger driver never raise it.
func (s *Scorer) CalculateRiskScore(ctx context.Context, input *CalculationInput) (*Score, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	w := s.config.Weights

	completedTrips := maxInt(input.CompletedTrips, 0)
	atFaultClaims := maxInt(input.AtFaultClaims, 0)
	accountAge := maxInt(input.AccountAgeMonths, 0)
	rating := clampRating(input.AverageRating)

	score := w.BaseOffset
	factors := make([]Factor, 0, 6)

	identityPoints, identityFactor := s.identityCredit(input.IDVerified, input.FaceMatchVerified)
	score += identityPoints
	factors = append(factors, identityFactor)

	tripPoints := s.tripHistoryCredit(completedTrips)
	score += tripPoints
	factors = append(factors, Factor{
		Name:        "trip_history",
		Impact:      impactForPoints(tripPoints),
		Weight:      tripPoints,
		Description: tripHistoryDescription(completedTrips),
	})

	ratingPoints := s.ratingCredit(rating)
	score += ratingPoints
	factors = append(factors, Factor{
		Name:        "rating",
		Impact:      impactForPoints(ratingPoints),
		Weight:      ratingPoints,
		Description: ratingDescription(rating, completedTrips),
	})

	if atFaultClaims > 0 {
		penalty := minInt(atFaultClaims*w.ClaimPenalty, w.MaxClaimPenalty)
		score -= penalty
		factors = append(factors, Factor{
			Name:        "at_fault_claims",
			Impact:      ImpactNegative,
			Weight:      -penalty,
			Description: "At-fault claims on record",
		})
	}

	if accountAge >= w.EstablishedAccountMonths {
		score += w.EstablishedAccount
		factors = append(factors, Factor{
			Name:        "established_account",
			Impact:      ImpactPositive,
			Weight:      w.EstablishedAccount,
			Description: "Account established for over a year",
		})
	}

	if input.DriverAge > 0 && input.DriverAge < w.YoungDriverAgeLimit {
		score -= w.YoungDriver
		factors = append(factors, Factor{
			Name:        "young_driver",
			Impact:      ImpactNegative,
			Weight:      -w.YoungDriver,
			Description: "Driver under the minimum experience age",
		})
	}

	score = clampScore(score)
	level := s.categorize(score)

	canInstantBook := level == LevelLow || level == LevelMedium

	return &Score{
		Score:                  score,
		Level:                  level,
		Factors:                factors,
		CanInstantBook:         canInstantBook,
		RequiresManualApproval: !canInstantBook && level != LevelVeryHigh,
		Restrictions:           restrictionsFor(level),
		CalculatedAt:           s.now(),
	}, nil
}

// DeriveEligibility resolves the booking decision for a vehicle from a
// computed risk score and the vehicle's instant-book setting.
func (s *Scorer) DeriveEligibility(score *Score, vehicleInstantBookEnabled bool) *BookingEligibility {
	if score == nil {
		return &BookingEligibility{
			Eligible:      false,
			BlockedReason: "Risk assessment unavailable",
		}
	}

	eligibility := &BookingEligibility{
		Eligible:       score.Level != LevelVeryHigh,
		CanInstantBook: vehicleInstantBookEnabled && score.CanInstantBook,
		Restrictions:   score.Restrictions,
		Risk:           score,
	}
	eligibility.RequiresApproval = eligibility.Eligible && !eligibility.CanInstantBook

	if !eligibility.Eligible {
		eligibility.BlockedReason = "Booking blocked: account risk level too high. Contact support to verify your identity."
	}

	return eligibility
}

func (s *Scorer) identityCredit(idVerified, faceMatchVerified bool) (int, Factor) {
	w := s.config.Weights

	switch {
	case idVerified && faceMatchVerified:
		return w.IdentityVerification, Factor{
			Name:        "identity_verification",
			Impact:      ImpactPositive,
			Weight:      w.IdentityVerification,
			Description: "Government ID and face match verified",
		}
	case idVerified:
		// Partial credit for ID-only pending product confirmation; the face
		// match alone carries no weight without an ID document to match.
		partial := int(math.Round(float64(w.IdentityVerification) * w.IDOnlyCreditFraction))
		return partial, Factor{
			Name:        "identity_verification",
			Impact:      ImpactPositive,
			Weight:      partial,
			Description: "Government ID verified, face match pending",
		}
	default:
		return 0, Factor{
			Name:        "identity_verification",
			Impact:      ImpactNegative,
			Weight:      0,
			Description: "Identity not verified",
		}
	}
}

// tripHistoryCredit scales monotonic tiers up to the trip history cap.
func (s *Scorer) tripHistoryCredit(completedTrips int) int {
	full := s.config.Weights.TripHistory

	switch {
	case completedTrips >= 50:
		return full
	case completedTrips >= 20:
		return full * 4 / 5
	case completedTrips >= 10:
		return full * 3 / 5
	case completedTrips >= 5:
		return full * 2 / 5
	case completedTrips >= 1:
		return full / 5
	default:
		return 0
	}
}

func (s *Scorer) ratingCredit(rating float64) int {
	switch {
	case rating >= 4.8:
		return s.config.Weights.RatingExcellent
	case rating >= 4.5:
		return s.config.Weights.RatingGood
	default:
		return 0
	}
}

func (s *Scorer) categorize(score int) Level {
	t := s.config.Thresholds
	switch {
	case score >= t.Low:
		return LevelLow
	case score >= t.Medium:
		return LevelMedium
	case score >= t.High:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// restrictionsFor surfaces advisory strings for the UI. Low risk carries no
// restrictions.
func restrictionsFor(level Level) []string {
	switch level {
	case LevelMedium:
		return []string{"Security deposit required"}
	case LevelHigh:
		return []string{"Security deposit required", "Host approval required"}
	case LevelVeryHigh:
		return []string{"Booking not permitted at current risk level"}
	default:
		return nil
	}
}

func impactForPoints(points int) Impact {
	switch {
	case points > 0:
		return ImpactPositive
	case points < 0:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

func tripHistoryDescription(completedTrips int) string {
	switch {
	case completedTrips >= 50:
		return "Extensive trip history"
	case completedTrips >= 10:
		return "Solid trip history"
	case completedTrips >= 1:
		return "Some completed trips"
	default:
		return "No completed trips yet"
	}
}

func ratingDescription(rating float64, completedTrips int) string {
	switch {
	case completedTrips == 0:
		return "No rating history"
	case rating >= 4.8:
		return "Excellent guest rating"
	case rating >= 4.5:
		return "Good guest rating"
	default:
		return "Rating below bonus threshold"
	}
}

func clampRating(rating float64) float64 {
	if math.IsNaN(rating) || rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package risk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScorer() *Scorer {
	s := NewScorer(nil)
	s.now = func() time.Time {
		return time.Date(2024, time.November, 15, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func TestCalculateRiskScore_NilInput(t *testing.T) {
	s := newTestScorer()

	_, err := s.CalculateRiskScore(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestCalculateRiskScore_BrandNewUser(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:    "u-1",
		DriverAge: 30,
	})
	require.NoError(t, err)

	// Base offset only: lands in the high band, not at either extreme.
	assert.Equal(t, 45, score.Score)
	assert.Equal(t, LevelHigh, score.Level)
	assert.False(t, score.CanInstantBook)
	assert.True(t, score.RequiresManualApproval)
	assert.NotEmpty(t, score.Restrictions)
}

func TestCalculateRiskScore_EstablishedVerifiedGuest(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:            "u-2",
		IDVerified:        true,
		FaceMatchVerified: true,
		CompletedTrips:    60,
		AverageRating:     4.9,
		AccountAgeMonths:  24,
		DriverAge:         38,
	})
	require.NoError(t, err)

	// 45 + 20 + 15 + 10 + 5 = 95.
	assert.Equal(t, 95, score.Score)
	assert.Equal(t, LevelLow, score.Level)
	assert.True(t, score.CanInstantBook)
	assert.False(t, score.RequiresManualApproval)
	assert.Empty(t, score.Restrictions)
	assert.False(t, score.CalculatedAt.IsZero())
}

func TestCalculateRiskScore_IDOnlyPartialCredit(t *testing.T) {
	s := newTestScorer()

	idOnly, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-3", IDVerified: true, DriverAge: 30,
	})
	require.NoError(t, err)

	both, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-3", IDVerified: true, FaceMatchVerified: true, DriverAge: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, 55, idOnly.Score)
	assert.Equal(t, 65, both.Score)
}

func TestCalculateRiskScore_ClaimsAndYoungDriverPenalties(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:        "u-4",
		AtFaultClaims: 2,
		DriverAge:     22,
	})
	require.NoError(t, err)

	// 45 - 20 (claims) - 10 (young driver) = 15.
	assert.Equal(t, 15, score.Score)
	assert.Equal(t, LevelVeryHigh, score.Level)
	assert.False(t, score.CanInstantBook)
	assert.False(t, score.RequiresManualApproval)
}

func TestCalculateRiskScore_ClaimPenaltyCapped(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:            "u-5",
		IDVerified:        true,
		FaceMatchVerified: true,
		CompletedTrips:    60,
		AverageRating:     4.9,
		AccountAgeMonths:  36,
		AtFaultClaims:     12,
		DriverAge:         40,
	})
	require.NoError(t, err)

	// 95 - 30 (capped penalty) = 65: many claims hurt, but boundedly.
	assert.Equal(t, 65, score.Score)
	assert.Equal(t, LevelMedium, score.Level)
}

func TestCalculateRiskScore_ClampedToRange(t *testing.T) {
	s := newTestScorer()

	low, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:        "u-6",
		AtFaultClaims: 50,
		DriverAge:     18,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, low.Score, 0)
	assert.LessOrEqual(t, low.Score, 100)

	high, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:            "u-7",
		IDVerified:        true,
		FaceMatchVerified: true,
		CompletedTrips:    500,
		AverageRating:     5.0,
		AccountAgeMonths:  120,
		DriverAge:         45,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, high.Score, 0)
	assert.LessOrEqual(t, high.Score, 100)
}

func TestCalculateRiskScore_OutOfRangeInputsDoNotCrash(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID:           "u-8",
		CompletedTrips:   -10,
		AverageRating:    7.3,
		AtFaultClaims:    -2,
		AccountAgeMonths: -6,
		DriverAge:        -1,
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, score.Score, 0)
	assert.LessOrEqual(t, score.Score, 100)
}

func TestCategorize_Thresholds(t *testing.T) {
	s := newTestScorer()

	tests := []struct {
		score int
		want  Level
	}{
		{85, LevelLow},
		{80, LevelLow},
		{65, LevelMedium},
		{60, LevelMedium},
		{45, LevelHigh},
		{40, LevelHigh},
		{20, LevelVeryHigh},
		{0, LevelVeryHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.categorize(tt.score), "score %d", tt.score)
	}
}

func TestCalculateRiskScore_Monotonicity(t *testing.T) {
	s := newTestScorer()

	base := CalculationInput{
		UserID:           "u-9",
		IDVerified:       true,
		CompletedTrips:   5,
		AverageRating:    4.0,
		AccountAgeMonths: 6,
		DriverAge:        30,
	}

	baseline, err := s.CalculateRiskScore(context.Background(), &base)
	require.NoError(t, err)

	improved := base
	improved.FaceMatchVerified = true
	improved.CompletedTrips = 25
	improved.AverageRating = 4.9
	improved.AccountAgeMonths = 18

	better, err := s.CalculateRiskScore(context.Background(), &improved)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, better.Score, baseline.Score)

	worsened := base
	worsened.AtFaultClaims = 1
	worsened.DriverAge = 21

	worse, err := s.CalculateRiskScore(context.Background(), &worsened)
	require.NoError(t, err)
	assert.LessOrEqual(t, worse.Score, baseline.Score)
}

func TestCalculateRiskScore_RestrictionsOnlyAtMediumOrWorse(t *testing.T) {
	s := newTestScorer()

	lowRisk, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-10", IDVerified: true, FaceMatchVerified: true,
		CompletedTrips: 60, AverageRating: 4.9, AccountAgeMonths: 24, DriverAge: 35,
	})
	require.NoError(t, err)
	assert.Empty(t, lowRisk.Restrictions)

	mediumRisk, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-11", IDVerified: true, FaceMatchVerified: true, DriverAge: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, LevelMedium, mediumRisk.Level)
	assert.NotEmpty(t, mediumRisk.Restrictions)
}

func TestDeriveEligibility_InstantBook(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-12", IDVerified: true, FaceMatchVerified: true,
		CompletedTrips: 60, AverageRating: 4.9, AccountAgeMonths: 24, DriverAge: 35,
	})
	require.NoError(t, err)
	require.Equal(t, LevelLow, score.Level)

	eligibility := s.DeriveEligibility(score, true)
	assert.True(t, eligibility.Eligible)
	assert.True(t, eligibility.CanInstantBook)
	assert.False(t, eligibility.RequiresApproval)
	assert.Empty(t, eligibility.BlockedReason)

	// Same guest, vehicle without instant book: bookable with approval.
	eligibility = s.DeriveEligibility(score, false)
	assert.True(t, eligibility.Eligible)
	assert.False(t, eligibility.CanInstantBook)
	assert.True(t, eligibility.RequiresApproval)
}

func TestDeriveEligibility_HighRiskNeedsApproval(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-13", DriverAge: 30,
	})
	require.NoError(t, err)
	require.Equal(t, LevelHigh, score.Level)

	eligibility := s.DeriveEligibility(score, true)
	assert.True(t, eligibility.Eligible)
	assert.False(t, eligibility.CanInstantBook)
	assert.True(t, eligibility.RequiresApproval)
}

func TestDeriveEligibility_VeryHighRiskBlocked(t *testing.T) {
	s := newTestScorer()

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-14", AtFaultClaims: 3, DriverAge: 20,
	})
	require.NoError(t, err)
	require.Equal(t, LevelVeryHigh, score.Level)

	eligibility := s.DeriveEligibility(score, true)
	assert.False(t, eligibility.Eligible)
	assert.False(t, eligibility.CanInstantBook)
	assert.False(t, eligibility.RequiresApproval)
	assert.NotEmpty(t, eligibility.BlockedReason)
}

func TestDeriveEligibility_NilScore(t *testing.T) {
	s := newTestScorer()

	eligibility := s.DeriveEligibility(nil, true)
	assert.False(t, eligibility.Eligible)
	assert.NotEmpty(t, eligibility.BlockedReason)
}

func TestNewScorer_ConfigOverride(t *testing.T) {
	config := DefaultConfig()
	config.Weights.BaseOffset = 60

	s := NewScorer(config)

	score, err := s.CalculateRiskScore(context.Background(), &CalculationInput{
		UserID: "u-15", DriverAge: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 60, score.Score)
	assert.Equal(t, LevelMedium, score.Level)
}

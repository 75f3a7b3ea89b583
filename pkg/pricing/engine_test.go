package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNovember pins the clock to a month whose seasonal factor is exactly
// 1.0 so golden values stay stable across calendar months.
var fixedNovember = time.Date(2024, time.November, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	e := NewEngine(nil)
	e.now = func() time.Time { return fixedNovember }
	return e
}

func TestCalculateSmartPrice_GoldenSedan(t *testing.T) {
	e := newTestEngine()

	factors := &PricingFactors{
		VehicleType: VehicleTypeSedan,
		ModelYear:   2024,
		Location:    Location{City: "San Salvador", State: "San Salvador"},
	}

	result, err := e.CalculateSmartPrice(context.Background(), factors)
	require.NoError(t, err)

	// 45 * 1.10 (new) * 1.2 (capital) * 1.0 * 1.0 * 1.0 * 1.0 = 59.4
	assert.Equal(t, 59, result.RecommendedDailyRate)
	assert.Equal(t, 50, result.MinRecommended)
	assert.Equal(t, 68, result.MaxRecommended)
}

func TestCalculateSmartPrice_NilInput(t *testing.T) {
	e := newTestEngine()

	_, err := e.CalculateSmartPrice(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestCalculateSmartPrice_UnknownTypeAndCityDefaults(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType: "hovercraft",
		ModelYear:   2024,
		Location:    Location{City: "Atlantis"},
	})
	require.NoError(t, err)

	// Default base 50, default location 0.85, new-vehicle 1.10.
	assert.Equal(t, 47, result.RecommendedDailyRate)
}

func TestCalculateSmartPrice_BandBracketsRate(t *testing.T) {
	e := newTestEngine()

	inputs := []*PricingFactors{
		{VehicleType: VehicleTypeCompact, ModelYear: 2010, Location: Location{City: "Sonsonate"}},
		{VehicleType: VehicleTypeLuxury, ModelYear: 2024, Location: Location{City: "San Salvador"}, InstantBook: true},
		{VehicleType: VehicleTypeSports, ModelYear: 2019, Location: Location{City: "Santa Ana"},
			Features: []string{"leather_seats", "premium_sound", "sunroof"},
			Market:   &MarketSnapshot{AverageDailyRate: 140, DemandLevel: DemandLevelHigh, CompetitorCount: 3}},
	}

	for _, factors := range inputs {
		result, err := e.CalculateSmartPrice(context.Background(), factors)
		require.NoError(t, err)

		assert.LessOrEqual(t, result.MinRecommended, result.RecommendedDailyRate)
		assert.GreaterOrEqual(t, result.MaxRecommended, result.RecommendedDailyRate)
		assert.Equal(t, roundRate(float64(result.RecommendedDailyRate)*0.85), result.MinRecommended)
		assert.Equal(t, roundRate(float64(result.RecommendedDailyRate)*1.15), result.MaxRecommended)
		assert.GreaterOrEqual(t, result.RecommendedDailyRate, 0)
	}
}

func TestCalculateSmartPrice_HostRatingMonotonic(t *testing.T) {
	e := newTestEngine()

	base := &PricingFactors{
		VehicleType:    VehicleTypeSUV,
		ModelYear:      2022,
		Location:       Location{City: "San Salvador"},
		HostReputation: &HostReputation{Rating: 4.0, TripsCompleted: 30, ResponseRate: 0.95},
	}

	low, err := e.CalculateSmartPrice(context.Background(), base)
	require.NoError(t, err)

	base.HostReputation = &HostReputation{Rating: 4.9, TripsCompleted: 30, ResponseRate: 0.95}
	high, err := e.CalculateSmartPrice(context.Background(), base)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, high.RecommendedDailyRate, low.RecommendedDailyRate)
}

func TestHostMultiplier_UnratedHostNotPenalized(t *testing.T) {
	// Zero means no reviews yet; only a real rating below 4.0 discounts.
	assert.Equal(t, 1.0, hostMultiplierFor(&HostReputation{Rating: 0}))
	assert.InDelta(t, 0.95, hostMultiplierFor(&HostReputation{Rating: 3.9}), 1e-9)
	assert.InDelta(t, 0.95, hostMultiplierFor(&HostReputation{Rating: 1.0}), 1e-9)
}

func TestCalculateSmartPrice_Idempotent(t *testing.T) {
	e := newTestEngine()

	factors := &PricingFactors{
		VehicleType: VehicleTypeElectric,
		ModelYear:   2023,
		Location:    Location{City: "Santa Tecla"},
		Features:    []string{"gps", "apple_carplay"},
		InstantBook: true,
		Market:      &MarketSnapshot{AverageDailyRate: 72, DemandLevel: DemandLevelMedium, CompetitorCount: 12},
		HostReputation: &HostReputation{
			Rating: 4.85, TripsCompleted: 120, ResponseRate: 0.98,
		},
	}

	first, err := e.CalculateSmartPrice(context.Background(), factors)
	require.NoError(t, err)
	second, err := e.CalculateSmartPrice(context.Background(), factors)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateSmartPrice_Confidence(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name      string
		factors   *PricingFactors
		wantScore int
		wantLevel ConfidenceLevel
	}{
		{
			name: "market and host and recent year",
			factors: &PricingFactors{
				VehicleType:    VehicleTypeSedan,
				ModelYear:      2023,
				Location:       Location{City: "San Salvador"},
				Market:         &MarketSnapshot{AverageDailyRate: 55, DemandLevel: DemandLevelMedium},
				HostReputation: &HostReputation{Rating: 4.6, TripsCompleted: 40},
			},
			wantScore: 100,
			wantLevel: ConfidenceHigh,
		},
		{
			name: "market only with recent year",
			factors: &PricingFactors{
				VehicleType: VehicleTypeSedan,
				ModelYear:   2023,
				Location:    Location{City: "San Salvador"},
				Market:      &MarketSnapshot{AverageDailyRate: 55},
			},
			wantScore: 85,
			wantLevel: ConfidenceHigh,
		},
		{
			name: "host only with recent year",
			factors: &PricingFactors{
				VehicleType:    VehicleTypeSedan,
				ModelYear:      2022,
				Location:       Location{City: "San Salvador"},
				HostReputation: &HostReputation{Rating: 4.2, TripsCompleted: 8},
			},
			wantScore: 70,
			wantLevel: ConfidenceMedium,
		},
		{
			name: "old vehicle, nothing else",
			factors: &PricingFactors{
				VehicleType: VehicleTypeSedan,
				ModelYear:   2012,
				Location:    Location{City: "San Salvador"},
			},
			wantScore: 50,
			wantLevel: ConfidenceLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := e.CalculateSmartPrice(context.Background(), tt.factors)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, result.ConfidenceScore)
			assert.Equal(t, tt.wantLevel, result.ConfidenceLevel)
			assert.GreaterOrEqual(t, result.ConfidenceScore, 0)
			assert.LessOrEqual(t, result.ConfidenceScore, 100)
		})
	}
}

func TestCalculateSmartPrice_CompetitivePosition(t *testing.T) {
	e := newTestEngine()

	// Sedan in the capital lands at 59 with no extras.
	factors := &PricingFactors{
		VehicleType: VehicleTypeSedan,
		ModelYear:   2024,
		Location:    Location{City: "San Salvador"},
	}

	tests := []struct {
		name         string
		marketAvg    float64
		wantPosition CompetitivePosition
		wantBooking  int
	}{
		{"well above market", 40, PositionAbove, 30},
		{"well below market", 100, PositionBelow, 75},
		{"near market", 60, PositionAverage, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factors.Market = &MarketSnapshot{AverageDailyRate: tt.marketAvg, DemandLevel: DemandLevelMedium, CompetitorCount: 10}
			result, err := e.CalculateSmartPrice(context.Background(), factors)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPosition, result.MarketInsights.CompetitivePosition)
			assert.Equal(t, tt.wantBooking, result.MarketInsights.EstimatedBookingRate)
		})
	}
}

func TestCalculateSmartPrice_NoMarketDefaultsToAverage(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType: VehicleTypeTruck,
		ModelYear:   2021,
		Location:    Location{City: "San Miguel"},
	})
	require.NoError(t, err)

	assert.Equal(t, PositionAverage, result.MarketInsights.CompetitivePosition)
	assert.Equal(t, 50, result.MarketInsights.EstimatedBookingRate)
	assert.Equal(t, 10, result.MarketInsights.SuggestedWeeklyDiscount)
	assert.Equal(t, 20, result.MarketInsights.SuggestedMonthlyDiscount)
}

func TestCalculateSmartPrice_EarningsEstimate(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType: VehicleTypeSedan,
		ModelYear:   2024,
		Location:    Location{City: "San Salvador"},
	})
	require.NoError(t, err)

	// Rate 59 at the standard 25% fee.
	assert.Equal(t, 25, result.EarningsEstimate.PlatformFee)
	assert.Equal(t, 44, result.EarningsEstimate.Daily)
	assert.Equal(t, 44*7, result.EarningsEstimate.Weekly)
	assert.Equal(t, 44*15, result.EarningsEstimate.Monthly)
}

func TestCalculateSmartPrice_OutOfRangeReputationClamped(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType:    VehicleTypeSedan,
		ModelYear:      2024,
		Location:       Location{City: "San Salvador"},
		HostReputation: &HostReputation{Rating: 9.5, TripsCompleted: -3, ResponseRate: 4.0},
	})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.RecommendedDailyRate, 0)
	assert.GreaterOrEqual(t, result.ConfidenceScore, 0)
	assert.LessOrEqual(t, result.ConfidenceScore, 100)
}

func TestGetQuickEstimate_SubsetOfFullChain(t *testing.T) {
	e := newTestEngine()

	features := []string{"gps", "backup_camera"}

	quick, err := e.GetQuickEstimate(context.Background(), &QuickEstimateInput{
		VehicleType: VehicleTypeSUV,
		ModelYear:   2020,
		City:        "Santa Ana",
		Features:    features,
		InstantBook: true,
	})
	require.NoError(t, err)

	// With no market, seasonal (November = 1.0) or host inputs the full
	// chain reduces to the quick estimate's terms.
	full, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType: VehicleTypeSUV,
		ModelYear:   2020,
		Location:    Location{City: "Santa Ana"},
		Features:    features,
		InstantBook: true,
	})
	require.NoError(t, err)

	assert.Equal(t, full.RecommendedDailyRate, quick.EstimatedRate)
	assert.LessOrEqual(t, quick.MinRate, quick.EstimatedRate)
	assert.GreaterOrEqual(t, quick.MaxRate, quick.EstimatedRate)
}

func TestGetQuickEstimate_NilInput(t *testing.T) {
	e := newTestEngine()

	_, err := e.GetQuickEstimate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestGetMarketPriceRange(t *testing.T) {
	e := newTestEngine()

	r, err := e.GetMarketPriceRange(context.Background(), VehicleTypeSedan, "San Salvador", "San Salvador")
	require.NoError(t, err)

	// avg = round(45 * 1.2) = 54
	assert.Equal(t, 54, r.AveragePrice)
	assert.Equal(t, 38, r.MinPrice)
	assert.Equal(t, 81, r.MaxPrice)
	assert.GreaterOrEqual(t, r.SampleSize, 15)
	assert.Less(t, r.SampleSize, 35)
}

func TestGetMarketPriceRange_UnknownInputs(t *testing.T) {
	e := newTestEngine()

	r, err := e.GetMarketPriceRange(context.Background(), "spaceship", "Nowhere", "XX")
	require.NoError(t, err)

	// Defaults: base 50 * 0.85 = 42.5 -> 43 (banker-free round half up).
	assert.Equal(t, 43, r.AveragePrice)
	assert.GreaterOrEqual(t, r.SampleSize, 0)
}

func TestCalculateEarnings(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name        string
		dailyRate   float64
		planID      string
		utilization float64
		want        EarningsEstimate
	}{
		{
			name:      "basic plan half utilization",
			dailyRate: 100, planID: "host_basic", utilization: 0.5,
			want: EarningsEstimate{Daily: 60, Weekly: 420, Monthly: 900, Yearly: 10950, PlatformFee: 40},
		},
		{
			name:      "premium plan full utilization",
			dailyRate: 100, planID: "premium_plus", utilization: 1.0,
			want: EarningsEstimate{Daily: 85, Weekly: 595, Monthly: 2550, Yearly: 31025, PlatformFee: 15},
		},
		{
			name:      "unknown plan uses standard fee",
			dailyRate: 80, planID: "mystery", utilization: 0.4,
			want: EarningsEstimate{Daily: 60, Weekly: 420, Monthly: 720, Yearly: 8760, PlatformFee: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CalculateEarnings(context.Background(), tt.dailyRate, tt.planID, tt.utilization)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCalculateEarnings_ClampsInputs(t *testing.T) {
	e := newTestEngine()

	got, err := e.CalculateEarnings(context.Background(), -50, "basic", 3.0)
	require.NoError(t, err)

	assert.Equal(t, 0, got.Daily)
	assert.Equal(t, 0, got.Monthly)
}

func TestBreakdown_SequentialDeltas(t *testing.T) {
	e := newTestEngine()

	result, err := e.CalculateSmartPrice(context.Background(), &PricingFactors{
		VehicleType: VehicleTypeSedan,
		ModelYear:   2024,
		Location:    Location{City: "San Salvador"},
	})
	require.NoError(t, err)

	b := result.Breakdown
	assert.InDelta(t, 45.0, b.BasePrice, 1e-9)
	assert.InDelta(t, 4.5, b.AgeAdjustment, 1e-9)   // 45 * 0.10
	assert.InDelta(t, 9.9, b.LocationAdjustment, 1e-9) // 49.5 * 0.20
	assert.InDelta(t, 0, b.DemandAdjustment, 1e-9)
	assert.InDelta(t, 0, b.FeaturesAdjustment, 1e-9)
	assert.InDelta(t, 0, b.HostAdjustment, 1e-9)
}

func TestAgeDepreciationTiers(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{0, 1.10}, {1, 1.10}, {2, 1.00}, {3, 1.00}, {4, 0.95},
		{5, 0.95}, {6, 0.85}, {8, 0.85}, {10, 0.75}, {12, 0.75}, {13, 0.65}, {25, 0.65},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ageDepreciationFor(tt.age), "age %d", tt.age)
	}
}

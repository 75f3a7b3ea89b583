package pricing

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Config carries the tunable pricing constants. Zero values fall back to
// defaults so callers can override selectively.
type Config struct {
	DefaultBasePrice          float64 `json:"default_base_price"`
	DefaultLocationMultiplier float64 `json:"default_location_multiplier"`
	BandSpread                float64 `json:"band_spread"`
	StandardFeePercent        int     `json:"standard_fee_percent"`
	BasicFeePercent           int     `json:"basic_fee_percent"`
	PremiumFeePercent         int     `json:"premium_fee_percent"`
	MonthlyUtilizationDays    float64 `json:"monthly_utilization_days"`
	WeeklyDiscountPercent     int     `json:"weekly_discount_percent"`
	MonthlyDiscountPercent    int     `json:"monthly_discount_percent"`
}

func DefaultConfig() *Config {
	return &Config{
		DefaultBasePrice:          50,
		DefaultLocationMultiplier: 0.85,
		BandSpread:                0.15,
		StandardFeePercent:        25,
		BasicFeePercent:           40,
		PremiumFeePercent:         15,
		MonthlyUtilizationDays:    15,
		WeeklyDiscountPercent:     10,
		MonthlyDiscountPercent:    20,
	}
}

var ErrNilInput = errors.New("pricing: nil input")

// Engine computes recommended daily rates from vehicle, location, market and
// host attributes. It holds no mutable state and is safe for concurrent use;
// the only environmental input is the clock, injected for deterministic
// testing.
type Engine struct {
	config *Config
	now    func() time.Time
}

func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config: config,
		now:    time.Now,
	}
}

// CalculateSmartPrice runs the full multiplicative adjustment chain over the
// given factors. Given identical factors and the same calendar date the
// output is identical.
func (e *Engine) CalculateSmartPrice(ctx context.Context, factors *PricingFactors) (*SmartPriceResult, error) {
	if factors == nil {
		return nil, ErrNilInput
	}

	now := e.now()
	currentYear := now.Year()

	base := basePriceFor(factors.VehicleType, e.config.DefaultBasePrice)
	age := ageDepreciationFor(currentYear - factors.ModelYear)
	location := locationMultiplierFor(factors.Location.City, e.config.DefaultLocationMultiplier)
	seasonal := e.seasonalFactor(factors.Market, now)
	demand := demandMultiplierFor(factors.Market)
	features := featuresMultiplierFor(factors.Features)
	host := hostMultiplierFor(factors.HostReputation)

	instantBook := 1.0
	if factors.InstantBook {
		instantBook = 1.05
	}

	rate := roundRate(base * age * location * seasonal * demand * features * host * instantBook)

	result := &SmartPriceResult{
		RecommendedDailyRate: rate,
		MinRecommended:       roundRate(float64(rate) * (1 - e.config.BandSpread)),
		MaxRecommended:       roundRate(float64(rate) * (1 + e.config.BandSpread)),
		Breakdown:            buildBreakdown(base, age, location, demand, features, host),
		MarketInsights:       e.marketInsights(rate, factors.Market),
		EarningsEstimate:     e.earningsAtStandardFee(rate),
	}

	result.ConfidenceScore, result.ConfidenceLevel = e.confidence(factors, currentYear)

	return result, nil
}

// GetMarketPriceRange returns an illustrative price range for a vehicle type
// in a city. The sample size is randomized pending a real listing query.
func (e *Engine) GetMarketPriceRange(ctx context.Context, vehicleType VehicleType, city, state string) (*MarketPriceRange, error) {
	base := basePriceFor(vehicleType, e.config.DefaultBasePrice)
	location := locationMultiplierFor(city, e.config.DefaultLocationMultiplier)

	average := roundRate(base * location)

	return &MarketPriceRange{
		MinPrice:     roundRate(float64(average) * 0.7),
		MaxPrice:     roundRate(float64(average) * 1.5),
		AveragePrice: average,
		SampleSize:   15 + rand.Intn(20),
	}, nil
}

// GetQuickEstimate is the cheap approximation used for live-typing feedback.
// It applies only the base, age, location, features and instant-book terms,
// a strict subset of the full chain.
func (e *Engine) GetQuickEstimate(ctx context.Context, input *QuickEstimateInput) (*QuickEstimate, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	currentYear := e.now().Year()

	base := basePriceFor(input.VehicleType, e.config.DefaultBasePrice)
	age := ageDepreciationFor(currentYear - input.ModelYear)
	location := locationMultiplierFor(input.City, e.config.DefaultLocationMultiplier)
	features := featuresMultiplierFor(input.Features)

	instantBook := 1.0
	if input.InstantBook {
		instantBook = 1.05
	}

	rate := roundRate(base * age * location * features * instantBook)

	return &QuickEstimate{
		EstimatedRate: rate,
		MinRate:       roundRate(float64(rate) * (1 - e.config.BandSpread)),
		MaxRate:       roundRate(float64(rate) * (1 + e.config.BandSpread)),
	}, nil
}

// CalculateEarnings projects host take-home at a protection plan's fee and a
// utilization rate. The plan is matched by substring so client-side plan ids
// like "host_basic" resolve correctly.
func (e *Engine) CalculateEarnings(ctx context.Context, dailyRate float64, protectionPlanID string, utilizationRate float64) (*EarningsEstimate, error) {
	if dailyRate < 0 {
		dailyRate = 0
	}
	utilizationRate = clampFloat(utilizationRate, 0, 1)

	fee := e.config.StandardFeePercent
	plan := strings.ToLower(protectionPlanID)
	switch {
	case strings.Contains(plan, "basic"):
		fee = e.config.BasicFeePercent
	case strings.Contains(plan, "premium"):
		fee = e.config.PremiumFeePercent
	}

	daily := roundRate(dailyRate * float64(100-fee) / 100)

	return &EarningsEstimate{
		Daily:       daily,
		Weekly:      daily * 7,
		Monthly:     roundRate(float64(daily) * 30 * utilizationRate),
		Yearly:      roundRate(float64(daily) * 365 * utilizationRate),
		PlatformFee: fee,
	}, nil
}

func (e *Engine) seasonalFactor(market *MarketSnapshot, now time.Time) float64 {
	if market != nil && market.SeasonalFactor > 0 {
		return market.SeasonalFactor
	}
	return seasonalFactorFor(int(now.Month()))
}

func (e *Engine) earningsAtStandardFee(rate int) EarningsEstimate {
	fee := e.config.StandardFeePercent
	daily := roundRate(float64(rate) * float64(100-fee) / 100)

	return EarningsEstimate{
		Daily:       daily,
		Weekly:      daily * 7,
		Monthly:     roundRate(float64(daily) * e.config.MonthlyUtilizationDays),
		PlatformFee: fee,
	}
}

func (e *Engine) confidence(factors *PricingFactors, currentYear int) (int, ConfidenceLevel) {
	score := 50

	if factors.Market != nil {
		score += 30
	}
	if factors.HostReputation != nil && factors.HostReputation.Rating > 0 && factors.HostReputation.TripsCompleted > 0 {
		score += 15
	}
	if currentYear-factors.ModelYear <= 5 {
		score += 5
	}

	score = clampInt(score, 0, 100)

	switch {
	case score >= 80:
		return score, ConfidenceHigh
	case score >= 60:
		return score, ConfidenceMedium
	default:
		return score, ConfidenceLow
	}
}

func (e *Engine) marketInsights(rate int, market *MarketSnapshot) MarketInsights {
	position := PositionAverage
	if market != nil && market.AverageDailyRate > 0 {
		switch {
		case float64(rate) < 0.9*market.AverageDailyRate:
			position = PositionBelow
		case float64(rate) > 1.1*market.AverageDailyRate:
			position = PositionAbove
		}
	}

	bookingRate := 50
	switch position {
	case PositionBelow:
		bookingRate = 75
	case PositionAbove:
		bookingRate = 30
	}

	return MarketInsights{
		CompetitivePosition:      position,
		EstimatedBookingRate:     bookingRate,
		SuggestedWeeklyDiscount:  e.config.WeeklyDiscountPercent,
		SuggestedMonthlyDiscount: e.config.MonthlyDiscountPercent,
	}
}

// buildBreakdown computes each factor's incremental dollar delta as it is
// multiplied into the running product, in the fixed order type/age, location,
// demand, features, host. Seasonal and instant-book deltas are not broken
// out.
func buildBreakdown(base, age, location, demand, features, host float64) PriceBreakdown {
	breakdown := PriceBreakdown{BasePrice: base}

	running := base
	breakdown.AgeAdjustment = running*age - running
	running *= age

	breakdown.LocationAdjustment = running*location - running
	running *= location

	breakdown.DemandAdjustment = running*demand - running
	running *= demand

	breakdown.FeaturesAdjustment = running*features - running
	running *= features

	breakdown.HostAdjustment = running*host - running

	return breakdown
}

func demandMultiplierFor(market *MarketSnapshot) float64 {
	if market == nil {
		return 1.0
	}

	multiplier := 1.0
	switch market.DemandLevel {
	case DemandLevelHigh:
		multiplier = 1.15
	case DemandLevelLow:
		multiplier = 0.90
	}

	if market.CompetitorCount > 20 {
		multiplier *= 0.95
	} else if market.CompetitorCount < 5 {
		multiplier *= 1.05
	}

	return multiplier
}

func hostMultiplierFor(host *HostReputation) float64 {
	if host == nil {
		return 1.0
	}

	rating := clampFloat(host.Rating, 0, 5)
	responseRate := clampFloat(host.ResponseRate, 0, 1)

	multiplier := 1.0
	switch {
	case rating >= 4.8:
		multiplier *= 1.05
	case rating >= 4.5:
		multiplier *= 1.02
	case rating > 0 && rating < 4.0:
		// A zero rating means no reviews yet, not a bad host; only a
		// real rating below 4.0 discounts.
		multiplier *= 0.95
	}

	switch {
	case host.TripsCompleted >= 100:
		multiplier *= 1.03
	case host.TripsCompleted >= 50:
		multiplier *= 1.02
	case host.TripsCompleted >= 10:
		multiplier *= 1.01
	}

	if responseRate >= 0.9 {
		multiplier *= 1.02
	}

	return multiplier
}

// roundRate rounds to the nearest whole currency unit. Only final rates are
// rounded; intermediates stay floating point.
func roundRate(value float64) int {
	if value < 0 || math.IsNaN(value) {
		return 0
	}
	return int(math.Round(value))
}

func clampFloat(value, min, max float64) float64 {
	if math.IsNaN(value) || value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

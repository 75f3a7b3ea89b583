package config

import (
	"driveshare/pkg/pricing"
)

// PricingConfig exposes the engine's tunable constants through the
// environment. Defaults reproduce the documented pricing model.
type PricingConfig struct {
	DefaultBasePrice          float64 `yaml:"default_base_price"`
	DefaultLocationMultiplier float64 `yaml:"default_location_multiplier"`
	BandSpread                float64 `yaml:"band_spread"`
	StandardFeePercent        int     `yaml:"standard_fee_percent"`
	BasicFeePercent           int     `yaml:"basic_fee_percent"`
	PremiumFeePercent         int     `yaml:"premium_fee_percent"`
	MonthlyUtilizationDays    float64 `yaml:"monthly_utilization_days"`
	WeeklyDiscountPercent     int     `yaml:"weekly_discount_percent"`
	MonthlyDiscountPercent    int     `yaml:"monthly_discount_percent"`
}

func loadPricingConfig() *PricingConfig {
	defaults := pricing.DefaultConfig()

	return &PricingConfig{
		DefaultBasePrice:          getEnvAsFloat64("PRICING_DEFAULT_BASE_PRICE", defaults.DefaultBasePrice),
		DefaultLocationMultiplier: getEnvAsFloat64("PRICING_DEFAULT_LOCATION_MULTIPLIER", defaults.DefaultLocationMultiplier),
		BandSpread:                getEnvAsFloat64("PRICING_BAND_SPREAD", defaults.BandSpread),
		StandardFeePercent:        getEnvAsInt("PRICING_STANDARD_FEE_PERCENT", defaults.StandardFeePercent),
		BasicFeePercent:           getEnvAsInt("PRICING_BASIC_FEE_PERCENT", defaults.BasicFeePercent),
		PremiumFeePercent:         getEnvAsInt("PRICING_PREMIUM_FEE_PERCENT", defaults.PremiumFeePercent),
		MonthlyUtilizationDays:    getEnvAsFloat64("PRICING_MONTHLY_UTILIZATION_DAYS", defaults.MonthlyUtilizationDays),
		WeeklyDiscountPercent:     getEnvAsInt("PRICING_WEEKLY_DISCOUNT_PERCENT", defaults.WeeklyDiscountPercent),
		MonthlyDiscountPercent:    getEnvAsInt("PRICING_MONTHLY_DISCOUNT_PERCENT", defaults.MonthlyDiscountPercent),
	}
}

// EngineConfig converts the section into the engine's own config type.
func (c *PricingConfig) EngineConfig() *pricing.Config {
	return &pricing.Config{
		DefaultBasePrice:          c.DefaultBasePrice,
		DefaultLocationMultiplier: c.DefaultLocationMultiplier,
		BandSpread:                c.BandSpread,
		StandardFeePercent:        c.StandardFeePercent,
		BasicFeePercent:           c.BasicFeePercent,
		PremiumFeePercent:         c.PremiumFeePercent,
		MonthlyUtilizationDays:    c.MonthlyUtilizationDays,
		WeeklyDiscountPercent:     c.WeeklyDiscountPercent,
		MonthlyDiscountPercent:    c.MonthlyDiscountPercent,
	}
}

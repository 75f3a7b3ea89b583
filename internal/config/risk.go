package config

import (
	"driveshare/pkg/risk"
)

// RiskConfig exposes the scoring weights and tier thresholds through the
// environment so they can be retuned without a code change.
type RiskConfig struct {
	BaseOffset               int     `yaml:"base_offset"`
	IdentityVerification     int     `yaml:"identity_verification"`
	IDOnlyCreditFraction     float64 `yaml:"id_only_credit_fraction"`
	TripHistory              int     `yaml:"trip_history"`
	RatingExcellent          int     `yaml:"rating_excellent"`
	RatingGood               int     `yaml:"rating_good"`
	ClaimPenalty             int     `yaml:"claim_penalty"`
	MaxClaimPenalty          int     `yaml:"max_claim_penalty"`
	EstablishedAccount       int     `yaml:"established_account"`
	EstablishedAccountMonths int     `yaml:"established_account_months"`
	YoungDriver              int     `yaml:"young_driver"`
	YoungDriverAgeLimit      int     `yaml:"young_driver_age_limit"`
	ThresholdLow             int     `yaml:"threshold_low"`
	ThresholdMedium          int     `yaml:"threshold_medium"`
	ThresholdHigh            int     `yaml:"threshold_high"`
}

func loadRiskConfig() *RiskConfig {
	defaults := risk.DefaultConfig()

	return &RiskConfig{
		BaseOffset:               getEnvAsInt("RISK_BASE_OFFSET", defaults.Weights.BaseOffset),
		IdentityVerification:     getEnvAsInt("RISK_IDENTITY_VERIFICATION", defaults.Weights.IdentityVerification),
		IDOnlyCreditFraction:     getEnvAsFloat64("RISK_ID_ONLY_CREDIT_FRACTION", defaults.Weights.IDOnlyCreditFraction),
		TripHistory:              getEnvAsInt("RISK_TRIP_HISTORY", defaults.Weights.TripHistory),
		RatingExcellent:          getEnvAsInt("RISK_RATING_EXCELLENT", defaults.Weights.RatingExcellent),
		RatingGood:               getEnvAsInt("RISK_RATING_GOOD", defaults.Weights.RatingGood),
		ClaimPenalty:             getEnvAsInt("RISK_CLAIM_PENALTY", defaults.Weights.ClaimPenalty),
		MaxClaimPenalty:          getEnvAsInt("RISK_MAX_CLAIM_PENALTY", defaults.Weights.MaxClaimPenalty),
		EstablishedAccount:       getEnvAsInt("RISK_ESTABLISHED_ACCOUNT", defaults.Weights.EstablishedAccount),
		EstablishedAccountMonths: getEnvAsInt("RISK_ESTABLISHED_ACCOUNT_MONTHS", defaults.Weights.EstablishedAccountMonths),
		YoungDriver:              getEnvAsInt("RISK_YOUNG_DRIVER", defaults.Weights.YoungDriver),
		YoungDriverAgeLimit:      getEnvAsInt("RISK_YOUNG_DRIVER_AGE_LIMIT", defaults.Weights.YoungDriverAgeLimit),
		ThresholdLow:             getEnvAsInt("RISK_THRESHOLD_LOW", defaults.Thresholds.Low),
		ThresholdMedium:          getEnvAsInt("RISK_THRESHOLD_MEDIUM", defaults.Thresholds.Medium),
		ThresholdHigh:            getEnvAsInt("RISK_THRESHOLD_HIGH", defaults.Thresholds.High),
	}
}

// ScorerConfig converts the section into the scorer's own config type.
func (c *RiskConfig) ScorerConfig() *risk.Config {
	return &risk.Config{
		Weights: risk.Weights{
			BaseOffset:               c.BaseOffset,
			IdentityVerification:     c.IdentityVerification,
			IDOnlyCreditFraction:     c.IDOnlyCreditFraction,
			TripHistory:              c.TripHistory,
			RatingExcellent:          c.RatingExcellent,
			RatingGood:               c.RatingGood,
			ClaimPenalty:             c.ClaimPenalty,
			MaxClaimPenalty:          c.MaxClaimPenalty,
			EstablishedAccount:       c.EstablishedAccount,
			EstablishedAccountMonths: c.EstablishedAccountMonths,
			YoungDriver:              c.YoungDriver,
			YoungDriverAgeLimit:      c.YoungDriverAgeLimit,
		},
		Thresholds: risk.Thresholds{
			Low:    c.ThresholdLow,
			Medium: c.ThresholdMedium,
			High:   c.ThresholdHigh,
		},
	}
}

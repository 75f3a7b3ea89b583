package pricing

// VehicleType categorizes listings for base price lookup.
type VehicleType string

const (
	VehicleTypeCompact     VehicleType = "compact"
	VehicleTypeSedan       VehicleType = "sedan"
	VehicleTypeSUV         VehicleType = "suv"
	VehicleTypeLuxury      VehicleType = "luxury"
	VehicleTypeSports      VehicleType = "sports"
	VehicleTypeMinivan     VehicleType = "minivan"
	VehicleTypeTruck       VehicleType = "truck"
	VehicleTypeConvertible VehicleType = "convertible"
	VehicleTypeElectric    VehicleType = "electric"
)

type DemandLevel string

const (
	DemandLevelLow    DemandLevel = "low"
	DemandLevelMedium DemandLevel = "medium"
	DemandLevelHigh   DemandLevel = "high"
)

type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

type CompetitivePosition string

const (
	PositionBelow   CompetitivePosition = "below"
	PositionAverage CompetitivePosition = "average"
	PositionAbove   CompetitivePosition = "above"
)

type Location struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MarketSnapshot carries market conditions resolved by the calling service
// before the calculation runs. Nil means no market data is available.
type MarketSnapshot struct {
	AverageDailyRate float64     `json:"average_daily_rate"`
	DemandLevel      DemandLevel `json:"demand_level"`
	CompetitorCount  int         `json:"competitor_count"`
	SeasonalFactor   float64     `json:"seasonal_factor"`
}

type HostReputation struct {
	Rating         float64 `json:"rating"`
	TripsCompleted int     `json:"trips_completed"`
	ResponseRate   float64 `json:"response_rate"`
}

// PricingFactors is the full input to the smart pricing calculation.
// Constructed fresh per request; the engine never mutates it.
type PricingFactors struct {
	VehicleType    VehicleType     `json:"vehicle_type"`
	Make           string          `json:"make"`
	Model          string          `json:"model"`
	ModelYear      int             `json:"model_year"`
	Location       Location        `json:"location"`
	Market         *MarketSnapshot `json:"market,omitempty"`
	Features       []string        `json:"features"`
	InstantBook    bool            `json:"instant_book"`
	HostReputation *HostReputation `json:"host_reputation,omitempty"`
}

// PriceBreakdown decomposes the multiplicative model into sequential dollar
// deltas for display. Terms are order dependent and are not required to sum
// to the final rate; seasonal and instant-book effects fold into the final
// rate only. Values stay unrounded until rendered.
type PriceBreakdown struct {
	BasePrice          float64 `json:"base_price"`
	AgeAdjustment      float64 `json:"age_adjustment"`
	LocationAdjustment float64 `json:"location_adjustment"`
	DemandAdjustment   float64 `json:"demand_adjustment"`
	FeaturesAdjustment float64 `json:"features_adjustment"`
	HostAdjustment     float64 `json:"host_adjustment"`
}

type MarketInsights struct {
	CompetitivePosition      CompetitivePosition `json:"competitive_position"`
	EstimatedBookingRate     int                 `json:"estimated_booking_rate"`
	SuggestedWeeklyDiscount  int                 `json:"suggested_weekly_discount"`
	SuggestedMonthlyDiscount int                 `json:"suggested_monthly_discount"`
}

type EarningsEstimate struct {
	Daily       int `json:"daily"`
	Weekly      int `json:"weekly"`
	Monthly     int `json:"monthly"`
	Yearly      int `json:"yearly,omitempty"`
	PlatformFee int `json:"platform_fee"`
}

type SmartPriceResult struct {
	RecommendedDailyRate int              `json:"recommended_daily_rate"`
	MinRecommended       int              `json:"min_recommended"`
	MaxRecommended       int              `json:"max_recommended"`
	ConfidenceLevel      ConfidenceLevel  `json:"confidence_level"`
	ConfidenceScore      int              `json:"confidence_score"`
	MarketInsights       MarketInsights   `json:"market_insights"`
	Breakdown            PriceBreakdown   `json:"breakdown"`
	EarningsEstimate     EarningsEstimate `json:"earnings_estimate"`
}

// MarketPriceRange is an illustrative range for a type/city pair. The sample
// size is randomized for demo purposes and must come from a real listing
// query in production; only count >= 0 is part of the contract.
type MarketPriceRange struct {
	MinPrice     int `json:"min_price"`
	MaxPrice     int `json:"max_price"`
	AveragePrice int `json:"average_price"`
	SampleSize   int `json:"sample_size"`
}

// QuickEstimateInput is the reduced factor set used for live-typing UI
// feedback. Market, seasonal and host reputation inputs are deliberately
// absent.
type QuickEstimateInput struct {
	VehicleType VehicleType `json:"vehicle_type"`
	ModelYear   int         `json:"model_year"`
	City        string      `json:"city"`
	Features    []string    `json:"features"`
	InstantBook bool        `json:"instant_book"`
}

type QuickEstimate struct {
	EstimatedRate int `json:"estimated_rate"`
	MinRate       int `json:"min_rate"`
	MaxRate       int `json:"max_rate"`
}

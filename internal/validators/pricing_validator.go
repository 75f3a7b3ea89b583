package validators

// SmartPriceRequest is the request body for a full smart price calculation.
type SmartPriceRequest struct {
	VehicleType      string   `json:"vehicle_type" validate:"required,vehicle_type"`
	Make             string   `json:"make" validate:"omitempty,max=50"`
	Model            string   `json:"model" validate:"omitempty,max=50"`
	ModelYear        int      `json:"model_year" validate:"required,model_year"`
	City             string   `json:"city" validate:"required,max=100"`
	State            string   `json:"state" validate:"omitempty,max=100"`
	Latitude         float64  `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude        float64  `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Features         []string `json:"features" validate:"omitempty,max=20,dive,max=50"`
	InstantBook      bool     `json:"instant_book"`
	HostRating       float64  `json:"host_rating" validate:"omitempty,rating_value"`
	HostTrips        int      `json:"host_trips" validate:"omitempty,min=0"`
	HostResponseRate float64  `json:"host_response_rate" validate:"omitempty,min=0,max=1"`
}

// QuickEstimateRequest covers the onboarding estimate: the vehicle basics
// plus the features and instant-book inputs the reduced chain prices.
type QuickEstimateRequest struct {
	VehicleType string   `json:"vehicle_type" validate:"required,vehicle_type"`
	ModelYear   int      `json:"model_year" validate:"required,model_year"`
	City        string   `json:"city" validate:"required,max=100"`
	Features    []string `json:"features" validate:"omitempty,max=20,dive,max=50"`
	InstantBook bool     `json:"instant_book"`
}

type EarningsRequest struct {
	DailyRate       float64 `json:"daily_rate" validate:"required,gt=0"`
	ProtectionPlan  string  `json:"protection_plan" validate:"omitempty,max=50"`
	UtilizationRate float64 `json:"utilization_rate" validate:"omitempty,min=0,max=1"`
}

type MarketRangeRequest struct {
	VehicleType string `json:"vehicle_type" form:"vehicle_type" validate:"required,vehicle_type"`
	City        string `json:"city" form:"city" validate:"required,max=100"`
}

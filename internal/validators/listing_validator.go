package validators

type ListingCreateRequest struct {
	Make           string   `json:"make" validate:"required,max=50"`
	Model          string   `json:"model" validate:"required,max=50"`
	Year           int      `json:"year" validate:"required,model_year"`
	VehicleType    string   `json:"vehicle_type" validate:"required,vehicle_type"`
	City           string   `json:"city" validate:"required,max=100"`
	State          string   `json:"state" validate:"omitempty,max=100"`
	Latitude       float64  `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude      float64  `json:"longitude" validate:"omitempty,min=-180,max=180"`
	Features       []string `json:"features" validate:"omitempty,max=20,dive,max=50"`
	Photos         []string `json:"photos" validate:"omitempty,photo_count,dive,url"`
	DailyRate      int      `json:"daily_rate" validate:"required,daily_rate"`
	ProtectionPlan string   `json:"protection_plan" validate:"omitempty,max=50"`
	InstantBook    bool     `json:"instant_book"`
}

type ListingUpdateRequest struct {
	DailyRate      *int     `json:"daily_rate" validate:"omitempty,daily_rate"`
	ProtectionPlan *string  `json:"protection_plan" validate:"omitempty,max=50"`
	InstantBook    *bool    `json:"instant_book"`
	Features       []string `json:"features" validate:"omitempty,max=20,dive,max=50"`
	Photos         []string `json:"photos" validate:"omitempty,photo_count,dive,url"`
	Status         *string  `json:"status" validate:"omitempty,oneof=draft active paused"`
}

type ListingSearchRequest struct {
	City        string `form:"city" validate:"omitempty,max=100"`
	VehicleType string `form:"vehicle_type" validate:"omitempty,vehicle_type"`
	InstantBook *bool  `form:"instant_book"`
	MaxRate     int    `form:"max_rate" validate:"omitempty,min=0"`
}

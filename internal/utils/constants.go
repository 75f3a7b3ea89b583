package utils

import "time"

// Application Constants
const (
	AppName    = "DriveShare"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "USD"
	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Listing Constants
	MinDailyRate        = 10
	MaxDailyRate        = 2000
	MinListingYear      = 1990
	MaxPhotosPerListing = 20

	// Booking Constants
	MinBookingDays = 1
	MaxBookingDays = 90

	// Rating bounds
	MinRating = 0.0
	MaxRating = 5.0

	// Rate Limiting
	DefaultRateLimit = 100
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Common error messages
const (
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/utils"
	"driveshare/pkg/pricing"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("vehicle_type", validateVehicleType)
	validate.RegisterValidation("model_year", validateModelYear)
	validate.RegisterValidation("future_date", validateFutureDate)
	validate.RegisterValidation("rating_value", validateRatingValue)
	validate.RegisterValidation("daily_rate", validateDailyRate)
	validate.RegisterValidation("photo_count", validatePhotoCount)
}

var (
	ErrInvalidObjectID    = errors.New("invalid object ID format")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
	ErrInvalidModelYear   = errors.New("invalid model year")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidRating      = errors.New("rating must be between 0 and 5.0")
	ErrInvalidDailyRate   = errors.New("daily rate out of allowed range")
	ErrTooManyPhotos      = errors.New("too many photos")
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
	case "object_id":
		return ErrInvalidObjectID.Error()
	case "vehicle_type":
		return ErrInvalidVehicleType.Error()
	case "model_year":
		return ErrInvalidModelYear.Error()
	case "future_date":
		return "Date must be in the future"
	case "rating_value":
		return ErrInvalidRating.Error()
	case "daily_rate":
		return ErrInvalidDailyRate.Error()
	case "photo_count":
		return ErrTooManyPhotos.Error()
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateVehicleType(fl validator.FieldLevel) bool {
	switch pricing.VehicleType(fl.Field().String()) {
	case pricing.VehicleTypeCompact, pricing.VehicleTypeSedan, pricing.VehicleTypeSUV,
		pricing.VehicleTypeLuxury, pricing.VehicleTypeSports, pricing.VehicleTypeMinivan,
		pricing.VehicleTypeTruck, pricing.VehicleTypeConvertible, pricing.VehicleTypeElectric:
		return true
	}
	return false
}

func validateModelYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= utils.MinListingYear && year <= time.Now().Year()+1
}

func validateFutureDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return date.After(time.Now())
}

func validateRatingValue(fl validator.FieldLevel) bool {
	rating := fl.Field().Float()
	return rating >= utils.MinRating && rating <= utils.MaxRating
}

func validateDailyRate(fl validator.FieldLevel) bool {
	rate := int(fl.Field().Int())
	return rate >= utils.MinDailyRate && rate <= utils.MaxDailyRate
}

func validatePhotoCount(fl validator.FieldLevel) bool {
	return fl.Field().Len() <= utils.MaxPhotosPerListing
}

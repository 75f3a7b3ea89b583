package validators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListingCreateRequest() *ListingCreateRequest {
	return &ListingCreateRequest{
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2021,
		VehicleType: "sedan",
		City:        "San Salvador",
		DailyRate:   55,
	}
}

func TestVehicleTypeMatchesPricingCategories(t *testing.T) {
	accepted := []string{
		"compact", "sedan", "suv", "luxury", "sports",
		"minivan", "truck", "convertible", "electric",
	}
	for _, vehicleType := range accepted {
		t.Run(vehicleType, func(t *testing.T) {
			req := validListingCreateRequest()
			req.VehicleType = vehicleType
			assert.Empty(t, ValidateStruct(req))
		})
	}

	rejected := []string{"van", "hybrid", "boat", ""}
	for _, vehicleType := range rejected {
		t.Run("rejects_"+vehicleType, func(t *testing.T) {
			req := validListingCreateRequest()
			req.VehicleType = vehicleType
			assert.NotEmpty(t, ValidateStruct(req))
		})
	}
}

func TestQuickEstimateRequestCarriesFeaturesAndInstantBook(t *testing.T) {
	req := &QuickEstimateRequest{
		VehicleType: "sports",
		ModelYear:   2023,
		City:        "San Salvador",
		Features:    []string{"leather_seats", "premium_sound"},
		InstantBook: true,
	}
	assert.Empty(t, ValidateStruct(req))
}

func TestModelYearBounds(t *testing.T) {
	req := validListingCreateRequest()

	req.Year = 1989
	assert.NotEmpty(t, ValidateStruct(req))

	req.Year = 1990
	assert.Empty(t, ValidateStruct(req))

	req.Year = time.Now().Year() + 2
	assert.NotEmpty(t, ValidateStruct(req))
}

func TestDailyRateBounds(t *testing.T) {
	req := validListingCreateRequest()

	req.DailyRate = 9
	assert.NotEmpty(t, ValidateStruct(req))

	req.DailyRate = 10
	assert.Empty(t, ValidateStruct(req))

	req.DailyRate = 2000
	assert.Empty(t, ValidateStruct(req))

	req.DailyRate = 2001
	assert.NotEmpty(t, ValidateStruct(req))
}

func TestPhotoCountLimit(t *testing.T) {
	req := validListingCreateRequest()
	for i := 0; i < 20; i++ {
		req.Photos = append(req.Photos, "https://cdn.example.com/photo.jpg")
	}
	assert.Empty(t, ValidateStruct(req))

	req.Photos = append(req.Photos, "https://cdn.example.com/photo.jpg")
	errs := ValidateStruct(req)
	require.NotEmpty(t, errs)
	assert.Equal(t, "photo_count", errs[0].Tag)
}

func TestSmartPriceRequestRatingBounds(t *testing.T) {
	req := &SmartPriceRequest{
		VehicleType: "minivan",
		ModelYear:   2020,
		City:        "Santa Ana",
		HostRating:  5.1,
	}
	assert.NotEmpty(t, ValidateStruct(req))

	req.HostRating = 4.9
	assert.Empty(t, ValidateStruct(req))
}

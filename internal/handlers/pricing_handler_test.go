package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveshare/internal/repositories/memory"
	"driveshare/internal/services"
	"driveshare/pkg/logger"
	"driveshare/pkg/pricing"
)

func newPricingTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	service := services.NewPricingService(
		pricing.NewEngine(nil),
		memory.NewListingRepository(),
		memory.NewUserRepository(),
		memory.NewMarketDataRepository(),
		nil, 0, log,
	)
	handler := NewPricingHandler(service)

	router := gin.New()
	router.POST("/pricing/quick-estimate", handler.GetQuickEstimate)
	return router
}

func postQuickEstimate(t *testing.T, router *gin.Engine, body interface{}) (*httptest.ResponseRecorder, pricing.QuickEstimate) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/pricing/quick-estimate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var envelope struct {
		Data pricing.QuickEstimate `json:"data"`
	}
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	}
	return recorder, envelope.Data
}

func TestGetQuickEstimate_ForwardsFeaturesAndInstantBook(t *testing.T) {
	router := newPricingTestRouter(t)

	features := []string{"leather_seats", "premium_sound", "sunroof"}

	recorder, got := postQuickEstimate(t, router, map[string]interface{}{
		"vehicle_type": "sedan",
		"model_year":   2021,
		"city":         "San Salvador",
		"features":     features,
		"instant_book": true,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	want, err := pricing.NewEngine(nil).GetQuickEstimate(context.Background(), &pricing.QuickEstimateInput{
		VehicleType: pricing.VehicleTypeSedan,
		ModelYear:   2021,
		City:        "San Salvador",
		Features:    features,
		InstantBook: true,
	})
	require.NoError(t, err)
	assert.Equal(t, *want, got)

	// The same vehicle with no extras must price lower, proving the
	// optional inputs reach the engine.
	recorder, bare := postQuickEstimate(t, router, map[string]interface{}{
		"vehicle_type": "sedan",
		"model_year":   2021,
		"city":         "San Salvador",
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Less(t, bare.EstimatedRate, got.EstimatedRate)
}

func TestGetQuickEstimate_RejectsUnknownVehicleType(t *testing.T) {
	router := newPricingTestRouter(t)

	recorder, _ := postQuickEstimate(t, router, map[string]interface{}{
		"vehicle_type": "van",
		"model_year":   2021,
		"city":         "San Salvador",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

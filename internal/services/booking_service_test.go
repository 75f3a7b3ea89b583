package services

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveshare/internal/models"
	"driveshare/internal/repositories/memory"
	"driveshare/pkg/logger"
	"driveshare/pkg/pricing"
	"driveshare/pkg/risk"
)

type bookingFixture struct {
	service  BookingService
	users    *memory.UserRepository
	listings *memory.ListingRepository
	bookings *memory.BookingRepository
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	log.SetOutput(io.Discard)

	users := memory.NewUserRepository()
	listings := memory.NewListingRepository()
	bookings := memory.NewBookingRepository()

	return &bookingFixture{
		service:  NewBookingService(bookings, listings, users, risk.NewScorer(nil), log),
		users:    users,
		listings: listings,
		bookings: bookings,
	}
}

func (f *bookingFixture) createGuest(t *testing.T, profile *models.GuestProfile) *models.User {
	t.Helper()

	guest := &models.User{
		Email:        "guest@example.com",
		FirstName:    "Ana",
		LastName:     "Lopez",
		UserType:     models.UserTypeGuest,
		Status:       models.UserStatusActive,
		GuestProfile: profile,
	}
	require.NoError(t, f.users.Create(context.Background(), guest))
	return guest
}

func (f *bookingFixture) createActiveListing(t *testing.T, instantBook bool, dailyRate int) *models.Listing {
	t.Helper()

	host := &models.User{
		Email:     "host@example.com",
		FirstName: "Carlos",
		LastName:  "Mendez",
		UserType:  models.UserTypeHost,
		Status:    models.UserStatusActive,
		HostProfile: &models.HostProfile{
			Rating:         4.9,
			TripsCompleted: 80,
			ResponseRate:   0.95,
		},
	}
	require.NoError(t, f.users.Create(context.Background(), host))

	listing := &models.Listing{
		HostID:      host.ID,
		Make:        "Toyota",
		Model:       "Corolla",
		Year:        2021,
		VehicleType: pricing.VehicleTypeSedan,
		City:        "San Salvador",
		DailyRate:   dailyRate,
		InstantBook: instantBook,
		Status:      models.ListingStatusActive,
	}
	require.NoError(t, f.listings.Create(context.Background(), listing))
	return listing
}

func trustedGuestProfile() *models.GuestProfile {
	return &models.GuestProfile{
		IDVerified:        true,
		FaceMatchVerified: true,
		CompletedTrips:    60,
		AverageRating:     4.9,
	}
}

func TestCreateBookingInstantConfirm(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 59)

	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 3)

	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, end)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	require.NotNil(t, booking.ConfirmedAt)
	assert.NotEmpty(t, booking.Reference)
	assert.Equal(t, 59, booking.DailyRate)
	assert.Equal(t, 59*3, booking.TotalAmount)
	require.NotNil(t, booking.RiskDecision)
	assert.Equal(t, risk.LevelLow, booking.RiskDecision.Level)
	assert.True(t, booking.RiskDecision.CanInstantBook)
}

func TestCreateBookingPendingForNewGuest(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{})
	listing := f.createActiveListing(t, true, 45)

	start := time.Now().AddDate(0, 0, 2)
	end := start.AddDate(0, 0, 2)

	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, end)
	require.NoError(t, err)

	// A brand-new unverified guest lands in the high tier: bookable, but
	// never instantly even when the vehicle allows it.
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Nil(t, booking.ConfirmedAt)
	assert.Equal(t, risk.LevelHigh, booking.RiskDecision.Level)
	assert.NotEmpty(t, booking.Restrictions)
}

func TestCreateBookingBlockedForVeryHighRisk(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{AtFaultClaims: 3})
	listing := f.createActiveListing(t, true, 45)

	start := time.Now().AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 1)

	_, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, end)
	require.ErrorIs(t, err, ErrBookingBlocked)

	bookings, err := f.bookings.GetByListingID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCreateBookingRejectsInactiveListing(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 50)
	require.NoError(t, f.listings.UpdateStatus(context.Background(), listing.ID, models.ListingStatusPaused))

	start := time.Now().AddDate(0, 0, 1)
	_, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestCreateBookingRejectsOutOfRangeLength(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 50)

	start := time.Now().AddDate(0, 0, 1)

	_, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start)
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 92))
	require.ErrorIs(t, err, ErrInvalidDateRange)

	bookings, err := f.bookings.GetByListingID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestCheckEligibilityPreview(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 50)

	eligibility, err := f.service.CheckEligibility(context.Background(), guest.ID, listing.ID)
	require.NoError(t, err)

	assert.True(t, eligibility.Eligible)
	assert.True(t, eligibility.CanInstantBook)
	assert.False(t, eligibility.RequiresApproval)
	assert.Empty(t, eligibility.BlockedReason)
	require.NotNil(t, eligibility.Risk)

	bookings, err := f.bookings.GetByListingID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings, "eligibility preview must not create a booking")
}

func TestCheckEligibilityIgnoresInstantBookFlagForRiskyGuest(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{})
	listing := f.createActiveListing(t, true, 50)

	eligibility, err := f.service.CheckEligibility(context.Background(), guest.ID, listing.ID)
	require.NoError(t, err)

	assert.True(t, eligibility.Eligible)
	assert.False(t, eligibility.CanInstantBook)
	assert.True(t, eligibility.RequiresApproval)
}

func TestConfirmBookingByHost(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{})
	listing := f.createActiveListing(t, true, 40)

	start := time.Now().AddDate(0, 0, 1)
	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusPending, booking.Status)

	confirmed, err := f.service.ConfirmBooking(context.Background(), listing.HostID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)
}

func TestConfirmBookingRejectsWrongHost(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{})
	listing := f.createActiveListing(t, true, 40)

	start := time.Now().AddDate(0, 0, 1)
	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	_, err = f.service.ConfirmBooking(context.Background(), guest.ID, booking.ID)
	require.ErrorIs(t, err, ErrNotListingHost)
}

func TestDeclineBookingByHost(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, &models.GuestProfile{})
	listing := f.createActiveListing(t, true, 40)

	start := time.Now().AddDate(0, 0, 1)
	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	declined, err := f.service.DeclineBooking(context.Background(), listing.HostID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusDeclined, declined.Status)

	_, err = f.service.ConfirmBooking(context.Background(), listing.HostID, booking.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelBookingByGuest(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 40)

	start := time.Now().AddDate(0, 0, 1)
	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	cancelled, err := f.service.CancelBooking(context.Background(), guest.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = f.service.CancelBooking(context.Background(), guest.ID, booking.ID)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelBookingRejectsWrongGuest(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 40)

	start := time.Now().AddDate(0, 0, 1)
	booking, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
	require.NoError(t, err)

	_, err = f.service.CancelBooking(context.Background(), listing.HostID, booking.ID)
	require.ErrorIs(t, err, ErrNotBookingOwner)
}

func TestGetGuestBookingsPaginated(t *testing.T) {
	f := newBookingFixture(t)
	guest := f.createGuest(t, trustedGuestProfile())
	listing := f.createActiveListing(t, true, 40)

	for i := 0; i < 3; i++ {
		start := time.Now().AddDate(0, 1+i, 0)
		_, err := f.service.CreateBooking(context.Background(), guest.ID, listing.ID, start, start.AddDate(0, 0, 2))
		require.NoError(t, err)
	}

	bookings, total, err := f.service.GetGuestBookings(context.Background(), guest.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, bookings, 3)
}

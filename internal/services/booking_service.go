package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/internal/utils"
	"driveshare/pkg/logger"
	"driveshare/pkg/risk"
)

var (
	ErrBookingBlocked     = errors.New("booking blocked by risk assessment")
	ErrListingUnavailable = errors.New("listing is not available for booking")
	ErrInvalidDateRange   = errors.New("booking length out of allowed range")
	ErrNotBookingOwner    = errors.New("booking does not belong to this user")
	ErrNotListingHost     = errors.New("booking does not belong to this host")
	ErrInvalidTransition  = errors.New("invalid booking status transition")
)

type BookingService interface {
	// CheckEligibility previews the risk decision for a guest against a
	// listing without creating anything. Recomputed from the live profile
	// on every call.
	CheckEligibility(ctx context.Context, guestID, listingID primitive.ObjectID) (*risk.BookingEligibility, error)

	// CreateBooking runs the risk assessment and either confirms the
	// booking instantly, parks it pending host approval, or rejects it
	// with ErrBookingBlocked.
	CreateBooking(ctx context.Context, guestID, listingID primitive.ObjectID, startDate, endDate time.Time) (*models.Booking, error)

	ConfirmBooking(ctx context.Context, hostID, bookingID primitive.ObjectID) (*models.Booking, error)
	DeclineBooking(ctx context.Context, hostID, bookingID primitive.ObjectID) (*models.Booking, error)
	CancelBooking(ctx context.Context, guestID, bookingID primitive.ObjectID) (*models.Booking, error)

	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error)
	GetGuestBookings(ctx context.Context, guestID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	listingRepo interfaces.ListingRepository
	userRepo    interfaces.UserRepository
	scorer      *risk.Scorer
	logger      *logger.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	listingRepo interfaces.ListingRepository,
	userRepo interfaces.UserRepository,
	scorer *risk.Scorer,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		scorer:      scorer,
		logger:      log,
		now:         time.Now,
	}
}

func (s *bookingService) CheckEligibility(ctx context.Context, guestID, listingID primitive.ObjectID) (*risk.BookingEligibility, error) {
	guest, err := s.userRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}

	score, err := s.scorer.CalculateRiskScore(ctx, guest.RiskInput(s.now()))
	if err != nil {
		return nil, err
	}

	return s.scorer.DeriveEligibility(score, listing.InstantBook), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, guestID, listingID primitive.ObjectID, startDate, endDate time.Time) (*models.Booking, error) {
	days := int(endDate.Sub(startDate).Hours() / 24)
	if days < utils.MinBookingDays || days > utils.MaxBookingDays {
		return nil, ErrInvalidDateRange
	}

	guest, err := s.userRepo.GetByID(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guest: %w", err)
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing: %w", err)
	}
	if listing.Status != models.ListingStatusActive {
		return nil, ErrListingUnavailable
	}

	score, err := s.scorer.CalculateRiskScore(ctx, guest.RiskInput(s.now()))
	if err != nil {
		return nil, err
	}
	eligibility := s.scorer.DeriveEligibility(score, listing.InstantBook)

	if !eligibility.Eligible {
		s.logger.LogBlockedBooking(guestID.Hex(), eligibility.BlockedReason)
		return nil, fmt.Errorf("%w: %s", ErrBookingBlocked, eligibility.BlockedReason)
	}

	booking := &models.Booking{
		Reference:    generateBookingReference(),
		ListingID:    listing.ID,
		GuestID:      guestID,
		HostID:       listing.HostID,
		StartDate:    startDate,
		EndDate:      endDate,
		DailyRate:    listing.DailyRate,
		RiskDecision: score,
		Restrictions: eligibility.Restrictions,
	}
	booking.TotalAmount = listing.DailyRate * booking.Days()

	if eligibility.CanInstantBook {
		booking.Status = models.BookingStatusConfirmed
		confirmed := s.now()
		booking.ConfirmedAt = &confirmed
	} else {
		booking.Status = models.BookingStatusPending
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.LogBookingDecision(booking.Reference, guestID.Hex(), string(score.Level), eligibility.CanInstantBook)
	return booking, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, hostID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.HostID != hostID {
		return nil, ErrNotListingHost
	}
	if booking.Status != models.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) DeclineBooking(ctx context.Context, hostID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.HostID != hostID {
		return nil, ErrNotListingHost
	}
	if booking.Status != models.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusDeclined); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) CancelBooking(ctx context.Context, guestID, bookingID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.GuestID != guestID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, models.BookingStatusCancelled); err != nil {
		return nil, err
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) GetBookingByReference(ctx context.Context, reference string) (*models.Booking, error) {
	return s.bookingRepo.GetByReference(ctx, reference)
}

func (s *bookingService) GetGuestBookings(ctx context.Context, guestID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookingRepo.GetByGuestID(ctx, guestID, params)
}

func generateBookingReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/internal/repositories/interfaces"
	"driveshare/pkg/cache"
	"driveshare/pkg/logger"
	"driveshare/pkg/pricing"
)

type PricingService interface {
	// Listing-aware entry point: resolves host reputation and market
	// conditions before running the calculation.
	GetSmartPriceForListing(ctx context.Context, listingID primitive.ObjectID) (*pricing.SmartPriceResult, error)

	// Raw entry point for callers that already hold the factors, such as
	// the public estimate endpoint used before a listing exists.
	GetSmartPrice(ctx context.Context, factors *pricing.PricingFactors) (*pricing.SmartPriceResult, error)

	GetQuickEstimate(ctx context.Context, input *pricing.QuickEstimateInput) (*pricing.QuickEstimate, error)
	GetMarketPriceRange(ctx context.Context, vehicleType pricing.VehicleType, city, state string) (*pricing.MarketPriceRange, error)
	EstimateEarnings(ctx context.Context, dailyRate float64, protectionPlanID string, utilizationRate float64) (*pricing.EarningsEstimate, error)

	RefreshMarketStat(ctx context.Context, stat *models.MarketStat) error
}

type pricingService struct {
	engine      *pricing.Engine
	listingRepo interfaces.ListingRepository
	userRepo    interfaces.UserRepository
	marketRepo  interfaces.MarketDataRepository
	cache       *cache.RedisCache
	snapshotTTL time.Duration
	logger      *logger.Logger
}

func NewPricingService(
	engine *pricing.Engine,
	listingRepo interfaces.ListingRepository,
	userRepo interfaces.UserRepository,
	marketRepo interfaces.MarketDataRepository,
	redisCache *cache.RedisCache,
	snapshotTTL time.Duration,
	log *logger.Logger,
) PricingService {
	return &pricingService{
		engine:      engine,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		marketRepo:  marketRepo,
		cache:       redisCache,
		snapshotTTL: snapshotTTL,
		logger:      log,
	}
}

func (s *pricingService) GetSmartPriceForListing(ctx context.Context, listingID primitive.ObjectID) (*pricing.SmartPriceResult, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load listing for pricing: %w", err)
	}

	host, err := s.userRepo.GetByID(ctx, listing.HostID)
	if err != nil {
		// Reputation is an optional input; price without it.
		host = nil
	}

	market := s.resolveMarket(ctx, listing.City, listing.VehicleType)

	result, err := s.engine.CalculateSmartPrice(ctx, listing.PricingFactors(host, market))
	if err != nil {
		return nil, err
	}

	s.logger.LogPricingRequest(listingID.Hex(), result.RecommendedDailyRate, string(result.ConfidenceLevel))
	return result, nil
}

func (s *pricingService) GetSmartPrice(ctx context.Context, factors *pricing.PricingFactors) (*pricing.SmartPriceResult, error) {
	if factors == nil {
		return nil, pricing.ErrNilInput
	}

	if factors.Market == nil {
		factors.Market = s.resolveMarket(ctx, factors.Location.City, factors.VehicleType)
	}

	return s.engine.CalculateSmartPrice(ctx, factors)
}

func (s *pricingService) GetQuickEstimate(ctx context.Context, input *pricing.QuickEstimateInput) (*pricing.QuickEstimate, error) {
	return s.engine.GetQuickEstimate(ctx, input)
}

func (s *pricingService) GetMarketPriceRange(ctx context.Context, vehicleType pricing.VehicleType, city, state string) (*pricing.MarketPriceRange, error) {
	return s.engine.GetMarketPriceRange(ctx, vehicleType, city, state)
}

func (s *pricingService) EstimateEarnings(ctx context.Context, dailyRate float64, protectionPlanID string, utilizationRate float64) (*pricing.EarningsEstimate, error) {
	return s.engine.CalculateEarnings(ctx, dailyRate, protectionPlanID, utilizationRate)
}

func (s *pricingService) RefreshMarketStat(ctx context.Context, stat *models.MarketStat) error {
	if err := s.marketRepo.Upsert(ctx, stat); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(ctx, fmt.Sprintf("market:snapshot:%s:%s", stat.City, stat.VehicleType))
	}

	return nil
}

// resolveMarket looks up market conditions for a city and vehicle type,
// consulting the snapshot cache first. Missing data returns nil so the
// engine falls back to its seasonal defaults.
func (s *pricingService) resolveMarket(ctx context.Context, city string, vehicleType pricing.VehicleType) *pricing.MarketSnapshot {
	if city == "" {
		return nil
	}

	if s.cache != nil {
		var snapshot pricing.MarketSnapshot
		err := s.cache.GetMarketSnapshot(ctx, city, string(vehicleType), &snapshot)
		if err == nil {
			return &snapshot
		}
		if !cache.IsMiss(err) {
			s.logger.WithError(err).Warn("market snapshot cache read failed")
		}
	}

	stat, err := s.marketRepo.GetStat(ctx, city, vehicleType)
	if err != nil {
		s.logger.WithError(err).Warn("market stat lookup failed")
		return nil
	}
	if stat == nil {
		return nil
	}

	snapshot := stat.Snapshot()

	if snapshot.CompetitorCount == 0 {
		count, err := s.listingRepo.CountByCityAndType(ctx, city, vehicleType)
		if err == nil {
			snapshot.CompetitorCount = int(count)
		}
	}

	if s.cache != nil {
		if err := s.cache.CacheMarketSnapshot(ctx, city, string(vehicleType), snapshot, s.snapshotTTL); err != nil {
			s.logger.WithError(err).Warn("market snapshot cache write failed")
		}
	}

	return snapshot
}

package memory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"driveshare/internal/models"
	"driveshare/pkg/pricing"
)

type marketKey struct {
	city        string
	vehicleType pricing.VehicleType
}

// MarketDataRepository holds market stats in memory. A missing pair returns
// (nil, nil) so callers fall back to defaults rather than treat it as an
// error.
type MarketDataRepository struct {
	mu    sync.RWMutex
	stats map[marketKey]*models.MarketStat
}

func NewMarketDataRepository() *MarketDataRepository {
	return &MarketDataRepository{
		stats: make(map[marketKey]*models.MarketStat),
	}
}

func (r *MarketDataRepository) GetStat(ctx context.Context, city string, vehicleType pricing.VehicleType) (*models.MarketStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stat, ok := r.stats[marketKey{city: city, vehicleType: vehicleType}]
	if !ok {
		return nil, nil
	}
	copied := *stat
	return &copied, nil
}

func (r *MarketDataRepository) Upsert(ctx context.Context, stat *models.MarketStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stat.ID.IsZero() {
		stat.ID = primitive.NewObjectID()
	}
	if stat.ObservedAt.IsZero() {
		stat.ObservedAt = time.Now()
	}

	copied := *stat
	r.stats[marketKey{city: stat.City, vehicleType: stat.VehicleType}] = &copied
	return nil
}

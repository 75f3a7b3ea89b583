package interfaces

import (
	"context"

	"driveshare/internal/models"
	"driveshare/pkg/pricing"
)

// MarketDataRepository is the port behind which market snapshots are
// resolved. The memory implementation serves demo mode; the mongodb one
// reads stats maintained by an aggregation job. A nil stat with a nil error
// means no market data exists for the pair.
type MarketDataRepository interface {
	GetStat(ctx context.Context, city string, vehicleType pricing.VehicleType) (*models.MarketStat, error)
	Upsert(ctx context.Context, stat *models.MarketStat) error
}

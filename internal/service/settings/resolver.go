package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/internal/service/records"
)

// Resolver merges the shared cost settings with a farm type's own settings
// and derives the stock counts. CurrentStock is replayed from the complete
// log history on every read so edited or deleted logs never leave a stale
// running total behind.
type Resolver struct {
	records *records.Service
	logger  *zap.Logger
}

// NewResolver constructs a settings resolver.
func NewResolver(recordsSvc *records.Service, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{records: recordsSvc, logger: logger}
}

// Resolve produces the settings view for one farm type.
func (r *Resolver) Resolve(ctx context.Context, ft models.FarmType) (models.Settings, error) {
	shared, err := r.records.SharedSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	farm, err := r.records.FarmSettings(ctx, ft)
	if err != nil {
		return models.Settings{}, err
	}
	logs, err := r.records.DailyLogs(ctx, ft)
	if err != nil {
		return models.Settings{}, err
	}

	return Merge(ft, shared, farm, logs), nil
}

// Merge assembles the settings view from already-loaded records. Mortality
// may exceed initial stock; the resulting negative current stock is kept
// as is.
func Merge(ft models.FarmType, shared models.SharedSettings, farm models.FarmSettings, logs []models.DailyLog) models.Settings {
	initialStock := farm.InitialBirds.Float()
	if ft == models.FarmFish {
		initialStock = farm.InitialQuantity.Float()
	}

	var totalMortality float64
	for _, log := range logs {
		totalMortality += log.Mortality.Float()
	}

	return models.Settings{
		FarmType: ft,

		LaborCost: shared.LaborCost.Float(),
		RentCost:  shared.RentCost.Float(),
		PowerCost: shared.PowerCost.Float(),
		WaterCost: shared.WaterCost.Float(),
		MiscCost:  shared.MiscCost.Float(),

		FeedAlertType:  feedAlertType(shared),
		FeedAlertValue: feedAlertValue(shared),

		Farm: farm,

		InitialStock: initialStock,
		CurrentStock: initialStock - totalMortality,

		// Monthly overheads amortized to a daily figure.
		DailyFixedCost: (shared.LaborCost.Float() +
			shared.RentCost.Float() +
			shared.PowerCost.Float() +
			shared.WaterCost.Float() +
			shared.MiscCost.Float()) / 30,
	}
}

func feedAlertType(shared models.SharedSettings) string {
	if shared.FeedAlertType == models.FeedAlertBags {
		return models.FeedAlertBags
	}
	return models.FeedAlertPercentage
}

func feedAlertValue(shared models.SharedSettings) float64 {
	if shared.FeedAlertValue != nil {
		return shared.FeedAlertValue.Float()
	}
	if shared.FeedAlertType == models.FeedAlertBags {
		return models.DefaultFeedAlertBags
	}
	return models.DefaultFeedAlertPercent
}

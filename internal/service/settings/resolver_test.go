package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

func TestMergeReplaysMortality(t *testing.T) {
	farm := models.FarmSettings{InitialBirds: 100}
	logs := []models.DailyLog{
		{Date: "2026-03-08", Mortality: 2},
		{Date: "2026-03-09", Mortality: 3},
	}

	resolved := Merge(models.FarmLayers, models.SharedSettings{}, farm, logs)

	assert.Equal(t, 100.0, resolved.InitialStock)
	assert.Equal(t, 95.0, resolved.CurrentStock)
}

func TestMergeNeverClampsNegativeStock(t *testing.T) {
	farm := models.FarmSettings{InitialBirds: 10}
	logs := []models.DailyLog{{Date: "2026-03-09", Mortality: 15}}

	resolved := Merge(models.FarmLayers, models.SharedSettings{}, farm, logs)

	assert.Equal(t, -5.0, resolved.CurrentStock)
}

func TestMergeFishUsesInitialQuantity(t *testing.T) {
	farm := models.FarmSettings{InitialBirds: 100, InitialQuantity: 2000}

	resolved := Merge(models.FarmFish, models.SharedSettings{}, farm, nil)

	assert.Equal(t, 2000.0, resolved.InitialStock)
}

func TestMergeDailyFixedCost(t *testing.T) {
	shared := models.SharedSettings{
		LaborCost: 30000,
		RentCost:  15000,
		PowerCost: 6000,
		WaterCost: 6000,
		MiscCost:  3000,
	}

	resolved := Merge(models.FarmBroilers, shared, models.FarmSettings{}, nil)

	assert.InDelta(t, 2000.0, resolved.DailyFixedCost, 1e-9)
}

func TestMergeFeedAlertDefaults(t *testing.T) {
	resolved := Merge(models.FarmLayers, models.SharedSettings{}, models.FarmSettings{}, nil)
	assert.Equal(t, models.FeedAlertPercentage, resolved.FeedAlertType)
	assert.Equal(t, float64(models.DefaultFeedAlertPercent), resolved.FeedAlertValue)

	resolved = Merge(models.FarmLayers, models.SharedSettings{FeedAlertType: models.FeedAlertBags}, models.FarmSettings{}, nil)
	assert.Equal(t, models.FeedAlertBags, resolved.FeedAlertType)
	assert.Equal(t, float64(models.DefaultFeedAlertBags), resolved.FeedAlertValue)
}

func TestMergeFeedAlertExplicitValueWins(t *testing.T) {
	value := models.Numeric(40)
	shared := models.SharedSettings{FeedAlertType: models.FeedAlertPercentage, FeedAlertValue: &value}

	resolved := Merge(models.FarmLayers, shared, models.FarmSettings{}, nil)

	assert.Equal(t, 40.0, resolved.FeedAlertValue)
}

func TestMergeUnknownAlertTypeFallsBackToPercentage(t *testing.T) {
	resolved := Merge(models.FarmLayers, models.SharedSettings{FeedAlertType: "crates"}, models.FarmSettings{}, nil)

	assert.Equal(t, models.FeedAlertPercentage, resolved.FeedAlertType)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyLogInputCrateEquivalents(t *testing.T) {
	in := DailyLogInput{
		Date: "2026-03-10",
		Eggs: []EggCountInput{
			{Name: "Jumbo", Crates: 2, Loose: 15},
			{Name: "Large", Crates: 0, Loose: 30},
		},
		AvgWeight: 1200, // ignored for layers
	}

	log := in.Log(FarmLayers)

	assert.InDelta(t, 2.5, log.Eggs["Jumbo"].Float(), 1e-9)
	assert.InDelta(t, 1.0, log.Eggs["Large"].Float(), 1e-9)
	assert.Zero(t, log.AvgWeight)
}

func TestDailyLogInputKeepsFarmSpecificFields(t *testing.T) {
	in := DailyLogInput{
		Date:      "2026-03-10",
		AvgWeight: 350,
		FeedType:  "Grower",
		WaterPH:   7.2,
		WaterTemp: 27,
	}

	broiler := in.Log(FarmBroilers)
	assert.Equal(t, Numeric(350), broiler.AvgWeight)
	assert.Equal(t, "Grower", broiler.FeedType)
	assert.Zero(t, broiler.WaterPH)

	fish := in.Log(FarmFish)
	assert.Equal(t, Numeric(350), fish.AvgWeight)
	assert.Equal(t, Numeric(7.2), fish.WaterPH)
	assert.Equal(t, Numeric(27), fish.WaterTemp)
	assert.Empty(t, fish.FeedType)
}

func TestCostInputDisabledStoresZero(t *testing.T) {
	assert.Equal(t, Numeric(0), CostInput{Enabled: false, Value: 9000}.Amount())
	assert.Equal(t, Numeric(9000), CostInput{Enabled: true, Value: 9000}.Amount())
}

func TestParseFarmTypeNormalizes(t *testing.T) {
	ft, err := ParseFarmType(" Layers ")
	assert.NoError(t, err)
	assert.Equal(t, FarmLayers, ft)

	_, err = ParseFarmType("goats")
	assert.Error(t, err)
}

package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

func adviceTypes(advice []models.AdviceMessage) []models.AdviceType {
	types := make([]models.AdviceType, 0, len(advice))
	for _, a := range advice {
		types = append(types, a.Type)
	}
	return types
}

func TestLayerRulesHighMortalityAndLoss(t *testing.T) {
	k := models.LayerKPIs{
		CurrentBirds:  100,
		MortalityRate: 1.2,
		Profit:        -8000,
	}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{FarmType: models.FarmLayers, Layers: &k})

	require.Len(t, advice, 2)
	assert.Equal(t, models.AdviceCritical, advice[0].Type)
	assert.Contains(t, advice[0].Message, "Critical mortality rate of 1.2%")
	assert.Equal(t, models.AdviceCritical, advice[1].Type)
	assert.Contains(t, advice[1].Message, "₦8000")
}

func TestLayerRulesFeedAlertByMode(t *testing.T) {
	percentage := models.LayerKPIs{
		FeedMetrics:    models.FeedMetrics{TotalFeedBought: 500, FeedStockPercentage: 20, BagsInStock: 50},
		FeedAlertType:  models.FeedAlertPercentage,
		FeedAlertValue: 25,
	}
	bags := models.LayerKPIs{
		FeedMetrics:    models.FeedMetrics{TotalFeedBought: 500, FeedStockPercentage: 90, BagsInStock: 4},
		FeedAlertType:  models.FeedAlertBags,
		FeedAlertValue: 10,
	}

	r := NewRules()
	pctAdvice := r.Advise(context.Background(), models.KPISnapshot{Layers: &percentage})
	bagAdvice := r.Advise(context.Background(), models.KPISnapshot{Layers: &bags})

	require.Len(t, pctAdvice, 1)
	assert.Contains(t, pctAdvice[0].Message, "below your 25% threshold")
	require.Len(t, bagAdvice, 1)
	assert.Contains(t, bagAdvice[0].Message, "below your 10 bag threshold")
}

func TestLayerRulesSilentBeforeFirstPurchase(t *testing.T) {
	// A farm with no data resolves to the default percentage threshold, but
	// an empty feed pool must not read as "0% in stock".
	k := models.LayerKPIs{
		FeedAlertType:  models.FeedAlertPercentage,
		FeedAlertValue: 25,
	}
	bags := models.LayerKPIs{
		FeedAlertType:  models.FeedAlertBags,
		FeedAlertValue: 10,
	}

	r := NewRules()

	assert.Empty(t, r.Advise(context.Background(), models.KPISnapshot{Layers: &k}))
	assert.Empty(t, r.Advise(context.Background(), models.KPISnapshot{Layers: &bags}))
}

func TestLayerRulesLayingCapacityDrop(t *testing.T) {
	k := models.LayerKPIs{
		LayingCapacity:      70,
		AvgLayingCapacity7d: 90,
	}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Layers: &k})

	require.Len(t, advice, 1)
	assert.Equal(t, models.AdviceWarning, advice[0].Type)
	assert.Contains(t, advice[0].Message, "notably lower than the 7-day average")
}

func TestLayerRulesPositives(t *testing.T) {
	k := models.LayerKPIs{
		LayingCapacity:      92,
		AvgLayingCapacity7d: 92,
		Profit:              15000,
	}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Layers: &k})

	require.Len(t, advice, 2)
	assert.Equal(t, []models.AdviceType{models.AdvicePositive, models.AdvicePositive}, adviceTypes(advice))
	assert.Contains(t, advice[0].Message, "₦15000")
	assert.Contains(t, advice[1].Message, "92.0%")
}

func TestLayerRulesHighFCR(t *testing.T) {
	k := models.LayerKPIs{FCR: 3.5}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Layers: &k})

	require.Len(t, advice, 1)
	assert.Equal(t, models.AdviceWarning, advice[0].Type)
	assert.Contains(t, advice[0].Message, "Feed Conversion Ratio (3.50) is high")
}

func TestBroilerRulesFCRTiers(t *testing.T) {
	cases := []struct {
		name    string
		fcr     float64
		types   []models.AdviceType
		message string
	}{
		{name: "very high", fcr: 2.6, types: []models.AdviceType{models.AdviceWarning}, message: "very high at 2.60"},
		{name: "a bit high", fcr: 2.0, types: []models.AdviceType{models.AdviceWarning}, message: "a bit high at 2.00"},
		{name: "boundary fires nothing", fcr: 1.6, types: []models.AdviceType{}},
		{name: "excellent", fcr: 1.5, types: []models.AdviceType{models.AdvicePositive}, message: "Excellent FCR of 1.50"},
	}

	r := NewRules()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := models.BroilerKPIs{FCR: tc.fcr}
			advice := r.Advise(context.Background(), models.KPISnapshot{Broilers: &k})
			assert.Equal(t, tc.types, adviceTypes(advice))
			if tc.message != "" {
				require.NotEmpty(t, advice)
				assert.Contains(t, advice[0].Message, tc.message)
			}
		})
	}
}

func TestBroilerRulesADG(t *testing.T) {
	negative := models.BroilerKPIs{ADG: -5}
	low := models.BroilerKPIs{ADG: 20}
	great := models.BroilerKPIs{ADG: 65}

	r := NewRules()

	advice := r.Advise(context.Background(), models.KPISnapshot{Broilers: &negative})
	require.Len(t, advice, 1)
	assert.Equal(t, models.AdviceCritical, advice[0].Type)

	advice = r.Advise(context.Background(), models.KPISnapshot{Broilers: &low})
	require.Len(t, advice, 1)
	assert.Equal(t, models.AdviceWarning, advice[0].Type)

	advice = r.Advise(context.Background(), models.KPISnapshot{Broilers: &great})
	require.Len(t, advice, 1)
	assert.Equal(t, models.AdvicePositive, advice[0].Type)
}

func TestFishRulesCriticalPHFiresBothBands(t *testing.T) {
	k := models.FishKPIs{WaterPH: 9.5}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Fish: &k})

	require.Len(t, advice, 2)
	assert.Equal(t, models.AdviceCritical, advice[0].Type)
	assert.Contains(t, advice[0].Message, "critical level (9.5)")
	assert.Equal(t, models.AdviceWarning, advice[1].Type)
	assert.Contains(t, advice[1].Message, "outside the ideal range")
}

func TestFishRulesUnrecordedReadingsFireNothing(t *testing.T) {
	k := models.FishKPIs{WaterPH: 0, WaterTemp: 0}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Fish: &k})

	assert.Empty(t, advice)
}

func TestFishRulesStagnantGrowth(t *testing.T) {
	stagnant := models.FishKPIs{GrowthRate: 0, DaysSinceStocking: 10}
	early := models.FishKPIs{GrowthRate: 0, DaysSinceStocking: 5}

	r := NewRules()

	advice := r.Advise(context.Background(), models.KPISnapshot{Fish: &stagnant})
	require.Len(t, advice, 1)
	assert.Contains(t, advice[0].Message, "growth has stagnated")

	assert.Empty(t, r.Advise(context.Background(), models.KPISnapshot{Fish: &early}))
}

func TestFishRulesTemperatureAndMortality(t *testing.T) {
	k := models.FishKPIs{
		MortalityRate: 1.5,
		WaterTemp:     35,
		GrowthRate:    4,
	}

	advice := NewRules().Advise(context.Background(), models.KPISnapshot{Fish: &k})

	require.Len(t, advice, 3)
	assert.Equal(t, models.AdviceCritical, advice[0].Type)
	assert.Equal(t, models.AdviceWarning, advice[1].Type)
	assert.Contains(t, advice[1].Message, "35°C")
	assert.Equal(t, models.AdvicePositive, advice[2].Type)
	assert.Contains(t, advice[2].Message, "4.0 g/day")
}

func TestRulesEmptySnapshot(t *testing.T) {
	assert.Nil(t, NewRules().Advise(context.Background(), models.KPISnapshot{}))
}

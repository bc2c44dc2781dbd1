package advisor

import (
	"context"
	"fmt"
	"math"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

// Rules is the local deterministic advisory evaluator. Rules fire
// independently, so several can apply to one snapshot; within a farm type
// the order is fixed: critical first, then warnings, then positives.
type Rules struct{}

// NewRules constructs the rule evaluator.
func NewRules() *Rules { return &Rules{} }

// Advise evaluates the fixed threshold rules for the snapshot's farm type.
func (r *Rules) Advise(_ context.Context, snap models.KPISnapshot) []models.AdviceMessage {
	switch {
	case snap.Layers != nil:
		return layerRules(*snap.Layers)
	case snap.Broilers != nil:
		return broilerRules(*snap.Broilers)
	case snap.Fish != nil:
		return fishRules(*snap.Fish)
	}
	return nil
}

func layerRules(k models.LayerKPIs) []models.AdviceMessage {
	var advice []models.AdviceMessage

	if k.MortalityRate > 0.5 {
		advice = append(advice, critical("Critical mortality rate of %.1f%% today. Investigate flock health immediately.", k.MortalityRate))
	}
	if k.Profit < -5000 {
		advice = append(advice, critical("Significant financial loss of ₦%.0f today. Review costs and sales data.", math.Abs(k.Profit)))
	}

	// The alert needs feed data to judge; before the first purchase both
	// stock figures are trivially zero.
	if k.TotalFeedBought > 0 {
		if k.FeedAlertType == models.FeedAlertPercentage && k.FeedStockPercentage < k.FeedAlertValue {
			advice = append(advice, warning("Feed stock is low at %.1f%%, below your %g%% threshold. Plan to restock soon.", k.FeedStockPercentage, k.FeedAlertValue))
		} else if k.FeedAlertType == models.FeedAlertBags && k.BagsInStock < k.FeedAlertValue {
			advice = append(advice, warning("Feed stock is low at %.1f bags, below your %g bag threshold. Plan to restock.", k.BagsInStock, k.FeedAlertValue))
		}
	}

	if k.LayingCapacity > 0 && k.AvgLayingCapacity7d > 0 && k.LayingCapacity < k.AvgLayingCapacity7d*0.9 {
		advice = append(advice, warning("Today's laying capacity (%.1f%%) is notably lower than the 7-day average (%.1f%%). Monitor for potential issues.", k.LayingCapacity, k.AvgLayingCapacity7d))
	}
	if k.FCR > 3.0 && finite(k.FCR) {
		advice = append(advice, warning("Feed Conversion Ratio (%.2f) is high. Ensure proper feeding and check for feed wastage.", k.FCR))
	}

	if k.Profit > 10000 {
		advice = append(advice, positive("Excellent profit of ₦%.0f today! Your management is paying off.", k.Profit))
	}
	if k.LayingCapacity > 85 {
		advice = append(advice, positive("Laying capacity is strong at %.1f%%. Great job!", k.LayingCapacity))
	}

	return advice
}

func broilerRules(k models.BroilerKPIs) []models.AdviceMessage {
	var advice []models.AdviceMessage

	if k.MortalityRate > 0.5 {
		advice = append(advice, critical("Critical mortality rate of %.1f%% today. Check for signs of disease or stress.", k.MortalityRate))
	}
	if k.ADG < 0 {
		advice = append(advice, critical("Average Daily Gain is negative (%.1f g/day). This requires immediate attention to feed, water, and flock health.", k.ADG))
	}

	if k.FCR > 2.5 && finite(k.FCR) {
		advice = append(advice, warning("FCR is very high at %.2f. Review your feeding program and check for wastage. Aim for below 1.8.", k.FCR))
	} else if k.FCR > 1.8 && finite(k.FCR) {
		advice = append(advice, warning("FCR is a bit high at %.2f. Aim for a value below 1.8 for better efficiency.", k.FCR))
	}
	if k.ADG > 0 && k.ADG < 30 {
		advice = append(advice, warning("Average Daily Gain (%.1f g/day) seems low. Ensure constant access to high-quality feed and water.", k.ADG))
	}

	if k.FCR < 1.6 && k.FCR > 0 {
		advice = append(advice, positive("Excellent FCR of %.2f! Your feeding strategy is very efficient.", k.FCR))
	}
	if k.ADG > 60 {
		advice = append(advice, positive("Great average daily gain of %.1f g/day! The flock is growing well.", k.ADG))
	}

	return advice
}

func fishRules(k models.FishKPIs) []models.AdviceMessage {
	var advice []models.AdviceMessage

	if k.MortalityRate > 1 {
		advice = append(advice, critical("Critical mortality rate of %.1f%% today. Check water quality and for signs of disease.", k.MortalityRate))
	}
	if k.WaterPH != 0 && (k.WaterPH < 6.0 || k.WaterPH > 9.0) {
		advice = append(advice, critical("Water pH is at a critical level (%g). This can be toxic to fish. Take corrective action.", k.WaterPH))
	}

	if k.FCR > 1.8 && finite(k.FCR) {
		advice = append(advice, warning("FCR is high at %.2f. Review feeding amounts and feed quality. Ideal FCR is below 1.5.", k.FCR))
	}
	if k.GrowthRate <= 0 && k.DaysSinceStocking > 7 {
		advice = append(advice, warning("Fish growth has stagnated. Check feeding rates, water quality, and stocking density."))
	}
	// Independent of the critical band above; both can fire on one reading.
	if k.WaterPH != 0 && (k.WaterPH < 6.5 || k.WaterPH > 8.5) {
		advice = append(advice, warning("Water pH of %g is outside the ideal range of 6.5-8.5. Monitor closely.", k.WaterPH))
	}
	if k.WaterTemp != 0 && (k.WaterTemp < 22 || k.WaterTemp > 32) {
		advice = append(advice, warning("Water temperature (%g°C) is outside the optimal range (24-30°C). This can stress the fish.", k.WaterTemp))
	}

	if k.FCR < 1.5 && k.FCR > 0 {
		advice = append(advice, positive("Excellent FCR of %.2f. Your feeding management is effective.", k.FCR))
	}
	if k.GrowthRate > 3 {
		advice = append(advice, positive("Good growth rate of %.1f g/day.", k.GrowthRate))
	}

	return advice
}

func critical(format string, args ...any) models.AdviceMessage {
	return models.AdviceMessage{Type: models.AdviceCritical, Message: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...any) models.AdviceMessage {
	return models.AdviceMessage{Type: models.AdviceWarning, Message: fmt.Sprintf(format, args...)}
}

func positive(format string, args ...any) models.AdviceMessage {
	return models.AdviceMessage{Type: models.AdvicePositive, Message: fmt.Sprintf(format, args...)}
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

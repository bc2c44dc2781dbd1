package advisor

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/pkg/clients/gemini"
)

// Gemini is the network-bound advisory delegate. It serializes the KPI
// record into a farm-type-specific prompt and asks the model for a
// categorized advice list. It fails closed: a missing credential yields a
// single offline warning, any transport or parse failure a single critical
// message.
type Gemini struct {
	client *gemini.Client
	logger *zap.Logger
}

// NewGemini constructs the delegate. A nil client means no API key was
// configured.
func NewGemini(client *gemini.Client, logger *zap.Logger) *Gemini {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gemini{client: client, logger: logger}
}

// Advise requests advice from the remote model.
func (g *Gemini) Advise(ctx context.Context, snap models.KPISnapshot) []models.AdviceMessage {
	if g.client == nil {
		return []models.AdviceMessage{{
			Type:    models.AdviceWarning,
			Message: "Gemini API key not configured. Smart Advisor is offline.",
		}}
	}

	items, err := g.client.GenerateAdvice(ctx, buildPrompt(snap))
	if err != nil {
		g.logger.Error("smart advisor request failed", zap.Error(err))
		return []models.AdviceMessage{{
			Type:    models.AdviceCritical,
			Message: "Could not connect to the Smart Advisor.",
		}}
	}

	advice := make([]models.AdviceMessage, 0, len(items))
	for _, item := range items {
		if !models.ValidAdviceType(item.Type) {
			g.logger.Debug("dropping advice with unknown type", zap.String("type", item.Type))
			continue
		}
		advice = append(advice, models.AdviceMessage{
			Type:    models.AdviceType(item.Type),
			Message: item.Message,
		})
	}
	return advice
}

func buildPrompt(snap models.KPISnapshot) string {
	switch {
	case snap.Layers != nil:
		return layerPrompt(*snap.Layers)
	case snap.Broilers != nil:
		return broilerPrompt(*snap.Broilers)
	case snap.Fish != nil:
		return fishPrompt(*snap.Fish)
	}
	return ""
}

func layerPrompt(k models.LayerKPIs) string {
	var b strings.Builder
	b.WriteString("You are an expert poultry farm advisor for an app called 'AgriPulse'. Analyze the following LAYER farm data and provide a JSON array of advice objects. Each object must have 'type' ('critical', 'warning', or 'positive') and 'message' (a concise, helpful string for the farmer). Respond with only the JSON.\n\n")
	b.WriteString("Farm Data:\n")
	fmt.Fprintf(&b, "- Initial Flock Size: %.0f; Current Flock Size: %.0f; Total Mortality: %.0f\n", k.InitialBirds, k.CurrentBirds, k.InitialBirds-k.CurrentBirds)
	fmt.Fprintf(&b, "- Flock Age (days): %d\n", k.FlockAge)
	fmt.Fprintf(&b, "- Feed Alert Threshold: %g %s\n", k.FeedAlertValue, k.FeedAlertType)
	fmt.Fprintf(&b, "- Feed in Stock: %.1f kg (%.1f bags)\n", k.FeedInStock, k.BagsInStock)
	fmt.Fprintf(&b, "- Feed Stock Percentage: %.1f%%\n", k.FeedStockPercentage)
	fmt.Fprintf(&b, "Today's Log (%s):\n", dateOrNone(k.TodayDate))
	fmt.Fprintf(&b, "- Laying Capacity: %.1f%%\n", k.LayingCapacity)
	fmt.Fprintf(&b, "- Mortality Today: %.0f birds (%.2f%% of flock)\n", k.TodayMortality, k.MortalityRate)
	fmt.Fprintf(&b, "- Feed Consumed: %g kg\n", k.TodayFeedUsed)
	fmt.Fprintf(&b, "- Feed Conversion Ratio (kg feed/crate): %s\n", formatFCR(k.FCR))
	fmt.Fprintf(&b, "- Total Income Today: ₦%.0f\n", k.IncomeToday)
	fmt.Fprintf(&b, "- Profit/Loss Today: ₦%.0f\n", k.Profit)
	fmt.Fprintf(&b, "- 7-day avg laying capacity: %.1f%%\n", k.AvgLayingCapacity7d)
	fmt.Fprintf(&b, "- 7-day total mortality: %.0f\n\n", k.TotalMortality7d)
	b.WriteString("Generate advisory messages. Prioritize critical issues like high mortality (>0.5% daily), low feed, major financial loss, or sudden drops in laying capacity.")
	return b.String()
}

func broilerPrompt(k models.BroilerKPIs) string {
	var b strings.Builder
	b.WriteString("You are an expert poultry farm advisor for an app called 'AgriPulse'. Analyze the following BROILER farm data and provide a JSON array of advice objects. Each object must have 'type' ('critical', 'warning', or 'positive') and 'message' (a concise, helpful string for the farmer). Respond with only the JSON.\n\n")
	b.WriteString("Farm Data:\n")
	fmt.Fprintf(&b, "- Initial Flock Size: %.0f; Current Flock Size: %.0f; Total Mortality: %.0f\n", k.InitialBirds, k.CurrentBirds, k.InitialBirds-k.CurrentBirds)
	fmt.Fprintf(&b, "- Flock Age (days): %d\n", k.FlockAge)
	fmt.Fprintf(&b, "- Feed Alert Threshold: %g %s\n", k.FeedAlertValue, k.FeedAlertType)
	fmt.Fprintf(&b, "- Feed in Stock: %.1f kg (%.1f bags)\n", k.FeedInStock, k.BagsInStock)
	fmt.Fprintf(&b, "Today's Log (%s):\n", dateOrNone(k.TodayDate))
	fmt.Fprintf(&b, "- Average Weight: %g g\n", k.TodayAvgWeight)
	fmt.Fprintf(&b, "- Average Daily Gain (ADG): %.1f g/day\n", k.ADG)
	fmt.Fprintf(&b, "- Mortality Today: %.0f birds (%.2f%% of flock)\n", k.TodayMortality, k.MortalityRate)
	fmt.Fprintf(&b, "- Feed Consumed: %g kg\n", k.TodayFeedUsed)
	fmt.Fprintf(&b, "- Feed Conversion Ratio (FCR): %s\n", formatFCR(k.FCR))
	fmt.Fprintf(&b, "- 7-day total mortality: %.0f\n", k.TotalMortality7d)
	fmt.Fprintf(&b, "- Total Income Today: ₦%.0f\n\n", k.IncomeToday)
	b.WriteString("Generate advisory messages. Prioritize critical issues like high mortality (>0.5% daily), negative ADG, or very high FCR (>2.5). A good FCR is below 1.8.")
	return b.String()
}

func fishPrompt(k models.FishKPIs) string {
	var b strings.Builder
	b.WriteString("You are an expert aquaculture advisor for an app called 'AgriPulse'. Analyze the following FISH farm data (likely for Catfish or Tilapia in Nigeria) and provide a JSON array of advice objects. Each object must have 'type' ('critical', 'warning', or 'positive') and 'message' (a concise, helpful string for the farmer). Respond with only the JSON.\n\n")
	b.WriteString("Farm Data:\n")
	fmt.Fprintf(&b, "- Fish Type: %s\n", k.FishType)
	fmt.Fprintf(&b, "- Initial Stock: %.0f fish at %gg each.\n", k.InitialStock, k.InitialAvgWeight)
	fmt.Fprintf(&b, "- Current Stock: %.0f fish.\n", k.CurrentStock)
	fmt.Fprintf(&b, "- Days Since Stocking: %d\n", k.DaysSinceStocking)
	fmt.Fprintf(&b, "- Total Biomass: %.2f kg\n", k.TotalBiomass)
	fmt.Fprintf(&b, "Today's Log (%s):\n", dateOrNone(k.TodayDate))
	fmt.Fprintf(&b, "- Mortality Today: %.0f fish (%.2f%% of stock)\n", k.TodayMortality, k.MortalityRate)
	fmt.Fprintf(&b, "- Feed Consumed: %g kg\n", k.TodayFeedUsed)
	fmt.Fprintf(&b, "- Feed Conversion Ratio (FCR): %s\n", formatFCR(k.FCR))
	fmt.Fprintf(&b, "- Avg Weight Sample: %g g\n", k.LatestAvgWeight)
	fmt.Fprintf(&b, "- Growth Rate: %.1f g/day\n", k.GrowthRate)
	fmt.Fprintf(&b, "- Water pH: %s\n", readingOrNA(k.WaterPH))
	fmt.Fprintf(&b, "- Water Temperature: %s °C\n\n", readingOrNA(k.WaterTemp))
	b.WriteString("Generate advisory messages. Ideal pH is 6.5-8.5. Ideal temp is 24-30°C. FCR should be low (ideally < 1.5). Prioritize critical issues like high mortality (>1% daily), poor water quality, high FCR, or stagnant growth.")
	return b.String()
}

func dateOrNone(date string) string {
	if date == "" {
		return "No log for today"
	}
	return date
}

// formatFCR renders a non-finite ratio as missing data rather than as an
// infinitely bad score.
func formatFCR(fcr float64) string {
	if math.IsInf(fcr, 0) || math.IsNaN(fcr) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", fcr)
}

func readingOrNA(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%g", v)
}

// Package kpi computes the derived dashboard metrics per farm type. Every
// function is pure: it takes settings plus read-only record snapshots and
// returns a flat metrics record, no I/O and no side effects. Division is
// always guarded, so no ratio ever comes out as NaN or infinity.
package kpi

import (
	"math"
	"sort"
	"time"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

// Ledger is the read-only snapshot of store contents the engine computes
// over. Logs always carries all three farm types because the feed pool is
// shared; Income and EggPrices belong to the farm type being computed.
type Ledger struct {
	Logs      map[models.FarmType][]models.DailyLog
	Income    []models.IncomeEntry
	EggPrices []models.EggPrice
	Purchases []models.FeedPurchase
}

// FeedStock aggregates the shared feed pool: purchases minus usage across
// the union of every farm type's logs, regardless of which one is active.
func FeedStock(purchases []models.FeedPurchase, logs map[models.FarmType][]models.DailyLog) models.FeedMetrics {
	var m models.FeedMetrics
	for _, p := range purchases {
		m.TotalFeedBought += p.Weight.Float()
	}
	for _, ft := range models.AllFarmTypes {
		for _, log := range logs[ft] {
			m.TotalFeedUsed += log.FeedUsed.Float()
		}
	}
	m.FeedInStock = m.TotalFeedBought - m.TotalFeedUsed
	m.BagsInStock = m.FeedInStock / models.KgPerBag
	if m.TotalFeedBought > 0 {
		m.FeedStockPercentage = m.FeedInStock / m.TotalFeedBought * 100
	}
	return m
}

// ComputeLayers derives the layer flock metrics for the given instant.
func ComputeLayers(settings models.Settings, led Ledger, now time.Time) models.LayerKPIs {
	logs := led.Logs[models.FarmLayers]
	today := models.Today(now)
	todayLog, hasLog := findByDate(logs, today)

	k := models.LayerKPIs{
		FeedMetrics:    FeedStock(led.Purchases, led.Logs),
		InitialBirds:   settings.InitialStock,
		CurrentBirds:   settings.CurrentStock,
		FlockAge:       flockAge(settings.Farm, now),
		FeedAlertType:  settings.FeedAlertType,
		FeedAlertValue: settings.FeedAlertValue,
		TodayMortality: todayLog.Mortality.Float(),
		TodayFeedUsed:  todayLog.FeedUsed.Float(),
	}
	if hasLog {
		k.TodayDate = todayLog.Date
	}

	k.TotalCratesToday = totalCrates(todayLog.Eggs)
	k.LayingCapacity = layingCapacity(k.TotalCratesToday, settings.CurrentStock)
	if k.TotalCratesToday > 0 {
		k.FCR = k.TodayFeedUsed / k.TotalCratesToday
	}
	k.MortalityRate = mortalityRate(todayLog.Mortality.Float(), settings.CurrentStock)

	for _, price := range led.EggPrices {
		k.EggSaleRevenue += todayLog.Eggs[price.Name].Float() * price.Price.Float()
	}

	var totalPurchaseCost float64
	for _, p := range led.Purchases {
		totalPurchaseCost += p.Cost.Float()
	}
	if k.TotalFeedBought > 0 {
		// All-time average, deliberately not matched to what was consumed.
		k.AvgFeedCostPerKg = totalPurchaseCost / k.TotalFeedBought
	}

	k.IncomeToday = incomeOn(led.Income, today)
	k.TotalCost = settings.DailyFixedCost + k.TodayFeedUsed*k.AvgFeedCostPerKg + todayLog.MiscCost.Float()
	k.Profit = k.EggSaleRevenue + k.IncomeToday - k.TotalCost

	window := lastSevenDays(logs, now)
	var capacitySum float64
	for _, log := range window {
		k.TotalMortality7d += log.Mortality.Float()
		capacitySum += layingCapacity(totalCrates(log.Eggs), settings.CurrentStock)
	}
	if len(window) > 0 {
		k.AvgLayingCapacity7d = capacitySum / float64(len(window))
	} else {
		k.AvgLayingCapacity7d = k.LayingCapacity
	}

	return k
}

// ComputeBroilers derives the broiler flock metrics for the given instant.
func ComputeBroilers(settings models.Settings, led Ledger, now time.Time) models.BroilerKPIs {
	logs := led.Logs[models.FarmBroilers]
	today := models.Today(now)
	yesterday := models.Today(now.AddDate(0, 0, -1))
	todayLog, hasLog := findByDate(logs, today)
	yesterdayLog, _ := findByDate(logs, yesterday)

	k := models.BroilerKPIs{
		FeedMetrics:    FeedStock(led.Purchases, led.Logs),
		InitialBirds:   settings.InitialStock,
		CurrentBirds:   settings.CurrentStock,
		FlockAge:       flockAge(settings.Farm, now),
		FeedAlertType:  settings.FeedAlertType,
		FeedAlertValue: settings.FeedAlertValue,
		TodayAvgWeight: todayLog.AvgWeight.Float(),
		TodayMortality: todayLog.Mortality.Float(),
		TodayFeedUsed:  todayLog.FeedUsed.Float(),
	}
	if hasLog {
		k.TodayDate = todayLog.Date
	}

	todayWeight := todayLog.AvgWeight.Float()
	yesterdayWeight := yesterdayLog.AvgWeight.Float()
	if todayWeight > 0 && yesterdayWeight > 0 {
		k.ADG = todayWeight - yesterdayWeight
	}
	if k.ADG > 0 {
		k.WeightGainKg = k.ADG * settings.CurrentStock / 1000
	}
	if k.WeightGainKg > 0 {
		k.FCR = k.TodayFeedUsed / k.WeightGainKg
	}
	k.MortalityRate = mortalityRate(todayLog.Mortality.Float(), settings.CurrentStock)

	for _, log := range lastSevenDays(logs, now) {
		k.TotalMortality7d += log.Mortality.Float()
	}
	k.IncomeToday = incomeOn(led.Income, today)

	return k
}

// ComputeFish derives the aquaculture metrics for the given instant. Weight
// samples are sparse, so growth uses the two most recent logs carrying an
// average weight, falling back to the stocking weight.
func ComputeFish(settings models.Settings, led Ledger, now time.Time) models.FishKPIs {
	logs := led.Logs[models.FarmFish]
	today := models.Today(now)
	todayLog, hasLog := findByDate(logs, today)

	k := models.FishKPIs{
		FeedMetrics:      FeedStock(led.Purchases, led.Logs),
		FishType:         settings.Farm.FishType,
		InitialStock:     settings.InitialStock,
		InitialAvgWeight: settings.Farm.InitialAvgWeight.Float(),
		CurrentStock:     settings.CurrentStock,
		TodayMortality:   todayLog.Mortality.Float(),
		TodayFeedUsed:    todayLog.FeedUsed.Float(),
		WaterPH:          todayLog.WaterPH.Float(),
		WaterTemp:        todayLog.WaterTemp.Float(),
	}
	if hasLog {
		k.TodayDate = todayLog.Date
	}

	k.DaysSinceStocking = daysSince(settings.Farm.StockingDate, now)

	latest, previous := weightSamples(logs)
	k.LatestAvgWeight = fallbackWeight(latest.AvgWeight, settings.Farm.InitialAvgWeight)
	previousAvgWeight := fallbackWeight(previous.AvgWeight, settings.Farm.InitialAvgWeight)

	k.TotalBiomass = settings.CurrentStock * k.LatestAvgWeight / 1000
	k.WeightGain = k.LatestAvgWeight - previousAvgWeight

	latestDate, latestOK := models.ParseDate(latest.Date)
	previousDate, previousOK := models.ParseDate(previous.Date)
	switch {
	case latestOK && previousOK:
		k.DaysBetweenSamples = latestDate.Sub(previousDate).Hours() / 24
	case k.DaysSinceStocking > 0:
		k.DaysBetweenSamples = float64(k.DaysSinceStocking)
	default:
		k.DaysBetweenSamples = 1
	}
	denom := k.DaysBetweenSamples
	if denom == 0 {
		denom = 1
	}
	k.GrowthRate = k.WeightGain / denom

	for _, log := range logs {
		k.TotalFarmFeedUsed += log.FeedUsed.Float()
	}
	k.TotalWeightGainKg = settings.CurrentStock*k.LatestAvgWeight/1000 -
		settings.InitialStock*settings.Farm.InitialAvgWeight.Float()/1000
	if k.TotalWeightGainKg > 0 {
		k.FCR = k.TotalFarmFeedUsed / k.TotalWeightGainKg
	}
	k.MortalityRate = mortalityRate(todayLog.Mortality.Float(), settings.CurrentStock)

	return k
}

// Snapshot computes the KPI record for one farm type and wraps it for the
// advisory evaluator.
func Snapshot(ft models.FarmType, settings models.Settings, led Ledger, now time.Time) models.KPISnapshot {
	snap := models.KPISnapshot{FarmType: ft}
	switch ft {
	case models.FarmLayers:
		k := ComputeLayers(settings, led, now)
		snap.Layers = &k
	case models.FarmBroilers:
		k := ComputeBroilers(settings, led, now)
		snap.Broilers = &k
	case models.FarmFish:
		k := ComputeFish(settings, led, now)
		snap.Fish = &k
	}
	return snap
}

func findByDate(logs []models.DailyLog, date string) (models.DailyLog, bool) {
	for _, log := range logs {
		if log.Date == date {
			return log, true
		}
	}
	return models.DailyLog{}, false
}

func totalCrates(eggs map[string]models.Numeric) float64 {
	var total float64
	for _, crates := range eggs {
		total += crates.Float()
	}
	return total
}

func layingCapacity(crates, currentStock float64) float64 {
	if currentStock <= 0 {
		return 0
	}
	return crates * models.EggsPerCrate / currentStock * 100
}

func mortalityRate(mortality, currentStock float64) float64 {
	if currentStock <= 0 || mortality <= 0 {
		return 0
	}
	return mortality / currentStock * 100
}

func incomeOn(entries []models.IncomeEntry, date string) float64 {
	var total float64
	for _, entry := range entries {
		if entry.Date == date {
			total += entry.Amount.Float()
		}
	}
	return total
}

// lastSevenDays keeps logs whose calendar date falls within the inclusive
// 7-day window ending today. Logs without a parseable date are skipped.
func lastSevenDays(logs []models.DailyLog, now time.Time) []models.DailyLog {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -7)

	var window []models.DailyLog
	for _, log := range logs {
		date, ok := models.ParseDate(log.Date)
		if !ok || date.Before(cutoff) {
			continue
		}
		window = append(window, log)
	}
	return window
}

// weightSamples returns the two most recent logs with a recorded average
// weight, oldest of the pair first in previous.
func weightSamples(logs []models.DailyLog) (latest, previous models.DailyLog) {
	var samples []models.DailyLog
	for _, log := range logs {
		if log.AvgWeight.Float() > 0 {
			samples = append(samples, log)
		}
	}
	sortByDate(samples)

	if len(samples) > 0 {
		latest = samples[len(samples)-1]
	}
	if len(samples) > 1 {
		previous = samples[len(samples)-2]
	}
	return latest, previous
}

func sortByDate(logs []models.DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		di, _ := models.ParseDate(logs[i].Date)
		dj, _ := models.ParseDate(logs[j].Date)
		return di.Before(dj)
	})
}

func fallbackWeight(sample, initial models.Numeric) float64 {
	if sample.Float() > 0 {
		return sample.Float()
	}
	return initial.Float()
}

func flockAge(farm models.FarmSettings, now time.Time) int {
	if !farm.ShowFlockAge || farm.FlockStartDate == "" {
		return 0
	}
	return daysSince(farm.FlockStartDate, now)
}

func daysSince(dateStr string, now time.Time) int {
	start, ok := models.ParseDate(dateStr)
	if !ok {
		return 0
	}
	days := now.Sub(start).Hours() / 24
	if days < 0 || math.IsNaN(days) {
		return 0
	}
	return int(math.Floor(days))
}

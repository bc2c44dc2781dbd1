package models

import (
	"fmt"
	"strings"
	"time"
)

// FarmType selects which settings schema, log schema and KPI formulas apply.
type FarmType string

const (
	FarmLayers   FarmType = "layers"
	FarmBroilers FarmType = "broilers"
	FarmFish     FarmType = "fish"
)

// AllFarmTypes lists every supported farm type in a stable order.
var AllFarmTypes = []FarmType{FarmLayers, FarmBroilers, FarmFish}

// ParseFarmType normalizes and validates a farm type string.
func ParseFarmType(s string) (FarmType, error) {
	switch FarmType(strings.ToLower(strings.TrimSpace(s))) {
	case FarmLayers:
		return FarmLayers, nil
	case FarmBroilers:
		return FarmBroilers, nil
	case FarmFish:
		return FarmFish, nil
	default:
		return "", fmt.Errorf("unknown farm type %q", s)
	}
}

// DateLayout is the calendar date format used for every stored date.
// Dates carry no time component.
const DateLayout = "2006-01-02"

// ParseDate parses a stored calendar date. Unparseable or empty strings
// report ok=false and are filtered out of date-range computations.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Today formats the calendar date of the supplied instant.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Feed alert modes for the shared low-stock threshold.
const (
	FeedAlertPercentage = "percentage"
	FeedAlertBags       = "bags"
)

// Default alert thresholds applied when the user never set one.
const (
	DefaultFeedAlertPercent = 25
	DefaultFeedAlertBags    = 10
)

// KgPerBag is the fixed bag weight used to convert feed stock to bags.
const KgPerBag = 25

// EggsPerCrate converts between loose eggs and crate-equivalents.
const EggsPerCrate = 30

// SharedSettings are the cost and feed-alert settings shared by every farm
// type. Cost fields default to 0 when their toggle is off.
type SharedSettings struct {
	LaborCost      Numeric  `json:"laborCost"`
	RentCost       Numeric  `json:"rentCost"`
	PowerCost      Numeric  `json:"powerCost"`
	WaterCost      Numeric  `json:"waterCost"`
	MiscCost       Numeric  `json:"miscCost"`
	FeedAlertType  string   `json:"feedAlertType,omitempty"`
	FeedAlertValue *Numeric `json:"feedAlertValue,omitempty"`
}

// FarmSettings holds the per-farm-type settings object. The fields populated
// depend on the farm type the object was stored under; the rest stay zero.
type FarmSettings struct {
	// Layers and broilers.
	InitialBirds   Numeric `json:"initialBirds,omitempty"`
	FlockStartDate string  `json:"flockStartDate,omitempty"`
	ShowFlockAge   bool    `json:"showFlockAge,omitempty"`

	// Broilers only.
	TargetWeight Numeric `json:"targetWeight,omitempty"`

	// Fish only.
	FishType         string  `json:"fishType,omitempty"`
	StockingDate     string  `json:"stockingDate,omitempty"`
	InitialQuantity  Numeric `json:"initialQuantity,omitempty"`
	InitialAvgWeight Numeric `json:"initialAvgWeight,omitempty"`
}

// EggPrice maps an egg-size name to its per-crate price.
type EggPrice struct {
	Name  string  `json:"name"`
	Price Numeric `json:"price"`
}

// DefaultEggSizes seed the price list when none has been saved yet.
var DefaultEggSizes = []string{"Jumbo", "Large", "Pullet"}

// Settings is the resolved per-farm-type settings view produced by the
// settings resolver: shared costs, farm-specific settings and the derived
// stock counts. CurrentStock is recomputed from the full log history on
// every read and may go negative; it is never clamped.
type Settings struct {
	FarmType FarmType `json:"farmType"`

	LaborCost float64 `json:"laborCost"`
	RentCost  float64 `json:"rentCost"`
	PowerCost float64 `json:"powerCost"`
	WaterCost float64 `json:"waterCost"`
	MiscCost  float64 `json:"miscCost"`

	FeedAlertType  string  `json:"feedAlertType"`
	FeedAlertValue float64 `json:"feedAlertValue"`

	Farm FarmSettings `json:"farm"`

	InitialStock   float64 `json:"initialStock"`
	CurrentStock   float64 `json:"currentStock"`
	DailyFixedCost float64 `json:"dailyFixedCost"`
}

// DailyLog is one operational log entry. The populated fields depend on the
// farm type; multiple entries may share a date and are never merged. IDs are
// creation timestamps in milliseconds and stay stable across edits.
type DailyLog struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	Mortality Numeric `json:"mortality"`
	MiscCost  Numeric `json:"miscCost"`
	FeedUsed  Numeric `json:"feedUsed"`

	// Layers: egg-size name -> crate-equivalents (crates + loose/30).
	Eggs map[string]Numeric `json:"eggs,omitempty"`

	// Broilers and fish. For fish, AvgWeight is only present on sampling
	// days; zero means no sample was taken.
	AvgWeight Numeric `json:"avgWeight,omitempty"`
	FeedType  string  `json:"feedType,omitempty"`

	// Fish water quality. Zero means not recorded.
	WaterPH   Numeric `json:"waterPH,omitempty"`
	WaterTemp Numeric `json:"waterTemp,omitempty"`
}

// IncomeEntry records a sale. The list is append-only with in-place updates
// by id and is never re-sorted; history views walk it in reverse insertion
// order.
type IncomeEntry struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Quantity Numeric `json:"quantity"`
	Weight   Numeric `json:"weight,omitempty"`
	Amount   Numeric `json:"amount"`
	Notes    string  `json:"notes,omitempty"`
}

// IncomeCategories returns the sale types offered for a farm type.
func IncomeCategories(ft FarmType) []string {
	switch ft {
	case FarmLayers:
		return []string{"Egg Sales", "Old Layer Birds", "Manure Sales"}
	case FarmBroilers:
		return []string{"Live Birds", "Dressed Birds", "Manure Sales"}
	case FarmFish:
		return []string{"Live Fish", "Smoked Fish"}
	default:
		return nil
	}
}

// FeedPurchase is a shared feed-stock purchase. Feed is a single pooled
// resource: every farm type draws from the same stock, and the stock level
// is always derived, never stored.
type FeedPurchase struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Bags   Numeric `json:"bags"`
	Weight Numeric `json:"weight"`
	Cost   Numeric `json:"cost"`
}

package models

// Input DTOs constructed once per form by the presentation layer and passed
// to the save functions. Handlers never read individual fields out of band.

// EggCountInput is the raw crates/loose pair entered for one egg size. The
// stored value is the crate-equivalent crates + loose/30.
type EggCountInput struct {
	Name   string  `json:"name" binding:"required"`
	Crates float64 `json:"crates"`
	Loose  float64 `json:"loose"`
}

// DailyLogInput is the add/edit daily-log form. A zero ID creates a new
// entry; a non-zero ID updates the matching entry in place.
type DailyLogInput struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date" binding:"required"`
	Mortality float64 `json:"mortality"`
	MiscCost  float64 `json:"miscCost"`
	FeedUsed  float64 `json:"feedUsed"`

	Eggs []EggCountInput `json:"eggs,omitempty"`

	AvgWeight float64 `json:"avgWeight"`
	FeedType  string  `json:"feedType"`

	WaterPH   float64 `json:"waterPH"`
	WaterTemp float64 `json:"waterTemp"`
}

// Log builds the stored record for the given farm type, keeping only the
// fields that schema carries.
func (in DailyLogInput) Log(ft FarmType) DailyLog {
	log := DailyLog{
		ID:        in.ID,
		Date:      in.Date,
		Mortality: Numeric(in.Mortality),
		MiscCost:  Numeric(in.MiscCost),
		FeedUsed:  Numeric(in.FeedUsed),
	}

	switch ft {
	case FarmLayers:
		log.Eggs = make(map[string]Numeric, len(in.Eggs))
		for _, egg := range in.Eggs {
			log.Eggs[egg.Name] = Numeric(egg.Crates + egg.Loose/EggsPerCrate)
		}
	case FarmBroilers:
		log.AvgWeight = Numeric(in.AvgWeight)
		log.FeedType = in.FeedType
	case FarmFish:
		log.AvgWeight = Numeric(in.AvgWeight)
		log.WaterPH = Numeric(in.WaterPH)
		log.WaterTemp = Numeric(in.WaterTemp)
	}

	return log
}

// IncomeEntryInput is the add/edit income form.
type IncomeEntryInput struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Quantity float64 `json:"quantity"`
	Weight   float64 `json:"weight"`
	Amount   float64 `json:"amount"`
	Notes    string  `json:"notes"`
}

// Entry builds the stored income record.
func (in IncomeEntryInput) Entry() IncomeEntry {
	return IncomeEntry{
		ID:       in.ID,
		Date:     in.Date,
		Category: in.Category,
		Quantity: Numeric(in.Quantity),
		Weight:   Numeric(in.Weight),
		Amount:   Numeric(in.Amount),
		Notes:    in.Notes,
	}
}

// FeedPurchaseInput is the feed purchase form. Purchases land in the shared
// pool used by all farm types.
type FeedPurchaseInput struct {
	Date   string  `json:"date" binding:"required"`
	Bags   float64 `json:"bags"`
	Weight float64 `json:"weight" binding:"required"`
	Cost   float64 `json:"cost" binding:"required"`
}

// Purchase builds the stored purchase record.
func (in FeedPurchaseInput) Purchase() FeedPurchase {
	return FeedPurchase{
		Date:   in.Date,
		Bags:   Numeric(in.Bags),
		Weight: Numeric(in.Weight),
		Cost:   Numeric(in.Cost),
	}
}

// CostInput pairs a toggleable cost with its switch. A disabled toggle
// stores 0 whatever the value says.
type CostInput struct {
	Enabled bool    `json:"enabled"`
	Value   float64 `json:"value"`
}

// Amount resolves the stored cost.
func (c CostInput) Amount() Numeric {
	if !c.Enabled {
		return 0
	}
	return Numeric(c.Value)
}

// SettingsInput is the settings form: shared costs, the feed alert and the
// active farm type's own settings, saved together.
type SettingsInput struct {
	LaborCost float64   `json:"laborCost"`
	RentCost  CostInput `json:"rentCost"`
	PowerCost CostInput `json:"powerCost"`
	WaterCost CostInput `json:"waterCost"`
	MiscCost  CostInput `json:"miscCost"`

	FeedAlertType  string  `json:"feedAlertType"`
	FeedAlertValue float64 `json:"feedAlertValue"`

	Farm      FarmSettings `json:"farm"`
	EggPrices []EggPrice   `json:"eggPrices,omitempty"`
}

// Shared builds the stored shared-settings object.
func (in SettingsInput) Shared() SharedSettings {
	alert := Numeric(in.FeedAlertValue)
	return SharedSettings{
		LaborCost:      Numeric(in.LaborCost),
		RentCost:       in.RentCost.Amount(),
		PowerCost:      in.PowerCost.Amount(),
		WaterCost:      in.WaterCost.Amount(),
		MiscCost:       in.MiscCost.Amount(),
		FeedAlertType:  in.FeedAlertType,
		FeedAlertValue: &alert,
	}
}

package models

// FeedMetrics are the shared feed-pool figures. They aggregate purchases and
// usage across all three farm types regardless of which one is active.
type FeedMetrics struct {
	TotalFeedBought     float64 `json:"totalFeedBought"`
	TotalFeedUsed       float64 `json:"totalFeedUsed"`
	FeedInStock         float64 `json:"feedInStock"`
	BagsInStock         float64 `json:"bagsInStock"`
	FeedStockPercentage float64 `json:"feedStockPercentage"`
}

// LayerKPIs is the flat metrics record for a layer flock dashboard.
type LayerKPIs struct {
	FeedMetrics

	InitialBirds float64 `json:"initialBirds"`
	CurrentBirds float64 `json:"currentBirds"`
	FlockAge     int     `json:"flockAge"`

	FeedAlertType  string  `json:"feedAlertType"`
	FeedAlertValue float64 `json:"feedAlertValue"`

	TodayDate      string  `json:"todayDate,omitempty"`
	TodayMortality float64 `json:"todayMortality"`
	TodayFeedUsed  float64 `json:"todayFeedUsed"`

	TotalCratesToday float64 `json:"totalCratesToday"`
	LayingCapacity   float64 `json:"layingCapacity"`
	FCR              float64 `json:"fcr"`
	MortalityRate    float64 `json:"mortalityRate"`

	EggSaleRevenue   float64 `json:"eggSaleRevenue"`
	AvgFeedCostPerKg float64 `json:"avgFeedCostPerKg"`
	TotalCost        float64 `json:"totalCost"`
	IncomeToday      float64 `json:"incomeToday"`
	Profit           float64 `json:"profit"`

	AvgLayingCapacity7d float64 `json:"avgLayingCapacity7d"`
	TotalMortality7d    float64 `json:"totalMortality7d"`
}

// BroilerKPIs is the flat metrics record for a broiler flock dashboard.
type BroilerKPIs struct {
	FeedMetrics

	InitialBirds float64 `json:"initialBirds"`
	CurrentBirds float64 `json:"currentBirds"`
	FlockAge     int     `json:"flockAge"`

	FeedAlertType  string  `json:"feedAlertType"`
	FeedAlertValue float64 `json:"feedAlertValue"`

	TodayDate      string  `json:"todayDate,omitempty"`
	TodayAvgWeight float64 `json:"todayAvgWeight"`
	TodayMortality float64 `json:"todayMortality"`
	TodayFeedUsed  float64 `json:"todayFeedUsed"`

	ADG           float64 `json:"adg"`
	WeightGainKg  float64 `json:"weightGainKg"`
	FCR           float64 `json:"fcr"`
	MortalityRate float64 `json:"mortalityRate"`

	IncomeToday      float64 `json:"incomeToday"`
	TotalMortality7d float64 `json:"totalMortality7d"`
}

// FishKPIs is the flat metrics record for an aquaculture dashboard. Weight
// samples are sparse, so growth figures derive from the two most recent logs
// that carry an average weight.
type FishKPIs struct {
	FeedMetrics

	FishType          string  `json:"fishType,omitempty"`
	InitialStock      float64 `json:"initialStock"`
	InitialAvgWeight  float64 `json:"initialAvgWeight"`
	CurrentStock      float64 `json:"currentStock"`
	DaysSinceStocking int     `json:"daysSinceStocking"`

	TodayDate      string  `json:"todayDate,omitempty"`
	TodayMortality float64 `json:"todayMortality"`
	TodayFeedUsed  float64 `json:"todayFeedUsed"`
	WaterPH        float64 `json:"waterPH"`
	WaterTemp      float64 `json:"waterTemp"`

	LatestAvgWeight    float64 `json:"latestAvgWeight"`
	TotalBiomass       float64 `json:"totalBiomass"`
	WeightGain         float64 `json:"weightGain"`
	DaysBetweenSamples float64 `json:"daysBetweenSamples"`
	GrowthRate         float64 `json:"growthRate"`

	TotalFarmFeedUsed float64 `json:"totalFarmFeedUsed"`
	TotalWeightGainKg float64 `json:"totalWeightGainKg"`
	FCR               float64 `json:"fcr"`
	MortalityRate     float64 `json:"mortalityRate"`
}

// KPISnapshot carries the computed metrics for exactly one farm type into
// the advisory evaluator. Exactly one of the three records is non-nil.
type KPISnapshot struct {
	FarmType FarmType     `json:"farmType"`
	Layers   *LayerKPIs   `json:"layers,omitempty"`
	Broilers *BroilerKPIs `json:"broilers,omitempty"`
	Fish     *FishKPIs    `json:"fish,omitempty"`
}

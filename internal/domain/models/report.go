package models

import "time"

// DailyReport is the nightly KPI snapshot appended to the record store and,
// when configured, exported to the report spreadsheet.
type DailyReport struct {
	Date          string    `json:"date"`
	FarmType      FarmType  `json:"farmType"`
	CurrentStock  float64   `json:"currentStock"`
	MortalityRate float64   `json:"mortalityRate"`
	FCR           float64   `json:"fcr"`
	FeedInStock   float64   `json:"feedInStock"`
	Profit        float64   `json:"profit"`
	CreatedAt     time.Time `json:"createdAt"`
}

package store

import (
	"context"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

// Store is the namespaced key-value record store every farm entity lives in.
// Values are raw JSON lists or objects. Get returns (nil, nil) for keys that
// were never written; callers treat that as an empty list or object.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}

// Record kinds stored per farm type under "{farmType}_{kind}" keys.
const (
	KindDailyLogs     = "dailyLogs"
	KindIncomeEntries = "incomeEntries"
	KindSettings      = "settings"
	KindEggPrices     = "eggPrices"
	KindDailyReports  = "dailyReports"
)

// Shared keys not tied to a farm type.
const (
	KeySharedSettings  = "shared_settings"
	KeyFeedPurchases   = "shared_feedPurchases"
	KeyCurrentFarmType = "currentFarmType"
	KeySettingsSaved   = "settingsSaved"
)

// Key composes the storage key for a farm type's record kind.
func Key(ft models.FarmType, kind string) string {
	return string(ft) + "_" + kind
}

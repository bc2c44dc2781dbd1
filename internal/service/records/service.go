package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/internal/repository/store"
)

// ErrNotFound indicates an edit or delete referenced an id that is not in
// the stored list.
var ErrNotFound = errors.New("record not found")

// Service owns every read and write against the record store and enforces
// the persistence semantics: timestamp ids, ascending date order for daily
// logs, insertion order for income, and the shared feed pool.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a records service.
func NewService(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// WithNow overrides the clock. Tests only.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// DailyLogs returns a farm type's full log history in stored (ascending
// date) order.
func (s *Service) DailyLogs(ctx context.Context, ft models.FarmType) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	if err := s.getJSON(ctx, store.Key(ft, store.KindDailyLogs), &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// LogsByFarmType loads the daily logs of all three farm types. The feed pool
// is shared, so feed arithmetic always needs the union.
func (s *Service) LogsByFarmType(ctx context.Context) (map[models.FarmType][]models.DailyLog, error) {
	all := make(map[models.FarmType][]models.DailyLog, len(models.AllFarmTypes))
	for _, ft := range models.AllFarmTypes {
		logs, err := s.DailyLogs(ctx, ft)
		if err != nil {
			return nil, err
		}
		all[ft] = logs
	}
	return all, nil
}

// SaveDailyLog creates or updates a daily log entry and re-sorts the list
// ascending by date. A new entry gets the current timestamp as id; an edit
// keeps its id and replaces the stored entry in place.
func (s *Service) SaveDailyLog(ctx context.Context, ft models.FarmType, in models.DailyLogInput) (models.DailyLog, error) {
	logs, err := s.DailyLogs(ctx, ft)
	if err != nil {
		return models.DailyLog{}, err
	}

	entry := in.Log(ft)
	if entry.ID == 0 {
		entry.ID = s.now().UnixMilli()
		logs = append(logs, entry)
	} else {
		idx := indexByID(len(logs), func(i int) int64 { return logs[i].ID }, entry.ID)
		if idx < 0 {
			return models.DailyLog{}, fmt.Errorf("daily log %d: %w", entry.ID, ErrNotFound)
		}
		logs[idx] = entry
	}

	sortLogsByDate(logs)

	if err := s.setJSON(ctx, store.Key(ft, store.KindDailyLogs), logs); err != nil {
		return models.DailyLog{}, err
	}

	s.logger.Debug("daily log saved",
		zap.String("farm_type", string(ft)),
		zap.Int64("id", entry.ID),
		zap.String("date", entry.Date))
	return entry, nil
}

// IncomeEntries returns a farm type's income list in insertion order.
func (s *Service) IncomeEntries(ctx context.Context, ft models.FarmType) ([]models.IncomeEntry, error) {
	var entries []models.IncomeEntry
	if err := s.getJSON(ctx, store.Key(ft, store.KindIncomeEntries), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveIncomeEntry appends a new entry or replaces an existing one by id.
// The list keeps insertion order; it is never re-sorted by date.
func (s *Service) SaveIncomeEntry(ctx context.Context, ft models.FarmType, in models.IncomeEntryInput) (models.IncomeEntry, error) {
	entries, err := s.IncomeEntries(ctx, ft)
	if err != nil {
		return models.IncomeEntry{}, err
	}

	entry := in.Entry()
	if entry.ID == 0 {
		entry.ID = s.now().UnixMilli()
		entries = append(entries, entry)
	} else {
		idx := indexByID(len(entries), func(i int) int64 { return entries[i].ID }, entry.ID)
		if idx < 0 {
			return models.IncomeEntry{}, fmt.Errorf("income entry %d: %w", entry.ID, ErrNotFound)
		}
		entries[idx] = entry
	}

	if err := s.setJSON(ctx, store.Key(ft, store.KindIncomeEntries), entries); err != nil {
		return models.IncomeEntry{}, err
	}
	return entry, nil
}

// LedgerPeriod filters the income ledger view.
type LedgerPeriod string

const (
	PeriodToday LedgerPeriod = "today"
	PeriodWeek  LedgerPeriod = "week"
	PeriodMonth LedgerPeriod = "month"
	PeriodAll   LedgerPeriod = "all"
)

// IncomeLedger is the filtered ledger view: entries newest-first by
// insertion order plus the period summary.
type IncomeLedger struct {
	Period       LedgerPeriod         `json:"period"`
	TotalRevenue float64              `json:"totalRevenue"`
	Count        int                  `json:"count"`
	Entries      []models.IncomeEntry `json:"entries"`
}

// Ledger filters a farm type's income entries by period. The week starts on
// Sunday and the month on the 1st. Entries without a parseable date are
// dropped from every period.
func (s *Service) Ledger(ctx context.Context, ft models.FarmType, period LedgerPeriod) (IncomeLedger, error) {
	entries, err := s.IncomeEntries(ctx, ft)
	if err != nil {
		return IncomeLedger{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	ledger := IncomeLedger{Period: period, Entries: []models.IncomeEntry{}}
	var filtered []models.IncomeEntry
	for _, entry := range entries {
		date, ok := models.ParseDate(entry.Date)
		if !ok {
			continue
		}
		switch period {
		case PeriodToday:
			if !date.Equal(today) {
				continue
			}
		case PeriodWeek:
			if date.Before(weekStart) {
				continue
			}
		case PeriodMonth:
			if date.Before(monthStart) {
				continue
			}
		}
		filtered = append(filtered, entry)
		ledger.TotalRevenue += entry.Amount.Float()
	}

	ledger.Count = len(filtered)
	for i := len(filtered) - 1; i >= 0; i-- {
		ledger.Entries = append(ledger.Entries, filtered[i])
	}
	return ledger, nil
}

// FeedPurchases returns the shared purchase list in stored order.
func (s *Service) FeedPurchases(ctx context.Context) ([]models.FeedPurchase, error) {
	var purchases []models.FeedPurchase
	if err := s.getJSON(ctx, store.KeyFeedPurchases, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

// AddFeedPurchase appends a purchase to the shared feed pool.
func (s *Service) AddFeedPurchase(ctx context.Context, in models.FeedPurchaseInput) (models.FeedPurchase, error) {
	purchases, err := s.FeedPurchases(ctx)
	if err != nil {
		return models.FeedPurchase{}, err
	}

	purchase := in.Purchase()
	purchase.ID = s.now().UnixMilli()
	purchases = append(purchases, purchase)

	if err := s.setJSON(ctx, store.KeyFeedPurchases, purchases); err != nil {
		return models.FeedPurchase{}, err
	}
	return purchase, nil
}

// DeleteFeedPurchase removes a purchase by id.
func (s *Service) DeleteFeedPurchase(ctx context.Context, id int64) error {
	purchases, err := s.FeedPurchases(ctx)
	if err != nil {
		return err
	}

	kept := purchases[:0]
	for _, p := range purchases {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(purchases) {
		return fmt.Errorf("feed purchase %d: %w", id, ErrNotFound)
	}
	return s.setJSON(ctx, store.KeyFeedPurchases, kept)
}

// SharedSettings loads the shared cost/alert settings object.
func (s *Service) SharedSettings(ctx context.Context) (models.SharedSettings, error) {
	var shared models.SharedSettings
	if err := s.getJSON(ctx, store.KeySharedSettings, &shared); err != nil {
		return models.SharedSettings{}, err
	}
	return shared, nil
}

// FarmSettings loads a farm type's settings object.
func (s *Service) FarmSettings(ctx context.Context, ft models.FarmType) (models.FarmSettings, error) {
	var farm models.FarmSettings
	if err := s.getJSON(ctx, store.Key(ft, store.KindSettings), &farm); err != nil {
		return models.FarmSettings{}, err
	}
	return farm, nil
}

// EggPrices loads the layer egg price list, seeding the default sizes at
// price 0 when nothing has been saved yet.
func (s *Service) EggPrices(ctx context.Context, ft models.FarmType) ([]models.EggPrice, error) {
	var prices []models.EggPrice
	if err := s.getJSON(ctx, store.Key(ft, store.KindEggPrices), &prices); err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		for _, name := range models.DefaultEggSizes {
			prices = append(prices, models.EggPrice{Name: name})
		}
	}
	return prices, nil
}

// SaveSettings stores the shared settings, the farm type's own settings and
// (for layers) the egg price list, then marks initial setup as done.
func (s *Service) SaveSettings(ctx context.Context, ft models.FarmType, in models.SettingsInput) error {
	if err := s.setJSON(ctx, store.KeySharedSettings, in.Shared()); err != nil {
		return err
	}
	if err := s.setJSON(ctx, store.Key(ft, store.KindSettings), in.Farm); err != nil {
		return err
	}
	if ft == models.FarmLayers && in.EggPrices != nil {
		if err := s.setJSON(ctx, store.Key(ft, store.KindEggPrices), in.EggPrices); err != nil {
			return err
		}
	}
	if err := s.setJSON(ctx, store.KeySettingsSaved, true); err != nil {
		return err
	}

	s.logger.Info("settings saved", zap.String("farm_type", string(ft)))
	return nil
}

// CurrentFarmType returns the persisted farm type selection, defaulting to
// layers.
func (s *Service) CurrentFarmType(ctx context.Context) (models.FarmType, error) {
	var stored string
	if err := s.getJSON(ctx, store.KeyCurrentFarmType, &stored); err != nil {
		return "", err
	}
	ft, err := models.ParseFarmType(stored)
	if err != nil {
		return models.FarmLayers, nil
	}
	return ft, nil
}

// SetCurrentFarmType persists the farm type selection.
func (s *Service) SetCurrentFarmType(ctx context.Context, ft models.FarmType) error {
	return s.setJSON(ctx, store.KeyCurrentFarmType, string(ft))
}

// SettingsSaved reports whether initial setup has been completed.
func (s *Service) SettingsSaved(ctx context.Context) (bool, error) {
	var saved bool
	if err := s.getJSON(ctx, store.KeySettingsSaved, &saved); err != nil {
		return false, err
	}
	return saved, nil
}

// AppendDailyReport appends a nightly KPI snapshot to the farm type's
// report history.
func (s *Service) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	key := store.Key(report.FarmType, store.KindDailyReports)
	var reports []models.DailyReport
	if err := s.getJSON(ctx, key, &reports); err != nil {
		return err
	}
	reports = append(reports, report)
	return s.setJSON(ctx, key, reports)
}

func (s *Service) getJSON(ctx context.Context, key string, out any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Corrupt records read as empty rather than failing the caller.
		s.logger.Warn("unreadable record, treating as empty", zap.String("key", key), zap.Error(err))
	}
	return nil
}

func (s *Service) setJSON(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func sortLogsByDate(logs []models.DailyLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		di, _ := models.ParseDate(logs[i].Date)
		dj, _ := models.ParseDate(logs[j].Date)
		return di.Before(dj)
	})
}

func indexByID(n int, id func(int) int64, want int64) int {
	for i := 0; i < n; i++ {
		if id(i) == want {
			return i
		}
	}
	return -1
}

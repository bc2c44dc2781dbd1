package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/internal/service/advisor"
	"github.com/mamadbah2/agripulse/internal/service/kpi"
	"github.com/mamadbah2/agripulse/internal/service/records"
	"github.com/mamadbah2/agripulse/internal/service/settings"
)

// Service assembles a dashboard view: resolved settings, the KPI snapshot
// and the advisory list. One advisor request runs per refresh; a result
// arriving after the farm type was switched is discarded and the last
// displayed advice wins.
type Service struct {
	records  *records.Service
	resolver *settings.Resolver
	advisor  advisor.Advisor
	logger   *zap.Logger
	now      func() time.Time

	generation atomic.Int64
	mu         sync.Mutex
	lastAdvice []models.AdviceMessage
}

// View is the presentation-layer dashboard contract.
type View struct {
	FarmType models.FarmType        `json:"farmType"`
	Settings models.Settings        `json:"settings"`
	KPIs     models.KPISnapshot     `json:"kpis"`
	Advice   []models.AdviceMessage `json:"advice"`
}

// NewService wires the dashboard orchestrator.
func NewService(recordsSvc *records.Service, resolver *settings.Resolver, adv advisor.Advisor, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:  recordsSvc,
		resolver: resolver,
		advisor:  adv,
		logger:   logger,
		now:      time.Now,
	}
}

// WithNow overrides the clock. Tests only.
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// SwitchFarmType persists the selection and invalidates any advisor request
// still in flight for the previous farm type.
func (s *Service) SwitchFarmType(ctx context.Context, ft models.FarmType) error {
	s.generation.Add(1)
	return s.records.SetCurrentFarmType(ctx, ft)
}

// Refresh recomputes the dashboard for a farm type from current store
// contents.
func (s *Service) Refresh(ctx context.Context, ft models.FarmType) (View, error) {
	resolved, err := s.resolver.Resolve(ctx, ft)
	if err != nil {
		return View{}, err
	}

	led, err := s.ledger(ctx, ft)
	if err != nil {
		return View{}, err
	}

	snap := kpi.Snapshot(ft, resolved, led, s.now())

	gen := s.generation.Load()
	advice := s.advisor.Advise(ctx, snap)
	if s.generation.Load() != gen {
		s.logger.Debug("discarding stale advisory result", zap.String("farm_type", string(ft)))
		advice = s.cachedAdvice()
	} else {
		if len(advice) == 0 {
			advice = []models.AdviceMessage{models.AllClearAdvice}
		}
		s.cacheAdvice(advice)
	}

	return View{
		FarmType: ft,
		Settings: resolved,
		KPIs:     snap,
		Advice:   advice,
	}, nil
}

// Report condenses the current KPI snapshot into a daily report row.
func (s *Service) Report(ctx context.Context, ft models.FarmType) (models.DailyReport, error) {
	resolved, err := s.resolver.Resolve(ctx, ft)
	if err != nil {
		return models.DailyReport{}, err
	}
	led, err := s.ledger(ctx, ft)
	if err != nil {
		return models.DailyReport{}, err
	}

	now := s.now()
	report := models.DailyReport{
		Date:         models.Today(now),
		FarmType:     ft,
		CurrentStock: resolved.CurrentStock,
		CreatedAt:    now,
	}

	switch ft {
	case models.FarmLayers:
		k := kpi.ComputeLayers(resolved, led, now)
		report.MortalityRate = k.MortalityRate
		report.FCR = k.FCR
		report.FeedInStock = k.FeedInStock
		report.Profit = k.Profit
	case models.FarmBroilers:
		k := kpi.ComputeBroilers(resolved, led, now)
		report.MortalityRate = k.MortalityRate
		report.FCR = k.FCR
		report.FeedInStock = k.FeedInStock
	case models.FarmFish:
		k := kpi.ComputeFish(resolved, led, now)
		report.MortalityRate = k.MortalityRate
		report.FCR = k.FCR
		report.FeedInStock = k.FeedInStock
	}

	return report, nil
}

func (s *Service) ledger(ctx context.Context, ft models.FarmType) (kpi.Ledger, error) {
	logs, err := s.records.LogsByFarmType(ctx)
	if err != nil {
		return kpi.Ledger{}, err
	}
	income, err := s.records.IncomeEntries(ctx, ft)
	if err != nil {
		return kpi.Ledger{}, err
	}
	purchases, err := s.records.FeedPurchases(ctx)
	if err != nil {
		return kpi.Ledger{}, err
	}

	led := kpi.Ledger{
		Logs:      logs,
		Income:    income,
		Purchases: purchases,
	}
	if ft == models.FarmLayers {
		prices, err := s.records.EggPrices(ctx, ft)
		if err != nil {
			return kpi.Ledger{}, err
		}
		led.EggPrices = prices
	}
	return led, nil
}

func (s *Service) cacheAdvice(advice []models.AdviceMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAdvice = advice
}

func (s *Service) cachedAdvice() []models.AdviceMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAdvice
}

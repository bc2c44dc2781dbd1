package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/agripulse/internal/domain/models"
	"github.com/mamadbah2/agripulse/internal/repository/memory"
	"github.com/mamadbah2/agripulse/internal/service/advisor"
	"github.com/mamadbah2/agripulse/internal/service/records"
	"github.com/mamadbah2/agripulse/internal/service/settings"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStack(adv advisor.Advisor) (*Service, *records.Service) {
	recordsSvc := records.NewService(memory.NewStore(), nil).WithNow(func() time.Time { return testNow })
	resolver := settings.NewResolver(recordsSvc, nil)
	svc := NewService(recordsSvc, resolver, adv, nil).WithNow(func() time.Time { return testNow })
	return svc, recordsSvc
}

func TestRefreshFallsBackToAllClear(t *testing.T) {
	svc, _ := newTestStack(advisor.NewRules())

	view, err := svc.Refresh(context.Background(), models.FarmLayers)
	require.NoError(t, err)

	assert.Equal(t, models.FarmLayers, view.FarmType)
	require.NotNil(t, view.KPIs.Layers)
	require.Len(t, view.Advice, 1)
	assert.Equal(t, models.AllClearAdvice, view.Advice[0])
}

func TestRefreshSurfacesFiredRules(t *testing.T) {
	svc, recordsSvc := newTestStack(advisor.NewRules())
	ctx := context.Background()

	require.NoError(t, recordsSvc.SaveSettings(ctx, models.FarmLayers, models.SettingsInput{
		Farm: models.FarmSettings{InitialBirds: 100},
	}))
	_, err := recordsSvc.SaveDailyLog(ctx, models.FarmLayers, models.DailyLogInput{
		Date:      models.Today(testNow),
		Mortality: 2,
	})
	require.NoError(t, err)

	view, err := svc.Refresh(ctx, models.FarmLayers)
	require.NoError(t, err)

	require.NotEmpty(t, view.Advice)
	assert.Equal(t, models.AdviceCritical, view.Advice[0].Type)
	assert.Contains(t, view.Advice[0].Message, "mortality")
	assert.Equal(t, 98.0, view.Settings.CurrentStock)
}

// switchingAdvisor simulates a farm-type switch landing while the advisory
// request is still in flight.
type switchingAdvisor struct {
	dashboard *Service
	advice    []models.AdviceMessage
}

func (a *switchingAdvisor) Advise(ctx context.Context, _ models.KPISnapshot) []models.AdviceMessage {
	if a.dashboard != nil {
		_ = a.dashboard.SwitchFarmType(ctx, models.FarmBroilers)
		a.dashboard = nil
	}
	return a.advice
}

func TestRefreshDiscardsStaleAdvice(t *testing.T) {
	stale := []models.AdviceMessage{{Type: models.AdviceCritical, Message: "outdated"}}
	adv := &switchingAdvisor{advice: stale}
	svc, _ := newTestStack(adv)
	adv.dashboard = svc
	ctx := context.Background()

	// First refresh races with a switch, so its result is discarded in favor
	// of the (empty) cache.
	view, err := svc.Refresh(ctx, models.FarmLayers)
	require.NoError(t, err)
	assert.Empty(t, view.Advice)

	// With no switch in flight the advisor result lands and is cached.
	view, err = svc.Refresh(ctx, models.FarmLayers)
	require.NoError(t, err)
	assert.Equal(t, stale, view.Advice)
}

func TestSwitchFarmTypePersistsSelection(t *testing.T) {
	svc, recordsSvc := newTestStack(advisor.NewRules())
	ctx := context.Background()

	require.NoError(t, svc.SwitchFarmType(ctx, models.FarmFish))

	ft, err := recordsSvc.CurrentFarmType(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.FarmFish, ft)
}

func TestReportCondensesSnapshot(t *testing.T) {
	svc, recordsSvc := newTestStack(advisor.NewRules())
	ctx := context.Background()

	require.NoError(t, recordsSvc.SaveSettings(ctx, models.FarmLayers, models.SettingsInput{
		Farm: models.FarmSettings{InitialBirds: 100},
	}))
	_, err := recordsSvc.AddFeedPurchase(ctx, models.FeedPurchaseInput{Date: models.Today(testNow), Weight: 100, Cost: 40000})
	require.NoError(t, err)
	_, err = recordsSvc.SaveDailyLog(ctx, models.FarmLayers, models.DailyLogInput{
		Date:      models.Today(testNow),
		Mortality: 1,
		FeedUsed:  10,
	})
	require.NoError(t, err)

	report, err := svc.Report(ctx, models.FarmLayers)
	require.NoError(t, err)

	assert.Equal(t, models.Today(testNow), report.Date)
	assert.Equal(t, models.FarmLayers, report.FarmType)
	assert.Equal(t, 99.0, report.CurrentStock)
	assert.InDelta(t, 90.0, report.FeedInStock, 1e-9)
	assert.Equal(t, testNow, report.CreatedAt)
}

package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/config"
	"github.com/mamadbah2/agripulse/internal/repository/sheets"
	"github.com/mamadbah2/agripulse/internal/service/dashboard"
	"github.com/mamadbah2/agripulse/internal/service/records"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	dashboardSvc *dashboard.Service
	recordsSvc   *records.Service
	exporter     sheets.Exporter
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. The exporter may be nil when
// spreadsheet export is not configured.
func NewScheduler(cfg config.ReportingConfig, dashboardSvc *dashboard.Service, recordsSvc *records.Service, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		dashboardSvc: dashboardSvc,
		recordsSvc:   recordsSvc,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the nightly report job and launches the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.generateNightlyReport); err != nil {
		s.logger.Error("failed to schedule nightly report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) generateNightlyReport() {
	s.logger.Info("generating nightly report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ft, err := s.recordsSvc.CurrentFarmType(ctx)
	if err != nil {
		s.logger.Error("failed to resolve active farm type", zap.Error(err))
		return
	}

	report, err := s.dashboardSvc.Report(ctx, ft)
	if err != nil {
		s.logger.Error("failed to generate nightly report", zap.Error(err))
		return
	}

	if err := s.recordsSvc.AppendDailyReport(ctx, report); err != nil {
		s.logger.Error("failed to persist nightly report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendReport(ctx, report); err != nil {
			s.logger.Error("failed to export nightly report", zap.Error(err))
			return
		}
	}

	s.logger.Info("nightly report recorded",
		zap.String("farm_type", string(report.FarmType)),
		zap.String("date", report.Date))
}

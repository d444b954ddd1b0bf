package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/config"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// Reporter is the reporting surface used by the scheduled jobs.
type Reporter interface {
	WeeklySummary(ctx context.Context) (string, error)
	SaveMonthlySnapshot(ctx context.Context, at time.Time) (models.MonthlySnapshot, error)
	ExportComposition(ctx context.Context, month string) (reporting.ExportResult, error)
}

// Notifier delivers a message to the shop owner.
type Notifier interface {
	SendToOwner(ctx context.Context, message string) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter Reporter
	notifier Notifier
	cfg      config.ReportingConfig
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance. notifier may be nil when
// WhatsApp is not configured; the summary is then only logged.
func NewScheduler(cfg config.ReportingConfig, reporter Reporter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		reporter: reporter,
		notifier: notifier,
		cfg:      cfg,
		location: location,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("report_schedule", s.cfg.CronSchedule),
		zap.String("snapshot_schedule", s.cfg.SnapshotCronSchedule),
		zap.String("timezone", s.location.String()))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.sendWeeklyReport); err != nil {
		return fmt.Errorf("schedule weekly report: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.SnapshotCronSchedule, s.saveMonthEndSnapshot); err != nil {
		return fmt.Errorf("schedule monthly snapshot: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendWeeklyReport() {
	s.logger.Info("generating weekly report")
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	report, err := s.reporter.WeeklySummary(ctx)
	if err != nil {
		s.logger.Error("failed to generate weekly report", zap.Error(err))
		return
	}

	if s.notifier == nil {
		s.logger.Info("weekly report generated, no recipient configured", zap.String("report", report))
	} else if err := s.notifier.SendToOwner(ctx, report); err != nil {
		s.logger.Error("failed to send weekly report", zap.Error(err))
	} else {
		s.logger.Info("weekly report sent successfully")
	}
}

// saveMonthEndSnapshot runs on the candidate days 28-31 and only acts on the
// last day of the month. The month is archived and then exported, so the
// spreadsheet row covers the whole month.
func (s *Scheduler) saveMonthEndSnapshot() {
	now := s.now().In(s.location)
	if !isLastDayOfMonth(now) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	snapshot, err := s.reporter.SaveMonthlySnapshot(ctx, now)
	if err != nil {
		s.logger.Error("failed to save monthly snapshot", zap.Error(err))
		return
	}
	s.logger.Info("monthly snapshot archived", zap.String("month", snapshot.Month))

	result, err := s.reporter.ExportComposition(ctx, snapshot.Month)
	switch {
	case errors.Is(err, reporting.ErrExportDisabled):
		s.logger.Debug("spreadsheet export skipped")
	case err != nil:
		s.logger.Error("failed to export profit composition", zap.Error(err))
	default:
		s.logger.Info("profit composition exported",
			zap.String("month", result.Month),
			zap.Int("rows", result.Rows),
			zap.Bool("already_exported", result.AlreadyExported))
	}
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/deliciarte/internal/config"
	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/service/reporting"
)

type stubReporter struct {
	summaryErr error
	exportErr  error
	snapshots  []time.Time
	exported   []string
}

func (r *stubReporter) WeeklySummary(context.Context) (string, error) {
	return "resumo semanal", r.summaryErr
}

func (r *stubReporter) SaveMonthlySnapshot(_ context.Context, at time.Time) (models.MonthlySnapshot, error) {
	r.snapshots = append(r.snapshots, at)
	return models.MonthlySnapshot{Month: at.Format("2006-01")}, nil
}

func (r *stubReporter) ExportComposition(_ context.Context, month string) (reporting.ExportResult, error) {
	r.exported = append(r.exported, month)
	return reporting.ExportResult{Month: month, Rows: 3}, r.exportErr
}

type stubNotifier struct {
	messages []string
}

func (n *stubNotifier) SendToOwner(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

func testConfig() config.ReportingConfig {
	return config.ReportingConfig{
		CronSchedule:         "0 20 * * 5",
		SnapshotCronSchedule: "0 23 28-31 * *",
		Timezone:             "UTC",
	}
}

func TestNewScheduler_RejectsUnknownTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "Mars/Olympus"

	_, err := NewScheduler(cfg, &stubReporter{}, nil, nil)
	assert.Error(t, err)
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.CronSchedule = "every friday"

	s, err := NewScheduler(cfg, &stubReporter{}, nil, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestSendWeeklyReport(t *testing.T) {
	reporter := &stubReporter{}
	notifier := &stubNotifier{}
	s, err := NewScheduler(testConfig(), reporter, notifier, nil)
	require.NoError(t, err)

	s.sendWeeklyReport()

	assert.Equal(t, []string{"resumo semanal"}, notifier.messages)
	assert.Empty(t, reporter.exported)
}

func TestSendWeeklyReport_WithoutNotifier(t *testing.T) {
	reporter := &stubReporter{}
	s, err := NewScheduler(testConfig(), reporter, nil, nil)
	require.NoError(t, err)

	assert.NotPanics(t, s.sendWeeklyReport)
}

func TestSendWeeklyReport_SummaryFailure(t *testing.T) {
	reporter := &stubReporter{summaryErr: errors.New("mongo down")}
	notifier := &stubNotifier{}
	s, err := NewScheduler(testConfig(), reporter, notifier, nil)
	require.NoError(t, err)

	s.sendWeeklyReport()
	assert.Empty(t, notifier.messages)
}

func TestSaveMonthEndSnapshot_OnlyOnLastDay(t *testing.T) {
	reporter := &stubReporter{}
	s, err := NewScheduler(testConfig(), reporter, nil, nil)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2026, 10, 30, 23, 0, 0, 0, time.UTC) }
	s.saveMonthEndSnapshot()
	assert.Empty(t, reporter.snapshots)
	assert.Empty(t, reporter.exported)

	s.now = func() time.Time { return time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC) }
	s.saveMonthEndSnapshot()
	require.Len(t, reporter.snapshots, 1)
	assert.Equal(t, time.October, reporter.snapshots[0].Month())
	assert.Equal(t, []string{"2026-10"}, reporter.exported)
}

func TestSaveMonthEndSnapshot_ExportDisabledIsTolerated(t *testing.T) {
	reporter := &stubReporter{exportErr: reporting.ErrExportDisabled}
	s, err := NewScheduler(testConfig(), reporter, nil, nil)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Date(2026, 10, 31, 23, 0, 0, 0, time.UTC) }
	s.saveMonthEndSnapshot()
	assert.Len(t, reporter.snapshots, 1)
	assert.Len(t, reporter.exported, 1)
}

func TestSaveMonthEndSnapshot_UsesSchedulerTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Timezone = "America/Sao_Paulo"
	reporter := &stubReporter{}
	s, err := NewScheduler(cfg, reporter, nil, nil)
	require.NoError(t, err)

	// 02:00 UTC on November 1st is 23:00 on October 31st in Sao Paulo.
	s.now = func() time.Time { return time.Date(2026, 11, 1, 2, 0, 0, 0, time.UTC) }
	s.saveMonthEndSnapshot()
	require.Len(t, reporter.snapshots, 1)
	assert.Equal(t, []string{"2026-10"}, reporter.exported)
}

func TestIsLastDayOfMonth(t *testing.T) {
	assert.True(t, isLastDayOfMonth(time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)))
	assert.False(t, isLastDayOfMonth(time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC)))
	assert.True(t, isLastDayOfMonth(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}

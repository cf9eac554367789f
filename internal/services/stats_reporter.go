package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/todo/domain"
)

// TaskSource is the read side of the task store the reporter needs.
type TaskSource interface {
	List() []domain.Task
}

// Snapshot summarizes the store at a point in time.
type Snapshot struct {
	Total    int
	ByStatus map[domain.Status]int
	TakenAt  time.Time
}

// StatsReporter periodically logs a snapshot of the task store.
type StatsReporter struct {
	source   TaskSource
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

// NewStatsReporter schedules a report every interval. Intervals below one second are
// rounded up to one second because the schedule has second granularity.
func NewStatsReporter(source TaskSource, interval time.Duration, logger *zap.Logger) (*StatsReporter, error) {
	if source == nil {
		return nil, fmt.Errorf("stats reporter: nil task source")
	}
	if interval < time.Second {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sr := &StatsReporter{
		source:   source,
		logger:   logger,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := sr.cron.AddFunc(schedule, sr.Report); err != nil {
		return nil, fmt.Errorf("stats reporter: schedule %q: %w", schedule, err)
	}
	return sr, nil
}

// Start launches the cron scheduler.
func (sr *StatsReporter) Start() {
	if sr == nil || sr.cron == nil {
		return
	}
	sr.cron.Start()
	sr.logger.Info("stats reporter started", zap.Duration("interval", sr.interval))
}

// Stop waits for a running report to finish or for ctx to expire.
func (sr *StatsReporter) Stop(ctx context.Context) error {
	if sr == nil || sr.cron == nil {
		return nil
	}
	stopCtx := sr.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	sr.logger.Info("stats reporter stopped")
	return nil
}

// Snapshot counts tasks per status.
func (sr *StatsReporter) Snapshot() Snapshot {
	tasks := sr.source.List()

	snap := Snapshot{
		Total:    len(tasks),
		ByStatus: make(map[domain.Status]int, len(domain.ValidStatuses())),
		TakenAt:  time.Now(),
	}
	for _, status := range domain.ValidStatuses() {
		snap.ByStatus[status] = 0
	}
	for _, task := range tasks {
		snap.ByStatus[task.Status]++
	}
	return snap
}

// Report logs the current snapshot.
func (sr *StatsReporter) Report() {
	snap := sr.Snapshot()
	sr.logger.Info("task store snapshot",
		zap.Int("total", snap.Total),
		zap.Int(string(domain.StatusTodo), snap.ByStatus[domain.StatusTodo]),
		zap.Int(string(domain.StatusInProgress), snap.ByStatus[domain.StatusInProgress]),
		zap.Int(string(domain.StatusDone), snap.ByStatus[domain.StatusDone]),
	)
}

// Package reminders implements a background sweep over the dose schedule
// that surfaces upcoming and missed doses.
package reminders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Murari1104/pharmaAi/internal/metrics"
	"github.com/Murari1104/pharmaAi/internal/schedule"
	"go.uber.org/zap"
)

// Config holds reminder runner configuration
type Config struct {
	CheckInterval int // Minutes between schedule sweeps
	LeadTime      int // Minutes of advance notice before a dose is due
}

// Runner periodically scans today's schedule and logs doses that are
// due soon or already missed. It never mutates the schedule.
type Runner struct {
	config  Config
	store   *schedule.Store
	metrics *metrics.Metrics
	logger  *zap.Logger
	clock   func() time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.RWMutex
}

// NewRunner creates a new reminder runner
func NewRunner(config Config, st *schedule.Store, m *metrics.Metrics, logger *zap.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())

	// Set defaults
	if config.CheckInterval <= 0 {
		config.CheckInterval = 1
	}
	if config.LeadTime <= 0 {
		config.LeadTime = 30
	}

	return &Runner{
		config:  config,
		store:   st,
		metrics: m,
		logger:  logger,
		clock:   time.Now,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the reminder runner
func (r *Runner) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return fmt.Errorf("reminder runner already running")
	}

	r.running = true
	r.wg.Add(1)
	go r.run()

	return nil
}

// Stop stops the reminder runner
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	r.cancel()
	r.wg.Wait()
	r.logger.Info("Reminder runner stopped")
}

// IsRunning returns whether the runner is active
func (r *Runner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// run is the main loop
func (r *Runner) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(time.Duration(r.config.CheckInterval) * time.Minute)
	defer ticker.Stop()

	// Sweep immediately on start
	r.Sweep()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// Sweep scans today's untaken doses once and logs the ones due within
// the configured lead time or already past. It returns the counts for
// both buckets.
func (r *Runner) Sweep() (due, missed int) {
	now := r.clock()
	today := now.Format(schedule.DateLayout)

	for _, entry := range r.store.EntriesFor(today) {
		if entry.Taken {
			continue
		}

		doseTime, err := doseTimeOn(now, entry.Time)
		if err != nil {
			r.logger.Warn("Skipping dose with unparsable time",
				zap.String("entry_id", entry.ID),
				zap.String("time", entry.Time),
			)
			continue
		}

		switch {
		case now.After(doseTime):
			missed++
			r.logger.Info("Dose missed",
				zap.String("entry_id", entry.ID),
				zap.String("name", entry.Name),
				zap.String("scheduled", entry.Time),
			)
		case doseTime.Sub(now) <= time.Duration(r.config.LeadTime)*time.Minute:
			due++
			r.logger.Info("Dose due soon",
				zap.String("entry_id", entry.ID),
				zap.String("name", entry.Name),
				zap.String("scheduled", entry.Time),
				zap.Duration("in", doseTime.Sub(now).Round(time.Minute)),
			)
		}
	}

	if r.metrics != nil {
		r.metrics.RecordReminderScan(due, missed)
	}

	return due, missed
}

// doseTimeOn anchors a wall-clock dose time on the given day
func doseTimeOn(day time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse(schedule.ClockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), nil
}

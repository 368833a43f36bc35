package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/clock"
	"github.com/fadedpez/neonroyal/pkg/repositories/archive"
)

// Saver flushes the profile
type Saver interface {
	Save(ctx context.Context) error
}

// Intervals for the background tasks. Zero values fall back to defaults.
type Intervals struct {
	BonusTick     time.Duration
	ProfileFlush  time.Duration
	ArchivePrune  time.Duration
	ArchiveMaxAge time.Duration
}

const (
	defaultBonusTick     = time.Minute
	defaultProfileFlush  = 5 * time.Minute
	defaultArchivePrune  = 24 * time.Hour
	defaultArchiveMaxAge = 30 * 24 * time.Hour
)

func (i Intervals) withDefaults() Intervals {
	if i.BonusTick <= 0 {
		i.BonusTick = defaultBonusTick
	}
	if i.ProfileFlush <= 0 {
		i.ProfileFlush = defaultProfileFlush
	}
	if i.ArchivePrune <= 0 {
		i.ArchivePrune = defaultArchivePrune
	}
	if i.ArchiveMaxAge <= 0 {
		i.ArchiveMaxAge = defaultArchiveMaxAge
	}
	return i
}

// Maintenance wires the casino's background tasks onto a Scheduler
type Maintenance struct {
	scheduler *Scheduler
	watcher   *BonusWatcher
	saver     Saver
	archive   archive.Archive
	clock     clock.Clock
	intervals Intervals
	logger    *logging.Logger
}

// NewMaintenance registers the bonus tick and the profile flush, plus
// archive pruning when arch is not nil
func NewMaintenance(clk clock.Clock, pub Publisher, saver Saver, arch archive.Archive, intervals Intervals, logger *logging.Logger) *Maintenance {
	if logger == nil {
		logger = logging.Default
	}

	m := &Maintenance{
		scheduler: NewScheduler(logger),
		watcher:   NewBonusWatcher(clk, pub),
		saver:     saver,
		archive:   arch,
		clock:     clk,
		intervals: intervals.withDefaults(),
		logger:    logger,
	}

	m.scheduler.AddTask("bonus_tick", m.intervals.BonusTick, m.watcher.Check)
	m.scheduler.AddTask("profile_flush", m.intervals.ProfileFlush, m.flushProfile)
	if arch != nil {
		m.scheduler.AddTask("archive_pruning", m.intervals.ArchivePrune, m.pruneArchive)
	}
	return m
}

// Start starts the maintenance scheduler
func (m *Maintenance) Start(ctx context.Context) {
	m.scheduler.Start(ctx)
}

// Stop stops the maintenance scheduler
func (m *Maintenance) Stop() {
	m.scheduler.Stop()
}

// Tasks returns the names of the registered tasks
func (m *Maintenance) Tasks() []string {
	return m.scheduler.Tasks()
}

// Watcher returns the bonus watcher
func (m *Maintenance) Watcher() *BonusWatcher {
	return m.watcher
}

func (m *Maintenance) flushProfile(ctx context.Context) error {
	return m.saver.Save(ctx)
}

// pruneArchive drops archived rounds older than the retention window
func (m *Maintenance) pruneArchive(ctx context.Context) error {
	cutoff := m.clock.Now().Add(-m.intervals.ArchiveMaxAge)
	deleted, err := m.archive.Prune(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("error pruning archive: %w", err)
	}
	m.logger.Info("Pruned %d archived rounds older than %s", deleted, cutoff.Format(time.RFC3339))
	return nil
}

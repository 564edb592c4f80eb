// Package daemon provides the background watcher that notices day changes
// and closes passed pay periods without the CLI having to be run.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/glidepath/internal/calendar"
	"github.com/theirongolddev/glidepath/internal/model"
	"github.com/theirongolddev/glidepath/internal/projection"
	"github.com/theirongolddev/glidepath/internal/reconcile"
	"github.com/theirongolddev/glidepath/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	BudgetPath  string
	ArchivePath string
	// GraceDays is how long a pending period waits before auto-completing.
	GraceDays int
	// PollInterval is the fallback poll cadence that catches missed
	// midnight timers after a suspend/resume.
	PollInterval time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is the compact budget state served for status payloads.
type Snapshot struct {
	At             time.Time `json:"at"`
	Balance        float64   `json:"balance"`
	BalanceAsOf    string    `json:"balance_as_of"`
	NextPayDate    string    `json:"next_pay_date"`
	SavingsGoal    float64   `json:"savings_goal"`
	GoalDate       string    `json:"goal_date,omitempty"`
	PeriodsToGoal  int       `json:"periods_to_goal"`
	DaysToGoal     int       `json:"days_to_goal"`
	PendingPeriod  int       `json:"pending_period,omitempty"`
	PeriodsOnFile  int       `json:"periods_on_file"`
	BaselineInUse  float64   `json:"baseline_in_use"`
	UsingCalcBase  bool      `json:"using_calculated_baseline"`
	HasBudget      bool      `json:"has_budget"`
}

// Event is emitted whenever a sync changes the budget document.
type Event struct {
	ID            int64     `json:"id"`
	Type          string    `json:"type"`
	Timestamp     time.Time `json:"timestamp"`
	Snapshot      Snapshot  `json:"snapshot"`
	PeriodsClosed int       `json:"periods_closed,omitempty"`
	NewBalance    float64   `json:"new_balance,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastCheckAt     time.Time `json:"last_check_at"`
	LastCheckedDay  string    `json:"last_checked_day"`
	CheckCount      int64     `json:"check_count"`
	BudgetPath      string    `json:"budget_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
}

// Service watches the calendar and reconciles the budget document when a
// new day begins. All projection work stays pure; the service owns the
// load-sync-save cycle the core deliberately does not.
type Service struct {
	cfg Config

	mu             sync.RWMutex
	startedAt      time.Time
	lastCheckAt    time.Time
	lastCheckedDay string
	checkCount     int64
	lastError      string
	snapshot       Snapshot
	nextEventID    int64
	events         []Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.PollInterval < time.Minute {
		cfg.PollInterval = 15 * time.Minute
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8791"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
	}
}

// Run starts the HTTP endpoints and the day-change watcher until ctx is
// canceled. Transitions are evaluated at most once per calendar day: once
// just after local midnight via an aligned timer, with the fallback poll
// catching timers lost to process suspension.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed state so status is useful immediately.
	s.checkOnce(time.Now())

	midnight := time.NewTimer(untilNextMidnight(time.Now()))
	defer midnight.Stop()
	poll := time.NewTicker(s.cfg.PollInterval)
	defer poll.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case now := <-midnight.C:
			s.checkOnce(now)
			midnight.Reset(untilNextMidnight(now))
		case now := <-poll.C:
			s.checkOnce(now)
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

// untilNextMidnight returns the duration to shortly after the next local
// midnight. The one-minute cushion keeps the timer on the right side of
// the boundary under clock slew.
func untilNextMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now) + time.Minute
}

// checkOnce evaluates transitions for the current day. Repeat calls on the
// same calendar day only refresh the snapshot; Sync itself is idempotent,
// so a duplicate run is harmless either way.
func (s *Service) checkOnce(now time.Time) {
	day := now.Format("2006-01-02")

	fs := store.NewFileStore(s.cfg.BudgetPath)
	cfg, err := fs.Load()
	if err != nil {
		s.recordError(now, day, err)
		log.Printf("glidepath daemon: load: %v", err)
		return
	}

	var (
		ev      Event
		publish bool
	)

	if cfg != nil {
		today := calendar.DayStart(now)
		result, err := reconcile.Sync(cfg, today)
		if err != nil {
			s.recordError(now, day, err)
			log.Printf("glidepath daemon: sync: %v", err)
			return
		}
		expired := reconcile.ExpirePending(cfg, today, s.cfg.GraceDays)

		if result.Changed() || expired {
			if err := fs.Save(cfg); err != nil {
				// Non-fatal: in-memory state is authoritative and the
				// next check retries the write.
				s.recordError(now, day, err)
				log.Printf("glidepath daemon: save: %v", err)
			} else {
				s.archivePeriods(cfg)
			}

			publish = true
			ev = Event{
				Type:          "periods_closed",
				Timestamp:     now,
				PeriodsClosed: len(result.PeriodsClosed),
				NewBalance:    cfg.CurrentBalance,
			}
			if len(result.PeriodsClosed) == 0 {
				ev.Type = "schedule_advanced"
			}
		}
	}

	snap := s.buildSnapshot(cfg, now)

	s.mu.Lock()
	s.snapshot = snap
	s.lastCheckAt = now
	s.lastCheckedDay = day
	s.checkCount++
	s.lastError = ""
	if publish {
		s.nextEventID++
		ev.ID = s.nextEventID
		ev.Snapshot = snap
		s.events = append(s.events, ev)
		if len(s.events) > s.cfg.EventsBuffer {
			s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
		}
	}
	s.mu.Unlock()
}

func (s *Service) archivePeriods(cfg *model.BudgetConfig) {
	if s.cfg.ArchivePath == "" {
		return
	}
	archive, err := store.OpenArchive(s.cfg.ArchivePath)
	if err != nil {
		log.Printf("glidepath daemon: archive open: %v", err)
		return
	}
	defer func() { _ = archive.Close() }()
	if err := archive.SyncPeriods(cfg.Periods); err != nil {
		log.Printf("glidepath daemon: archive sync: %v", err)
	}
}

func (s *Service) recordError(now time.Time, day string, err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.lastCheckAt = now
	s.lastCheckedDay = day
	s.checkCount++
	s.mu.Unlock()
}

func (s *Service) buildSnapshot(cfg *model.BudgetConfig, now time.Time) Snapshot {
	snap := Snapshot{At: now}
	if cfg == nil {
		return snap
	}

	snap.HasBudget = true
	snap.Balance = cfg.CurrentBalance
	snap.BalanceAsOf = cfg.CurrentBalanceAsOf.String()
	snap.NextPayDate = cfg.NextPayDate.String()
	snap.SavingsGoal = cfg.SavingsGoal
	snap.PeriodsOnFile = len(cfg.Periods)

	snap.BaselineInUse = cfg.BaselineSpendPerPeriod
	if calc := reconcile.CalculatedBaseline(cfg); calc != nil {
		snap.BaselineInUse = *calc
		snap.UsingCalcBase = true
	}

	if p := cfg.PendingPeriod(); p != nil {
		snap.PendingPeriod = p.PeriodNumber
	}

	today := calendar.DayStart(now)
	opts := projection.Options{}
	if snap.UsingCalcBase {
		b := snap.BaselineInUse
		opts.BaselineOverride = &b
	}
	entries := projection.Project(cfg, today, opts)
	goal := projection.GoalDates(cfg, entries, today)
	snap.PeriodsToGoal = goal.PeriodsToGoal
	snap.DaysToGoal = goal.DaysToGoal
	if goal.DateAfterBaseline != nil {
		snap.GoalDate = calendar.FormatDate(*goal.DateAfterBaseline)
	}

	return snap
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:      s.startedAt,
		LastCheckAt:    s.lastCheckAt,
		LastCheckedDay: s.lastCheckedDay,
		CheckCount:     s.checkCount,
		BudgetPath:     s.cfg.BudgetPath,
		Summary:        s.snapshot,
		LastError:      s.lastError,
		EventCount:     len(s.events),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

package scheduler

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"MarketLens/internal/common"
)

// AutoRefresh re-runs a job on a cron schedule while active. It owns a
// single cron runner and at most one registered entry.
type AutoRefresh struct {
	mu     sync.Mutex
	cron   *cron.Cron
	spec   string
	job    func()
	entry  cron.EntryID
	active bool
}

// NewAutoRefresh creates an idle AutoRefresh. The spec accepts the
// six-field seconds form and descriptors such as "@every 1m".
func NewAutoRefresh(spec string, job func()) (*AutoRefresh, error) {
	if spec == "" {
		spec = common.DefaultRefreshSpec
	}
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("parse refresh spec %q: %w", spec, err)
	}
	return &AutoRefresh{
		cron: cron.New(cron.WithParser(parser)),
		spec: spec,
		job:  job,
	}, nil
}

// Start starts the cron runner.
func (a *AutoRefresh) Start() {
	a.cron.Start()
	log.Info().Str("spec", a.spec).Msg("scheduler started")
}

// Stop stops the cron runner and waits for a running job to finish.
func (a *AutoRefresh) Stop() {
	a.Disable()
	<-a.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// Enable registers the repeating job and runs it once immediately. Enabling
// an active scheduler replaces its entry.
func (a *AutoRefresh) Enable() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.disableLocked()
	id, err := a.cron.AddFunc(a.spec, a.job)
	if err != nil {
		log.Error().Err(err).
			Str("error_code", common.ErrCodeSchedulerFailed.String()).
			Str("error_message", common.ErrMsgSchedulerFailed.String()).
			Msg("enable auto-refresh")
		return fmt.Errorf("register refresh job: %w", err)
	}
	a.entry = id
	a.active = true
	log.Info().Str("spec", a.spec).Msg("auto-refresh enabled")

	go a.job()
	return nil
}

// Disable removes the repeating job. It is a no-op when idle.
func (a *AutoRefresh) Disable() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disableLocked() {
		log.Info().Msg("auto-refresh disabled")
	}
}

// Toggle flips between idle and active and returns the new state.
func (a *AutoRefresh) Toggle() (bool, error) {
	if a.IsActive() {
		a.Disable()
		return false, nil
	}
	if err := a.Enable(); err != nil {
		return false, err
	}
	return true, nil
}

// IsActive reports whether a repeating job is registered.
func (a *AutoRefresh) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Entries returns the number of registered cron entries.
func (a *AutoRefresh) Entries() int {
	return len(a.cron.Entries())
}

func (a *AutoRefresh) disableLocked() bool {
	if !a.active {
		return false
	}
	a.cron.Remove(a.entry)
	a.active = false
	return true
}

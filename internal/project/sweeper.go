package project

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Sweeper periodically stops previews left running in abandoned tabs.
type Sweeper struct {
	cron  *cron.Cron
	store *Store
	ttl   time.Duration
}

// NewSweeper schedules SweepIdle on a cron spec such as "@every 1m".
func NewSweeper(store *Store, schedule string, ttl time.Duration) (*Sweeper, error) {
	s := &Sweeper{cron: cron.New(), store: store, ttl: ttl}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Sweeper) run() {
	n := s.store.SweepIdle(time.Now().UTC(), s.ttl)
	log.WithField("stopped", n).Debug("[CRON] idle preview sweep")
}

func (s *Sweeper) Start() {
	s.cron.Start()
	log.WithField("ttl", s.ttl).Info("idle preview sweeper started")
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("idle preview sweeper stopped")
}

package sweep

import (
	"context"
	"errors"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/pledgevault/crowdfund-backend/internal/escrow/domain"
	"github.com/pledgevault/crowdfund-backend/internal/escrow/engine"
)

// Sweeper periodically finalizes open projects whose deadline has passed.
// It is an ordinary caller of Finalize: a failed payout fails this attempt
// and is retried on the next tick.
type Sweeper struct {
	engine *engine.Engine
	clock  engine.Clock
	spec   string
}

func NewSweeper(eng *engine.Engine, clock engine.Clock, cronSpec string) *Sweeper {
	return &Sweeper{
		engine: eng,
		clock:  clock,
		spec:   cronSpec,
	}
}

// Start schedules the sweep and returns the running cron so the caller can
// stop it on shutdown.
func (s *Sweeper) Start() (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(s.spec, func() {
		s.SweepOnce(context.Background())
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Deadline sweeper started (spec %q)", s.spec)
	c.Start()
	return c, nil
}

// SweepOnce finalizes every currently due project.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	due := s.engine.DueProjects(ctx, s.clock.Now())
	for _, id := range due {
		p, err := s.engine.Finalize(ctx, id)
		if err != nil {
			// Another caller may have finalized between the scan and here.
			if errors.Is(err, domain.ErrAlreadyFinalized) {
				continue
			}
			log.Printf("[warn] operation=sweep_finalize project_id=%d error=%v", id, err)
			continue
		}
		log.Printf("[info] operation=sweep_finalize project_id=%d failed=%t", id, p.Failed)
	}
}

package janitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"storefront/internal/filestore"
	"storefront/internal/lib/logger/sl"
	"storefront/internal/processor"
)

type Lister interface {
	List(ctx context.Context) ([]filestore.Object, error)
}

// Sweeper removes pipeline files that no product references. Only keys
// shaped like the pipeline's output for field are considered, so foreign
// objects in a shared bucket are never touched. Files younger than grace
// are left alone, they may belong to an upload whose product has not been
// saved yet.
type Sweeper struct {
	janitor *Janitor
	lister  Lister
	field   string
	grace   time.Duration
	now     func() time.Time
}

func NewSweeper(janitor *Janitor, lister Lister, field string, grace time.Duration) *Sweeper {
	return &Sweeper{
		janitor: janitor,
		lister:  lister,
		field:   field,
		grace:   grace,
		now:     time.Now,
	}
}

// Sweep runs one pass and returns the number of removed files.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	const op = "janitor.Sweeper.Sweep"

	log := s.janitor.log.With(slog.String("op", op))

	referenced, err := s.janitor.referenced(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	objects, err := s.lister.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	cutoff := s.now().Add(-s.grace)

	var (
		orphans []string
		foreign int
	)

	for _, o := range objects {
		if _, ok := processor.ParseKey(s.field, o.Key); !ok {
			foreign++
			continue
		}
		if _, ok := referenced[o.Key]; ok {
			continue
		}
		if o.ModTime.After(cutoff) {
			continue
		}
		orphans = append(orphans, o.Key)
	}

	removed, err := s.janitor.Purge(ctx, orphans)
	if err != nil {
		log.Warn("some orphans could not be removed", sl.Err(err))
	}

	log.Info("sweep finished",
		slog.Int("objects", len(objects)),
		slog.Int("foreign", foreign),
		slog.Int("referenced", len(referenced)),
		slog.Int("removed", removed),
	)

	return removed, nil
}

// Start schedules Sweep on a cron spec such as "@daily" or "0 3 * * *".
// The returned cron is already running. An empty spec returns nil.
func (s *Sweeper) Start(ctx context.Context, spec string) (*cron.Cron, error) {
	const op = "janitor.Sweeper.Start"

	if spec == "" {
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		if _, err := s.Sweep(ctx); err != nil {
			s.janitor.log.Error("sweep failed", sl.Err(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.Start()

	return c, nil
}

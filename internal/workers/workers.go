package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/evently/internal/config"
	"github.com/MKhiriev/evently/internal/logger"
	"github.com/MKhiriev/evently/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the workers enabled by cfg. A zero sweep interval
// disables the sweeper.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if cfg.SweepInterval > 0 {
		w.workers = append(w.workers, NewSweeper(storages.UserRepository, cfg.SweepInterval, logger))
	}
	return w
}

// Run starts every worker and blocks until all of them have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}
	wg.Wait()
}

// Len reports how many workers are registered.
func (w *Workers) Len() int {
	return len(w.workers)
}

// secretSweeper is the subset of store.UserRepository used by Sweeper.
type secretSweeper interface {
	ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error)
}

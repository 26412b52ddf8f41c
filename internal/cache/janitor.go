package cache

import (
	"context"
	"log/slog"
	"time"
)

// Janitor sweeps expired rows out of the store on an interval so the
// cache file does not grow without bound between restarts.
type Janitor struct {
	store    *Store
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
}

type JanitorConfig struct {
	Interval time.Duration
}

func NewJanitor(store *Store, cfg JanitorConfig, logger *slog.Logger) *Janitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Janitor{
		store:    store,
		interval: cfg.Interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("cache janitor started", "interval", j.interval.String())
	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		if err := j.RunOnce(); err != nil {
			j.logger.Warn("janitor initial sweep failed", "error", err)
		}
		for {
			select {
			case <-ctx.Done():
				j.logger.Info("cache janitor stopped")
				close(j.stopCh)
				return
			case <-ticker.C:
				if err := j.RunOnce(); err != nil {
					j.logger.Warn("janitor sweep failed", "error", err)
				}
			}
		}
	}()
}

func (j *Janitor) StopWait(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	select {
	case <-j.stopCh:
	case <-time.After(timeout):
	}
}

func (j *Janitor) RunOnce() error {
	removed, err := j.store.PurgeExpired()
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Debug("expired cache rows purged", "removed", removed)
	}
	return nil
}

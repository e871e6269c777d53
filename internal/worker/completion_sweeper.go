package worker

import (
	"context"
	"log/slog"
	"time"
)

// ReservationCompleter persists the time-triggered confirmed to completed
// transition for reservations whose end has passed.
type ReservationCompleter interface {
	CompleteElapsedReservations(ctx context.Context) (int64, error)
}

// CompletionSweeper periodically promotes elapsed reservations. Reads derive
// the completed status between sweeps, so the interval trades storage churn
// against how long the persisted status lags.
type CompletionSweeper struct {
	completer ReservationCompleter
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
}

func NewCompletionSweeper(completer ReservationCompleter, interval time.Duration) *CompletionSweeper {
	return &CompletionSweeper{
		completer: completer,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

func (s *CompletionSweeper) Start(ctx context.Context) {
	slog.Info("completion sweeper started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			slog.Info("completion sweeper stopped", "reason", "context cancelled")
			return
		case <-s.stopCh:
			slog.Info("completion sweeper stopped", "reason", "stop signal")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CompletionSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *CompletionSweeper) sweep(ctx context.Context) {
	count, err := s.completer.CompleteElapsedReservations(ctx)
	if err != nil {
		slog.Error("completion sweep failed", "error", err.Error())
		return
	}

	if count > 0 {
		slog.Info("reservations completed", "count", count)
	}
}

package bootstrap

import (
	"context"

	"room-reserve/internal/pkg/config"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewCompletionSweeper,
	),
	fx.Invoke(startSweeper),
)

func NewCompletionSweeper(cfg config.Config, reservationCommands commands.ReservationCommands) *worker.CompletionSweeper {
	return worker.NewCompletionSweeper(reservationCommands, cfg.Worker.SweepInterval)
}

func startSweeper(lc fx.Lifecycle, sweeper *worker.CompletionSweeper) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			sweeper.Stop()
			return nil
		},
	})
}

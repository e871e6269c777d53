package components

import (
	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/pkg/clock"
	"room-reserve/internal/pkg/config"
	"room-reserve/internal/usecase"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewAdmissionPolicy,
	usecase.NewAuthUseCase,
	func(a usecase.AuthUseCase) usecase.TokenValidator { return a },
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
		commands.NewRoomUseCase,
	),
)

func NewAdmissionPolicy(cfg config.Config, clk clock.Clock) *reservation.AdmissionPolicy {
	return reservation.NewAdmissionPolicy(reservation.PolicyConfig{
		MinDuration:      cfg.Reservation.MinDuration,
		MaxDuration:      cfg.Reservation.MaxDuration,
		CancelLeadTime:   cfg.Reservation.CancelLeadTime,
		ApprovalRequired: cfg.Reservation.ApprovalRequired,
	}, clk)
}

package commands

import (
	"context"
	"encoding/json"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/room"
	"room-reserve/internal/domain/user"
	"room-reserve/internal/infra"
	"room-reserve/internal/pkg/clock"
	"room-reserve/internal/pkg/errs"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound        = errs.New("room not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrSlotConflict        = errs.New("slot conflicts with an existing reservation")
	ErrStorageFailure      = errs.New("storage operation failed")
)

type CreateReservationCommand struct {
	RoomID              uuid.UUID
	StartTime           time.Time
	EndTime             time.Time
	Attendees           int
	Purpose             string
	SpecialRequirements string
}

type ReservationCommands interface {
	CreateReservation(ctx context.Context, cmd CreateReservationCommand, userID uuid.UUID) (*queries.ReservationView, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, actor user.Actor) (*queries.ReservationView, error)
	OverrideStatus(ctx context.Context, reservationID uuid.UUID, target reservation.Status, actor user.Actor) (*queries.ReservationView, error)
	CompleteElapsedReservations(ctx context.Context) (int64, error)
}

type reservationUseCaseImpl struct {
	uow                shared.UnitOfWork
	policy             *reservation.AdmissionPolicy
	reservationQueries queries.ReservationQueries
	clock              clock.Clock
}

func NewReservationUseCase(
	uow shared.UnitOfWork,
	policy *reservation.AdmissionPolicy,
	reservationQueries queries.ReservationQueries,
	clk clock.Clock,
) ReservationCommands {
	return &reservationUseCaseImpl{
		uow:                uow,
		policy:             policy,
		reservationQueries: reservationQueries,
		clock:              clk,
	}
}

// CreateReservation runs the admission sequence and, if every rule passes,
// inserts the reservation atomically. The in-transaction conflict read
// produces the precise rejection; the exclusion constraint on the slot
// column remains the authority under concurrent writers, so a racing insert
// surfaces as ErrSlotConflict even when both requests passed the read.
func (r *reservationUseCaseImpl) CreateReservation(
	ctx context.Context,
	cmd CreateReservationCommand,
	userID uuid.UUID,
) (*queries.ReservationView, error) {
	purpose, err := reservation.NewPurpose(cmd.Purpose)
	if err != nil {
		return nil, err
	}
	specialRequirements, err := reservation.NewNote(cmd.SpecialRequirements)
	if err != nil {
		return nil, err
	}

	var reservationID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomSnap, derr := tx.Reads().RoomByID(ctx, cmd.RoomID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(derr, ErrStorageFailure)
		}

		roomEntity := room.ReconstructRoom(roomSnap.ID, roomSnap.Name, roomSnap.Capacity, roomSnap.IsActive, time.Time{}, time.Time{})
		slot, derr := r.policy.Admit(roomEntity, cmd.StartTime, cmd.EndTime, cmd.Attendees)
		if derr != nil {
			return derr
		}

		overlapping, derr := tx.Reads().ActiveOverlapping(ctx, cmd.RoomID, slot.Start(), slot.End(), nil)
		if derr != nil {
			return errs.Mark(derr, ErrStorageFailure)
		}
		if len(overlapping) > 0 {
			return ErrSlotConflict
		}

		res, derr := reservation.NewReservation(cmd.RoomID, userID, slot, cmd.Attendees, purpose, specialRequirements, r.policy.InitialStatus())
		if derr != nil {
			return derr
		}

		id, derr := tx.Reservations().Create(ctx, tx.DB(), res)
		if derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrSlotConflict
			}
			return errs.Mark(derr, ErrStorageFailure)
		}
		reservationID = id

		return r.enqueueNotification(ctx, tx, id, "reservation_created")
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return view, nil
}

// CancelReservation moves a reservation to cancelled on behalf of the actor.
// The lifecycle predicate decides whether the transition is legal; the row
// is locked for the duration of the transaction so concurrent status changes
// serialize.
func (r *reservationUseCaseImpl) CancelReservation(
	ctx context.Context,
	reservationID uuid.UUID,
	actor user.Actor,
) (*queries.ReservationView, error) {
	return r.transition(ctx, reservationID, reservation.StatusCancelled, actor, "reservation_cancelled")
}

// OverrideStatus is the admin-only explicit status override. The target must
// still be a member of the status enum; everything else is unconditional.
func (r *reservationUseCaseImpl) OverrideStatus(
	ctx context.Context,
	reservationID uuid.UUID,
	target reservation.Status,
	actor user.Actor,
) (*queries.ReservationView, error) {
	if !actor.IsAdmin() {
		return nil, reservation.ErrStatusChangeDenied
	}
	return r.transition(ctx, reservationID, target, actor, "reservation_status_changed")
}

func (r *reservationUseCaseImpl) transition(
	ctx context.Context,
	reservationID uuid.UUID,
	target reservation.Status,
	actor user.Actor,
	topic string,
) (*queries.ReservationView, error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ReservationByID(ctx, reservationID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return errs.Mark(derr, ErrStorageFailure)
		}

		res, derr := reconstructFromSnapshot(snap)
		if derr != nil {
			return derr
		}

		if derr = reservation.CanTransition(actor, res, target, r.clock.Now(), r.policy.CancelLeadTime()); derr != nil {
			return derr
		}

		if derr = tx.Reservations().UpdateStatus(ctx, tx.DB(), reservationID, target); derr != nil {
			return errs.Mark(derr, ErrStorageFailure)
		}

		return r.enqueueNotification(ctx, tx, reservationID, topic)
	})
	if err != nil {
		return nil, err
	}

	view, err := r.reservationQueries.GetByIDSystem(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	return view, nil
}

// CompleteElapsedReservations persists the time-triggered confirmed→completed
// transition for every reservation whose end has passed. Called by the sweep
// worker; idempotent.
func (r *reservationUseCaseImpl) CompleteElapsedReservations(ctx context.Context) (int64, error) {
	var count int64
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, derr := tx.Reservations().MarkElapsedCompleted(ctx, tx.DB(), r.clock.Now())
		if derr != nil {
			return errs.Mark(derr, ErrStorageFailure)
		}
		count = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reservationUseCaseImpl) enqueueNotification(ctx context.Context, tx shared.Tx, reservationID uuid.UUID, topic string) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"type":           topic,
	})
	if err != nil {
		return err
	}

	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", topic, payload, r.clock.Now()); err != nil {
		return errs.Mark(err, ErrStorageFailure)
	}
	return nil
}

func reconstructFromSnapshot(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	slot, err := reservation.NewTimeSlot(snap.StartTime, snap.EndTime)
	if err != nil {
		return nil, err
	}
	status, err := reservation.ParseStatus(snap.Status)
	if err != nil {
		return nil, err
	}
	purpose, err := reservation.NewPurpose(snap.Purpose)
	if err != nil {
		return nil, err
	}
	specialRequirements, err := reservation.NewNote(snap.SpecialRequirements)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		snap.ID, snap.RoomID, snap.UserID,
		slot, snap.Attendees, purpose, specialRequirements, status,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}

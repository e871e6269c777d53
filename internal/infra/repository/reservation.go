package repository

import (
	"context"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	const query = `
		INSERT INTO reservations (id, room_id, user_id, slot, attendees, purpose, special_requirements, status)
		VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, $7, $8, $9)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query,
		res.ID(), res.RoomID(), res.UserID(),
		res.Slot().Start(), res.Slot().End(),
		res.Attendees(), res.Purpose().String(), res.SpecialRequirements().String(), res.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create reservation", err)
	}

	return id, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status reservation.Status) error {
	const query = `
		UPDATE reservations
		SET status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, status.String())
	if err != nil {
		return classifyWriteErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *ReservationRepository) MarkElapsedCompleted(ctx context.Context, tx db.DBTX, now time.Time) (int64, error) {
	const query = `
		UPDATE reservations
		SET status = 'completed', updated_at = now()
		WHERE status = 'confirmed' AND upper(slot) <= $1`

	tag, err := tx.Exec(ctx, query, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete elapsed reservations", err)
	}

	return tag.RowsAffected(), nil
}

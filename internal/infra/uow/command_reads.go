package uow

import (
	"context"
	"errors"
	"time"

	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type commandReads struct {
	dbtx db.DBTX
}

func (r *commandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	const query = `
		SELECT id, name, capacity, is_active
		FROM rooms
		WHERE id = $1`

	var snap shared.RoomSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Name, &snap.Capacity, &snap.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read room", err)
	}

	return &snap, nil
}

// ReservationByID locks the row so a concurrent status change on the same
// reservation waits for this transaction.
func (r *commandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const query = `
		SELECT id, room_id, user_id, status,
		       lower(slot), upper(slot),
		       attendees, purpose, special_requirements, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`

	var snap shared.ReservationSnapshot
	err := r.dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.RoomID, &snap.UserID, &snap.Status,
		&snap.StartTime, &snap.EndTime,
		&snap.Attendees, &snap.Purpose, &snap.SpecialRequirements, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}

	return &snap, nil
}

func (r *commandReads) ActiveOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]shared.ReservationSnapshot, error) {
	const query = `
		SELECT id, room_id, user_id, status,
		       lower(slot), upper(slot),
		       attendees, purpose, special_requirements, created_at, updated_at
		FROM reservations
		WHERE room_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND slot && tstzrange($2, $3, '[)')
		  AND ($4::uuid IS NULL OR id <> $4)
		ORDER BY lower(slot)`

	rows, err := r.dbtx.Query(ctx, query, roomID, start, end, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping reservations", err)
	}
	defer rows.Close()

	snaps := make([]shared.ReservationSnapshot, 0)
	for rows.Next() {
		var snap shared.ReservationSnapshot
		if err := rows.Scan(
			&snap.ID, &snap.RoomID, &snap.UserID, &snap.Status,
			&snap.StartTime, &snap.EndTime,
			&snap.Attendees, &snap.Purpose, &snap.SpecialRequirements, &snap.CreatedAt, &snap.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return snaps, nil
}

package readstore

import (
	"context"
	"errors"
	"time"

	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"
	"room-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(database db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: database}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const query = `
		SELECT r.id, r.room_id, rm.name, r.user_id, u.email,
		       lower(r.slot), upper(r.slot),
		       r.attendees, r.purpose, r.special_requirements, r.status, r.created_at, r.updated_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		JOIN users u  ON u.id  = r.user_id
		WHERE r.id = $1`

	var view queries.ReservationView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.RoomID, &view.RoomName, &view.UserID, &view.UserEmail,
		&view.StartTime, &view.EndTime,
		&view.Attendees, &view.Purpose, &view.SpecialRequirements, &view.Status, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return &view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT r.id, r.room_id, rm.name, lower(r.slot), upper(r.slot), r.status, r.created_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.user_id = $1
		ORDER BY lower(r.slot) DESC, r.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

func (r *ReservationReadStore) FindByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int32) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT r.id, r.room_id, rm.name, lower(r.slot), upper(r.slot), r.status, r.created_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.room_id = $1
		ORDER BY lower(r.slot) DESC, r.id
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, roomID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by room", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

func (r *ReservationReadStore) FindActiveByRoomAndRange(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*queries.ReservationListItem, error) {
	const query = `
		SELECT r.id, r.room_id, rm.name, lower(r.slot), upper(r.slot), r.status, r.created_at
		FROM reservations r
		JOIN rooms rm ON rm.id = r.room_id
		WHERE r.room_id = $1
		  AND r.status IN ('pending', 'confirmed')
		  AND r.slot && tstzrange($2, $3, '[)')
		  AND ($4::uuid IS NULL OR r.id <> $4)
		ORDER BY lower(r.slot)`

	rows, err := r.db.Query(ctx, query, roomID, start, end, excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

func scanListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	items := make([]*queries.ReservationListItem, 0)
	for rows.Next() {
		var item queries.ReservationListItem
		if err := rows.Scan(
			&item.ID, &item.RoomID, &item.RoomName,
			&item.StartTime, &item.EndTime, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}

	return items, nil
}

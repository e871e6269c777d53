package readstore

import (
	"context"
	"errors"

	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"
	"room-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(database db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: database}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const query = `
		SELECT id, name, capacity, is_active, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	var view queries.RoomView
	err := r.db.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.Name, &view.Capacity, &view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}

	return &view, nil
}

func (r *RoomReadStore) FindAll(ctx context.Context) ([]*queries.RoomView, error) {
	const query = `
		SELECT id, name, capacity, is_active, created_at, updated_at
		FROM rooms
		ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	views := make([]*queries.RoomView, 0)
	for rows.Next() {
		var view queries.RoomView
		if err := rows.Scan(
			&view.ID, &view.Name, &view.Capacity, &view.IsActive, &view.CreatedAt, &view.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}

	return views, nil
}

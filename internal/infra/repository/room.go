package repository

import (
	"context"

	"room-reserve/internal/domain/room"
	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	const query = `
		INSERT INTO rooms (id, name, capacity, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := tx.QueryRow(ctx, query, rm.ID(), rm.Name(), rm.Capacity(), rm.IsActive()).Scan(&id)
	if err != nil {
		return uuid.Nil, classifyWriteErr("failed to create room", err)
	}

	return id, nil
}

func (r *RoomRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, capacity *int, isActive *bool) error {
	const query = `
		UPDATE rooms
		SET capacity  = COALESCE($2, capacity),
		    is_active = COALESCE($3, is_active),
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query, id, capacity, isActive)
	if err != nil {
		return classifyWriteErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}

	return nil
}

package commands

import (
	"context"

	"room-reserve/internal/domain/room"
	"room-reserve/internal/infra"
	"room-reserve/internal/pkg/errs"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrDuplicateRoomName = errs.New("room name already exists")

type CreateRoomCommand struct {
	Name     string
	Capacity int
}

type UpdateRoomCommand struct {
	Capacity *int
	IsActive *bool
}

type RoomCommands interface {
	CreateRoom(ctx context.Context, cmd CreateRoomCommand) (*queries.RoomView, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, cmd UpdateRoomCommand) (*queries.RoomView, error)
}

type roomUseCaseImpl struct {
	uow         shared.UnitOfWork
	roomQueries queries.RoomQueries
}

func NewRoomUseCase(uow shared.UnitOfWork, roomQueries queries.RoomQueries) RoomCommands {
	return &roomUseCaseImpl{uow: uow, roomQueries: roomQueries}
}

func (r *roomUseCaseImpl) CreateRoom(ctx context.Context, cmd CreateRoomCommand) (*queries.RoomView, error) {
	entity, err := room.NewRoom(cmd.Name, cmd.Capacity)
	if err != nil {
		return nil, err
	}

	var roomID uuid.UUID
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Rooms().Create(ctx, tx.DB(), entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrDuplicateRoomName
			}
			return errs.Mark(derr, ErrStorageFailure)
		}
		roomID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.roomQueries.GetByID(ctx, roomID)
}

func (r *roomUseCaseImpl) UpdateRoom(ctx context.Context, roomID uuid.UUID, cmd UpdateRoomCommand) (*queries.RoomView, error) {
	if cmd.Capacity != nil && *cmd.Capacity < 1 {
		return nil, room.ErrInvalidCapacity
	}

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().RoomByID(ctx, roomID); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(derr, ErrStorageFailure)
		}
		if derr := tx.Rooms().Update(ctx, tx.DB(), roomID, cmd.Capacity, cmd.IsActive); derr != nil {
			return errs.Mark(derr, ErrStorageFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.roomQueries.GetByID(ctx, roomID)
}

//go:build unit || e2e

package builder

import (
	"time"

	domroom "room-reserve/internal/domain/room"
	reqdto "room-reserve/internal/handler/dto/request"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID        uuid.UUID
	Name      string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRoomBuilder() *RoomBuilder {
	now := time.Now()
	return &RoomBuilder{
		ID:        uuid.New(),
		Name:      "Conference Room A",
		Capacity:  10,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RoomBuilder) BuildDomain() (*domroom.Room, error) {
	return domroom.NewRoom(r.Name, r.Capacity)
}

func (r *RoomBuilder) BuildReconstructed() *domroom.Room {
	return domroom.ReconstructRoom(r.ID, r.Name, r.Capacity, r.IsActive, r.CreatedAt, r.UpdatedAt)
}

func (r *RoomBuilder) BuildView() *queries.RoomView {
	return &queries.RoomView{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *RoomBuilder) BuildSnapshot() *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:       r.ID,
		Name:     r.Name,
		Capacity: r.Capacity,
		IsActive: r.IsActive,
	}
}

func (r *RoomBuilder) BuildCreateRequestDTO() reqdto.CreateRoomRequest {
	return reqdto.CreateRoomRequest{
		Name:     r.Name,
		Capacity: r.Capacity,
	}
}

// Fluent builder methods
func (r *RoomBuilder) WithID(id uuid.UUID) *RoomBuilder {
	r.ID = id
	return r
}

func (r *RoomBuilder) WithName(name string) *RoomBuilder {
	r.Name = name
	return r
}

func (r *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	r.Capacity = capacity
	return r
}

func (r *RoomBuilder) AsInactive() *RoomBuilder {
	r.IsActive = false
	return r
}

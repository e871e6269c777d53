package shared

import (
	"context"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/room"
	"room-reserve/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork runs closures inside a database transaction. The no-overlap
// invariant ultimately lives in a storage-layer exclusion constraint; the
// transaction exists so the conflict read, the insert and the outbox write
// commit or roll back together.
type UnitOfWork interface {
	// Within: full read-committed transaction with serialization retry
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Reservations() ReservationRepository
	Rooms() RoomRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the write-path reads: small snapshots fetched inside the
// transaction so admission and lifecycle decisions see committed state.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	// ReservationByID locks the row (SELECT ... FOR UPDATE) so concurrent
	// status changes serialize.
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	// ActiveOverlapping returns pending/confirmed reservations on the room
	// whose slots intersect [start, end), optionally excluding one id.
	ActiveOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]ReservationSnapshot, error)
}

type RoomSnapshot struct {
	ID       uuid.UUID
	Name     string
	Capacity int
	IsActive bool
}

type ReservationSnapshot struct {
	ID                  uuid.UUID
	RoomID              uuid.UUID
	UserID              uuid.UUID
	Status              string
	StartTime           time.Time
	EndTime             time.Time
	Attendees           int
	Purpose             string
	SpecialRequirements string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status reservation.Status) error
	// MarkElapsedCompleted promotes confirmed reservations whose end has
	// passed; returns the number of rows updated.
	MarkElapsedCompleted(ctx context.Context, tx db.DBTX, now time.Time) (int64, error)
}

type RoomRepository interface {
	Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, id uuid.UUID, capacity *int, isActive *bool) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}

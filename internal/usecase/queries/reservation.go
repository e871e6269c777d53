package queries

import (
	"context"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/user"
	"room-reserve/internal/pkg/clock"
	"room-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrForbidden = errs.New("actor may not read this reservation")

// Read models (DTO for read side)
type ReservationView struct {
	ID                  uuid.UUID `json:"id"`
	RoomID              uuid.UUID `json:"room_id"`
	RoomName            string    `json:"room_name"`
	UserID              uuid.UUID `json:"user_id"`
	UserEmail           string    `json:"user_email"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Attendees           int       `json:"attendees"`
	Purpose             string    `json:"purpose"`
	SpecialRequirements string    `json:"special_requirements"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	RoomName  string    `json:"room_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem bypasses the ownership check; used by the write side for
	// read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error)
	// CheckAvailability reports whether the half-open interval [start,end) is
	// free of pending/confirmed reservations on the room. excludeID skips one
	// reservation, so re-checking an edited reservation does not conflict
	// with itself. Storage failures propagate; they are never reported as
	// "available".
	CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error)
	FindActiveByRoomAndRange(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo  ReservationViewRepo
	clock clock.Clock
}

func NewReservationQueries(repo ReservationViewRepo, clk clock.Clock) ReservationQueries {
	return &reservationQueriesImpl{repo: repo, clock: clk}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && view.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return q.withDerivedStatus(view), nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return q.withDerivedStatus(view), nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := q.repo.FindByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return q.withDerivedListStatus(items), nil
}

func (q *reservationQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID, limit, offset int32) ([]*ReservationListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	items, err := q.repo.FindByRoomID(ctx, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	return q.withDerivedListStatus(items), nil
}

func (q *reservationQueriesImpl) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	if _, err := reservation.NewTimeSlot(start, end); err != nil {
		return false, err
	}
	overlapping, err := q.repo.FindActiveByRoomAndRange(ctx, roomID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return len(overlapping) == 0, nil
}

// The confirmed→completed transition is persisted by the sweep worker, but
// reads between sweeps still present the derived status so callers never see
// a "confirmed" reservation whose end has passed.
func (q *reservationQueriesImpl) withDerivedStatus(view *ReservationView) *ReservationView {
	if view.Status == reservation.StatusConfirmed.String() && !q.clock.Now().Before(view.EndTime) {
		view.Status = reservation.StatusCompleted.String()
	}
	return view
}

func (q *reservationQueriesImpl) withDerivedListStatus(items []*ReservationListItem) []*ReservationListItem {
	now := q.clock.Now()
	for _, item := range items {
		if item.Status == reservation.StatusConfirmed.String() && !now.Before(item.EndTime) {
			item.Status = reservation.StatusCompleted.String()
		}
	}
	return items
}

//go:build unit

package commands_test

import (
	"context"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/room"
	"room-reserve/internal/infra"
	"room-reserve/internal/infra/db"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is shared by the fake write and read sides so the tests observe
// the same state the commands mutate.
type fakeStore struct {
	rooms        map[uuid.UUID]shared.RoomSnapshot
	reservations map[uuid.UUID]shared.ReservationSnapshot
	jobs         []fakeJob

	// invoked after the overlap read returns, before the insert; used to
	// simulate a racing writer landing between check and insert
	betweenCheckAndInsert func()
}

type fakeJob struct {
	Kind    string
	Topic   string
	Payload []byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rooms:        make(map[uuid.UUID]shared.RoomSnapshot),
		reservations: make(map[uuid.UUID]shared.ReservationSnapshot),
	}
}

func (s *fakeStore) addRoom(snap shared.RoomSnapshot) {
	s.rooms[snap.ID] = snap
}

func (s *fakeStore) addReservation(snap shared.ReservationSnapshot) {
	s.reservations[snap.ID] = snap
}

func (s *fakeStore) activeOverlapping(roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) []shared.ReservationSnapshot {
	var out []shared.ReservationSnapshot
	for _, snap := range s.reservations {
		if snap.RoomID != roomID {
			continue
		}
		status := reservation.Status(snap.Status)
		if !status.HoldsSlot() {
			continue
		}
		if excludeID != nil && snap.ID == *excludeID {
			continue
		}
		if snap.StartTime.Before(end) && start.Before(snap.EndTime) {
			out = append(out, snap)
		}
	}
	return out
}

type fakeUoW struct {
	store *fakeStore
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) DB() db.DBTX { return nil }

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{store: t.store}
}

func (t *fakeTx) Rooms() shared.RoomRepository {
	return &fakeRoomRepo{store: t.store}
}

func (t *fakeTx) Notifications() shared.NotificationRepository {
	return &fakeNotificationRepo{store: t.store}
}

func (t *fakeTx) Reads() shared.CommandReads {
	return &fakeReads{store: t.store}
}

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	snap, ok := r.store.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return &snap, nil
}

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	snap, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return &snap, nil
}

func (r *fakeReads) ActiveOverlapping(_ context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]shared.ReservationSnapshot, error) {
	out := r.store.activeOverlapping(roomID, start, end, excludeID)
	if r.store.betweenCheckAndInsert != nil {
		r.store.betweenCheckAndInsert()
	}
	return out, nil
}

// fakeReservationRepo enforces the same no-overlap guarantee a storage-layer
// exclusion constraint provides.
type fakeReservationRepo struct {
	store *fakeStore
}

func (f *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	if res.HoldsSlot() {
		overlapping := f.store.activeOverlapping(res.RoomID(), res.Slot().Start(), res.Slot().End(), nil)
		if len(overlapping) > 0 {
			return uuid.Nil, infra.WrapRepoErr("overlapping slot", nil, infra.KindConflict)
		}
	}

	f.store.addReservation(shared.ReservationSnapshot{
		ID:                  res.ID(),
		RoomID:              res.RoomID(),
		UserID:              res.UserID(),
		Status:              res.Status().String(),
		StartTime:           res.Slot().Start(),
		EndTime:             res.Slot().End(),
		Attendees:           res.Attendees(),
		Purpose:             res.Purpose().String(),
		SpecialRequirements: res.SpecialRequirements().String(),
	})
	return res.ID(), nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status reservation.Status) error {
	snap, ok := f.store.reservations[id]
	if !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	snap.Status = status.String()
	f.store.reservations[id] = snap
	return nil
}

func (f *fakeReservationRepo) MarkElapsedCompleted(_ context.Context, _ db.DBTX, now time.Time) (int64, error) {
	var count int64
	for id, snap := range f.store.reservations {
		if snap.Status == reservation.StatusConfirmed.String() && !now.Before(snap.EndTime) {
			snap.Status = reservation.StatusCompleted.String()
			f.store.reservations[id] = snap
			count++
		}
	}
	return count, nil
}

type fakeRoomRepo struct {
	store *fakeStore
}

func (f *fakeRoomRepo) Create(_ context.Context, _ db.DBTX, rm *room.Room) (uuid.UUID, error) {
	for _, snap := range f.store.rooms {
		if snap.Name == rm.Name() {
			return uuid.Nil, infra.WrapRepoErr("duplicate room name", nil, infra.KindDuplicateKey)
		}
	}
	f.store.addRoom(shared.RoomSnapshot{
		ID:       rm.ID(),
		Name:     rm.Name(),
		Capacity: rm.Capacity(),
		IsActive: rm.IsActive(),
	})
	return rm.ID(), nil
}

func (f *fakeRoomRepo) Update(_ context.Context, _ db.DBTX, id uuid.UUID, capacity *int, isActive *bool) error {
	snap, ok := f.store.rooms[id]
	if !ok {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	if capacity != nil {
		snap.Capacity = *capacity
	}
	if isActive != nil {
		snap.IsActive = *isActive
	}
	f.store.rooms[id] = snap
	return nil
}

type fakeNotificationRepo struct {
	store *fakeStore
}

func (f *fakeNotificationRepo) CreateJob(_ context.Context, _ db.DBTX, kind, topic string, payload []byte, _ time.Time) error {
	f.store.jobs = append(f.store.jobs, fakeJob{Kind: kind, Topic: topic, Payload: payload})
	return nil
}

// fakeViewRepo serves the read side from the same store.
type fakeViewRepo struct {
	store *fakeStore
}

func (f *fakeViewRepo) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	snap, ok := f.store.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	view := viewFromSnapshot(snap)
	if room, ok := f.store.rooms[snap.RoomID]; ok {
		view.RoomName = room.Name
	}
	return view, nil
}

func (f *fakeViewRepo) FindByUserID(_ context.Context, userID uuid.UUID, _, _ int32) ([]*queries.ReservationListItem, error) {
	var out []*queries.ReservationListItem
	for _, snap := range f.store.reservations {
		if snap.UserID == userID {
			out = append(out, listItemFromSnapshot(snap))
		}
	}
	return out, nil
}

func (f *fakeViewRepo) FindByRoomID(_ context.Context, roomID uuid.UUID, _, _ int32) ([]*queries.ReservationListItem, error) {
	var out []*queries.ReservationListItem
	for _, snap := range f.store.reservations {
		if snap.RoomID == roomID {
			out = append(out, listItemFromSnapshot(snap))
		}
	}
	return out, nil
}

func (f *fakeViewRepo) FindActiveByRoomAndRange(_ context.Context, roomID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*queries.ReservationListItem, error) {
	var out []*queries.ReservationListItem
	for _, snap := range f.store.activeOverlapping(roomID, start, end, excludeID) {
		out = append(out, listItemFromSnapshot(snap))
	}
	return out, nil
}

func viewFromSnapshot(snap shared.ReservationSnapshot) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                  snap.ID,
		RoomID:              snap.RoomID,
		UserID:              snap.UserID,
		UserEmail:           "booker@example.com",
		StartTime:           snap.StartTime,
		EndTime:             snap.EndTime,
		Attendees:           snap.Attendees,
		Purpose:             snap.Purpose,
		SpecialRequirements: snap.SpecialRequirements,
		Status:              snap.Status,
		CreatedAt:           snap.CreatedAt,
		UpdatedAt:           snap.UpdatedAt,
	}
}

func listItemFromSnapshot(snap shared.ReservationSnapshot) *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        snap.ID,
		RoomID:    snap.RoomID,
		StartTime: snap.StartTime,
		EndTime:   snap.EndTime,
		Status:    snap.Status,
		CreatedAt: snap.CreatedAt,
	}
}

//go:build unit || e2e

package builder

import (
	"time"

	domreservation "room-reserve/internal/domain/reservation"
	reqdto "room-reserve/internal/handler/dto/request"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID                  uuid.UUID
	RoomID              uuid.UUID
	RoomName            string
	UserID              uuid.UUID
	UserEmail           string
	StartTime           time.Time
	EndTime             time.Time
	Attendees           int
	Purpose             string
	SpecialRequirements string
	Status              domreservation.Status
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	start := now.Add(24 * time.Hour).Truncate(time.Minute)
	return &ReservationBuilder{
		ID:        uuid.New(),
		RoomID:    uuid.New(),
		RoomName:  "Conference Room A",
		UserID:    uuid.New(),
		UserEmail: "booker@example.com",
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Attendees: 4,
		Purpose:   "Weekly planning meeting",
		Status:    domreservation.StatusConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	slot, err := domreservation.NewTimeSlot(r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}
	purpose, err := domreservation.NewPurpose(r.Purpose)
	if err != nil {
		return nil, err
	}
	note, err := domreservation.NewNote(r.SpecialRequirements)
	if err != nil {
		return nil, err
	}
	return domreservation.NewReservation(r.RoomID, r.UserID, slot, r.Attendees, purpose, note, r.Status)
}

func (r *ReservationBuilder) BuildReconstructed() *domreservation.Reservation {
	slot, _ := domreservation.NewTimeSlot(r.StartTime, r.EndTime)
	purpose, _ := domreservation.NewPurpose(r.Purpose)
	note, _ := domreservation.NewNote(r.SpecialRequirements)
	return domreservation.ReconstructReservation(
		r.ID, r.RoomID, r.UserID, slot, r.Attendees, purpose, note, r.Status, r.CreatedAt, r.UpdatedAt,
	)
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:                  r.ID,
		RoomID:              r.RoomID,
		RoomName:            r.RoomName,
		UserID:              r.UserID,
		UserEmail:           r.UserEmail,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Attendees:           r.Attendees,
		Purpose:             r.Purpose,
		SpecialRequirements: r.SpecialRequirements,
		Status:              r.Status.String(),
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildListItem() *queries.ReservationListItem {
	return &queries.ReservationListItem{
		ID:        r.ID,
		RoomID:    r.RoomID,
		RoomName:  r.RoomName,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    r.Status.String(),
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReservationBuilder) BuildSnapshot() *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:                  r.ID,
		RoomID:              r.RoomID,
		UserID:              r.UserID,
		Status:              r.Status.String(),
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Attendees:           r.Attendees,
		Purpose:             r.Purpose,
		SpecialRequirements: r.SpecialRequirements,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func (r *ReservationBuilder) BuildCommand() commands.CreateReservationCommand {
	return commands.CreateReservationCommand{
		RoomID:              r.RoomID,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Attendees:           r.Attendees,
		Purpose:             r.Purpose,
		SpecialRequirements: r.SpecialRequirements,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:              r.RoomID,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		Attendees:           r.Attendees,
		Purpose:             r.Purpose,
		SpecialRequirements: r.SpecialRequirements,
	}
}

// Fluent builder methods
func (r *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	r.ID = id
	return r
}

func (r *ReservationBuilder) WithRoomID(roomID uuid.UUID) *ReservationBuilder {
	r.RoomID = roomID
	return r
}

func (r *ReservationBuilder) WithUserID(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

func (r *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	r.StartTime = start
	r.EndTime = end
	return r
}

func (r *ReservationBuilder) WithAttendees(attendees int) *ReservationBuilder {
	r.Attendees = attendees
	return r
}

func (r *ReservationBuilder) WithPurpose(purpose string) *ReservationBuilder {
	r.Purpose = purpose
	return r
}

func (r *ReservationBuilder) WithSpecialRequirements(note string) *ReservationBuilder {
	r.SpecialRequirements = note
	return r
}

func (r *ReservationBuilder) WithStatus(status domreservation.Status) *ReservationBuilder {
	r.Status = status
	return r
}

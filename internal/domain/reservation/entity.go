package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus    = errors.New("invalid reservation status")
	ErrInvalidAttendees = errors.New("attendee count must be positive")
)

type Reservation struct {
	id                  uuid.UUID
	roomID              uuid.UUID
	userID              uuid.UUID
	slot                TimeSlot
	attendees           int
	purpose             Purpose
	specialRequirements Note
	status              Status
	createdAt           time.Time
	updatedAt           time.Time
}

// NewReservation builds a reservation in its initial status. Validation
// against booking policy happens in AdmissionPolicy before this is called;
// the constructor only guards structural invariants.
func NewReservation(
	roomID, userID uuid.UUID,
	slot TimeSlot,
	attendees int,
	purpose Purpose,
	specialRequirements Note,
	initial Status,
) (*Reservation, error) {
	if attendees < 1 {
		return nil, ErrInvalidAttendees
	}
	if !initial.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Reservation{
		id:                  uuid.New(),
		roomID:              roomID,
		userID:              userID,
		slot:                slot,
		attendees:           attendees,
		purpose:             purpose,
		specialRequirements: specialRequirements,
		status:              initial,
	}, nil
}

func ReconstructReservation(
	id, roomID, userID uuid.UUID,
	slot TimeSlot,
	attendees int,
	purpose Purpose,
	specialRequirements Note,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                  id,
		roomID:              roomID,
		userID:              userID,
		slot:                slot,
		attendees:           attendees,
		purpose:             purpose,
		specialRequirements: specialRequirements,
		status:              status,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

// HoldsSlot reports whether the reservation still occupies its time slot.
func (r *Reservation) HoldsSlot() bool {
	return r.status.HoldsSlot()
}

// HasEnded reports whether the slot's end instant has passed.
func (r *Reservation) HasEnded(now time.Time) bool {
	return !now.Before(r.slot.End())
}

func (r *Reservation) ID() uuid.UUID             { return r.id }
func (r *Reservation) RoomID() uuid.UUID         { return r.roomID }
func (r *Reservation) UserID() uuid.UUID         { return r.userID }
func (r *Reservation) Slot() TimeSlot            { return r.slot }
func (r *Reservation) Attendees() int            { return r.attendees }
func (r *Reservation) Purpose() Purpose          { return r.purpose }
func (r *Reservation) SpecialRequirements() Note { return r.specialRequirements }
func (r *Reservation) Status() Status            { return r.status }
func (r *Reservation) CreatedAt() time.Time      { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time      { return r.updatedAt }

package reservation

import (
	"errors"
	"time"

	"room-reserve/internal/domain/room"
	"room-reserve/internal/pkg/clock"
)

var (
	ErrRoomUnavailable  = errors.New("room does not exist or is inactive")
	ErrCapacityExceeded = errors.New("attendees exceed room capacity")
	ErrInvalidStart     = errors.New("start time must be in the future")
	ErrDurationTooShort = errors.New("reservation shorter than minimum duration")
	ErrDurationTooLong  = errors.New("reservation longer than maximum duration")
	ErrSlotUnavailable  = errors.New("time slot overlaps an existing reservation")
)

// PolicyConfig holds the booking rules. It is passed in at construction so
// the policy can be exercised with alternative bounds in tests.
type PolicyConfig struct {
	MinDuration      time.Duration
	MaxDuration      time.Duration
	CancelLeadTime   time.Duration
	ApprovalRequired bool
}

// AdmissionPolicy validates a candidate reservation against the booking
// rules before any conflict lookup runs. Checks are evaluated in a fixed
// order and the first violated rule wins, so callers get deterministic
// error codes and the cheaper checks short-circuit the repository read.
type AdmissionPolicy struct {
	cfg   PolicyConfig
	clock clock.Clock
}

func NewAdmissionPolicy(cfg PolicyConfig, clk clock.Clock) *AdmissionPolicy {
	return &AdmissionPolicy{cfg: cfg, clock: clk}
}

// Admit runs checks 1-5 of the admission sequence: room active, capacity,
// future start, interval ordering, duration bounds. The conflict check (6)
// needs repository access and runs in the usecase transaction; it must only
// run after Admit has passed.
func (p *AdmissionPolicy) Admit(rm *room.Room, start, end time.Time, attendees int) (TimeSlot, error) {
	if rm == nil || !rm.IsActive() {
		return TimeSlot{}, ErrRoomUnavailable
	}

	if attendees < 1 {
		return TimeSlot{}, ErrInvalidAttendees
	}
	if !rm.CanHost(attendees) {
		return TimeSlot{}, ErrCapacityExceeded
	}

	if !start.After(p.clock.Now()) {
		return TimeSlot{}, ErrInvalidStart
	}

	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return TimeSlot{}, err
	}

	d := slot.Duration()
	if d < p.cfg.MinDuration {
		return TimeSlot{}, ErrDurationTooShort
	}
	if d > p.cfg.MaxDuration {
		return TimeSlot{}, ErrDurationTooLong
	}

	return slot, nil
}

// InitialStatus is the status a freshly admitted reservation starts in:
// pending under an approval workflow, confirmed for direct booking.
func (p *AdmissionPolicy) InitialStatus() Status {
	if p.cfg.ApprovalRequired {
		return StatusPending
	}
	return StatusConfirmed
}

func (p *AdmissionPolicy) CancelLeadTime() time.Duration {
	return p.cfg.CancelLeadTime
}

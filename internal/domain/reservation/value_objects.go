package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval start must be before end")
	ErrEmptyPurpose    = errors.New("purpose cannot be empty")
	ErrPurposeTooLong  = errors.New("purpose is too long (max 500 characters)")
	ErrNoteTooLong     = errors.New("note is too long (max 1000 characters)")
)

const (
	MaxPurposeLength = 500
	MaxNoteLength    = 1000
)

// TimeSlot is a half-open interval [start, end). The start instant belongs to
// the slot, the end instant does not, so back-to-back slots never overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidInterval
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps reports whether two half-open intervals intersect:
// [a,b) and [c,d) overlap iff a < d && c < b. The single inequality pair
// covers partial overlap, containment and exact equality, and admits
// back-to-back slots where one end equals the other start.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Purpose{}, ErrEmptyPurpose
	}
	if len(trimmed) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: trimmed}, nil
}

func (p Purpose) String() string {
	return p.value
}

// Note is optional free text attached to a reservation, such as special
// requirements for the room. Unlike Purpose it may be empty.
type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: trimmed}, nil
}

func (n Note) String() string {
	return n.value
}

package reservation

import (
	"errors"
	"time"

	"room-reserve/internal/domain/user"
)

var (
	// Validation failures: the request itself is malformed or meaningless.
	ErrInvalidTargetStatus = errors.New("target status is not a valid status")
	ErrTerminalState       = errors.New("reservation is in a terminal state")

	// Access failures: the actor may not perform this transition.
	ErrNotOwner           = errors.New("reservation belongs to another user")
	ErrStatusChangeDenied = errors.New("only admins may set arbitrary statuses")
	ErrNotCancellable     = errors.New("only confirmed reservations can be cancelled by the owner")
	ErrCancelWindowClosed = errors.New("cancellation window has closed")
)

// CanTransition is the lifecycle authorization predicate. It decides whether
// the actor may move the reservation to the target status at the given
// instant. It is pure: no repository access, no ambient time.
//
// Rules, checked in order:
//   - the target must be a member of the status enum
//   - terminal states (cancelled, completed) admit no further transition,
//     for any actor
//   - admins may set any remaining valid status unconditionally
//   - non-admins may only cancel, only their own reservation, only while it
//     is confirmed, and only before start minus the cancel lead time
//
// The ownership check deliberately precedes the lead-time guard so a
// non-owner is told "not yours" rather than leaking scheduling detail.
func CanTransition(actor user.Actor, res *Reservation, target Status, now time.Time, leadTime time.Duration) error {
	if !target.IsValid() {
		return ErrInvalidTargetStatus
	}

	if res.Status().IsTerminal() {
		return ErrTerminalState
	}

	if actor.IsAdmin() {
		return nil
	}

	if target != StatusCancelled {
		return ErrStatusChangeDenied
	}

	if res.UserID() != actor.ID {
		return ErrNotOwner
	}

	if res.Status() != StatusConfirmed {
		return ErrNotCancellable
	}

	if !now.Before(res.Slot().Start().Add(-leadTime)) {
		return ErrCancelWindowClosed
	}

	return nil
}

// CanAutoComplete reports whether the system may promote the reservation to
// completed: confirmed, and its end instant has passed. This transition is
// time-triggered, not actor-triggered.
func CanAutoComplete(res *Reservation, now time.Time) bool {
	return res.Status() == StatusConfirmed && res.HasEnded(now)
}

// IsAccessError reports whether the transition failure is an authorization
// rejection as opposed to malformed input, so transports can map it to the
// right status code.
func IsAccessError(err error) bool {
	return errors.Is(err, ErrNotOwner) ||
		errors.Is(err, ErrStatusChangeDenied) ||
		errors.Is(err, ErrNotCancellable) ||
		errors.Is(err, ErrCancelWindowClosed)
}

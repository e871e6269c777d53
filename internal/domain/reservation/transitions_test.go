//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/user"
	"room-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cancelLeadTime = 2 * time.Hour

func TestCanTransitionOwnerCancel(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	ownerID := uuid.New()
	owner := user.NewActor(ownerID, user.RoleUser)

	confirmedStartingIn := func(lead time.Duration) *reservation.Reservation {
		start := now.Add(lead)
		return builder.NewReservationBuilder().
			WithUserID(ownerID).
			WithSlot(start, start.Add(time.Hour)).
			WithStatus(reservation.StatusConfirmed).
			BuildReconstructed()
	}

	t.Run("succeeds outside the lead time", func(t *testing.T) {
		res := confirmedStartingIn(3 * time.Hour)
		err := reservation.CanTransition(owner, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.NoError(t, err)
	})

	t.Run("rejected inside the lead time", func(t *testing.T) {
		res := confirmedStartingIn(1 * time.Hour)
		err := reservation.CanTransition(owner, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrCancelWindowClosed)
		assert.True(t, reservation.IsAccessError(err))
	})

	t.Run("rejected exactly at the lead time boundary", func(t *testing.T) {
		res := confirmedStartingIn(2 * time.Hour)
		err := reservation.CanTransition(owner, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrCancelWindowClosed)
	})

	t.Run("pending reservation is not owner-cancellable", func(t *testing.T) {
		start := now.Add(3 * time.Hour)
		res := builder.NewReservationBuilder().
			WithUserID(ownerID).
			WithSlot(start, start.Add(time.Hour)).
			WithStatus(reservation.StatusPending).
			BuildReconstructed()
		err := reservation.CanTransition(owner, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrNotCancellable)
	})

	t.Run("another user's reservation", func(t *testing.T) {
		stranger := user.NewActor(uuid.New(), user.RoleUser)
		res := confirmedStartingIn(3 * time.Hour)
		err := reservation.CanTransition(stranger, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrNotOwner)
	})

	t.Run("ownership is checked before the lead time", func(t *testing.T) {
		stranger := user.NewActor(uuid.New(), user.RoleUser)
		res := confirmedStartingIn(1 * time.Hour)
		err := reservation.CanTransition(stranger, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrNotOwner)
	})

	t.Run("non-admin may not set other statuses", func(t *testing.T) {
		res := confirmedStartingIn(3 * time.Hour)
		err := reservation.CanTransition(owner, res, reservation.StatusCompleted, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrStatusChangeDenied)
	})
}

func TestCanTransitionAdmin(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	admin := user.NewActor(uuid.New(), user.RoleAdmin)

	t.Run("cancels inside the lead time", func(t *testing.T) {
		start := now.Add(1 * time.Hour)
		res := builder.NewReservationBuilder().
			WithSlot(start, start.Add(time.Hour)).
			WithStatus(reservation.StatusConfirmed).
			BuildReconstructed()
		err := reservation.CanTransition(admin, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.NoError(t, err)
	})

	t.Run("sets any valid status", func(t *testing.T) {
		start := now.Add(1 * time.Hour)
		res := builder.NewReservationBuilder().
			WithSlot(start, start.Add(time.Hour)).
			WithStatus(reservation.StatusPending).
			BuildReconstructed()
		err := reservation.CanTransition(admin, res, reservation.StatusConfirmed, now, cancelLeadTime)
		require.NoError(t, err)
	})

	t.Run("terminal states are final even for admins", func(t *testing.T) {
		for _, status := range []reservation.Status{reservation.StatusCancelled, reservation.StatusCompleted} {
			res := builder.NewReservationBuilder().WithStatus(status).BuildReconstructed()
			err := reservation.CanTransition(admin, res, reservation.StatusConfirmed, now, cancelLeadTime)
			require.ErrorIs(t, err, reservation.ErrTerminalState)
			assert.False(t, reservation.IsAccessError(err))
		}
	})

	t.Run("re-cancelling a cancelled reservation", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildReconstructed()
		err := reservation.CanTransition(admin, res, reservation.StatusCancelled, now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrTerminalState)
	})

	t.Run("invalid target status", func(t *testing.T) {
		res := builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed).BuildReconstructed()
		err := reservation.CanTransition(admin, res, reservation.Status("archived"), now, cancelLeadTime)
		require.ErrorIs(t, err, reservation.ErrInvalidTargetStatus)
	})
}

func TestCanAutoComplete(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("confirmed and ended", func(t *testing.T) {
		res := builder.NewReservationBuilder().
			WithSlot(now.Add(-2*time.Hour), now.Add(-time.Hour)).
			WithStatus(reservation.StatusConfirmed).
			BuildReconstructed()
		assert.True(t, reservation.CanAutoComplete(res, now))
	})

	t.Run("end instant counts as ended", func(t *testing.T) {
		res := builder.NewReservationBuilder().
			WithSlot(now.Add(-time.Hour), now).
			WithStatus(reservation.StatusConfirmed).
			BuildReconstructed()
		assert.True(t, reservation.CanAutoComplete(res, now))
	})

	t.Run("still running", func(t *testing.T) {
		res := builder.NewReservationBuilder().
			WithSlot(now.Add(-time.Hour), now.Add(time.Hour)).
			WithStatus(reservation.StatusConfirmed).
			BuildReconstructed()
		assert.False(t, reservation.CanAutoComplete(res, now))
	})

	t.Run("pending never auto-completes", func(t *testing.T) {
		res := builder.NewReservationBuilder().
			WithSlot(now.Add(-2*time.Hour), now.Add(-time.Hour)).
			WithStatus(reservation.StatusPending).
			BuildReconstructed()
		assert.False(t, reservation.CanAutoComplete(res, now))
	})
}

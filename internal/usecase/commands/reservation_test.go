//go:build unit

package commands_test

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/user"
	"room-reserve/internal/pkg/clock"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"
	"room-reserve/internal/usecase/shared"
	"room-reserve/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

type ReservationCommandsTestSuite struct {
	suite.Suite
	store    *fakeStore
	clk      *clock.MockClock
	commands commands.ReservationCommands

	roomID uuid.UUID
	userID uuid.UUID
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.setup(false)
}

func (s *ReservationCommandsTestSuite) setup(approvalRequired bool) {
	s.store = newFakeStore()
	s.clk = clock.NewMockClock(testNow)

	policy := reservation.NewAdmissionPolicy(reservation.PolicyConfig{
		MinDuration:      30 * time.Minute,
		MaxDuration:      8 * time.Hour,
		CancelLeadTime:   2 * time.Hour,
		ApprovalRequired: approvalRequired,
	}, s.clk)

	reservationQueries := queries.NewReservationQueries(&fakeViewRepo{store: s.store}, s.clk)
	s.commands = commands.NewReservationUseCase(&fakeUoW{store: s.store}, policy, reservationQueries, s.clk)

	s.roomID = uuid.New()
	s.userID = uuid.New()
	s.store.addRoom(shared.RoomSnapshot{ID: s.roomID, Name: "Conference Room A", Capacity: 10, IsActive: true})
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) cmd(startOffset, duration time.Duration) commands.CreateReservationCommand {
	start := testNow.Add(startOffset)
	return builder.NewReservationBuilder().
		WithRoomID(s.roomID).
		WithSlot(start, start.Add(duration)).
		BuildCommand()
}

func (s *ReservationCommandsTestSuite) TestCreateReservation() {
	s.Run("success: direct booking starts confirmed", func() {
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed.String(), view.Status)
		s.Equal(s.userID, view.UserID)
		s.Equal("Conference Room A", view.RoomName)
		s.Len(s.store.jobs, 1)
		s.Equal("reservation_created", s.store.jobs[0].Topic)
	})

	s.Run("success: special requirements are stored and returned", func() {
		s.setup(false)
		cmd := s.cmd(24*time.Hour, 2*time.Hour)
		cmd.SpecialRequirements = "projector and whiteboard"

		view, err := s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().NoError(err)
		s.Equal("projector and whiteboard", view.SpecialRequirements)
		s.Equal("projector and whiteboard", s.store.reservations[view.ID].SpecialRequirements)
	})

	s.Run("error: special requirements over the length limit", func() {
		s.setup(false)
		cmd := s.cmd(24*time.Hour, 2*time.Hour)
		cmd.SpecialRequirements = strings.Repeat("a", reservation.MaxNoteLength+1)

		_, err := s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().ErrorIs(err, reservation.ErrNoteTooLong)
		s.Empty(s.store.reservations)
	})

	s.Run("success: approval workflow starts pending", func() {
		s.setup(true)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusPending.String(), view.Status)
	})

	s.Run("error: unknown room", func() {
		s.setup(false)
		cmd := s.cmd(24*time.Hour, 2*time.Hour)
		cmd.RoomID = uuid.New()
		_, err := s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().ErrorIs(err, commands.ErrRoomNotFound)
	})

	s.Run("error: overlapping slot", func() {
		s.setup(false)
		_, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour+time.Hour, 2*time.Hour), s.userID)
		s.Require().ErrorIs(err, commands.ErrSlotConflict)
	})

	s.Run("success: back-to-back slots", func() {
		s.setup(false)
		_, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour+2*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)
	})

	s.Run("success: cancelled reservation releases its slot", func() {
		s.setup(false)
		first, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CancelReservation(context.Background(), first.ID, user.NewActor(s.userID, user.RoleUser))
		s.Require().NoError(err)

		_, err = s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, 2*time.Hour), s.userID)
		s.Require().NoError(err)
	})

	s.Run("error: racing insert surfaces as conflict", func() {
		s.setup(false)
		racing := s.cmd(24*time.Hour, 2*time.Hour)
		// A competing reservation lands after the overlap read but before
		// the insert; the storage-layer constraint still rejects ours.
		s.store.betweenCheckAndInsert = func() {
			s.store.betweenCheckAndInsert = nil
			rival := builder.NewReservationBuilder().
				WithRoomID(s.roomID).
				WithSlot(racing.StartTime, racing.EndTime).
				WithStatus(reservation.StatusConfirmed)
			s.store.addReservation(*rival.BuildSnapshot())
		}

		_, err := s.commands.CreateReservation(context.Background(), racing, s.userID)
		s.Require().ErrorIs(err, commands.ErrSlotConflict)
	})

	s.Run("error: admission failures pass through", func() {
		s.setup(false)
		cmd := s.cmd(24*time.Hour, 2*time.Hour)
		cmd.Attendees = 11
		_, err := s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().ErrorIs(err, reservation.ErrCapacityExceeded)

		cmd = s.cmd(24*time.Hour, 20*time.Minute)
		_, err = s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().ErrorIs(err, reservation.ErrDurationTooShort)

		cmd = s.cmd(24*time.Hour, 2*time.Hour)
		cmd.Purpose = "   "
		_, err = s.commands.CreateReservation(context.Background(), cmd, s.userID)
		s.Require().ErrorIs(err, reservation.ErrEmptyPurpose)
	})
}

func (s *ReservationCommandsTestSuite) TestCancelReservation() {
	owner := user.NewActor(s.userID, user.RoleUser)
	admin := user.NewActor(uuid.New(), user.RoleAdmin)

	s.Run("success: owner cancels outside the lead time", func() {
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(3*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		cancelled, err := s.commands.CancelReservation(context.Background(), view.ID, owner)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled.String(), cancelled.Status)
		s.Equal("reservation_cancelled", s.store.jobs[len(s.store.jobs)-1].Topic)
	})

	s.Run("error: owner inside the lead time", func() {
		s.setup(false)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(3*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		s.clk.Add(2 * time.Hour)
		_, err = s.commands.CancelReservation(context.Background(), view.ID, user.NewActor(s.userID, user.RoleUser))
		s.Require().ErrorIs(err, reservation.ErrCancelWindowClosed)
	})

	s.Run("success: admin cancels inside the lead time", func() {
		s.setup(false)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(3*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		s.clk.Add(2 * time.Hour)
		cancelled, err := s.commands.CancelReservation(context.Background(), view.ID, admin)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled.String(), cancelled.Status)
	})

	s.Run("error: non-owner", func() {
		s.setup(false)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CancelReservation(context.Background(), view.ID, user.NewActor(uuid.New(), user.RoleUser))
		s.Require().ErrorIs(err, reservation.ErrNotOwner)
	})

	s.Run("error: re-cancel hits the terminal state", func() {
		s.setup(false)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.CancelReservation(context.Background(), view.ID, admin)
		s.Require().NoError(err)

		_, err = s.commands.CancelReservation(context.Background(), view.ID, admin)
		s.Require().ErrorIs(err, reservation.ErrTerminalState)
	})

	s.Run("error: unknown reservation", func() {
		_, err := s.commands.CancelReservation(context.Background(), uuid.New(), admin)
		s.Require().ErrorIs(err, commands.ErrReservationNotFound)
	})
}

func (s *ReservationCommandsTestSuite) TestOverrideStatus() {
	admin := user.NewActor(uuid.New(), user.RoleAdmin)

	s.Run("success: admin sets pending to confirmed", func() {
		s.setup(true)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)
		s.Equal(reservation.StatusPending.String(), view.Status)

		confirmed, err := s.commands.OverrideStatus(context.Background(), view.ID, reservation.StatusConfirmed, admin)
		s.Require().NoError(err)
		s.Equal(reservation.StatusConfirmed.String(), confirmed.Status)
	})

	s.Run("error: non-admin denied", func() {
		s.setup(false)
		view, err := s.commands.CreateReservation(context.Background(), s.cmd(24*time.Hour, time.Hour), s.userID)
		s.Require().NoError(err)

		_, err = s.commands.OverrideStatus(context.Background(), view.ID, reservation.StatusCompleted, user.NewActor(s.userID, user.RoleUser))
		s.Require().ErrorIs(err, reservation.ErrStatusChangeDenied)
	})
}

func (s *ReservationCommandsTestSuite) TestCompleteElapsedReservations() {
	view, err := s.commands.CreateReservation(context.Background(), s.cmd(time.Hour, time.Hour), s.userID)
	s.Require().NoError(err)

	count, err := s.commands.CompleteElapsedReservations(context.Background())
	s.Require().NoError(err)
	s.Zero(count)

	s.clk.Add(3 * time.Hour)
	count, err = s.commands.CompleteElapsedReservations(context.Background())
	s.Require().NoError(err)
	s.EqualValues(1, count)

	completed := s.store.reservations[view.ID]
	s.Equal(reservation.StatusCompleted.String(), completed.Status)

	// idempotent
	count, err = s.commands.CompleteElapsedReservations(context.Background())
	s.Require().NoError(err)
	s.Zero(count)
}

// Random admission sequences never leave two active reservations with
// overlapping slots on the same room.
func (s *ReservationCommandsTestSuite) TestNoOverlapInvariant() {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		startOffset := time.Duration(1+rng.Intn(72)) * time.Hour
		duration := time.Duration(30+rng.Intn(90)) * time.Minute

		_, err := s.commands.CreateReservation(context.Background(), s.cmd(startOffset, duration), s.userID)
		if err != nil {
			s.Require().ErrorIs(err, commands.ErrSlotConflict)
		}

		s.assertNoOverlap()
	}
}

func (s *ReservationCommandsTestSuite) assertNoOverlap() {
	s.T().Helper()
	var active []shared.ReservationSnapshot
	for _, snap := range s.store.reservations {
		if reservation.Status(snap.Status).HoldsSlot() {
			active = append(active, snap)
		}
	}
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.RoomID != b.RoomID {
				continue
			}
			overlap := a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
			s.Require().False(overlap, "active reservations %s and %s overlap", a.ID, b.ID)
		}
	}
}

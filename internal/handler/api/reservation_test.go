//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"room-reserve/internal/domain/reservation"
	"room-reserve/internal/domain/user"
	"room-reserve/internal/handler/api"
	resdto "room-reserve/internal/handler/dto/response"
	"room-reserve/internal/infra"
	"room-reserve/internal/usecase/commands"
	"room-reserve/internal/usecase/queries"
	"room-reserve/tests/common/builder"
	"room-reserve/tests/common/httptest"
	"room-reserve/tests/common/testutil"
	commandsmock "room-reserve/tests/mock/commands"
	queriesmock "room-reserve/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler

	userID uuid.UUID
	role   user.Role
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = user.RoleUser

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	}

	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.GetUserReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.DELETE("/reservations/:id", authMiddleware, s.handler.CancelReservation)
	s.router.PATCH("/reservations/:id/status", authMiddleware, s.handler.OverrideStatus)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), s.userID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("success: special requirements reach the command and the response", func() {
		b := builder.NewReservationBuilder().WithSpecialRequirements("projector and whiteboard")
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), s.userID).
			DoAndReturn(func(_ any, cmd commands.CreateReservationCommand, _ uuid.UUID) (*queries.ReservationView, error) {
				s.Equal("projector and whiteboard", cmd.SpecialRequirements)
				return b.BuildView(), nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, b.BuildCreateRequestDTO(), "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("projector and whiteboard", response.SpecialRequirements)
	})

	s.Run("error: missing required fields", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing room_id", mutate: testutil.Field("room_id", nil)},
			{name: "missing start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing end_time", mutate: testutil.Field("end_time", nil)},
			{name: "missing attendees", mutate: testutil.Field("attendees", nil)},
			{name: "missing purpose", mutate: testutil.Field("purpose", nil)},
			{name: "malformed start_time", mutate: testutil.Field("start_time", "yesterday")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: admission rejections map to stable codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			code       string
		}{
			{name: "unknown room", err: commands.ErrRoomNotFound, expectCode: http.StatusNotFound, code: "ROOM_NOT_FOUND"},
			{name: "inactive room", err: reservation.ErrRoomUnavailable, expectCode: http.StatusUnprocessableEntity, code: "ROOM_UNAVAILABLE"},
			{name: "over capacity", err: reservation.ErrCapacityExceeded, expectCode: http.StatusUnprocessableEntity, code: "CAPACITY_EXCEEDED"},
			{name: "zero attendees", err: reservation.ErrInvalidAttendees, expectCode: http.StatusUnprocessableEntity, code: "INVALID_ATTENDEES"},
			{name: "start in the past", err: reservation.ErrInvalidStart, expectCode: http.StatusUnprocessableEntity, code: "INVALID_START"},
			{name: "end before start", err: reservation.ErrInvalidInterval, expectCode: http.StatusUnprocessableEntity, code: "INVALID_INTERVAL"},
			{name: "too short", err: reservation.ErrDurationTooShort, expectCode: http.StatusUnprocessableEntity, code: "DURATION_TOO_SHORT"},
			{name: "note too long", err: reservation.ErrNoteTooLong, expectCode: http.StatusUnprocessableEntity, code: "NOTE_TOO_LONG"},
			{name: "too long", err: reservation.ErrDurationTooLong, expectCode: http.StatusUnprocessableEntity, code: "DURATION_TOO_LONG"},
			{name: "slot taken", err: commands.ErrSlotConflict, expectCode: http.StatusConflict, code: "SLOT_CONFLICT"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.code)
			})
		}
	})

	s.Run("error: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	returnView := builder.NewReservationBuilder().BuildView()
	url := "/reservations/" + returnView.ID.String()

	s.Run("success: returns reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: another user's reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, queries.ErrForbidden).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "ACCESS_DENIED")
	})

	s.Run("error: unknown reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), returnView.ID).
			Return(nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "RESERVATION_NOT_FOUND")
	})
}

// ================================================================================
// TestGetUserReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	url := "/reservations"

	items := []*queries.ReservationListItem{
		builder.NewReservationBuilder().BuildListItem(),
		builder.NewReservationBuilder().BuildListItem(),
	}

	s.Run("success: returns list with default pagination", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, int32(50), int32(0)).
			Return(items, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: explicit pagination is passed through", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, int32(10), int32(20)).
			Return(nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=10&offset=20", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: out-of-range limit falls back to default", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, int32(50), int32(0)).
			Return(nil, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=1000", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})
}

// ================================================================================
// TestCancelReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancelReservation() {
	returnView := builder.NewReservationBuilder().WithStatus(reservation.StatusCancelled).BuildView()
	url := "/reservations/" + returnView.ID.String()

	s.Run("success: returns cancelled reservation", func() {
		s.mockCommands.EXPECT().CancelReservation(gomock.Any(), returnView.ID, gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservation.StatusCancelled.String(), response.Status)
	})

	s.Run("error: lifecycle rejections map to stable codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
			code       string
		}{
			{name: "inside lead time", err: reservation.ErrCancelWindowClosed, expectCode: http.StatusForbidden, code: "CANCEL_WINDOW_CLOSED"},
			{name: "not confirmed", err: reservation.ErrNotCancellable, expectCode: http.StatusForbidden, code: "NOT_CANCELLABLE"},
			{name: "not the owner", err: reservation.ErrNotOwner, expectCode: http.StatusForbidden, code: "ACCESS_DENIED"},
			{name: "already terminal", err: reservation.ErrTerminalState, expectCode: http.StatusUnprocessableEntity, code: "TERMINAL_STATE"},
			{name: "unknown reservation", err: commands.ErrReservationNotFound, expectCode: http.StatusNotFound, code: "RESERVATION_NOT_FOUND"},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelReservation(gomock.Any(), returnView.ID, gomock.Any()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, tc.expectCode, tc.code)
			})
		}
	})
}

// ================================================================================
// TestOverrideStatus
// ================================================================================

func (s *ReservationHandlerTestSuite) TestOverrideStatus() {
	returnView := builder.NewReservationBuilder().WithStatus(reservation.StatusCompleted).BuildView()
	url := "/reservations/" + returnView.ID.String() + "/status"

	s.Run("success: admin sets status", func() {
		s.role = user.RoleAdmin
		s.mockCommands.EXPECT().OverrideStatus(gomock.Any(), returnView.ID, reservation.StatusCompleted, gomock.Any()).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservation.StatusCompleted.String(), response.Status)
	})

	s.Run("error: unknown status is rejected before the use case", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "archived"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnprocessableEntity, "INVALID_TARGET_STATUS")
	})

	s.Run("error: missing status field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: non-admin is denied", func() {
		s.mockCommands.EXPECT().OverrideStatus(gomock.Any(), returnView.ID, reservation.StatusCompleted, gomock.Any()).
			Return(nil, reservation.ErrStatusChangeDenied).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "completed"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "ACCESS_DENIED")
	})
}

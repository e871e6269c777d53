//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"room-reserve/internal/domain/user"
	"room-reserve/internal/handler/api"
	resdto "room-reserve/internal/handler/dto/response"
	"room-reserve/internal/usecase"
	"room-reserve/internal/usecase/queries"
	"room-reserve/tests/common/httptest"
	"room-reserve/tests/common/testutil"
	usecasemock "room-reserve/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockAuth *usecasemock.MockAuthUseCase
	handler  *api.AuthHandler

	userID uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAuth = usecasemock.NewMockAuthUseCase(s.mockCtrl)
	s.handler = api.NewAuthHandler(s.mockAuth)

	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	s.router.POST("/auth/login", s.handler.Login)
	s.router.GET("/auth/me", authMiddleware, s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func authorizedUserView(id uuid.UUID) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       id,
		Email:    "booker@example.com",
		Role:     user.RoleUser.String(),
		IsActive: true,
	}
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := map[string]any{"email": "booker@example.com", "password": "password123"}

	s.Run("success: returns token and user", func() {
		view := authorizedUserView(s.userID)
		s.mockAuth.EXPECT().Login(gomock.Any(), "booker@example.com", "password123").
			Return("signed-token", view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("signed-token", response.Token)
		s.Equal(view.Email, response.User.Email)
	})

	s.Run("error: unknown email and wrong password look the same", func() {
		for _, err := range []error{usecase.ErrUserNotFound, usecase.ErrInvalidCredentials} {
			s.mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
				Return("", nil, err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
			s.Equal(http.StatusUnauthorized, rec.Code)
			s.Contains(rec.Body.String(), "Invalid email or password")
		}
	})

	s.Run("error: inactive account", func() {
		s.mockAuth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", nil, usecase.ErrUserInactive).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: malformed request", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "invalid email format", mutate: testutil.Field("email", "not-an-email")},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}

// ================================================================================
// TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns current user", func() {
		view := authorizedUserView(s.userID)
		s.mockAuth.EXPECT().GetCurrentUser(gomock.Any(), s.userID).Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(s.userID, response.ID)
	})

	s.Run("error: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error: user no longer exists", func() {
		s.mockAuth.EXPECT().GetCurrentUser(gomock.Any(), s.userID).
			Return(nil, usecase.ErrUserNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

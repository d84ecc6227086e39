//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/handler/api"
	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/pkg/errs"
	"doctor-booking/internal/usecase/queries"
	"doctor-booking/tests/common/httptest"
	queriesmock "doctor-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserProfile(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		view       *queries.UserProfileView
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "success: the caller's own profile",
			view:       &queries.UserProfileView{ID: userID, Name: "Jane Patient", Email: "jane@example.com", Phone: "555-0100"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "error: unknown user",
			err:        errs.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name:       "error: store failure",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Failed to load profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			ctrl := gomock.NewController(t)
			q := queriesmock.NewMockUserQueries(ctrl)
			q.EXPECT().Profile(gomock.Any(), userID).Return(tt.view, tt.err).Times(1)

			router := gin.New()
			router.GET("/users/me/profile", fakeAuth, api.NewUserHandler(q).Profile)

			rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/users/me/profile", nil, authHeaders(userID, user.RolePatient))
			if tt.err != nil {
				httptest.AssertErrorResponse(t, rec, tt.wantStatus, tt.wantMsg)
				return
			}

			var body resdto.UserProfileResponse
			httptest.AssertSuccessResponse(t, rec, tt.wantStatus, &body)
			require.NotNil(t, body.UserData)
			assert.Equal(t, "jane@example.com", body.UserData.Email)
			assert.Equal(t, "555-0100", body.UserData.Phone)
		})
	}
}

func TestUserProfileNeedsAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	router := gin.New()
	router.GET("/users/me/profile", fakeAuth, api.NewUserHandler(queriesmock.NewMockUserQueries(ctrl)).Profile)

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/users/me/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

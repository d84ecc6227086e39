//go:build unit

package middleware_test

import (
	"errors"
	"net/http"
	"testing"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/handler/middleware"
	"doctor-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	id   uuid.UUID
	role user.Role
	err  error
}

func (v stubValidator) ValidateToken(string) (uuid.UUID, user.Role, error) {
	return v.id, v.role, v.err
}

func echoActor(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.Status(http.StatusTeapot)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "kind": string(actor.Kind)})
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	id := uuid.New()

	newRouter := func(v stubValidator, roles ...user.Role) *gin.Engine {
		r := gin.New()
		auth := middleware.NewAuthMiddleware(v)
		r.GET("/me", auth.RequireAuth(), middleware.RequireRole(roles...), echoActor)
		return r
	}

	t.Run("valid token reaches the handler", func(t *testing.T) {
		r := newRouter(stubValidator{id: id, role: user.RoleDoctor}, user.RoleDoctor)

		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "token")

		var body map[string]string
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		assert.Equal(t, id.String(), body["id"])
		assert.Equal(t, string(appointment.ActorDoctor), body["kind"])
	})

	t.Run("missing token", func(t *testing.T) {
		r := newRouter(stubValidator{id: id, role: user.RolePatient}, user.RolePatient)
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Access token required")
	})

	t.Run("invalid token", func(t *testing.T) {
		r := newRouter(stubValidator{err: errors.New("expired")}, user.RolePatient)
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "token")
		httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	t.Run("role not admitted", func(t *testing.T) {
		r := newRouter(stubValidator{id: id, role: user.RolePatient}, user.RoleDoctor, user.RoleAdmin)
		rec := httptest.PerformRequest(t, r, http.MethodGet, "/me", nil, "token")
		httptest.AssertErrorResponse(t, rec, http.StatusForbidden, "Insufficient permissions")
	})
}

func TestRequireSharedSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(secret string) *gin.Engine {
		r := gin.New()
		r.POST("/hook", middleware.RequireSharedSecret(middleware.WebhookSecretHeader, secret), func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "matching secret", secret: "s3cret", header: "s3cret", want: http.StatusNoContent},
		{name: "wrong secret", secret: "s3cret", header: "guess", want: http.StatusUnauthorized},
		{name: "missing header", secret: "s3cret", header: "", want: http.StatusUnauthorized},
		{name: "unconfigured secret rejects everything", secret: "", header: "", want: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers[middleware.WebhookSecretHeader] = tt.header
			}
			rec := httptest.PerformRequestWithHeaders(t, newRouter(tt.secret), http.MethodPost, "/hook", nil, headers)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusUnauthorized {
				httptest.AssertErrorResponse(t, rec, http.StatusUnauthorized, "Invalid shared secret")
			}
		})
	}

	t.Run("secret sent under another header", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, newRouter("s3cret"), http.MethodPost, "/hook", nil,
			map[string]string{middleware.OpsSecretHeader: "s3cret"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"doctor-booking/internal/domain/appointment"
	"doctor-booking/internal/domain/user"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

const (
	WebhookSecretHeader = "X-Webhook-Secret"
	OpsSecretHeader     = "X-Ops-Secret"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Access token required", nil)
			return
		}

		subjectID, role, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}

		c.Set(ctxUserIDKey, subjectID)
		c.Set(ctxUserRoleKey, role)
		c.Set("jwt_claims", map[string]any{
			"user_id": subjectID.String(),
			"role":    string(role),
		})
		c.Next()
	}
}

// RequireRole admits only the listed roles. Must run after RequireAuth.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, nil, "Internal server error", nil)
			return
		}
		if !slices.Contains(roles, role) {
			httperr.AbortWithError(c, http.StatusForbidden, nil, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// RequireSharedSecret guards server-to-server routes that carry no user token.
// An empty configured secret rejects every request.
func RequireSharedSecret(header, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(header)
		if secret == "" || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Invalid shared secret", nil)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetActor returns the authenticated caller as an appointment actor.
func GetActor(c *gin.Context) (appointment.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return appointment.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return appointment.Actor{}, false
	}

	var kind appointment.ActorKind
	switch role {
	case user.RolePatient:
		kind = appointment.ActorUser
	case user.RoleDoctor:
		kind = appointment.ActorDoctor
	case user.RoleAdmin:
		kind = appointment.ActorAdmin
	default:
		return appointment.Actor{}, false
	}
	return appointment.Actor{ID: id, Kind: kind}, true
}

//go:build unit

package api_test

import (
	"net/http"

	"doctor-booking/internal/domain/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	testRoleHeader = "X-Test-Role"
	testUserHeader = "X-Test-User"
)

// fakeAuth stands in for RequireAuth. The caller picks identity through headers
// so one router serves every role.
func fakeAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	id, err := uuid.Parse(c.GetHeader(testUserHeader))
	if err != nil {
		id = uuid.New()
	}
	role := user.Role(c.GetHeader(testRoleHeader))
	if role == "" {
		role = user.RolePatient
	}
	c.Set("user_id", id)
	c.Set("user_role", role)
	c.Next()
}

func authHeaders(id uuid.UUID, role user.Role) map[string]string {
	return map[string]string{
		"Authorization": "Bearer bearer-token",
		testUserHeader:  id.String(),
		testRoleHeader:  string(role),
	}
}

package api

import (
	"net/http"

	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/handler/middleware"
	"doctor-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	q queries.UserQueries
}

func NewUserHandler(q queries.UserQueries) *UserHandler {
	return &UserHandler{q: q}
}

// Profile returns the authenticated patient's own profile.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	profile, err := h.q.Profile(c.Request.Context(), userID)
	if err != nil {
		status, msg := mapQueryError(err, "Failed to load profile")
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.UserProfileResponse{Success: true, UserData: profile})
}

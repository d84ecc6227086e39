package api

import (
	"net/http"

	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	q queries.AdminQueries
}

func NewAdminHandler(q queries.AdminQueries) *AdminHandler {
	return &AdminHandler{q: q}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.q.Dashboard(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.DashboardResponse[*queries.AdminDashboard]{Success: true, DashData: dash})
}

func (h *AdminHandler) Appointments(c *gin.Context) {
	list, err := h.q.Appointments(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AppointmentsResponse{Success: true, Appointments: list})
}

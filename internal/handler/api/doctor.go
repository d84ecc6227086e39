package api

import (
	"net/http"

	reqdto "doctor-booking/internal/handler/dto/request"
	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/handler/middleware"
	"doctor-booking/internal/usecase/commands"
	"doctor-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DoctorHandler struct {
	cmds commands.DoctorCommands
	q    queries.DoctorQueries
}

func NewDoctorHandler(cmds commands.DoctorCommands, q queries.DoctorQueries) *DoctorHandler {
	return &DoctorHandler{cmds: cmds, q: q}
}

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load doctors", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.DoctorsResponse{Success: true, Doctors: doctors})
}

func (h *DoctorHandler) ChangeAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid doctor id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithResult(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}
	available, err := h.cmds.ChangeAvailability(c.Request.Context(), id, actor)
	if err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}
	c.JSON(http.StatusOK, resdto.AvailabilityResponse{Success: true, Message: "Availability Changed", Available: available})
}

// Dashboard returns the authenticated doctor's own dashboard.
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	dash, err := h.q.Dashboard(c.Request.Context(), doctorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load dashboard", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.DashboardResponse[*queries.DoctorDashboard]{Success: true, DashData: dash})
}

func (h *DoctorHandler) Profile(c *gin.Context) {
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	profile, err := h.q.Profile(c.Request.Context(), doctorID)
	if err != nil {
		status, msg := mapQueryError(err, "Failed to load profile")
		httperr.AbortWithError(c, status, err, msg, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.DoctorProfileResponse{Success: true, ProfileData: profile})
}

func (h *DoctorHandler) UpdateProfile(c *gin.Context) {
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithResult(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}
	var req reqdto.UpdateDoctorProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid request")
		return
	}
	if err := h.cmds.UpdateProfile(c.Request.Context(), doctorID, req.Change()); err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: "Profile Updated"})
}

// Appointments lists the authenticated doctor's appointments.
func (h *DoctorHandler) Appointments(c *gin.Context) {
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	list, err := h.q.Appointments(c.Request.Context(), doctorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AppointmentsResponse{Success: true, Appointments: list})
}

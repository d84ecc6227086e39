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

type AppointmentHandler struct {
	booking commands.BookingCommands
	cmds    commands.AppointmentCommands
	q       queries.AppointmentQueries
}

func NewAppointmentHandler(booking commands.BookingCommands, cmds commands.AppointmentCommands, q queries.AppointmentQueries) *AppointmentHandler {
	return &AppointmentHandler{booking: booking, cmds: cmds, q: q}
}

// Book reserves a slot for the authenticated patient.
func (h *AppointmentHandler) Book(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithResult(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}
	var req reqdto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid request")
		return
	}

	id, err := h.booking.BookSlot(c.Request.Context(), userID, req.DoctorID, req.SlotDate, req.SlotTime)
	if err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}
	c.JSON(http.StatusCreated, resdto.BookingResponse{
		Success:       true,
		Message:       "Appointment Booked",
		AppointmentID: id,
	})
}

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	list, err := h.q.ListForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load appointments", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.AppointmentsResponse{Success: true, Appointments: list})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid appointment id")
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithResult(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}
	if err := h.cmds.CancelAppointment(c.Request.Context(), id, actor); err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: "Appointment Cancelled"})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid appointment id")
		return
	}
	doctorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithResult(c, http.StatusUnauthorized, nil, "Unauthorized")
		return
	}
	if err := h.cmds.CompleteAppointment(c.Request.Context(), id, doctorID); err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageResponse{Success: true, Message: "Appointment Completed"})
}

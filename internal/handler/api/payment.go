package api

import (
	"net/http"

	reqdto "doctor-booking/internal/handler/dto/request"
	resdto "doctor-booking/internal/handler/dto/response"
	"doctor-booking/internal/handler/httperr"
	"doctor-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.AppointmentCommands
}

func NewPaymentHandler(cmds commands.AppointmentCommands) *PaymentHandler {
	return &PaymentHandler{cmds: cmds}
}

// Callback applies a payment provider notification. Callers are authenticated
// by the shared webhook secret, not by a user token.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req reqdto.PaymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithResult(c, http.StatusBadRequest, err, "Invalid request")
		return
	}

	changed, err := h.cmds.ConfirmPayment(c.Request.Context(), req.AppointmentID, req.PaymentStatus())
	if err != nil {
		status, msg := mapCommandError(err)
		httperr.AbortWithResult(c, status, err, msg)
		return
	}

	msg := "Payment Successful"
	if !changed {
		msg = "Payment already recorded or not successful"
	}
	c.JSON(http.StatusOK, resdto.PaymentResponse{Success: true, Message: msg, Changed: changed})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/internal/application"
	"github.com/prasetya/trackping/internal/domain/repository"
)

// twimlAck is the empty acknowledgment the webhook provider expects; it
// must go back with a 200 no matter what happened internally, or the
// provider retries the delivery.
const twimlAck = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

type SMSHandler struct {
	Service *application.TrackingService
	Logger  *logrus.Logger
}

func NewSMSHandler(service *application.TrackingService, logger *logrus.Logger) *SMSHandler {
	return &SMSHandler{Service: service, Logger: logger}
}

type inboundSMSRequest struct {
	From string `form:"From" binding:"required,phone"`
	Body string `form:"Body" binding:"required"`
}

// Receive handles POST /sms, the inbound message webhook.
func (h *SMSHandler) Receive(c *gin.Context) {
	var req inboundSMSRequest
	if err := c.ShouldBind(&req); err != nil {
		// A malformed sender or empty body is a normal miss, not an
		// error: ack it so the provider stops redelivering.
		h.Logger.WithError(err).Warn("ignoring malformed inbound sms")
		c.Data(http.StatusOK, "text/xml", []byte(twimlAck))
		return
	}

	if err := h.Service.HandleInbound(c.Request.Context(), req.From, req.Body); err != nil {
		if errors.Is(err, repository.ErrInvalidPhone) {
			h.Logger.WithError(err).Warn("rejected inbound sms")
			c.Data(http.StatusOK, "text/xml", []byte(twimlAck))
			return
		}
		h.Logger.WithError(err).Error("sms webhook failed")
		c.String(http.StatusInternalServerError, "Error")
		return
	}

	c.Data(http.StatusOK, "text/xml", []byte(twimlAck))
}

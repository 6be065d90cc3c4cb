package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/prasetya/trackping/internal/interface/http"
)

type SMSModule struct {
	Handler *handlers.SMSHandler
}

func NewSMSModule(h *handlers.SMSHandler) *SMSModule {
	return &SMSModule{Handler: h}
}

func (m *SMSModule) Register(e *gin.Engine) {
	e.POST("/sms", m.Handler.Receive)
}

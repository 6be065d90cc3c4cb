package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/prasetya/trackping/internal/interface/http"
)

type TrackingModule struct {
	Handler *handlers.TrackingHandler
}

func NewTrackingModule(h *handlers.TrackingHandler) *TrackingModule {
	return &TrackingModule{Handler: h}
}

func (m *TrackingModule) Register(e *gin.Engine) {
	e.GET("/t/:id", m.Handler.Visit)
	// Bare /{id} links and everything else land on the fallback
	e.NoRoute(m.Handler.Fallback)
}

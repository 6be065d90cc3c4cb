package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prasetya/trackping/internal/application"
	"github.com/prasetya/trackping/internal/domain/repository"
)

// notFoundPage is what every visitor sees, match or not. The page never
// reveals that a visit was tracked.
const notFoundPage = `<!DOCTYPE html><html><head><title>404 Not Found</title></head><body></body></html>`

type TrackingHandler struct {
	Service *application.TrackingService
	Logger  *logrus.Logger
}

func NewTrackingHandler(service *application.TrackingService, logger *logrus.Logger) *TrackingHandler {
	return &TrackingHandler{Service: service, Logger: logger}
}

// Visit handles GET /t/:id.
func (h *TrackingHandler) Visit(c *gin.Context) {
	h.track(c, c.Param("id"))
}

// Fallback handles every unmatched route. A dotless GET path is treated
// as a bare tracking link; everything else is a plain 404.
func (h *TrackingHandler) Fallback(c *gin.Context) {
	path := c.Request.URL.Path
	if c.Request.Method == http.MethodGet && !strings.Contains(path, ".") {
		if id := trailingSegment(path); id != "" {
			h.track(c, id)
			return
		}
	}
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
}

func (h *TrackingHandler) track(c *gin.Context, trackingID string) {
	clientIP := c.GetString("client_ip")

	err := h.Service.HandleVisit(c.Request.Context(), trackingID, clientIP, c.Request.URL.Path)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.Logger.WithError(err).Error("visit handling failed")
	}

	// Always 404, matched or not.
	c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte(notFoundPage))
}

func trailingSegment(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	return segs[len(segs)-1]
}

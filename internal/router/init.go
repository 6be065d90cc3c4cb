package router

import (
	"github.com/prasetya/trackping/internal/application"
	"github.com/prasetya/trackping/internal/container"
	handlers "github.com/prasetya/trackping/internal/interface/http"
	"github.com/prasetya/trackping/internal/router/modules"
	"github.com/prasetya/trackping/pkg/geoip"
)

type TrackingDeps struct {
	Service         *application.TrackingService
	SMSHandler      *handlers.SMSHandler
	TrackingHandler *handlers.TrackingHandler
}

func buildTrackingDeps() TrackingDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	resolver := geoip.NewResolver(
		cfg.GeoIPBaseURL,
		cfg.GeoIPTimeout,
		container.GetRedis(), // nil disables the cache
		cfg.GeoIPCacheTTL,
		logger,
	)

	service := application.NewTrackingService(
		container.GetRegistry(),
		resolver,
		container.GetDispatcher(),
		application.Backend(cfg.DeliveryBackend),
		cfg.PublicBaseURL,
		logger,
	)

	return TrackingDeps{
		Service:         service,
		SMSHandler:      handlers.NewSMSHandler(service, logger),
		TrackingHandler: handlers.NewTrackingHandler(service, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildTrackingDeps()
	r.Add(modules.NewSMSModule(deps.SMSHandler))
	r.Add(modules.NewTrackingModule(deps.TrackingHandler))
}

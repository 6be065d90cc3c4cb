package router

import "github.com/gin-gonic/gin"

// Registry collects modules and registers them on the engine. Routes live
// at the root: tracking links are bare path segments, not an /api surface.
type Registry struct {
	Engine  *gin.Engine
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.Engine)
	}
}

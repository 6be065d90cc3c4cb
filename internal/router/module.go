package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on the engine
type Module interface {
	Register(e *gin.Engine)
}

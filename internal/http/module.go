package http

import "github.com/gin-gonic/gin"

// Module mounts its routes on the shared groups.
type Module interface {
	Name() string
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext carries the route groups built by the router. V1 is open
// (rate limited only); Protected additionally requires a bearer token when
// JWT_ACCESS_SECRET is set.
type RouterContext struct {
	V1        *gin.RouterGroup
	Protected *gin.RouterGroup
}

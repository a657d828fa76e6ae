package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/shared/config"
	"docrepo-backend/internal/shared/server/middleware"
	"docrepo-backend/internal/shared/server/respond"
)

// RouteRegistrar attaches a feature's routes to a router group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RouterDeps carries the handlers the router composes.
type RouterDeps struct {
	Config       config.Config
	AuthHandler  RouteRegistrar
	DocHandler   RouteRegistrar
	UsersHandler RouteRegistrar
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.JWTSecret),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterRoutes(api)
	}
	if deps.DocHandler != nil {
		deps.DocHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		deps.UsersHandler.RegisterRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

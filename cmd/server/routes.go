package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/config"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/api/resolution/endpoints"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

// Dependencies are the wired services the routes serve. Cache and Notifier
// stay nil when Redis or MQTT are not configured.
type Dependencies struct {
	Engine   *scheduling.Engine
	Store    scheduling.Store
	Cache    endpoints.Invalidator
	Notifier endpoints.Notifier
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", api.ResolveEndpoint(func(*gin.Context) (any, *api.APIError) {
		return gin.H{"status": "ok"}, nil
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Auth:       true,
		SecretKey:  cfg.JWTSecret,
		Middleware: []gin.HandlerFunc{middleware.RequestLogger()},
	},
		endpoints.ResolutionModule(endpoints.NewResolutionController(deps.Engine, deps.Store, deps.Notifier)),
		endpoints.CacheModule(endpoints.NewCacheController(deps.Cache)),
	)
}

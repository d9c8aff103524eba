package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/metrics"
	"github.com/looplj/jsonfixer/internal/server/api"
	"github.com/looplj/jsonfixer/internal/server/biz"
	"github.com/looplj/jsonfixer/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Repair *api.RepairHandlers
	System *api.SystemHandlers
}

type Services struct {
	fx.In

	AuthService *biz.AuthService
	AuthConfig  biz.AuthConfig
	Recorder    *metrics.Recorder
}

func SetupRoutes(server *Server, handlers Handlers, services Services) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))
	server.Use(middleware.WithMetrics(services.Recorder))

	if server.Config.CORS.Enabled {
		corsHandler := cors.New(newCORSConfig(server.Config.CORS))
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	publicGroup := server.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		publicGroup.GET("/health", handlers.System.Health)
		publicGroup.GET("/version", handlers.System.Version)
	}

	repairPath := server.Config.RepairPath
	if repairPath == "" {
		repairPath = DefaultRepairPath
	}

	apiGroup := server.Group("",
		middleware.WithTimeout(server.Config.RequestTimeout),
		middleware.WithAPIKeyAuth(services.AuthService, middleware.NewAPIKeyConfig(services.AuthConfig.Headers)),
	)
	{
		apiGroup.GET("/stats", handlers.System.Stats)
		apiGroup.POST(repairPath, middleware.WithBodyLimit(server.Config.MaxBodySize), handlers.Repair.FixJSON)
	}
}

// newCORSConfig keeps the library defaults for every list left empty.
func newCORSConfig(config CORS) cors.Config {
	corsConfig := cors.DefaultConfig()

	if len(config.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = config.AllowedOrigins
	}

	if len(config.AllowedMethods) > 0 {
		corsConfig.AllowMethods = config.AllowedMethods
	}

	if len(config.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = config.AllowedHeaders
	}

	corsConfig.ExposeHeaders = append([]string{api.OutcomeHeader}, config.ExposedHeaders...)
	corsConfig.AllowCredentials = config.AllowCredentials

	if config.MaxAge > 0 {
		corsConfig.MaxAge = config.MaxAge
	}

	return corsConfig
}

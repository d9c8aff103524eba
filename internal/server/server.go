package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/looplj/jsonfixer/internal/log"
	"github.com/looplj/jsonfixer/internal/server/api"
	"github.com/looplj/jsonfixer/internal/server/biz"
	"github.com/looplj/jsonfixer/internal/server/dependencies"
	"github.com/looplj/jsonfixer/internal/server/middleware"
)

func New(config Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())

	return &Server{
		Config: config,
		Engine: engine,
	}
}

type Server struct {
	*gin.Engine

	Config Config
	server *http.Server
}

// Start binds the listener synchronously so bind errors fail startup, then serves in the background.
func (srv *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", srv.Config.Host, srv.Config.Port)

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv.server = &http.Server{
		Handler:      srv.Engine,
		ReadTimeout:  srv.Config.ReadTimeout,
		WriteTimeout: srv.Config.RequestTimeout,
	}

	log.Info(ctx, "run server",
		log.String("name", srv.Config.Name),
		log.String("addr", listener.Addr().String()),
	)

	go func() {
		if err := srv.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(context.Background(), "server stopped", log.Cause(err))
		}
	}()

	return nil
}

func (srv *Server) Shutdown(ctx context.Context) error {
	if srv.server == nil {
		return nil
	}

	return srv.server.Shutdown(ctx)
}

func Run(opts ...fx.Option) {
	app := fx.New(
		append([]fx.Option{
			fx.NopLogger,
			fx.Provide(New),
			dependencies.Module,
			biz.Module,
			api.Module,
			fx.Invoke(SetupRoutes),
			fx.Invoke(func(lc fx.Lifecycle, srv *Server) {
				lc.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Shutdown,
				})
			}),
		}, opts...)...,
	)
	app.Run()
}

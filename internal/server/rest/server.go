// Package rest exposes the auth and task services over HTTP with JSON
// bodies. Routes under /api/todos require a Bearer session token.
package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/tasks"
	"github.com/dmitrijs2005/gophtasks/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address    string
	corsOrigin string
	users      *users.Service
	tasks      *tasks.Service
	logger     logging.Logger
	jwtSecret  []byte
}

func NewServer(cfg *config.Config, l logging.Logger, us *users.Service, ts *tasks.Service) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	return &Server{
		address:    cfg.EndpointAddr,
		corsOrigin: cfg.CORSAllowedOrigin,
		users:      us,
		tasks:      ts,
		logger:     l.With("module", "rest_server"),
		jwtSecret:  []byte(cfg.SecretKey),
	}, nil
}

// Router assembles the gin engine with CORS, the public auth routes and the
// token-protected task routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if s.corsOrigin == "" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(s.corsOrigin, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/api/health", s.handleHealth)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", s.handleRegister)
			authRoutes.POST("/login", s.handleLogin)
		}

		todoRoutes := api.Group("/todos")
		todoRoutes.Use(s.requireAuth())
		{
			todoRoutes.GET("", s.handleListTasks)
			todoRoutes.POST("", s.handleCreateTask)
			todoRoutes.PATCH("/:id", s.handlePatchTask)
			todoRoutes.DELETE("/:id", s.handleDeleteTask)
		}
	}

	return router
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"garland/internal/config"
	"garland/internal/logging"
	"garland/internal/store"
)

// Server serves the read API over one open store.
type Server struct {
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
}

// New builds a read API server. The store stays owned by the caller.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server requires configuration")
	}
	if st == nil {
		return nil, errors.New("server requires an open store")
	}
	return &Server{
		cfg:    cfg,
		store:  st,
		logger: logging.NewComponentLogger(logger, "server"),
	}, nil
}

// Router constructs the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.GET("/ceremonies", s.handleCeremonies)
	r.GET("/ceremonies/:iteration", s.handleCeremony)
	r.GET("/categories", s.handleCategories)
	r.GET("/nominations", s.handleNominations)
	r.GET("/titles/:id", s.handleTitle)
	r.GET("/entities/:id", s.handleEntity)
	r.GET("/search", s.handleSearch)
	return r
}

// Run serves the API until the context is canceled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.API.Bind,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("read api listening", logging.String("bind", s.cfg.API.Bind))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

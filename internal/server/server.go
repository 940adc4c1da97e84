package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hostelhub/hostelhub/internal/bootstrap"
	"github.com/hostelhub/hostelhub/internal/config"
)

// shutdownTimeout bounds how long in-flight requests may run once a
// termination signal arrives.
const shutdownTimeout = 10 * time.Second

// Server ties the HTTP listener to the database pool so both shut down
// together.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	logger zerolog.Logger
	http   *http.Server
}

// NewServer assembles a fully wired server: config, logging, database with
// migrations and seed data, the dependency graph and the router.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps, lgr),
		dbPool: dbPool,
		logger: lgr,
	}, nil
}

// Run serves HTTP until the listener fails or a SIGINT/SIGTERM arrives, then
// drains connections and releases the database pool.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().
			Str("addr", s.http.Addr).
			Str("mode", s.config.Server.Mode).
			Msg("Hostel management API listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received, draining requests")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains the HTTP listener within the shutdown timeout, then closes
// the database pool. Allotment mutations run in single transactions, so a
// drained request leaves no partial state behind.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var httpErr error
	if s.http != nil {
		if httpErr = s.http.Shutdown(ctx); httpErr != nil {
			s.logger.Error().Err(httpErr).Msg("HTTP listener did not drain cleanly")
		} else {
			s.logger.Info().Msg("HTTP listener stopped")
		}
	}

	if s.dbPool != nil {
		s.dbPool.Close()
		s.logger.Info().Msg("Database pool closed")
	}

	if httpErr != nil {
		return fmt.Errorf("shutdown incomplete: %w", httpErr)
	}
	s.logger.Info().Msg("Shutdown complete")
	return nil
}

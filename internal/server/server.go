package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nba-tonight/internal/app/view"
	"github.com/preston-bernstein/nba-tonight/internal/broadcast"
	"github.com/preston-bernstein/nba-tonight/internal/config"
	httpserver "github.com/preston-bernstein/nba-tonight/internal/http"
	"github.com/preston-bernstein/nba-tonight/internal/http/handlers"
	"github.com/preston-bernstein/nba-tonight/internal/http/middleware"
	"github.com/preston-bernstein/nba-tonight/internal/logging"
	"github.com/preston-bernstein/nba-tonight/internal/metrics"
	"github.com/preston-bernstein/nba-tonight/internal/poller"
	"github.com/preston-bernstein/nba-tonight/internal/providers"
	"github.com/preston-bernstein/nba-tonight/internal/scheduler"
	"github.com/preston-bernstein/nba-tonight/internal/store"
	"github.com/preston-bernstein/nba-tonight/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.ViewStore
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	rollover      Rollover
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, poller, and daily rollover.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.ScheduleProvider) (*Server, error) {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.ScheduleProvider, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	normalizer, err := cfg.View.Normalizer()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		provider = selectProvider(cfg, normalizer.TodayZone(), logger)
	}
	teams, err := config.LoadTeamTable(cfg.View.TeamTablePath)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	builder := buildViewBuilder(cfg, logger, provider, recorder, normalizer, teams)

	viewStore := store.NewViewStore()
	plr := poller.New(builder, viewStore, logger, cfg.PollInterval)
	rollover, err := scheduler.New(normalizer.TodayZone(), plr.Refresh, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	httpSrv := buildHTTPServer(cfg, viewStore, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         viewStore,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		rollover:      rollover,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller, rollover Rollover) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
		rollover:   rollover,
	}
}

func buildViewBuilder(cfg config.Config, logger *slog.Logger, provider providers.ScheduleProvider, recorder *metrics.Recorder, normalizer timeutil.Normalizer, teams config.TeamTable) *view.Builder {
	return view.NewBuilder(view.Config{
		Provider:          provider,
		ProviderName:      normalizeProviderName(cfg.Provider, provider),
		URL:               cfg.ScheduleURL,
		TeamID:            cfg.View.TeamID,
		WindowSize:        cfg.View.WindowSize,
		Policy:            broadcast.NewPolicy(cfg.View.WantedNetworks, cfg.View.ExcludedNetworks),
		Normalizer:        normalizer,
		Teams:             teams,
		TalkingPointsPath: cfg.View.TalkingPointsPath,
		Logger:            logger,
		Metrics:           recorder,
	})
}

func buildHTTPServer(cfg config.Config, views *store.ViewStore, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	var refresh func(context.Context)
	if plr != nil {
		statusFn = plr.Status
		refresh = plr.Refresh
	}

	handler := handlers.NewHandler(views, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(refresh, views, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	withCORS := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler(router)
	wrapped := middleware.LoggingMiddleware(logger, recorder, withCORS)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller, the daily rollover, and the HTTP servers, then waits
// for ctx to be cancelled or the HTTP server to fail before shutting down.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	s.startMetrics()
	g.Go(func() error {
		if s.logger != nil {
			s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	s.poller.Start(gctx)
	if s.rollover != nil {
		if err := s.rollover.Start(gctx); err != nil && s.logger != nil {
			s.logger.Warn("daily rollover not scheduled", "error", err)
		}
	}

	g.Go(func() error {
		<-gctx.Done()
		if s.logger != nil {
			s.logger.Info("shutdown signal received")
		}
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	go func() {
		if s.logger != nil {
			s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
		}
		if err := s.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && s.logger != nil {
			s.logger.Warn("metrics server failed", "error", err)
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.rollover != nil {
		if err := s.rollover.Stop(); err != nil && s.logger != nil {
			s.logger.Warn("failed to stop daily rollover", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

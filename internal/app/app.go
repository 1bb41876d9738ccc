package app

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"NewsTrust/internal/config"
	"NewsTrust/internal/infrastructure/domains"
	"NewsTrust/internal/infrastructure/extractor"
	"NewsTrust/internal/infrastructure/storage"
	"NewsTrust/internal/infrastructure/websearch"
	"NewsTrust/internal/lexical"
	"NewsTrust/internal/logging"
	"NewsTrust/internal/metrics"
	"NewsTrust/internal/retry"
	"NewsTrust/internal/scoring"
	"NewsTrust/internal/server"
	"NewsTrust/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration to the scoring service and its lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
	db     *sql.DB
	router http.Handler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	repo, err := storage.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	policy := policyFromConfig(cfg.Scoring)
	normalizer := lexical.NewNormalizer(nil, nil)
	meter := metrics.New()

	extract := extractor.New(
		&http.Client{Timeout: cfg.Extractor.Timeout.Std()},
		cfg.Extractor.UserAgent,
	)
	search := websearch.New(
		cfg.Search.Endpoint,
		cfg.Search.APIKey,
		cfg.Search.Timeout.Std(),
		retry.Config{MaxAttempts: cfg.Search.RetryAttempts, Delay: cfg.Search.RetryDelay.Std()},
		baseLogger.With("component", "websearch"),
	)
	resolver := domains.New()

	evaluator := usecase.NewEvaluator(usecase.EvaluatorDeps{
		Extractor:  extract,
		Searcher:   search,
		Domains:    resolver,
		Repository: repo,
		Normalizer: normalizer,
		Policy:     policy,
		Metrics:    meter,
		Logger:     baseLogger.With("component", "evaluator"),
	})

	pageResolver := usecase.NewResolver(usecase.ResolverDeps{
		Repository: repo,
		Domains:    resolver,
		Evaluator:  evaluator,
		Policy:     policy,
		Metrics:    meter,
		Logger:     baseLogger.With("component", "resolver"),
	})

	srv := server.New(pageResolver, repo, meter, baseLogger.With("component", "server"))

	return &Application{
		cfg:    cfg,
		logger: baseLogger,
		db:     db,
		router: srv.Router(),
	}, nil
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", a.cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// Close releases the database connection.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// policyFromConfig overlays configured thresholds on the reference policy.
func policyFromConfig(cfg config.ScoringConfig) scoring.Policy {
	policy := scoring.Default()

	if cfg.Version > 0 {
		policy.Version = cfg.Version
	}
	if cfg.OverlapThreshold > 0 {
		policy.OverlapThreshold = cfg.OverlapThreshold
	}
	if cfg.DuplicateThreshold > 0 {
		policy.DuplicateThreshold = cfg.DuplicateThreshold
	}
	if cfg.MinRepeatedKeywords > 0 {
		policy.MinRepeatedKeywords = cfg.MinRepeatedKeywords
	}
	if cfg.InterestingBoost > 0 {
		policy.InterestingBoost = cfg.InterestingBoost
	}
	if cfg.NarrowWindowDays > 0 {
		policy.NarrowWindow = time.Duration(cfg.NarrowWindowDays) * 24 * time.Hour
	}
	if cfg.WideWindowDays > 0 {
		policy.WideWindow = time.Duration(cfg.WideWindowDays) * 24 * time.Hour
	}
	if cfg.FreshnessDays > 0 {
		policy.Freshness = time.Duration(cfg.FreshnessDays) * 24 * time.Hour
	}

	return policy
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/utafrali/storefront/internal/cart"
	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/config"
	handler "github.com/utafrali/storefront/internal/handler/http"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	index          *catalog.Index
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// LoadCatalog builds the catalog index from the YAML fixture at path, or from
// the embedded dataset when path is empty.
func LoadCatalog(path string, seed int64, now time.Time) (*catalog.Index, error) {
	var (
		f   catalog.Fixture
		err error
	)
	if path == "" {
		f, err = catalog.DefaultFixture(seed, now)
	} else {
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open fixture: %w", err)
		}
		defer file.Close()
		f, err = catalog.LoadFixtureYAML(file, seed, now)
	}
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}

	idx, err := catalog.NewIndex(f)
	if err != nil {
		return nil, fmt.Errorf("build catalog index: %w", err)
	}
	return idx, nil
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing. Disabled tracing installs nothing.
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	idx, err := LoadCatalog(cfg.FixturePath, cfg.Seed, time.Now())
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, err
	}
	source := cfg.FixturePath
	if source == "" {
		source = "embedded"
	}
	logger.Info("catalog loaded",
		slog.String("source", source),
		slog.Int("products", idx.Len()),
		slog.Int("categories", len(idx.Categories())),
	)

	// Build the dependency graph.
	ledger := cart.NewLedger()
	catalogService := service.NewCatalogService(idx, logger)
	deferred := service.NewDeferredCatalog(catalogService, cfg.Delays())
	cartService := service.NewCartService(ledger, idx, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("catalog", func(context.Context) error {
		if idx.Len() == 0 {
			return errors.New("catalog is empty")
		}
		return nil
	})
	healthHandler.Register("cart", func(context.Context) error {
		for _, line := range ledger.Lines() {
			if line.Quantity < 1 {
				return fmt.Errorf("cart line %s has quantity %d", line.ProductID, line.Quantity)
			}
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(catalogService, deferred, cartService, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		index:          idx,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the application's HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

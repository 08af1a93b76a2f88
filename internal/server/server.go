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

	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/controllers"
	"github.com/paddock-dev/paddock/app/repositories"
	"github.com/paddock-dev/paddock/app/routes"
	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/config"
	"github.com/paddock-dev/paddock/pkg/cache"
	"github.com/paddock-dev/paddock/pkg/database"
	"github.com/paddock-dev/paddock/pkg/logger"
	"github.com/paddock-dev/paddock/pkg/metrics"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/migration"
	"github.com/paddock-dev/paddock/pkg/reqid"
	"github.com/paddock-dev/paddock/pkg/response"
	"github.com/paddock-dev/paddock/pkg/router"
	"github.com/paddock-dev/paddock/pkg/storage"
)

// Start boots the marketplace: config, database, cache, storage, migrations,
// then the HTTP server. It blocks until SIGINT/SIGTERM and drains in-flight
// requests before returning.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, using in-process cache", "error", err)
	}

	storage.Connect()
	if !storage.Configured() {
		logger.Warn("object storage not configured, listings will be created without media")
	}

	if err := migration.New(db).Run(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	r := BuildRouter(db)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("paddock listening", "addr", addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// BuildRouter assembles the full middleware chain and route table on top of
// the given database handle. Exposed so tests can drive the real HTTP surface.
func BuildRouter(db *gorm.DB) *router.Router {
	users := repositories.NewUserRepository(db)
	horses := repositories.NewHorseRepository(db)
	orders := repositories.NewOrderRepository(db)

	media := services.NewMediaService()
	auth := services.NewAuthService(users)
	listings := services.NewListingService(horses, users, media)
	checkout := services.NewCheckoutService(db, horses, orders, users)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		middleware.Authenticate,
	)

	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	routes.Register(r, routes.Controllers{
		Auth:     controllers.NewAuthController(auth),
		Listings: controllers.NewListingController(listings),
		Checkout: controllers.NewCheckoutController(listings, checkout),
	})

	return r
}

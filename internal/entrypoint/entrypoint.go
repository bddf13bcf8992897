package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/database"
	"github.com/openshelf/openshelf/internal/database/bookmarks"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/database/categories"
	"github.com/openshelf/openshelf/internal/database/history"
	"github.com/openshelf/openshelf/internal/database/publishers"
	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/database/users"
	http_controllers "github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/http/admin"
	"github.com/openshelf/openshelf/internal/scheduler"
	"github.com/openshelf/openshelf/internal/uploads"
)

// Run wires the whole application together and serves the storefront and
// the admin panel on their own ports until an interrupt arrives.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting OpenShelf v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	uploadStore, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	authService := auth.NewService(db.DB, cfg.Auth)
	authMiddleware := auth.NewMiddleware(authService)

	userRepo := users.NewRepository(db.DB)
	publisherRepo := publishers.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	categoryRepo := categories.NewRepository(db.DB)
	subscriptionRepo := subscriptions.NewRepository(db.DB)
	bookmarkRepo := bookmarks.NewRepository(db.DB)
	historyRepo := history.NewRepository(db.DB)

	storefront := http_controllers.NewRouter(http_controllers.RouterConfig{
		AuthService:    authService,
		AuthMiddleware: authMiddleware,

		Users:         userRepo,
		Publishers:    publisherRepo,
		Books:         bookRepo,
		Categories:    categoryRepo,
		Subscriptions: subscriptionRepo,
		Bookmarks:     bookmarkRepo,
		History:       historyRepo,
		Uploads:       uploadStore,

		StaticPath:    cfg.UI.StaticPath,
		TemplatesPath: cfg.UI.TemplatesPath,

		SubscriptionDays: cfg.Subscriptions.DurationDays,
		HistoryLimit:     cfg.History.Limit,
	})

	adminPanel := admin.NewRouter(admin.RouterConfig{
		AuthService:    authService,
		AuthMiddleware: authMiddleware,

		Users:         userRepo,
		Publishers:    publisherRepo,
		Books:         bookRepo,
		Categories:    categoryRepo,
		Subscriptions: subscriptionRepo,
		Uploads:       uploadStore,

		StaticPath:    cfg.UI.StaticPath,
		TemplatesPath: cfg.UI.TemplatesPath,

		SubscriptionDays: cfg.Subscriptions.DurationDays,
	})

	cleanup := scheduler.NewTokenCleanupScheduler(authService, cfg.Cleanup)
	if err := cleanup.Start(); err != nil {
		log.Fatalf("Failed to start token cleanup scheduler: %v", err)
	}

	storefrontSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: storefront,
	}
	adminSrv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.AdminPort),
		Handler: adminPanel,
	}

	go func() {
		log.Printf("Storefront server listening at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := storefrontSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("storefront listen: %s", err)
		}
	}()
	go func() {
		log.Printf("Admin panel server listening at %s:%d", cfg.HTTP.Host, cfg.HTTP.AdminPort)
		if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("admin listen: %s", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	log.Printf("Shutting down, waiting up to %v for in-flight requests", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cleanup.Stop()

	if err := storefrontSrv.Shutdown(ctx); err != nil {
		log.Printf("Storefront shutdown: %v", err)
	}
	if err := adminSrv.Shutdown(ctx); err != nil {
		log.Printf("Admin shutdown: %v", err)
	}

	log.Println("Servers exiting")
}

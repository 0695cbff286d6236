package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/ppongpeauk/xcs/internal/xcs/http"
	"github.com/ppongpeauk/xcs/internal/xcs/identity"
	"github.com/ppongpeauk/xcs/internal/xcs/mail"
	"github.com/ppongpeauk/xcs/internal/xcs/policy"
	"github.com/ppongpeauk/xcs/internal/xcs/service"
	"github.com/ppongpeauk/xcs/internal/xcs/store"
	"github.com/ppongpeauk/xcs/internal/xcs/store/drivers/mongo"
	"github.com/ppongpeauk/xcs/internal/xcs/store/drivers/sqlite"
	"github.com/ppongpeauk/xcs/pkg/cryptox"
	"github.com/ppongpeauk/xcs/pkg/jwtx"
	"github.com/ppongpeauk/xcs/pkg/metricsx"
	"github.com/ppongpeauk/xcs/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// migratingStore is a store driver that owns its schema.
type migratingStore interface {
	store.Store
	ApplyMigrations() error
}

// Application encapsulates the XCS service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	mailer     mail.Dispatcher

	// Background work that must drain on shutdown
	housekeepingService *service.HousekeepingService
	accessService       *service.AccessService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "xcs",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password and token hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)
	metricsx.Init()

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	app.initMail()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("xcs starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store", app.cfg.StoreDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, drains webhook deliveries and closes
// the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down xcs...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	// In-flight webhooks are bounded by WebhookTimeout
	app.accessService.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("xcs stopped")
	return nil
}

// initDatabase opens the configured store driver and applies its schema
func (app *Application) initDatabase() error {
	var (
		db  migratingStore
		err error
	)
	switch app.cfg.StoreDriver {
	case "mongo":
		if app.cfg.MongoURI == "" {
			return fmt.Errorf("XCS_MONGO_URI is required for the mongo store driver")
		}
		db, err = mongo.NewStore(app.cfg.MongoURI, app.cfg.MongoDatabase)
	case "sqlite", "":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

// initMail picks the SMTP relay when configured and logs mail otherwise
func (app *Application) initMail() {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("no SMTP relay configured, emails will only be logged")
		app.mailer = mail.LogDispatcher{Logger: app.logger}
		return
	}

	app.mailer = mail.NewSMTPDispatcher(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.MailFrom,
		FromName: app.cfg.MailFromName,
	})
	app.logger.Info("smtp relay configured", "host", app.cfg.SMTPHost, "port", app.cfg.SMTPPort)
}

// initHTTP initializes all services, the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		&identity.JWTResolver{Verifier: app.keyManager.Verifier},
		BuildVersion,
		app.db,
		app.logger,
	)

	roles := policy.Default
	verification := &service.VerificationService{Store: app.db, Mailer: app.mailer}

	app.accessService = &service.AccessService{
		Store:          app.db,
		WebhookTimeout: app.cfg.WebhookTimeout,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	router.SessionService = &service.SessionService{
		Store:      app.db,
		KeyManager: app.keyManager,
		Issuer:     app.cfg.Issuer,
		Audience:   app.cfg.Audience,
		TTL:        app.cfg.SessionTTL,
	}
	router.BootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
	}
	router.UserService = &service.UserService{
		Store:         app.db,
		Verification:  verification,
		InviteCredits: app.cfg.InviteCredits,
	}
	router.VerificationService = verification
	// No OAuth providers are registered; linking reports the provider as unsupported
	router.LinkService = &service.LinkService{Store: app.db, Timeout: app.cfg.LinkTimeout}
	router.OrganizationService = &service.OrganizationService{Store: app.db, Policy: roles}
	router.MembershipService = &service.MembershipService{Store: app.db, Policy: roles, Mailer: app.mailer}
	router.InviteService = &service.InviteService{Store: app.db, Policy: roles}
	router.NotificationService = &service.NotificationService{Store: app.db}
	router.AccessGroupService = &service.AccessGroupService{Store: app.db, Policy: roles}
	router.LocationService = &service.LocationService{Store: app.db, Policy: roles}
	router.AccessPointService = &service.AccessPointService{Store: app.db, Policy: roles}
	router.APIKeyService = &service.APIKeyService{Store: app.db, Policy: roles}
	router.AccessService = app.accessService
	router.LegacySyncService = &service.LegacySyncService{Store: app.db}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

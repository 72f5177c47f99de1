package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/livefit/livefit-api/internal/config"
	"github.com/livefit/livefit-api/internal/events"
	"github.com/livefit/livefit-api/internal/platform/gcs"
	"github.com/livefit/livefit-api/internal/platform/postgres"
	"github.com/livefit/livefit-api/internal/platform/rabbitmq"
	"github.com/livefit/livefit-api/internal/platform/telemetry"
	"github.com/livefit/livefit-api/internal/service"
	"github.com/livefit/livefit-api/internal/service/auth"
	"github.com/livefit/livefit-api/internal/service/booking"
	"github.com/livefit/livefit-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore  store.UserStore
	jwtService auth.JWTService

	userService    service.UserService
	skillService   service.SkillService
	creditService  service.CreditService
	coachService   service.CoachService
	courseService  service.CourseService
	uploadService  service.UploadService
	bookingService booking.Service

	// Optional integrations, nil when not configured.
	publisher      *rabbitmq.Publisher
	imageStore     *gcs.ImageStore
	shutdownTracer telemetry.ShutdownFunc
}

// newApplication creates a new application instance with all dependencies initialized.
// Configuration, logger and database connection must be established first.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.shutdownTracer, err = telemetry.InitTracer(ctx, cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup(ctx)
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	passwords := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	skillStore := postgres.NewPostgresSkillStore(db, logger)
	packageStore := postgres.NewPostgresCreditPackageStore(db, logger)
	purchaseStore := postgres.NewPostgresCreditPurchaseStore(db, logger)
	coachStore := postgres.NewPostgresCoachStore(db, logger)
	courseStore := postgres.NewPostgresCourseStore(db, logger)
	bookingStore := postgres.NewPostgresBookingStore(db, logger)

	emitter, err := app.setupEvents()
	if err != nil {
		app.cleanup(ctx)
		return nil, err
	}

	// Services
	app.userService = service.NewUserService(app.userStore, purchaseStore, bookingStore, passwords, app.jwtService, logger)
	app.skillService = service.NewSkillService(skillStore, logger)
	app.creditService = service.NewCreditService(packageStore, purchaseStore, logger)
	app.coachService = service.NewCoachService(db, app.userStore, coachStore, skillStore, courseStore, logger)
	app.courseService = service.NewCourseService(db, app.userStore, courseStore, bookingStore, logger)

	ledger := booking.NewStoreLedger(db, app.userStore, courseStore, bookingStore, purchaseStore)
	app.bookingService = booking.NewService(ledger, emitter, logger)

	uploadOpts := service.UploadOptions{
		Prefix:    cfg.Storage.ObjectPrefix,
		MaxBytes:  cfg.Storage.MaxUploadBytes,
		URLExpiry: time.Duration(cfg.Storage.SignedURLMinutes) * time.Minute,
	}
	if cfg.Storage.Enabled() {
		app.imageStore, err = gcs.NewImageStore(ctx, cfg.Storage, logger)
		if err != nil {
			app.cleanup(ctx)
			return nil, fmt.Errorf("failed to initialize image storage: %w", err)
		}
		app.uploadService = service.NewUploadService(app.imageStore, uploadOpts, logger)
	} else {
		logger.Warn("Image storage not configured, uploads disabled")
		app.uploadService = service.NewUploadService(nil, uploadOpts, logger)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupEvents builds the booking event emitter. Events are always logged and
// additionally published to RabbitMQ when an AMQP URL is configured.
func (app *application) setupEvents() (events.EventEmitter, error) {
	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(events.NewLogHandler(app.logger))

	if app.config.Events.AMQPURL == "" {
		return emitter, nil
	}

	publisher, err := rabbitmq.NewPublisher(app.config.Events.AMQPURL, app.config.Events.Exchange, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect event publisher: %w", err)
	}
	app.publisher = publisher
	emitter.RegisterHandler(publisher)
	app.logger.Info("Booking events published to RabbitMQ", "exchange", app.config.Events.Exchange)
	return emitter, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("Error closing event publisher", "error", err)
		}
	}

	if app.imageStore != nil {
		if err := app.imageStore.Close(); err != nil {
			app.logger.Error("Error closing image storage client", "error", err)
		}
	}

	if app.shutdownTracer != nil {
		if err := app.shutdownTracer(ctx); err != nil {
			app.logger.Error("Error flushing traces", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"ecoride/internal/app"
	"ecoride/internal/config"
	"ecoride/internal/domain"
	"ecoride/internal/handler"
	"ecoride/internal/insight"
	internalRedis "ecoride/internal/redis"
	"ecoride/internal/repository/postgres"
	"ecoride/internal/repository/record"
	"ecoride/internal/service"
	"ecoride/internal/store"
	"ecoride/internal/store/memory"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before the stores so we can instrument them).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize the record store backend.
	var (
		recordStore store.Store
		locker      service.RideLocker
		statsCache  service.StatsCache
		locations   internalRedis.LocationStoreInterface
		redisClient *redis.Client
	)

	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")

		recordStore = internalRedis.NewRecordStore(redisClient)
		locker = internalRedis.NewLockStore(redisClient)
		statsCache = internalRedis.NewCacheStore(redisClient)
		locations = internalRedis.NewLocationStore(redisClient)

	case config.StoreBackendPostgres:
		db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		log.Println("Connected to PostgreSQL")

		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}

		recordStore = postgres.NewRecordStore(db)
		locker = memory.NewRideLocker()

	case config.StoreBackendMemory:
		recordStore = memory.New()
		locker = memory.NewRideLocker()
		log.Println("Using in-memory store; data will not survive a restart")

	default:
		log.Fatalf("unknown store backend: %s", cfg.Store.Backend)
	}

	// Wire dependencies.
	server := wireServer(recordStore, locker, statsCache, locations, redisClient, nrApp, cfg)

	// Seed the demo user on an empty store if requested.
	if cfg.Store.SeedDemoData {
		if err := seedDemoData(ctx, record.NewUserRepository(recordStore)); err != nil {
			log.Printf("failed to seed demo data: %v", err)
		}
	}

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	recordStore store.Store,
	locker service.RideLocker,
	statsCache service.StatsCache,
	locations internalRedis.LocationStoreInterface,
	redisClient *redis.Client,
	nrApp *newrelic.Application,
	cfg *config.Config,
) *http.Server {
	// Initialize repositories.
	userRepo := record.NewUserRepository(recordStore)
	rideRepo := record.NewRideRepository(recordStore)
	bookingRepo := record.NewBookingRepository(recordStore)
	sessionStore := record.NewSessionStore(recordStore)

	// Initialize services.
	notificationService := service.NewNotificationService()
	authService := service.NewAuthService(userRepo, sessionStore)
	rideService := service.NewRideService(rideRepo, bookingRepo, userRepo, sessionStore, locker, notificationService, statsCache)
	statsService := service.NewStatsService(rideRepo, bookingRepo, sessionStore, statsCache)

	// Initialize the insight collaborator.
	insightClient := insight.NewClient(insight.Config{
		BaseURL: cfg.Insight.BaseURL,
		APIKey:  cfg.Insight.APIKey,
		Model:   cfg.Insight.Model,
		Timeout: cfg.Insight.Timeout,
	})

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	rideHandler := handler.NewRideHandler(rideService)
	statsHandler := handler.NewStatsHandler(statsService)
	insightHandler := handler.NewInsightHandler(insightClient, authService, locations)
	userHandler := handler.NewUserHandler(authService, locations)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		RideHandler:    rideHandler,
		StatsHandler:   statsHandler,
		InsightHandler: insightHandler,
		UserHandler:    userHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// seedDemoData installs the demo account on a fresh store.
func seedDemoData(ctx context.Context, users *record.UserRepository) error {
	existing, err := users.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	log.Println("Seeding demo user arjun@example.com")
	return users.Append(ctx, domain.User{
		ID:               "user_in_123",
		Name:             "Arjun Mehta",
		Email:            "arjun@example.com",
		SecretHash:       string(hash),
		Avatar:           "https://i.pravatar.cc/150?u=arjun",
		Rating:           4.8,
		Verified:         true,
		TotalKm:          1250,
		TotalCarbonSaved: 250.5,
	})
}

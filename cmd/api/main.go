package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rehan-4778/JobHunt-BE/api/routes"
	"github.com/Rehan-4778/JobHunt-BE/internal/applications"
	"github.com/Rehan-4778/JobHunt-BE/internal/auth"
	"github.com/Rehan-4778/JobHunt-BE/internal/categories"
	"github.com/Rehan-4778/JobHunt-BE/internal/jobs"
	"github.com/Rehan-4778/JobHunt-BE/internal/notifications"
	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	"github.com/Rehan-4778/JobHunt-BE/pkg/auth/session"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/mailer"
	"github.com/Rehan-4778/JobHunt-BE/pkg/metrics"
	"github.com/Rehan-4778/JobHunt-BE/pkg/migrate"
	"github.com/Rehan-4778/JobHunt-BE/pkg/redis"
	"github.com/Rehan-4778/JobHunt-BE/pkg/storage/gcs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}
	defer func() {
		if err := gcsClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing gcs", err)
		}
	}()

	sendgridMailer, err := mailer.NewSendgrid(cfg.Sendgrid)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap sendgrid", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	jobRepo := jobs.NewRepository(dbClient.DB())
	applicationRepo := applications.NewRepository(dbClient.DB())
	categoryRepo := categories.NewRepository(dbClient.DB())
	notificationRepo := notifications.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		Mailer:         sendgridMailer,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		ResetConfig:    cfg.Reset,
		PublicURL:      cfg.App.PublicURL,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	jobService, err := jobs.NewService(jobs.ServiceParams{
		JobRepo:      jobRepo,
		EmployerRepo: userRepo,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create job service", err)
		os.Exit(1)
	}

	notificationService, err := notifications.NewService(notifications.ServiceParams{
		NotificationRepo: notificationRepo,
		Logger:           logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	applicationService, err := applications.NewService(applications.ServiceParams{
		ApplicationRepo: applicationRepo,
		JobRepo:         jobRepo,
		Emitter:         notificationService,
		Logger:          logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create application service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.ServiceParams{
		CategoryRepo: categoryRepo,
		JobCatalog:   jobRepo,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Sessions:        sessionManager,
			Uploader:        gcsClient,
			HTTPMetrics:     httpMetrics,
			MetricsGatherer: registry,

			AuthService:         authService,
			JobService:          jobService,
			ApplicationService:  applicationService,
			CategoryService:     categoryService,
			NotificationService: notificationService,
			UserRepo:            userRepo,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

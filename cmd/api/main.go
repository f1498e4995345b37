package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"propmatch/internal/app"
	"propmatch/internal/config"
	"propmatch/internal/database"
	apphttp "propmatch/internal/http"
	"propmatch/internal/http/handlers"
	"propmatch/internal/http/metrics"
	httpmw "propmatch/internal/http/middleware"
	"propmatch/internal/http/response"
	"propmatch/internal/observability"
	"propmatch/internal/repository/postgres"
	"propmatch/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	studentRepo := postgres.NewStudentProfileRepository(db)
	companyRepo := postgres.NewCompanyProfileRepository(db)
	departmentRepo := postgres.NewDepartmentProfileRepository(db)
	proposalRepo := postgres.NewProposalRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)

	authService := app.NewAuthService(userRepo, jwtProvider, logger, cfg.AccessTokenTTL)
	userService := app.NewUserService(userRepo)
	profileService := app.NewProfileService(studentRepo, companyRepo, departmentRepo)
	proposalService := app.NewProposalService(proposalRepo, companyRepo, notificationRepo, logger)
	matchService := app.NewMatchService(matchRepo, proposalRepo, studentRepo, companyRepo, notificationRepo, logger)
	notificationService := app.NewNotificationService(notificationRepo)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)
	proposalHandler := handlers.NewProposalHandler(proposalService)
	matchHandler := handlers.NewMatchHandler(matchService, limiter)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		ProfileHandler:      profileHandler,
		ProposalHandler:     proposalHandler,
		MatchHandler:        matchHandler,
		NotificationHandler: notificationHandler,
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		AuthMiddleware:      middleware,
		Metrics:             collector,
		Logger:              logger,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

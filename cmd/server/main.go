package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"

	"chorepoints/internal/config"
	"chorepoints/internal/database"
	"chorepoints/internal/handlers"
	"chorepoints/internal/repository"
	"chorepoints/internal/security"
	"chorepoints/internal/service"
	"chorepoints/internal/token"
	"chorepoints/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	db, err := database.Open(cfg.DatabaseType, database.DialectConfig{
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	log.WithField("type", cfg.DatabaseType).Info("database connection established")

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("migrations completed")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	giftRepo := repository.NewGiftRepository(db)

	// Services
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := token.NewManager(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize email service")
	}

	authService := service.NewAuthService(userRepo, tokens, hasher, emailService, log)
	childService := service.NewChildService(childRepo, habitRepo, taskRepo, giftRepo)
	habitService := service.NewHabitService(db, habitRepo, childRepo)
	taskService := service.NewTaskService(db, taskRepo, childRepo)
	giftService := service.NewGiftService(db, giftRepo, childRepo)
	accountService := service.NewAccountService(userRepo, childRepo, childService, hasher)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"facebook": {
			Name: "facebook",
			Config: &oauth2.Config{
				ClientID:     cfg.FacebookClientID,
				ClientSecret: cfg.FacebookClientSecret,
				Endpoint:     facebook.Endpoint,
				Scopes:       []string{"email", "public_profile"},
			},
			UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
		},
	}

	// Handlers
	limiter := security.NewRateLimiter(cfg.RateLimitAttempts, cfg.RateLimitWindow)
	mw := handlers.NewMiddleware(authService, limiter, log)
	authHandler := handlers.NewAuthHandler(authService, childService, oauthProviders, cfg.OAuthRedirectBaseURL, log)
	childHandler := handlers.NewChildHandler(childService, log)
	habitHandler := handlers.NewHabitHandler(habitService, log)
	taskHandler := handlers.NewTaskHandler(taskService, log)
	giftHandler := handlers.NewGiftHandler(giftService, log)
	userHandler := handlers.NewUserHandler(accountService, log)

	mux := handlers.NewRouter(mw, authHandler, childHandler, habitHandler, taskHandler, giftHandler, userHandler)
	handler := mw.Logging(mw.CORS(cfg.AllowedOrigin, mux))

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background session cleanup
	go cleanupExpiredSessions(authService, log)

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
}

// cleanupExpiredSessions periodically removes expired sessions
func cleanupExpiredSessions(authService *service.AuthService, log *logrus.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.WithError(err).Error("session cleanup failed")
		}
	}
}

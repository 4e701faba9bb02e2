package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/config"
	"github.com/dailyworklog/server/internal/database"
	"github.com/dailyworklog/server/internal/handler"
	"github.com/dailyworklog/server/internal/repository"
	"github.com/dailyworklog/server/internal/service"
	"github.com/dailyworklog/server/pkg/auth"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.IsDevelopment() {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.Info("Connecting to PostgreSQL...")
	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Error("Failed to close database connection")
		}
	}()

	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)
	passwordManager := auth.NewPasswordManager()

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	auditLogger := service.NewAuditLogger(auditRepo, log)
	taskService := service.NewTaskService(taskRepo, auditLogger, log)
	summaryService := service.NewSummaryService(taskRepo)
	authService := service.NewAuthService(userRepo, tokenManager, passwordManager, log)
	projectService := service.NewProjectService(projectRepo)

	router := handler.NewRouter(handler.Deps{
		Log:       log,
		Tokens:    tokenManager,
		Auth:      authService,
		Tasks:     taskService,
		Summaries: summaryService,
		Projects:  projectService,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Server.HTTPPort).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
	log.Info("Server shutdown complete")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/cache"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/config"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/handler"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/insight"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/integrations/bcb"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/middleware"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/repository"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/service"
	"github.com/alanaraujo-bit/meu-bolso-sub000/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	engine := insight.NewEngine(repo, logger)
	insightCache := cache.NewRedisCache(cfg.RedisAddr)
	rates := bcb.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, engine, insightCache, rates, mailer, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID(logger))
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/insights", h.GetInsights).Methods("GET")
	authRouter.HandleFunc("/profile", h.GetProfile).Methods("GET")

	// Scheduled jobs: warm the insight cache before the morning rush and
	// send digests on Monday mornings.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 6 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		svc.WarmInsightCache(ctx)
	}); err != nil {
		logger.Fatalf("Failed to schedule cache warm-up: %v", err)
	}
	if _, err := scheduler.AddFunc("0 8 * * MON", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		svc.SendWeeklyDigests(ctx)
	}); err != nil {
		logger.Fatalf("Failed to schedule weekly digests: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"attendance-monitor/internal/attendance"
	"attendance-monitor/internal/auth"
	"attendance-monitor/internal/httpapi"
	"attendance-monitor/internal/mailer"
	"attendance-monitor/internal/report"
	"attendance-monitor/internal/schedule"
	"attendance-monitor/internal/semester"
	"attendance-monitor/internal/shared"
	"attendance-monitor/internal/student"
)

func main() {
	// 1. Configuration
	if err := shared.LoadEnv(".env"); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	cfg, err := shared.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	logger, err := shared.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Attendance Monitoring Service...")

	// 2. MongoDB
	client, db, err := shared.ConnectMongoDB(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer shared.DisconnectMongoDB(client)
	cols := shared.NewCollections(db)

	// 3. Services
	loc := time.Local
	if tz := shared.GetEnv("APP_TIMEZONE", ""); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		} else {
			logger.Warn("Unknown APP_TIMEZONE, falling back to system local time", zap.String("tz", tz))
		}
	}

	mail := mailer.NewSender(cfg.Email, logger)
	semesterSvc := semester.NewService(cols, logger)
	scheduleSvc := schedule.NewService(cols, logger)
	attendanceSvc := attendance.NewService(cols, semesterSvc, loc, logger)
	studentSvc := student.NewService(cols, logger)
	authSvc := auth.NewService(cols, mail, cfg.Security, cfg.BaseURL, logger)
	reportSvc := report.NewService(attendanceSvc, semesterSvc, logger)

	// Refresh the cached semester code on startup.
	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if code, err := semesterSvc.Sync(startupCtx); err != nil {
		logger.Warn("Failed to sync current semester", zap.Error(err))
	} else {
		logger.Info("Current semester", zap.String("semester", code))
	}
	cancel()

	// 4. HTTP surface
	router := httpapi.SetupRoutes(httpapi.Deps{
		Auth:       authSvc,
		Schedules:  scheduleSvc,
		Attendance: attendanceSvc,
		Students:   studentSvc,
		Semesters:  semesterSvc,
		Reports:    reportSvc,
		CORS:       cfg.CORS,
	})

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Start Server in a Goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Server stopped.")
}

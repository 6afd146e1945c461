package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/boardinghub/boardinghub/internal/auth"
	"github.com/boardinghub/boardinghub/internal/billing"
	billingStore "github.com/boardinghub/boardinghub/internal/billing/store"
	"github.com/boardinghub/boardinghub/internal/config"
	"github.com/boardinghub/boardinghub/internal/database"
	"github.com/boardinghub/boardinghub/internal/export"
	bhHttp "github.com/boardinghub/boardinghub/internal/http"
	applicationHandler "github.com/boardinghub/boardinghub/internal/http/application"
	billingHandler "github.com/boardinghub/boardinghub/internal/http/billing"
	exportHandler "github.com/boardinghub/boardinghub/internal/http/export"
	importHandler "github.com/boardinghub/boardinghub/internal/http/importreadings"
	notificationHandler "github.com/boardinghub/boardinghub/internal/http/notification"
	propertyHandler "github.com/boardinghub/boardinghub/internal/http/property"
	userHandler "github.com/boardinghub/boardinghub/internal/http/user"
	"github.com/boardinghub/boardinghub/internal/importer"
	"github.com/boardinghub/boardinghub/internal/notification"
	notificationStore "github.com/boardinghub/boardinghub/internal/notification/store"
	"github.com/boardinghub/boardinghub/internal/property"
	propertyStore "github.com/boardinghub/boardinghub/internal/property/store"
	"github.com/boardinghub/boardinghub/internal/scheduler"
	"github.com/boardinghub/boardinghub/internal/tenantapp"
	tenantappStore "github.com/boardinghub/boardinghub/internal/tenantapp/store"
	"github.com/boardinghub/boardinghub/internal/user"
	userStore "github.com/boardinghub/boardinghub/internal/user/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	jwtManager := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)

	var (
		userService         = user.NewService(userStore.New(db), jwtManager)
		propertyService     = property.NewService(propertyStore.New(db))
		billingService      = billing.NewService(billingStore.New(db))
		applicationService  = tenantapp.NewService(tenantappStore.New(db))
		notificationService = notification.NewService(notificationStore.New(db))
		importService       = importer.NewService()
		exportService       = export.NewService(billingService)
	)

	var (
		usersH         = userHandler.NewHandler(userService)
		propertiesH    = propertyHandler.NewHandler(propertyService)
		billsH         = billingHandler.NewHandler(billingService)
		applicationsH  = applicationHandler.NewHandler(applicationService, userService, propertyService)
		notificationsH = notificationHandler.NewHandler(notificationService)
		importH        = importHandler.NewHandler(importService, billingService)
		exportH        = exportHandler.NewHandler(exportService)
	)

	if cfg.Scheduler.Enabled {
		sched := scheduler.New(billingService)
		if err := sched.Start(cfg.Scheduler.OverdueSweepTime); err != nil {
			slog.Error("failed to start scheduler", "error", err)
			os.Exit(1)
		}
		defer sched.Stop()
	}

	router := bhHttp.New(
		jwtManager,
		cfg.Server.AllowedOrigins,
		usersH, propertiesH, billsH, applicationsH, notificationsH, importH, exportH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

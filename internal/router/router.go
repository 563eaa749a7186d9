package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/handlers"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/middleware"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/notifier"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
)

// Config carries the cross-cutting settings route setup needs.
type Config struct {
	AdminEmail        string
	LowStockThreshold int
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, dispatcher *notifier.Dispatcher, cfg Config) {
	// Initialize Repositories
	itemRepo := repositories.NewItemRepository(db)
	releaseRepo := repositories.NewReleaseRepository(db)
	returnRepo := repositories.NewReturnRepository(db)
	userRepo := repositories.NewUserRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	scheduleRepo := repositories.NewScheduleRepository(db)
	statsRepo := repositories.NewStatsRepository(db)

	// Initialize Services
	alerts := services.NewStockAlerter(notifRepo, userRepo, dispatcher, db, cfg.LowStockThreshold)
	itemService := services.NewItemService(itemRepo, releaseRepo, returnRepo, notifRepo, alerts, db)
	releaseService := services.NewReleaseService(itemRepo, releaseRepo, notifRepo, userRepo, dispatcher, alerts, db, cfg.AdminEmail)
	returnService := services.NewReturnService(itemRepo, releaseRepo, returnRepo, notifRepo, userRepo, dispatcher, db)
	authService := services.NewAuthService(userRepo, db)
	scheduleService := services.NewScheduleService(scheduleRepo, itemRepo, notifRepo, db)
	notificationService := services.NewNotificationService(notifRepo, db)
	dashboardService := services.NewDashboardService(statsRepo, db, cfg.LowStockThreshold)

	// Initialize Handlers
	itemHandler := handlers.NewItemHandler(itemService)
	releaseHandler := handlers.NewReleaseHandler(releaseService)
	returnHandler := handlers.NewReturnHandler(returnService)
	authHandler := handlers.NewAuthHandler(authService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupItemRoutes(authenticated, itemHandler)
		SetupReleaseRoutes(authenticated, releaseHandler)
		SetupReturnRoutes(authenticated, returnHandler)
		SetupScheduleRoutes(authenticated, scheduleHandler)
		SetupNotificationRoutes(authenticated, notificationHandler)
		SetupUserRoutes(authenticated, authHandler)
		SetupDashboardRoutes(authenticated, dashboardHandler)
	}
}

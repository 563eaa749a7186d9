package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/handlers"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/middleware"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// SetupPublicAuthRoutes sets up routes that work without a token.
// Registration is optionally authenticated: a superadmin token lets the
// caller assign roles beyond staff.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", middleware.OptionalAuthMiddleware(), authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/refresh-token", authHandler.Refresh)
}

// SetupAuthenticatedAuthRoutes sets up auth routes behind the token check.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.Me)
}

// SetupItemRoutes sets up the inventory item routes.
// Updates and deletes are superadmin only; quantity edits bypass the ledger.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, itemHandler *handlers.ItemHandler) {
	itemRoutes := authenticatedGroup.Group("/items")
	{
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("", itemHandler.GetItems)
		itemRoutes.GET("/:id", itemHandler.GetItemByID)
		itemRoutes.GET("/:id/history", itemHandler.GetItemHistory)
		itemRoutes.PUT("/:id", middleware.RoleAuthMiddleware(models.RoleSuperadmin), itemHandler.UpdateItem)
		itemRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleSuperadmin), itemHandler.DeleteItem)
	}
}

// SetupReleaseRoutes sets up the release routes.
func SetupReleaseRoutes(authenticatedGroup *gin.RouterGroup, releaseHandler *handlers.ReleaseHandler) {
	releaseRoutes := authenticatedGroup.Group("/releases")
	{
		releaseRoutes.POST("", releaseHandler.CreateRelease)
		releaseRoutes.GET("", releaseHandler.GetReleases)
		releaseRoutes.GET("/:id", releaseHandler.GetReleaseByID)
		releaseRoutes.PATCH("/:id/status", middleware.RoleAuthMiddleware(models.RoleSuperadmin), releaseHandler.UpdateApprovalStatus)
	}
}

// SetupReturnRoutes sets up the return routes.
func SetupReturnRoutes(authenticatedGroup *gin.RouterGroup, returnHandler *handlers.ReturnHandler) {
	returnRoutes := authenticatedGroup.Group("/returns")
	{
		returnRoutes.POST("", returnHandler.RecordReturn)
		returnRoutes.POST("/release/:releaseId", returnHandler.RecordReturnForRelease)
		returnRoutes.GET("", returnHandler.GetReturns)
		returnRoutes.GET("/overdue", returnHandler.GetOverdueReturns)
		returnRoutes.GET("/release/:releaseId", returnHandler.GetReturnsForRelease)
		returnRoutes.GET("/:id", returnHandler.GetReturnByID)
	}
}

// SetupScheduleRoutes sets up the maintenance schedule routes.
func SetupScheduleRoutes(authenticatedGroup *gin.RouterGroup, scheduleHandler *handlers.ScheduleHandler) {
	scheduleRoutes := authenticatedGroup.Group("/schedules")
	{
		scheduleRoutes.POST("", scheduleHandler.CreateSchedule)
		scheduleRoutes.GET("", scheduleHandler.GetSchedules)
		scheduleRoutes.GET("/:id", scheduleHandler.GetScheduleByID)
		scheduleRoutes.PUT("/:id/approve", middleware.RoleAuthMiddleware(models.RoleSuperadmin), scheduleHandler.ApproveSchedule)
		scheduleRoutes.PUT("/:id/status", middleware.RoleAuthMiddleware(models.RoleSuperadmin), scheduleHandler.UpdateScheduleStatus)
	}
}

// SetupNotificationRoutes sets up the in-app notification routes.
func SetupNotificationRoutes(authenticatedGroup *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notificationRoutes := authenticatedGroup.Group("/notifications")
	{
		notificationRoutes.GET("", notificationHandler.GetNotifications)
		notificationRoutes.PUT("/:id", notificationHandler.MarkRead)
	}
}

// SetupUserRoutes sets up the user management routes, superadmin only.
func SetupUserRoutes(authenticatedGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	userRoutes := authenticatedGroup.Group("/users")
	userRoutes.Use(middleware.RoleAuthMiddleware(models.RoleSuperadmin))
	{
		userRoutes.GET("", authHandler.GetUsers)
		userRoutes.GET("/:id", authHandler.GetUserByID)
		userRoutes.PATCH("/:id/active", authHandler.SetUserActive)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	authenticatedGroup.GET("/dashboard/summary", dashboardHandler.GetStats)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// actorFromContext reads the authenticated user out of the Gin context. The
// auth middleware is responsible for setting these keys; a missing key means
// the route was wired without it.
func actorFromContext(c *gin.Context) (services.Actor, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated", "Missing user ID"))
		return services.Actor{}, false
	}
	id, ok := userID.(int64)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Invalid user identity in context", ""))
		return services.Actor{}, false
	}
	actor := services.Actor{ID: id}
	if username, ok := c.Get("username"); ok {
		actor.Username, _ = username.(string)
	}
	if role, ok := c.Get("userRole"); ok {
		actor.Role, _ = role.(string)
	}
	return actor, true
}

// parseIDParam parses the named path parameter as an int64 id.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id < 1 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", c.Param(name)))
		return 0, false
	}
	return id, true
}

// respondServiceError maps service sentinels onto the HTTP error taxonomy.
// Unrecognized errors become an opaque 500; their detail stays in the logs.
func respondServiceError(c *gin.Context, err error, logContext string) {
	utils.LogError(err, logContext)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, err.Error(), ""))
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrReleaseNotFound),
		errors.Is(err, services.ErrReturnNotFound),
		errors.Is(err, services.ErrScheduleNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), ""))
	case errors.Is(err, services.ErrInsufficientStock):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeInsufficientStock, err.Error(), ""))
	case errors.Is(err, services.ErrOverReturn):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeOverReturn, err.Error(), ""))
	case errors.Is(err, services.ErrCommitConflict):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "The operation conflicted with a concurrent change. Retry the request.", ""))
	case errors.Is(err, services.ErrDuplicateUsername):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), ""))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, err.Error(), ""))
	case errors.Is(err, services.ErrAccountDisabled):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, err.Error(), ""))
	default:
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "An internal error occurred.", ""))
	}
}

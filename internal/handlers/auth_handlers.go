package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/services"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// AuthHandler holds the auth service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// Register handles creating a new user account. Anonymous callers always
// get the staff role; an authenticated superadmin may assign others.
func (h *AuthHandler) Register(c *gin.Context) {
	var actor services.Actor
	if userID, exists := c.Get("userID"); exists {
		actor.ID, _ = userID.(int64)
		if username, ok := c.Get("username"); ok {
			actor.Username, _ = username.(string)
		}
		if role, ok := c.Get("userRole"); ok {
			actor.Role, _ = role.(string)
		}
	}
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	user, err := h.authService.Register(actor, req)
	if err != nil {
		respondServiceError(c, err, "Register: Error from authService.Register")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles credential verification and token issuance.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		respondServiceError(c, err, "Login: Error from authService.Login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles rotating a refresh token into a new token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req services.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	resp, err := h.authService.Refresh(req)
	if err != nil {
		respondServiceError(c, err, "Refresh: Error from authService.Refresh")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me handles fetching the authenticated user's own profile.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(actor.ID)
	if err != nil {
		respondServiceError(c, err, "Me: Error from authService.GetUserByID")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUsers handles listing all users.
func (h *AuthHandler) GetUsers(c *gin.Context) {
	users, err := h.authService.GetUsers()
	if err != nil {
		respondServiceError(c, err, "GetUsers: Error from authService.GetUsers")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUserByID handles fetching a single user.
func (h *AuthHandler) GetUserByID(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		respondServiceError(c, err, "GetUserByID: Error from authService.GetUserByID")
		return
	}
	c.JSON(http.StatusOK, user)
}

// SetUserActive handles activating or deactivating a user account.
func (h *AuthHandler) SetUserActive(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	if err := h.authService.SetUserActive(userID, *req.IsActive); err != nil {
		respondServiceError(c, err, "SetUserActive: Error from authService.SetUserActive")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

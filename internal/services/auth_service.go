package services

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/repositories"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

// Auth sentinels. Login failures are deliberately indistinct: a caller never
// learns whether the username or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already taken")
)

// --- Data Transfer Objects (DTOs) ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries both tokens plus the authenticated user.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(actor Actor, req RegisterRequest) (*models.User, error)
	Login(req LoginRequest) (*LoginResponse, error)
	Refresh(req RefreshRequest) (*LoginResponse, error)
	GetUserByID(userID int64) (*models.User, error)
	GetUsers() ([]models.User, error)
	SetUserActive(userID int64, active bool) error
}

// --- authService Implementation ---
type authService struct {
	userRepo repositories.UserRepository
	db       *sql.DB
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(ur repositories.UserRepository, db *sql.DB) AuthService {
	return &authService{userRepo: ur, db: db}
}

// Register creates a user with a bcrypt-hashed password. Only superadmins may
// grant the admin or superadmin roles; everyone else registers staff.
func (s *authService) Register(actor Actor, req RegisterRequest) (*models.User, error) {
	if utils.IsEmpty(req.Username) {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if !utils.IsValidPasswordLength(req.Password, 8) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: email is not a valid email address", ErrValidation)
	}

	roleName := req.Role
	if roleName == "" {
		roleName = models.RoleStaff
	}
	if roleName != models.RoleStaff && !actor.IsSuperadmin() {
		return nil, fmt.Errorf("%w: only a superadmin can assign the %s role", ErrValidation, roleName)
	}

	role, err := s.userRepo.GetRoleByName(s.db, roleName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown role '%s'", ErrValidation, roleName)
		}
		return nil, fmt.Errorf("failed to look up role '%s': %w", roleName, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        utils.NewNullString(req.Email),
		FullName:     utils.NewNullString(req.FullName),
		RoleID:       &role.ID,
		IsActive:     true,
	}
	if _, err := s.userRepo.CreateUser(s.db, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Role = role
	return &user, nil
}

func (s *authService) Login(req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.GetUserByUsername(s.db, req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new token pair. The user is
// re-read so role changes and deactivation take effect on rotation.
func (s *authService) Refresh(req RefreshRequest) (*LoginResponse, error) {
	claims, err := utils.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetUserByID(s.db, claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*LoginResponse, error) {
	roleName := models.RoleStaff
	if user.Role != nil {
		roleName = user.Role.Name
	}
	access, err := utils.GenerateAccessToken(user.ID, user.Username, roleName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &LoginResponse{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *authService) GetUserByID(userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(s.db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

func (s *authService) GetUsers() ([]models.User, error) {
	users, err := s.userRepo.GetUsers(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	return users, nil
}

func (s *authService) SetUserActive(userID int64, active bool) error {
	if err := s.userRepo.SetUserActive(s.db, userID, active); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return nil
}

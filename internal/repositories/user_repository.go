package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/models"
)

// UserRepository defines the interface for user and role database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) (int64, error)
	GetUserByID(executor SQLExecutor, userID int64) (*models.User, error)
	GetUserByUsername(executor SQLExecutor, username string) (*models.User, error)
	GetUsers(executor SQLExecutor) ([]models.User, error)
	GetUsersByRole(executor SQLExecutor, roleName string) ([]models.User, error)
	GetRoleByName(executor SQLExecutor, name string) (*models.Role, error)
	SetUserActive(executor SQLExecutor, userID int64, active bool) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userSelect = `SELECT u.id, u.username, u.password_hash, u.email, u.full_name, u.role_id,
	u.is_active, u.created_at, u.updated_at, r.id, r.name, r.description
	FROM users u LEFT JOIN roles r ON u.role_id = r.id`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	var email, fullName sql.NullString
	var roleID, joinedRoleID sql.NullInt64
	var roleName, roleDescription sql.NullString

	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &email, &fullName, &roleID,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
		&joinedRoleID, &roleName, &roleDescription,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	if roleID.Valid {
		user.RoleID = &roleID.Int64
	}
	if joinedRoleID.Valid && roleName.Valid {
		role := models.Role{ID: joinedRoleID.Int64, Name: roleName.String}
		if roleDescription.Valid {
			role.Description = &roleDescription.String
		}
		user.Role = &role
	}
	return &user, nil
}

func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, full_name, role_id, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at, updated_at`
	currentTime := time.Now()

	var email, fullName sql.NullString
	if user.Email != nil {
		email = sql.NullString{String: *user.Email, Valid: true}
	}
	if user.FullName != nil {
		fullName = sql.NullString{String: *user.FullName, Valid: true}
	}
	var roleID sql.NullInt64
	if user.RoleID != nil {
		roleID = sql.NullInt64{Int64: *user.RoleID, Valid: true}
	}

	err := executor.QueryRow(query,
		user.Username, user.PasswordHash, email, fullName, roleID, user.IsActive, currentTime, currentTime,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%w: user '%s' (constraint: %s)", ErrDuplicateKey, user.Username, pqErr.Constraint)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *userRepository) GetUserByID(executor SQLExecutor, userID int64) (*models.User, error) {
	user, err := scanUser(executor.QueryRow(userSelect+` WHERE u.id = $1`, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

func (r *userRepository) GetUserByUsername(executor SQLExecutor, username string) (*models.User, error) {
	user, err := scanUser(executor.QueryRow(userSelect+` WHERE u.username = $1`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user '%s': %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

func (r *userRepository) GetUsers(executor SQLExecutor) ([]models.User, error) {
	return r.queryUsers(executor, userSelect+` ORDER BY u.created_at DESC`)
}

func (r *userRepository) GetUsersByRole(executor SQLExecutor, roleName string) ([]models.User, error) {
	return r.queryUsers(executor, userSelect+` WHERE r.name = $1 AND u.is_active = TRUE`, roleName)
}

func (r *userRepository) queryUsers(executor SQLExecutor, query string, args ...interface{}) ([]models.User, error) {
	rows, err := executor.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating users: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) GetRoleByName(executor SQLExecutor, name string) (*models.Role, error) {
	var role models.Role
	var description sql.NullString
	query := `SELECT id, name, description FROM roles WHERE name = $1`
	err := executor.QueryRow(query, name).Scan(&role.ID, &role.Name, &description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting role '%s': %v", ErrDatabaseError, name, err)
	}
	if description.Valid {
		role.Description = &description.String
	}
	return &role, nil
}

func (r *userRepository) SetUserActive(executor SQLExecutor, userID int64, active bool) error {
	result, err := executor.Exec(`UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("%w: updating active flag of user %d: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking active update of user %d: %v", ErrDatabaseError, userID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

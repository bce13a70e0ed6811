package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
)

// CreateUser inserts a user. The password must already be hashed by the
// caller. A duplicate email yields database.ErrEmailTaken.
func CreateUser(ctx context.Context, db *sql.DB, user models.User) (*models.User, error) {
	stored := &models.User{}

	query := `
		INSERT INTO users (id, name, email, password, role, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, name, email, password, role, created_at`

	err := db.QueryRowContext(ctx, query, newID(), user.Name, user.Email, user.Password, user.Role).Scan(
		&stored.ID,
		&stored.Name,
		&stored.Email,
		&stored.Password,
		&stored.Role,
		&stored.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return stored, nil
}

func GetUser(ctx context.Context, db *sql.DB, id string) (*models.User, error) {
	if !validID(id) {
		return nil, database.ErrUserNotFound
	}

	user := &models.User{}

	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE email = $1`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return user, nil
}

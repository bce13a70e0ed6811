package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
)

// CreateCategory inserts a category. A duplicate slug yields
// database.ErrSlugTaken.
func CreateCategory(ctx context.Context, db *sql.DB, category models.Category) (*models.Category, error) {
	stored := &models.Category{}

	query := `
		INSERT INTO categories (id, name, description, slug, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, description, slug, image_url`

	err := db.QueryRowContext(ctx, query, newID(), category.Name, category.Description, category.Slug, category.ImageURL).Scan(
		&stored.ID,
		&stored.Name,
		&stored.Description,
		&stored.Slug,
		&stored.ImageURL,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrSlugTaken
		}
		return nil, fmt.Errorf("create category: %w", err)
	}

	return stored, nil
}

func ListCategories(ctx context.Context, db *sql.DB) ([]models.Category, error) {
	query := `
		SELECT id, name, description, slug, image_url
		FROM categories`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Slug,
			&category.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/lib/pq"
)

// ProductFilter narrows ListProducts. Zero-valued fields are ignored;
// provided fields AND together. Search is a case-insensitive substring
// match against name or description.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
}

const productColumns = `id, name, description, price, category_id, lens_type, material, usage, color, brand, stock, images, slug, is_featured`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.CategoryID,
		&product.LensType,
		&product.Material,
		&product.Usage,
		&product.Color,
		&product.Brand,
		&product.Stock,
		pq.Array(&product.Images),
		&product.Slug,
		&product.IsFeatured,
	)
	if err != nil {
		return nil, err
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	return product, nil
}

func CreateProduct(ctx context.Context, db *sql.DB, product models.Product) (*models.Product, error) {
	query := `
		INSERT INTO products (id, name, description, price, category_id, lens_type, material, usage, color, brand, stock, images, slug, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + productColumns

	row := db.QueryRowContext(ctx, query,
		newID(),
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
		product.LensType,
		product.Material,
		product.Usage,
		product.Color,
		product.Brand,
		product.Stock,
		pq.Array(product.Images),
		product.Slug,
		product.IsFeatured,
	)

	stored, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return stored, nil
}

func GetProduct(ctx context.Context, db *sql.DB, id string) (*models.Product, error) {
	if !validID(id) {
		return nil, database.ErrProductNotFound
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func ListProducts(ctx context.Context, db *sql.DB, filter ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`

	var conditions []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Brand != "" {
		args = append(args, filter.Brand)
		conditions = append(conditions, fmt.Sprintf("brand = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}

// UpdateProduct writes every mutable column of an already-merged
// product. The shallow merge of a partial update onto the existing
// record happens in the caller; the last write wins.
func UpdateProduct(ctx context.Context, db *sql.DB, id string, product models.Product) (*models.Product, error) {
	if !validID(id) {
		return nil, database.ErrProductNotFound
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, category_id = $4,
		    lens_type = $5, material = $6, usage = $7, color = $8, brand = $9,
		    stock = $10, images = $11, slug = $12, is_featured = $13
		WHERE id = $14
		RETURNING ` + productColumns

	row := db.QueryRowContext(ctx, query,
		product.Name,
		product.Description,
		product.Price,
		product.CategoryID,
		product.LensType,
		product.Material,
		product.Usage,
		product.Color,
		product.Brand,
		product.Stock,
		pq.Array(product.Images),
		product.Slug,
		product.IsFeatured,
		id,
	)

	stored, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	return stored, nil
}

// DeleteProduct removes a product if present. Unknown and malformed ids
// are a no-op.
func DeleteProduct(ctx context.Context, db *sql.DB, id string) error {
	if !validID(id) {
		return nil
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	return nil
}

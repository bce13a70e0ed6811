package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/store"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts the bootstrap records on first run: the admin account,
// and a starter category and product when the catalog is empty. Each
// step is gated by an existence check, so re-running is a no-op.
func (a *API) Seed(ctx context.Context) error {
	if err := a.seedAdmin(ctx); err != nil {
		return err
	}
	return a.seedCatalog(ctx)
}

func (a *API) seedAdmin(ctx context.Context) error {
	_, err := a.storage.GetUserByEmail(ctx, a.cfg.Seed.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrUserNotFound) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(a.cfg.Seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	_, err = a.storage.CreateUser(ctx, models.User{
		Name:     "Admin",
		Email:    a.cfg.Seed.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	})
	if err != nil {
		// Another instance seeded the account between the check and the
		// insert; nothing was created here, so nothing to log.
		if errors.Is(err, database.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("seed admin: %w", err)
	}

	a.log.Info().Str("email", a.cfg.Seed.AdminEmail).Msg("seeded admin user")
	return nil
}

const seedCategorySlug = "contact-lenses"

func (a *API) seedCatalog(ctx context.Context) error {
	products, err := a.storage.ListProducts(ctx, store.ProductFilter{})
	if err != nil {
		return fmt.Errorf("check catalog empty: %w", err)
	}
	if len(products) > 0 {
		return nil
	}

	// The category may survive a catalog that was emptied through the
	// API; reuse it rather than tripping over its unique slug.
	category, err := a.seedCategory(ctx)
	if err != nil {
		return err
	}

	_, err = a.storage.CreateProduct(ctx, models.Product{
		Name:        "Acuvue Oasys",
		Description: "Hydraclear Plus technology for all-day comfort.",
		Price:       decimal.NewFromInt(5000),
		CategoryID:  category.ID,
		LensType:    models.LensTypeContact,
		Usage:       models.UsageMonthly,
		Stock:       100,
		Slug:        "acuvue-oasys",
		Images:      []string{"https://images.unsplash.com/photo-1591076482161-42ce6da69f67?w=500&auto=format&fit=crop&q=60&ixlib=rb-4.0.3"},
		IsFeatured:  true,
	})
	if err != nil {
		return fmt.Errorf("seed product: %w", err)
	}

	a.log.Info().Msg("seeded starter catalog")
	return nil
}

func (a *API) seedCategory(ctx context.Context) (*models.Category, error) {
	existing, err := a.findSeedCategory(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	category, err := a.storage.CreateCategory(ctx, models.Category{
		Name:        "Contact Lenses",
		Slug:        seedCategorySlug,
		Description: "Premium contact lenses",
	})
	if errors.Is(err, database.ErrSlugTaken) {
		// Lost a create race; the category is there now.
		existing, err := a.findSeedCategory(ctx)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("seed category: %w", database.ErrSlugTaken)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("seed category: %w", err)
	}
	return category, nil
}

func (a *API) findSeedCategory(ctx context.Context) (*models.Category, error) {
	categories, err := a.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for i := range categories {
		if categories[i].Slug == seedCategorySlug {
			return &categories[i], nil
		}
	}
	return nil, nil
}

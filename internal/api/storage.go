package api

import (
	"context"
	"database/sql"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/store"
)

// Storage is the persistence surface the handlers depend on. Production
// code uses the Postgres-backed implementation; tests substitute a fake.
type Storage interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	CreateCategory(ctx context.Context, category models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateProduct(ctx context.Context, product models.Product) (*models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status, trackingNumber string) (*models.Order, error)
}

type dbStorage struct {
	db *sql.DB
}

// NewStorage wraps a database handle in the Storage interface.
func NewStorage(db *sql.DB) Storage {
	return &dbStorage{db: db}
}

func (s *dbStorage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	return store.CreateUser(ctx, s.db, user)
}

func (s *dbStorage) GetUser(ctx context.Context, id string) (*models.User, error) {
	return store.GetUser(ctx, s.db, id)
}

func (s *dbStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return store.GetUserByEmail(ctx, s.db, email)
}

func (s *dbStorage) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	return store.CreateCategory(ctx, s.db, category)
}

func (s *dbStorage) ListCategories(ctx context.Context) ([]models.Category, error) {
	return store.ListCategories(ctx, s.db)
}

func (s *dbStorage) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	return store.CreateProduct(ctx, s.db, product)
}

func (s *dbStorage) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return store.GetProduct(ctx, s.db, id)
}

func (s *dbStorage) ListProducts(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	return store.ListProducts(ctx, s.db, filter)
}

func (s *dbStorage) UpdateProduct(ctx context.Context, id string, product models.Product) (*models.Product, error) {
	return store.UpdateProduct(ctx, s.db, id, product)
}

func (s *dbStorage) DeleteProduct(ctx context.Context, id string) error {
	return store.DeleteProduct(ctx, s.db, id)
}

func (s *dbStorage) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	return store.CreateOrder(ctx, s.db, order)
}

func (s *dbStorage) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return store.ListOrders(ctx, s.db, userID)
}

func (s *dbStorage) UpdateOrderStatus(ctx context.Context, id, status, trackingNumber string) (*models.Order, error) {
	return store.UpdateOrderStatus(ctx, s.db, id, status, trackingNumber)
}

package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/store"
	"github.com/shopspring/decimal"
)

func newTestOrder(items []models.OrderItem, total decimal.Decimal) models.Order {
	return models.Order{
		Items:           items,
		TotalPrice:      total,
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 High Street, Karachi",
	}
}

func TestCreateOrderDecrementsStock(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	product, err := store.CreateProduct(ctx, db, newTestProduct("Acuvue Oasys", "acuvue-oasys"))
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	order := newTestOrder([]models.OrderItem{
		{ProductID: product.ID, Quantity: 3, Price: product.Price},
	}, product.Price.Mul(decimal.NewFromInt(3)))

	created, err := store.CreateOrder(ctx, db, order)
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Expected generated order id")
	}
	if created.Status != models.OrderStatusPending {
		t.Errorf("Expected status pending, got %q", created.Status)
	}

	after, err := store.GetProduct(ctx, db, product.ID)
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if after.Stock != 7 {
		t.Errorf("Expected stock 7 after ordering 3 of 10, got %d", after.Stock)
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	product, err := store.CreateProduct(ctx, db, newTestProduct("Acuvue Oasys", "acuvue-oasys"))
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	order := newTestOrder([]models.OrderItem{
		{ProductID: product.ID, Quantity: 11, Price: product.Price},
	}, product.Price.Mul(decimal.NewFromInt(11)))

	_, err = store.CreateOrder(ctx, db, order)
	if !errors.Is(err, database.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got: %v", err)
	}

	// The whole transaction rolls back: no order row, no stock change.
	orders, err := store.ListOrders(ctx, db, "")
	if err != nil {
		t.Fatalf("List orders: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders after rollback, got %d", len(orders))
	}

	after, err := store.GetProduct(ctx, db, product.ID)
	if err != nil {
		t.Fatalf("Get product: %v", err)
	}
	if after.Stock != 10 {
		t.Errorf("Expected stock unchanged at 10, got %d", after.Stock)
	}
}

func TestCreateOrderDanglingProductReference(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	order := newTestOrder([]models.OrderItem{
		{ProductID: "00000000-0000-0000-0000-000000000000", Quantity: 2, Price: decimal.NewFromInt(5000)},
	}, decimal.NewFromInt(10000))

	created, err := store.CreateOrder(ctx, db, order)
	if err != nil {
		t.Fatalf("Expected order with dangling product reference to succeed, got: %v", err)
	}

	got, err := store.GetOrder(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("Get order: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(got.Items))
	}
	if got.Items[0].ProductID != "00000000-0000-0000-0000-000000000000" {
		t.Errorf("Expected dangling reference preserved, got %q", got.Items[0].ProductID)
	}
}

func TestOrderPricesNotRederived(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	product, err := store.CreateProduct(ctx, db, newTestProduct("Acuvue Oasys", "acuvue-oasys"))
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	// Item price and total deliberately disagree with the catalog price.
	stale := decimal.NewFromInt(4200)
	order := newTestOrder([]models.OrderItem{
		{ProductID: product.ID, Quantity: 1, Price: stale},
	}, stale)

	created, err := store.CreateOrder(ctx, db, order)
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	got, err := store.GetOrder(ctx, db, created.ID)
	if err != nil {
		t.Fatalf("Get order: %v", err)
	}
	if !got.TotalPrice.Equal(stale) {
		t.Errorf("Expected stored total %s, got %s", stale, got.TotalPrice)
	}
	if !got.Items[0].Price.Equal(stale) {
		t.Errorf("Expected stored item price %s, got %s", stale, got.Items[0].Price)
	}
}

func TestListOrdersNewestFirstAndScoped(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user, err := store.CreateUser(ctx, db, models.User{
		Name: "Jane", Email: "jane@example.com", Password: "hashed", Role: models.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	first := newTestOrder([]models.OrderItem{
		{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(100)},
	}, decimal.NewFromInt(100))
	first.UserID = user.ID
	if _, err := store.CreateOrder(ctx, db, first); err != nil {
		t.Fatalf("Create first order: %v", err)
	}

	second := newTestOrder([]models.OrderItem{
		{ProductID: "p2", Quantity: 1, Price: decimal.NewFromInt(200)},
	}, decimal.NewFromInt(200))
	second.GuestName = "Guest"
	second.GuestEmail = "guest@example.com"
	createdSecond, err := store.CreateOrder(ctx, db, second)
	if err != nil {
		t.Fatalf("Create second order: %v", err)
	}

	all, err := store.ListOrders(ctx, db, "")
	if err != nil {
		t.Fatalf("List all orders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 orders, got %d", len(all))
	}
	if all[0].ID != createdSecond.ID {
		t.Errorf("Expected newest order first, got %q", all[0].ID)
	}

	mine, err := store.ListOrders(ctx, db, user.ID)
	if err != nil {
		t.Fatalf("List user orders: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != user.ID {
		t.Errorf("Expected only the user's order, got %v", mine)
	}
	if len(mine[0].Items) != 1 || mine[0].Items[0].ProductID != "p1" {
		t.Errorf("Expected order items attached, got %v", mine[0].Items)
	}
}

func TestUpdateOrderStatusTracking(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.CreateOrder(ctx, db, newTestOrder([]models.OrderItem{
		{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(100)},
	}, decimal.NewFromInt(100)))
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	shipped, err := store.UpdateOrderStatus(ctx, db, created.ID, models.OrderStatusShipped, "TRK-42")
	if err != nil {
		t.Fatalf("Update order status: %v", err)
	}
	if shipped.Status != models.OrderStatusShipped || shipped.TrackingNumber != "TRK-42" {
		t.Errorf("Expected shipped with tracking, got %+v", shipped)
	}

	// Omitting the tracking number keeps the existing one.
	delivered, err := store.UpdateOrderStatus(ctx, db, created.ID, models.OrderStatusDelivered, "")
	if err != nil {
		t.Fatalf("Update order status: %v", err)
	}
	if delivered.TrackingNumber != "TRK-42" {
		t.Errorf("Expected tracking preserved, got %q", delivered.TrackingNumber)
	}

	_, err = store.UpdateOrderStatus(ctx, db, "00000000-0000-0000-0000-000000000000", models.OrderStatusShipped, "")
	if !errors.Is(err, database.ErrOrderNotFound) {
		t.Errorf("Expected ErrOrderNotFound, got: %v", err)
	}
}

func TestDuplicateUserEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := models.User{Name: "Jane", Email: "jane@example.com", Password: "hashed", Role: models.RoleUser}
	created, err := store.CreateUser(ctx, db, user)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}

	if _, err := store.CreateUser(ctx, db, user); !errors.Is(err, database.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, db, "jane@example.com")
	if err != nil {
		t.Fatalf("Get user by email: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("Expected id %q, got %q", created.ID, byEmail.ID)
	}

	if _, err := store.GetUser(ctx, db, "not-a-uuid"); !errors.Is(err, database.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound for malformed id, got: %v", err)
	}
}

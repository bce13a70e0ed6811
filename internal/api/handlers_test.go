package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/asfandyar/optico-store/internal/config"
	"github.com/asfandyar/optico-store/internal/database"
	"github.com/asfandyar/optico-store/internal/models"
	"github.com/asfandyar/optico-store/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStorage is an in-memory Storage for handler tests.
type fakeStorage struct {
	users      map[string]models.User
	categories map[string]models.Category
	products   map[string]models.Product
	orders     map[string]models.Order
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		users:      map[string]models.User{},
		categories: map[string]models.Category{},
		products:   map[string]models.Product{},
		orders:     map[string]models.Order{},
	}
}

func (f *fakeStorage) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return nil, database.ErrEmailTaken
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return &user, nil
}

func (f *fakeStorage) GetUser(_ context.Context, id string) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, database.ErrUserNotFound
}

func (f *fakeStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, database.ErrUserNotFound
}

func (f *fakeStorage) CreateCategory(_ context.Context, category models.Category) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Slug == category.Slug {
			return nil, database.ErrSlugTaken
		}
	}
	category.ID = uuid.NewString()
	f.categories[category.ID] = category
	return &category, nil
}

func (f *fakeStorage) ListCategories(_ context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStorage) CreateProduct(_ context.Context, product models.Product) (*models.Product, error) {
	product.ID = uuid.NewString()
	f.products[product.ID] = product
	return &product, nil
}

func (f *fakeStorage) GetProduct(_ context.Context, id string) (*models.Product, error) {
	if product, ok := f.products[id]; ok {
		return &product, nil
	}
	return nil, database.ErrProductNotFound
}

func (f *fakeStorage) ListProducts(_ context.Context, filter store.ProductFilter) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if filter.Category != "" && p.CategoryID != filter.Category {
			continue
		}
		if filter.Brand != "" && p.Brand != filter.Brand {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStorage) UpdateProduct(_ context.Context, id string, product models.Product) (*models.Product, error) {
	if _, ok := f.products[id]; !ok {
		return nil, database.ErrProductNotFound
	}
	product.ID = id
	f.products[id] = product
	return &product, nil
}

func (f *fakeStorage) DeleteProduct(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeStorage) CreateOrder(_ context.Context, order models.Order) (*models.Order, error) {
	order.ID = uuid.NewString()
	order.CreatedAt = time.Now()
	f.orders[order.ID] = order
	return &order, nil
}

func (f *fakeStorage) ListOrders(_ context.Context, userID string) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		if userID != "" && o.UserID != userID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStorage) UpdateOrderStatus(_ context.Context, id, status, trackingNumber string) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, database.ErrOrderNotFound
	}
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	f.orders[id] = order
	return &order, nil
}

const testAdminEmail = "admin@asfandyaroptico.com"

func newTestAPI(t *testing.T) (*API, *fakeStorage) {
	t.Helper()

	storage := newFakeStorage()
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Seed: config.SeedConfig{AdminEmail: testAdminEmail, AdminPassword: "admin"},
	}
	return New(storage, cfg, zerolog.Nop()), storage
}

func seedUser(t *testing.T, storage *fakeStorage, email, password, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := storage.CreateUser(context.Background(), models.User{
		Name:     "Test User",
		Email:    email,
		Password: string(hash),
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, handler http.Handler, email, password string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func TestLoginAdminAlias(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin", "password": "admin",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginDoesNotRevealKnownEmails(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, "jane@example.com", "correct-password", models.RoleUser)
	handler := a.Router()

	wrongPassword := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong",
	})
	unknownEmail := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginResponseOmitsPassword(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin", "password": "admin",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, "jane@example.com", "secret123", models.RoleUser)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Jane Again", "email": "jane@example.com", "password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already exists")
}

func TestRegisterNeverGrantsAdmin(t *testing.T) {
	a, _ := newTestAPI(t)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sneaky", "email": "sneaky@example.com", "password": "secret123", "role": "admin",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestCreateProductRequiresAdmin(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, "jane@example.com", "secret123", models.RoleUser)
	handler := a.Router()

	body := map[string]any{
		"name": "Test", "description": "D", "price": 10, "categoryId": "c1", "slug": "test",
	}

	anonymous := doJSON(t, handler, http.MethodPost, "/api/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	userToken := loginToken(t, handler, "jane@example.com", "secret123")
	asUser := doJSON(t, handler, http.MethodPost, "/api/products", userToken, body)
	assert.Equal(t, http.StatusForbidden, asUser.Code)
}

func TestProductLifecycle(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	handler := a.Router()
	token := loginToken(t, handler, "admin", "admin")

	created := doJSON(t, handler, http.MethodPost, "/api/products", token, map[string]any{
		"name": "Test", "description": "D", "price": 10, "categoryId": "c1", "slug": "test",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var product models.Product
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &product))
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, []string{}, product.Images)
	assert.False(t, product.IsFeatured)

	got := doJSON(t, handler, http.MethodGet, "/api/products/"+product.ID, "", nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, created.Body.String(), got.Body.String())

	deleted := doJSON(t, handler, http.MethodDelete, "/api/products/"+product.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	gone := doJSON(t, handler, http.MethodGet, "/api/products/"+product.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestCreateProductValidation(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	handler := a.Router()
	token := loginToken(t, handler, "admin", "admin")

	rec := doJSON(t, handler, http.MethodPost, "/api/products", token, map[string]any{
		"description": "D", "price": 10, "categoryId": "c1", "slug": "test",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
}

func TestUpdateProductPartial(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	created, err := storage.CreateProduct(context.Background(), models.Product{
		Name: "Old", Description: "D", Price: decimal.NewFromInt(10),
		CategoryID: "c1", Slug: "old", Stock: 4, Images: []string{},
	})
	require.NoError(t, err)

	handler := a.Router()
	token := loginToken(t, handler, "admin", "admin")

	rec := doJSON(t, handler, http.MethodPut, "/api/products/"+created.ID, token, map[string]any{
		"name": "New",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "D", updated.Description)
	assert.Equal(t, 4, updated.Stock)
}

func TestUpdateProductUnknownID(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	handler := a.Router()
	token := loginToken(t, handler, "admin", "admin")

	rec := doJSON(t, handler, http.MethodPut, "/api/products/"+uuid.NewString(), token, map[string]any{
		"name": "New",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	a, _ := newTestAPI(t)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"items":           []any{},
		"totalPrice":      0,
		"deliveryAddress": "12 High St",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least one item")
}

func TestGuestOrder(t *testing.T) {
	a, _ := newTestAPI(t)
	handler := a.Router()

	rec := doJSON(t, handler, http.MethodPost, "/api/orders", "", map[string]any{
		"guestName":  "Guest",
		"guestEmail": "guest@example.com",
		"items": []map[string]any{
			{"productId": "p1", "quantity": 2, "price": 5},
		},
		"totalPrice":      10,
		"deliveryAddress": "12 High St",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Empty(t, order.UserID)
	assert.Equal(t, "Guest", order.GuestName)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestListOrdersScopedByRole(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	user := seedUser(t, storage, "jane@example.com", "secret123", models.RoleUser)

	mine := models.Order{
		UserID:          user.ID,
		Items:           []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(5)}},
		TotalPrice:      decimal.NewFromInt(5),
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 High St",
	}
	theirs := mine
	theirs.UserID = uuid.NewString()
	_, err := storage.CreateOrder(context.Background(), mine)
	require.NoError(t, err)
	_, err = storage.CreateOrder(context.Background(), theirs)
	require.NoError(t, err)

	handler := a.Router()

	anonymous := doJSON(t, handler, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	userToken := loginToken(t, handler, "jane@example.com", "secret123")
	asUser := doJSON(t, handler, http.MethodGet, "/api/orders", userToken, nil)
	require.Equal(t, http.StatusOK, asUser.Code)
	var userOrders []models.Order
	require.NoError(t, json.Unmarshal(asUser.Body.Bytes(), &userOrders))
	require.Len(t, userOrders, 1)
	assert.Equal(t, user.ID, userOrders[0].UserID)

	adminToken := loginToken(t, handler, "admin", "admin")
	asAdmin := doJSON(t, handler, http.MethodGet, "/api/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, asAdmin.Code)
	var allOrders []models.Order
	require.NoError(t, json.Unmarshal(asAdmin.Body.Bytes(), &allOrders))
	assert.Len(t, allOrders, 2)
}

func TestUpdateOrderStatus(t *testing.T) {
	a, storage := newTestAPI(t)
	seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)
	order, err := storage.CreateOrder(context.Background(), models.Order{
		Items:           []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(5)}},
		TotalPrice:      decimal.NewFromInt(5),
		Status:          models.OrderStatusPending,
		DeliveryAddress: "12 High St",
	})
	require.NoError(t, err)

	handler := a.Router()
	token := loginToken(t, handler, "admin", "admin")

	rec := doJSON(t, handler, http.MethodPatch, "/api/orders/"+order.ID+"/status", token, map[string]string{
		"status": models.OrderStatusShipped, "trackingNumber": "TRK-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, "TRK-1", updated.TrackingNumber)

	missing := doJSON(t, handler, http.MethodPatch, "/api/orders/"+uuid.NewString()+"/status", token, map[string]string{
		"status": models.OrderStatusShipped,
	})
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestSeedSurvivesEmptiedCatalog(t *testing.T) {
	a, storage := newTestAPI(t)
	ctx := context.Background()

	require.NoError(t, a.Seed(ctx))

	products, err := storage.ListProducts(ctx, store.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)

	// An admin removing every product leaves the seed category behind;
	// the next boot must reuse it instead of failing on its slug.
	for _, p := range products {
		require.NoError(t, storage.DeleteProduct(ctx, p.ID))
	}

	require.NoError(t, a.Seed(ctx))

	categories, err := storage.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)

	reseeded, err := storage.ListProducts(ctx, store.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, reseeded, 1)
	assert.Equal(t, categories[0].ID, reseeded[0].CategoryID)
}

func TestSeedLogsAdminCreationOnce(t *testing.T) {
	storage := newFakeStorage()
	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
		Seed: config.SeedConfig{AdminEmail: testAdminEmail, AdminPassword: "admin"},
	}
	var buf bytes.Buffer
	a := New(storage, cfg, zerolog.New(&buf))

	ctx := context.Background()
	require.NoError(t, a.Seed(ctx))
	require.NoError(t, a.Seed(ctx))

	assert.Equal(t, 1, strings.Count(buf.String(), "seeded admin user"))
}

func TestExpiredTokenRejected(t *testing.T) {
	a, storage := newTestAPI(t)
	a.cfg.Auth.TokenTTL = -time.Minute
	admin := seedUser(t, storage, testAdminEmail, "admin", models.RoleAdmin)

	token, err := a.issueToken(admin)
	require.NoError(t, err)

	rec := doJSON(t, a.Router(), http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

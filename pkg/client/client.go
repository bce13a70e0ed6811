// Package client is a typed client for the storefront API. List
// responses are cached in-process and invalidated by the corresponding
// mutations, mirroring the query behavior of the web storefront.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/asfandyar/optico-store/internal/models"
)

// ErrNotFound is returned when a looked-up entity does not exist.
var ErrNotFound = errors.New("not found")

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	token string
	cache map[string][]byte
}

type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken attaches a bearer token to subsequent requests. The cache is
// dropped: cached lists may belong to the previous identity.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.cache = make(map[string][]byte)
	c.mu.Unlock()
}

// Token returns the bearer token currently attached to requests.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ProductFilter narrows the product listing; zero-valued fields are
// omitted from the query string.
type ProductFilter struct {
	Category string
	Search   string
	Brand    string
}

func (f ProductFilter) query() string {
	params := url.Values{}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Brand != "" {
		params.Set("brand", f.Brand)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// LoginResponse is the payload returned by the login endpoint.
type LoginResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var resp LoginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, errors.New("Failed to log in")
	}
	c.SetToken(resp.Token)
	return &resp.User, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &user); err != nil {
		return nil, errors.New("Failed to register")
	}
	return &user, nil
}

func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := c.getCached(ctx, "/api/products"+filter.query(), &products); err != nil {
		return nil, errors.New("Failed to fetch products")
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.New("Failed to fetch product")
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", product, &created); err != nil {
		return nil, errors.New("Failed to create product")
	}
	c.invalidate("/api/products")
	return &created, nil
}

// UpdateProduct sends a partial update; only the fields present in the
// patch are touched.
func (c *Client) UpdateProduct(ctx context.Context, id string, patch map[string]any) (*models.Product, error) {
	var updated models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), patch, &updated); err != nil {
		return nil, errors.New("Failed to update product")
	}
	c.invalidate("/api/products")
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil); err != nil {
		return errors.New("Failed to delete product")
	}
	c.invalidate("/api/products")
	return nil
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.getCached(ctx, "/api/categories", &categories); err != nil {
		return nil, errors.New("Failed to fetch categories")
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	var created models.Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", category, &created); err != nil {
		return nil, errors.New("Failed to create category")
	}
	c.invalidate("/api/categories")
	return &created, nil
}

func (c *Client) CreateOrder(ctx context.Context, order models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, errors.New("Failed to place order")
	}
	c.invalidate("/api/orders")
	return &created, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.getCached(ctx, "/api/orders", &orders); err != nil {
		return nil, errors.New("Failed to fetch orders")
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status, trackingNumber string) (*models.Order, error) {
	var updated models.Order
	body := map[string]string{"status": status}
	if trackingNumber != "" {
		body["trackingNumber"] = trackingNumber
	}
	path := "/api/orders/" + url.PathEscape(id) + "/status"
	if err := c.do(ctx, http.MethodPatch, path, body, &updated); err != nil {
		return nil, errors.New("Failed to update order")
	}
	c.invalidate("/api/orders")
	return &updated, nil
}

// getCached serves a list request from the cache when possible and
// stores the response body on a miss.
func (c *Client) getCached(ctx context.Context, path string, v any) error {
	c.mu.Lock()
	cached, ok := c.cache[path]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(cached, v)
	}

	raw, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cache[path] = raw
	c.mu.Unlock()

	return json.Unmarshal(raw, v)
}

// invalidate drops every cached list whose key starts with prefix, so
// the next read observes the mutation.
func (c *Client) invalidate(prefix string) {
	c.mu.Lock()
	for key := range c.cache {
		if strings.HasPrefix(key, prefix) {
			delete(c.cache, key)
		}
	}
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, v any) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if v == nil || len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

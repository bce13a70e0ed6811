// Package schema validates inbound API payloads. Each input type has a
// Validate method that applies defaults and reports the first violated
// constraint in field declaration order. No cross-field or referential
// checks happen here; categoryId and productId are taken as opaque
// references.
package schema

import (
	"net/mail"

	"github.com/asfandyar/optico-store/internal/models"
	"github.com/shopspring/decimal"
)

// FieldError describes a single violated constraint.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

func fieldErr(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func oneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (in *UserInput) Validate() *FieldError {
	if in.Name == "" {
		return fieldErr("name", "Name is required")
	}
	if !validEmail(in.Email) {
		return fieldErr("email", "Invalid email address")
	}
	if len(in.Password) < 6 {
		return fieldErr("password", "Password must be at least 6 characters")
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !oneOf(in.Role, models.RoleUser, models.RoleAdmin) {
		return fieldErr("role", "Invalid role")
	}
	return nil
}

// LoginInput deliberately skips email-format validation: the literal
// login name "admin" is accepted and rewritten to the canonical admin
// email by the API layer.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *LoginInput) Validate() *FieldError {
	if in.Email == "" {
		return fieldErr("email", "Email is required")
	}
	if in.Password == "" {
		return fieldErr("password", "Password is required")
	}
	return nil
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"imageUrl"`
}

func (in *CategoryInput) Validate() *FieldError {
	if in.Name == "" {
		return fieldErr("name", "Name is required")
	}
	if in.Slug == "" {
		return fieldErr("slug", "Slug is required")
	}
	return nil
}

func (in *CategoryInput) Model() models.Category {
	return models.Category{
		Name:        in.Name,
		Description: in.Description,
		Slug:        in.Slug,
		ImageURL:    in.ImageURL,
	}
}

type ProductInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  string           `json:"categoryId"`
	LensType    string           `json:"lensType"`
	Material    string           `json:"material"`
	Usage       string           `json:"usage"`
	Color       string           `json:"color"`
	Brand       string           `json:"brand"`
	Stock       *int             `json:"stock"`
	Images      []string         `json:"images"`
	Slug        string           `json:"slug"`
	IsFeatured  *bool            `json:"isFeatured"`
}

func (in *ProductInput) Validate() *FieldError {
	if in.Name == "" {
		return fieldErr("name", "Name is required")
	}
	if in.Description == "" {
		return fieldErr("description", "Description is required")
	}
	if in.Price == nil {
		return fieldErr("price", "Price is required")
	}
	if in.Price.IsNegative() {
		return fieldErr("price", "Price must be positive")
	}
	if in.CategoryID == "" {
		return fieldErr("categoryId", "Category is required")
	}
	if in.LensType != "" && !oneOf(in.LensType, models.LensTypeContact, models.LensTypeSpectacle) {
		return fieldErr("lensType", "Invalid lens type")
	}
	if in.Material != "" && !oneOf(in.Material, models.MaterialSoft, models.MaterialHard) {
		return fieldErr("material", "Invalid material")
	}
	if in.Usage != "" && !oneOf(in.Usage, models.UsageDaily, models.UsageMonthly, models.UsageYearly) {
		return fieldErr("usage", "Invalid usage")
	}
	if in.Stock == nil {
		in.Stock = new(int)
	}
	if *in.Stock < 0 {
		return fieldErr("stock", "Stock must not be negative")
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.Slug == "" {
		return fieldErr("slug", "Slug is required")
	}
	if in.IsFeatured == nil {
		in.IsFeatured = new(bool)
	}
	return nil
}

// Model converts a validated input into a Product. Call Validate first.
func (in *ProductInput) Model() models.Product {
	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		CategoryID:  in.CategoryID,
		LensType:    in.LensType,
		Material:    in.Material,
		Usage:       in.Usage,
		Color:       in.Color,
		Brand:       in.Brand,
		Stock:       *in.Stock,
		Images:      in.Images,
		Slug:        in.Slug,
		IsFeatured:  *in.IsFeatured,
	}
}

// ProductPatch is the partial-update variant: any subset of fields may
// be present, and only present fields are checked and applied.
type ProductPatch struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"categoryId"`
	LensType    *string          `json:"lensType"`
	Material    *string          `json:"material"`
	Usage       *string          `json:"usage"`
	Color       *string          `json:"color"`
	Brand       *string          `json:"brand"`
	Stock       *int             `json:"stock"`
	Images      []string         `json:"images"`
	Slug        *string          `json:"slug"`
	IsFeatured  *bool            `json:"isFeatured"`
}

func (p *ProductPatch) Validate() *FieldError {
	if p.Name != nil && *p.Name == "" {
		return fieldErr("name", "Name is required")
	}
	if p.Description != nil && *p.Description == "" {
		return fieldErr("description", "Description is required")
	}
	if p.Price != nil && p.Price.IsNegative() {
		return fieldErr("price", "Price must be positive")
	}
	if p.CategoryID != nil && *p.CategoryID == "" {
		return fieldErr("categoryId", "Category is required")
	}
	if p.LensType != nil && *p.LensType != "" && !oneOf(*p.LensType, models.LensTypeContact, models.LensTypeSpectacle) {
		return fieldErr("lensType", "Invalid lens type")
	}
	if p.Material != nil && *p.Material != "" && !oneOf(*p.Material, models.MaterialSoft, models.MaterialHard) {
		return fieldErr("material", "Invalid material")
	}
	if p.Usage != nil && *p.Usage != "" && !oneOf(*p.Usage, models.UsageDaily, models.UsageMonthly, models.UsageYearly) {
		return fieldErr("usage", "Invalid usage")
	}
	if p.Stock != nil && *p.Stock < 0 {
		return fieldErr("stock", "Stock must not be negative")
	}
	if p.Slug != nil && *p.Slug == "" {
		return fieldErr("slug", "Slug is required")
	}
	return nil
}

// Apply performs the shallow field merge onto an existing product.
func (p *ProductPatch) Apply(product *models.Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.LensType != nil {
		product.LensType = *p.LensType
	}
	if p.Material != nil {
		product.Material = *p.Material
	}
	if p.Usage != nil {
		product.Usage = *p.Usage
	}
	if p.Color != nil {
		product.Color = *p.Color
	}
	if p.Brand != nil {
		product.Brand = *p.Brand
	}
	if p.Stock != nil {
		product.Stock = *p.Stock
	}
	if p.Images != nil {
		product.Images = p.Images
	}
	if p.Slug != nil {
		product.Slug = *p.Slug
	}
	if p.IsFeatured != nil {
		product.IsFeatured = *p.IsFeatured
	}
}

type OrderItemInput struct {
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price"`
}

type OrderInput struct {
	UserID          string           `json:"userId"`
	GuestName       string           `json:"guestName"`
	GuestEmail      string           `json:"guestEmail"`
	Items           []OrderItemInput `json:"items"`
	TotalPrice      *decimal.Decimal `json:"totalPrice"`
	Status          string           `json:"status"`
	DeliveryAddress string           `json:"deliveryAddress"`
	TrackingNumber  string           `json:"trackingNumber"`
}

func (in *OrderInput) Validate() *FieldError {
	if in.GuestEmail != "" && !validEmail(in.GuestEmail) {
		return fieldErr("guestEmail", "Invalid email address")
	}
	if len(in.Items) == 0 {
		return fieldErr("items", "Order must have at least one item")
	}
	for _, item := range in.Items {
		if item.ProductID == "" {
			return fieldErr("items", "Product is required")
		}
		if item.Quantity < 1 {
			return fieldErr("items", "Quantity must be at least 1")
		}
		if item.Price == nil {
			return fieldErr("items", "Price is required")
		}
	}
	if in.TotalPrice == nil {
		return fieldErr("totalPrice", "Total price is required")
	}
	if in.TotalPrice.IsNegative() {
		return fieldErr("totalPrice", "Total price must be positive")
	}
	if in.Status == "" {
		in.Status = models.OrderStatusPending
	}
	if !oneOf(in.Status, models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled) {
		return fieldErr("status", "Invalid status")
	}
	if in.DeliveryAddress == "" {
		return fieldErr("deliveryAddress", "Address is required")
	}
	return nil
}

func (in *OrderInput) Model() models.Order {
	items := make([]models.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     *item.Price,
		})
	}
	return models.Order{
		UserID:          in.UserID,
		GuestName:       in.GuestName,
		GuestEmail:      in.GuestEmail,
		Items:           items,
		TotalPrice:      *in.TotalPrice,
		Status:          in.Status,
		DeliveryAddress: in.DeliveryAddress,
		TrackingNumber:  in.TrackingNumber,
	}
}

type OrderStatusInput struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

func (in *OrderStatusInput) Validate() *FieldError {
	if !oneOf(in.Status, models.OrderStatusPending, models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled) {
		return fieldErr("status", "Invalid status")
	}
	return nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices serialize as JSON numbers, matching the wire format the
	// storefront clients expect.
	decimal.MarshalJSONWithoutQuotes = true
}

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  string          `json:"categoryId"`
	LensType    string          `json:"lensType,omitempty"`
	Material    string          `json:"material,omitempty"`
	Usage       string          `json:"usage,omitempty"`
	Color       string          `json:"color,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Slug        string          `json:"slug"`
	IsFeatured  bool            `json:"isFeatured"`
}

type Order struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId,omitempty"`
	GuestName       string          `json:"guestName,omitempty"`
	GuestEmail      string          `json:"guestEmail,omitempty"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          string          `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type OrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

const (
	LensTypeContact   = "Contact"
	LensTypeSpectacle = "Spectacle"
)

const (
	MaterialSoft = "Soft"
	MaterialHard = "Hard"
)

const (
	UsageDaily   = "Daily"
	UsageMonthly = "Monthly"
	UsageYearly  = "Yearly"
)

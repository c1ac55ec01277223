package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- Auth ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Authenticated bool `json:"authenticated"`
	IsAdmin       bool `json:"isAdmin"`
}

// --- Product ---

type SaveProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock" binding:"min=0"`
}

type ProductResponse struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type CreateProductResponse struct {
	ID uuid.UUID `json:"id"`
}

// --- Order ---

type CartLineRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Cart []CartLineRequest `json:"cart" binding:"dive"`
}

type CreateOrderResponse struct {
	Success bool            `json:"success"`
	OrderID uuid.UUID       `json:"orderId"`
	Total   decimal.Decimal `json:"total"`
}

// AdminOrderResponse mirrors the order review screen: one row per order with
// a pre-joined, snapshot-based items summary ("Chips x2, Cola x1").
type AdminOrderResponse struct {
	ID         uuid.UUID       `json:"id"`
	Username   string          `json:"username"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      string          `json:"items"`
}

// --- Users ---

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"is_admin"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

type Product struct {
	ID        uuid.UUID
	Name      string
	Price     decimal.Decimal
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine is one requested line of a checkout. Carts are client-held and
// never persisted; every line is untrusted input.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

type Order struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TotalPrice decimal.Decimal
	Items      []OrderItem
	CreatedAt  time.Time
}

// OrderItem carries name and unit-price snapshots taken at checkout so that
// renaming, repricing, or deleting a product never changes order history.
// ProductID goes null when the referenced product is deleted.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Position    int
	ProductID   uuid.NullUUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// OrderSummary is the admin read model for one order: the owner's username
// (empty if the account was deleted since) plus the snapshotted items.
type OrderSummary struct {
	ID         uuid.UUID
	Username   string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	Items      []OrderItem
}

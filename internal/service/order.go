package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snackshop/snackshop-api/internal/model"
	"github.com/snackshop/snackshop-api/internal/repository"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrForbidden       = errors.New("admin only")
)

// InsufficientStockError names the offending product and carries the stock
// level observed under the row lock.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: %d available, %d requested", e.Name, e.Available, e.Requested)
}

type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, productRepo: productRepo}
}

// PlaceOrder turns a requested cart into a persisted order. The whole call
// runs in one transaction: every product row is locked before its stock is
// checked, the conditional decrement is the only stock mutation, and any
// failure rolls everything back, so a rejected cart leaves no trace.
//
// Duplicate product ids are processed as independent lines. Later lines see
// the transaction's own decrements, so the stock check is cumulative.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, lines []model.CartLine) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &model.Order{UserID: userID}
	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	total := decimal.Zero
	for i, line := range lines {
		product, err := s.productRepo.GetForUpdate(ctx, tx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("read product: %w", err)
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, ErrProductNotFound)
		}
		if product.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				ProductID: product.ID,
				Name:      product.Name,
				Available: product.Stock,
				Requested: line.Quantity,
			}
		}

		if err := s.productRepo.DecrementStock(ctx, tx, product.ID, line.Quantity); err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}

		item := model.OrderItem{
			OrderID:     order.ID,
			Position:    i,
			ProductID:   uuid.NullUUID{UUID: product.ID, Valid: true},
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		}
		if err := s.orderRepo.CreateItem(ctx, tx, &item); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		order.Items = append(order.Items, item)
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if err := s.orderRepo.SetTotal(ctx, tx, order.ID, total); err != nil {
		return nil, fmt.Errorf("set order total: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	order.TotalPrice = total
	return order, nil
}

// ListOrders returns all orders newest first for an admin caller. The items
// summary is built from the snapshot fields only, so order history stays
// stable against later catalog edits.
func (s *OrderService) ListOrders(ctx context.Context, callerIsAdmin bool) ([]model.OrderSummary, error) {
	if !callerIsAdmin {
		return nil, ErrForbidden
	}
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// SummarizeItems renders snapshotted line items as "Chips x2, Cola x1".
func SummarizeItems(items []model.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s x%d", item.ProductName, item.Quantity))
	}
	return strings.Join(parts, ", ")
}

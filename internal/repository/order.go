package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/snackshop/snackshop-api/internal/model"
)

type OrderRepository interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	// Create inserts the order with a zero total placeholder; the total is
	// set exactly once via SetTotal after all items are written.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error
	CreateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error
	SetTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, total decimal.Decimal) error
	// ListAll returns every order, newest first, with snapshotted items and
	// the owner's username (empty when the account has been deleted).
	ListAll(ctx context.Context) ([]model.OrderSummary, error)
}

type pgOrderRepo struct{ pool *pgxpool.Pool }

func NewOrderRepository(pool *pgxpool.Pool) OrderRepository {
	return &pgOrderRepo{pool: pool}
}

func (r *pgOrderRepo) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *pgOrderRepo) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	order.ID = uuid.New()
	err := tx.QueryRow(ctx,
		`INSERT INTO orders (id, user_id, total_price, created_at)
		 VALUES ($1, $2, 0, NOW()) RETURNING created_at`,
		order.ID, order.UserID,
	).Scan(&order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) CreateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	item.ID = uuid.New()
	_, err := tx.Exec(ctx,
		`INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.OrderID, item.Position, item.ProductID, item.ProductName, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) SetTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, total decimal.Decimal) error {
	_, err := tx.Exec(ctx,
		`UPDATE orders SET total_price = $2 WHERE id = $1`, orderID, total,
	)
	if err != nil {
		return fmt.Errorf("set order total: %w", err)
	}
	return nil
}

func (r *pgOrderRepo) ListAll(ctx context.Context) ([]model.OrderSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, COALESCE(u.username, ''), o.total_price, o.created_at
		 FROM orders o
		 LEFT JOIN users u ON o.user_id = u.id
		 ORDER BY o.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.OrderSummary
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var o model.OrderSummary
		if err := rows.Scan(&o.ID, &o.Username, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT id, order_id, position, product_id, product_name, quantity, price
		 FROM order_items ORDER BY order_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.OrderItem
		if err := itemRows.Scan(
			&item.ID, &item.OrderID, &item.Position, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return orders, nil
}

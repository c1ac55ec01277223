package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snackshop/snackshop-api/internal/model"
)

func TestUserRepo_CreateAndGetByUsername(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hashed"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	found, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user.ID, found.ID)
	assert.False(t, found.IsAdmin)

	missing, err := repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepo_ListAndDelete(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "users")

	repo := NewUserRepository(testPool)
	ctx := context.Background()

	admin := &model.User{Username: "admin", PasswordHash: "h", IsAdmin: true}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, &model.User{Username: "bob", PasswordHash: "h"}))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Username)

	require.NoError(t, repo.Delete(ctx, admin.ID))
	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestProductRepo_CRUD(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := &model.Product{Name: "Chips", Price: decimal.NewFromInt(500), Stock: 3}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chips", found.Name)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(500)))

	product.Name = "Mega Chips"
	product.Stock = 10
	require.NoError(t, repo.Update(ctx, product))

	found, _ = repo.GetByID(ctx, product.ID)
	assert.Equal(t, "Mega Chips", found.Name)
	assert.Equal(t, 10, found.Stock)

	require.NoError(t, repo.Delete(ctx, product.ID))
	found, _ = repo.GetByID(ctx, product.ID)
	assert.Nil(t, found)
}

func TestProductRepo_DecrementStock_RefusesOverdraft(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products")

	repo := NewProductRepository(testPool)
	ctx := context.Background()

	product := &model.Product{Name: "Chips", Price: decimal.NewFromInt(500), Stock: 3}
	require.NoError(t, repo.Create(ctx, product))

	tx, err := testPool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	require.NoError(t, repo.DecrementStock(ctx, tx, product.ID, 2))
	err = repo.DecrementStock(ctx, tx, product.ID, 2)
	require.Error(t, err)
	require.NoError(t, tx.Rollback(ctx))

	found, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Stock)
}

func TestOrderRepo_CreateSetTotalAndListAll(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, userRepo.Create(ctx, user))

	product := &model.Product{Name: "Chips", Price: decimal.NewFromInt(500), Stock: 3}
	require.NoError(t, productRepo.Create(ctx, product))

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	order := &model.Order{UserID: user.ID}
	require.NoError(t, orderRepo.Create(ctx, tx, order))

	item := &model.OrderItem{
		OrderID:     order.ID,
		Position:    0,
		ProductID:   uuid.NullUUID{UUID: product.ID, Valid: true},
		ProductName: product.Name,
		Quantity:    2,
		Price:       product.Price,
	}
	require.NoError(t, orderRepo.CreateItem(ctx, tx, item))
	require.NoError(t, orderRepo.SetTotal(ctx, tx, order.ID, decimal.NewFromInt(1000)))
	require.NoError(t, tx.Commit(ctx))

	orders, err := orderRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "alice", orders[0].Username)
	assert.True(t, orders[0].TotalPrice.Equal(decimal.NewFromInt(1000)))
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Chips", orders[0].Items[0].ProductName)
}

func TestOrderRepo_SnapshotsOutliveProductAndUser(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	userRepo := NewUserRepository(testPool)
	productRepo := NewProductRepository(testPool)
	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, userRepo.Create(ctx, user))
	product := &model.Product{Name: "Chips", Price: decimal.NewFromInt(500), Stock: 3}
	require.NoError(t, productRepo.Create(ctx, product))

	tx, err := orderRepo.BeginTx(ctx)
	require.NoError(t, err)
	order := &model.Order{UserID: user.ID}
	require.NoError(t, orderRepo.Create(ctx, tx, order))
	require.NoError(t, orderRepo.CreateItem(ctx, tx, &model.OrderItem{
		OrderID:     order.ID,
		ProductID:   uuid.NullUUID{UUID: product.ID, Valid: true},
		ProductName: "Chips",
		Quantity:    2,
		Price:       decimal.NewFromInt(500),
	}))
	require.NoError(t, orderRepo.SetTotal(ctx, tx, order.ID, decimal.NewFromInt(1000)))
	require.NoError(t, tx.Commit(ctx))

	// Deleting the product nulls the reference; deleting the user orphans
	// the order; neither touches the snapshots.
	require.NoError(t, productRepo.Delete(ctx, product.ID))
	require.NoError(t, userRepo.Delete(ctx, user.ID))

	orders, err := orderRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "", orders[0].Username)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Chips", orders[0].Items[0].ProductName)
	assert.False(t, orders[0].Items[0].ProductID.Valid)
	assert.True(t, orders[0].Items[0].Price.Equal(decimal.NewFromInt(500)))
}

func TestOrderRepo_ListAll_NewestFirst(t *testing.T) {
	cleanupTables(t, "order_items", "orders", "products", "users")

	userRepo := NewUserRepository(testPool)
	orderRepo := NewOrderRepository(testPool)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "h"}
	require.NoError(t, userRepo.Create(ctx, user))

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		order := &model.Order{UserID: user.ID}
		require.NoError(t, orderRepo.Create(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))
		ids = append(ids, order.ID)
	}

	orders, err := orderRepo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
}

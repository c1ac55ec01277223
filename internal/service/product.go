package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/snackshop/snackshop-api/internal/model"
	"github.com/snackshop/snackshop-api/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("price must be a non-negative whole amount")
	ErrInvalidStock    = errors.New("stock must be non-negative")
)

type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Prices are whole amounts in the minor currency unit; fractions are
// rejected rather than rounded.
func validateProduct(price decimal.Decimal, stock int) error {
	if price.IsNegative() || !price.IsInteger() {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, name string, price decimal.Decimal, stock int) (*model.Product, error) {
	if err := validateProduct(price, stock); err != nil {
		return nil, err
	}
	product := &model.Product{Name: name, Price: price, Stock: stock}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Update overwrites name, price, and stock with admin-supplied absolute
// values. Stock set here is the only stock mutation besides checkout.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, name string, price decimal.Decimal, stock int) (*model.Product, error) {
	if err := validateProduct(price, stock); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	product.Name = name
	product.Price = price
	product.Stock = stock
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

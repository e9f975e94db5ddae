package repository

import (
	"context"

	"product-catalog/internal/domain"
)

// ProductRepository exposes persistence operations for catalog products.
type ProductRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, product *domain.Product) (int64, error)
	Update(ctx context.Context, product *domain.Product) error
	SetImageKey(ctx context.Context, id int64, key string) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
}

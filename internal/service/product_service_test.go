package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*domain.Product), nextID: 1}
}

func (r *fakeProductRepo) Init(ctx context.Context) error { return nil }

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (int64, error) {
	product.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	stored := *product
	r.products[product.ID] = &stored
	return product.ID, nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("update product: %w", repository.ErrNotFound)
	}
	product.UpdatedAt = time.Now().UTC()
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *fakeProductRepo) SetImageKey(ctx context.Context, id int64, key string) error {
	product, ok := r.products[id]
	if !ok {
		return fmt.Errorf("set product image key: %w", repository.ErrNotFound)
	}
	product.ImageKey = key
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("delete product: %w", repository.ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	for id := int64(1); id < r.nextID; id++ {
		if product, ok := r.products[id]; ok {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func TestCreateProduct(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	product, err := svc.Create(context.Background(), ProductInput{
		Name:        "Keyboard",
		Price:       49.90,
		Category:    "Accessories",
		Description: "Mechanical",
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Keyboard", product.Name)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	tests := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Price: 10, Category: "X"}},
		{"missing category", ProductInput{Name: "A", Price: 10}},
		{"zero price", ProductInput{Name: "A", Price: 0, Category: "X"}},
		{"negative price", ProductInput{Name: "A", Price: -5, Category: "X"}},
		{"whitespace-only name", ProductInput{Name: "   ", Price: 10, Category: "X"}},
		{"whitespace-only category", ProductInput{Name: "A", Price: 10, Category: " "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	product, err := svc.Create(context.Background(), ProductInput{Name: "Keyboard", Price: 49.90, Category: "Accessories"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), product.ID, ProductInput{Name: "Keyboard v2", Price: 59.90, Category: "Accessories"})
	require.NoError(t, err)
	assert.Equal(t, "Keyboard v2", updated.Name)
	assert.Equal(t, 59.90, updated.Price)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())

	_, err := svc.Update(context.Background(), 99, ProductInput{Name: "X", Price: 1, Category: "Y"})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	product, err := svc.Create(context.Background(), ProductInput{Name: "Keyboard", Price: 49.90, Category: "Accessories"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), product.ID), ErrProductNotFound)
}

func TestSeed(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)

	require.NoError(t, svc.Seed(context.Background()))
	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Sample Product", products[0].Name)

	// second seed is a no-op on a non-empty catalog
	require.NoError(t, svc.Seed(context.Background()))
	products, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

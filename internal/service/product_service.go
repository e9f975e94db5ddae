package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

// ErrProductNotFound is returned when a catalog entry does not exist.
var ErrProductNotFound = errors.New("product not found")

// ProductInput carries the mutable fields of a catalog entry.
type ProductInput struct {
	Name        string
	Price       float64
	Category    string
	Description string
}

// ProductService coordinates catalog operations backed by the product repository.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	SetImage(ctx context.Context, id int64, key string) error
	Seed(ctx context.Context) error
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func validateInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	if input.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	return nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
	}
	if _, err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id int64, input ProductInput) (*domain.Product, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Category = input.Category
	product.Description = input.Description

	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) SetImage(ctx context.Context, id int64, key string) error {
	if err := s.products.SetImageKey(ctx, id, key); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// Seed inserts a sample product when the catalog is empty so a fresh install
// has something to render.
func (s *productService) Seed(ctx context.Context) error {
	count, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = s.products.Create(ctx, &domain.Product{
		Name:        "Sample Product",
		Price:       19.99,
		Category:    "Sample",
		Description: "This is a sample product.",
	})
	return err
}

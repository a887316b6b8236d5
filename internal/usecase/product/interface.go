package product

import (
	"context"

	"storefront-api/internal/domain/page"
	domain "storefront-api/internal/domain/product"
)

// Repository defines the interface for product data access operations.
// GetByID returns (nil, nil) when no row exists; only infrastructural
// failures surface as errors.
type Repository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, name *string, req page.Request) ([]domain.Product, int64, error)
}

// Usecase defines the interface for product business logic operations.
type Usecase interface {
	ListProducts(ctx context.Context, in ListProductsRequest) (*page.Page[Product], error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, in CreateProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, in UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

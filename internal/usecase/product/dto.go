package product

// CreateProductRequest represents the request payload for creating a new
// product. Quantity defaults to zero when omitted.
type CreateProductRequest struct {
	Name        string  `validate:"required"`
	Description string  `validate:"omitempty"`
	Price       float64 `validate:"required,gt=0"`
	Quantity    int     `validate:"gte=0"`
	Category    string  `validate:"omitempty"`
}

// UpdateProductRequest represents the request payload for updating an
// existing product. Updates replace all mutable fields; this is not a
// partial patch.
type UpdateProductRequest struct {
	Name        string  `validate:"required"`
	Description string  `validate:"omitempty"`
	Price       float64 `validate:"required,gt=0"`
	Quantity    int     `validate:"gte=0"`
	Category    string  `validate:"omitempty"`
}

// ListProductsRequest represents the request payload for listing products.
// Name is a filter only when non-nil; an empty string is a present filter
// that matches every product.
type ListProductsRequest struct {
	Name *string
	Page int
	Size int
}

// Product represents a product DTO (Data Transfer Object) for API responses.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	Category    string
	CreatedAt   string
	UpdatedAt   string
}

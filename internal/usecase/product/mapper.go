package product

import (
	"time"

	domain "storefront-api/internal/domain/product"
)

// Pure mapping between wire-facing DTOs and the persisted entity.
// Server-owned fields (id, timestamps) are never taken from input.

func fromCreateRequest(in CreateProductRequest) *domain.Product {
	return &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Category:    in.Category,
	}
}

func applyUpdate(in UpdateProductRequest, p *domain.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Category = in.Category
}

func toDTO(p *domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront-api/internal/domain/page"
	"storefront-api/internal/domain/product"
	apperrors "storefront-api/pkg/errors"
	"storefront-api/pkg/security"
)

// ProductRepoPG implements the product repository interface using PostgreSQL and GORM.
type ProductRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewProductRepoPG creates a new instance of ProductRepoPG.
func NewProductRepoPG(db *gorm.DB, log *zap.Logger) *ProductRepoPG {
	return &ProductRepoPG{db: db, log: log}
}

// ProductSchema represents the database schema for the products table.
type ProductSchema struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Description string
	Price       float64 `gorm:"not null"`
	Quantity    int     `gorm:"not null;default:0"`
	Category    string
	CreatedAt   string
	UpdatedAt   string
}

// TableName specifies the table name for the ProductSchema model.
func (ProductSchema) TableName() string {
	return "products"
}

func (m *ProductSchema) toDomain() *product.Product {
	return &product.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		Category:    m.Category,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func productSchemaFrom(p *product.Product) ProductSchema {
	return ProductSchema{
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

// Create inserts a new product and returns the persisted representation
// with its assigned ID.
func (r *ProductRepoPG) Create(ctx context.Context, p *product.Product) (*product.Product, error) {
	if p == nil {
		return nil, errors.New("product cannot be nil")
	}

	model := productSchemaFrom(p)
	model.ID = 0

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create product in db", zap.Error(err), zap.String("name", p.Name))
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	r.log.Info("product created in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Update persists all fields of an existing product.
func (r *ProductRepoPG) Update(ctx context.Context, p *product.Product) (*product.Product, error) {
	if p == nil {
		return nil, errors.New("product cannot be nil")
	}

	model := productSchemaFrom(p)

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		r.log.Error("failed to update product in db", zap.Error(err), zap.Int64("id", p.ID))
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	r.log.Info("product updated in db", zap.Int64("id", model.ID))
	return model.toDomain(), nil
}

// Delete removes a product from the database by ID.
func (r *ProductRepoPG) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&ProductSchema{}, id).Error; err != nil {
		r.log.Error("failed to delete product in db", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete product: %w", err)
	}

	r.log.Info("product deleted in db", zap.Int64("id", id))
	return nil
}

// GetByID retrieves a product by ID. Returns (nil, nil) when no row exists.
func (r *ProductRepoPG) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	var model ProductSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("product not found", zap.Int64("id", id))
			return nil, nil
		}
		r.log.Error("failed to get product from db", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return model.toDomain(), nil
}

// ExistsByID reports whether a product row with the given ID exists.
func (r *ProductRepoPG) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ProductSchema{}).Where("id = ?", id).Count(&count).Error; err != nil {
		r.log.Error("failed to check product existence", zap.Error(err), zap.Int64("id", id))
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

// List returns one page of products plus the total matching count. A nil
// name means no filter; a non-nil name (even empty) restricts results to
// names containing it, case-insensitively.
func (r *ProductRepoPG) List(ctx context.Context, name *string, req page.Request) ([]product.Product, int64, error) {
	tx := r.db.WithContext(ctx).Model(&ProductSchema{})

	if name != nil {
		filter, err := security.ValidateSearchQuery(*name)
		if err != nil {
			r.log.Warn("invalid name filter", zap.String("name", *name), zap.Error(err))
			return nil, 0, apperrors.NewValidationError("name", err.Error())
		}
		pattern := "%" + strings.ToLower(security.SanitizeSearchString(filter)) + "%"
		tx = tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		r.log.Error("failed to count products", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var models []ProductSchema
	if err := tx.Order("id").Offset(req.Offset()).Limit(req.Size).Find(&models).Error; err != nil {
		r.log.Error("failed to list products from db", zap.Error(err), zap.Int("page", req.Page), zap.Int("size", req.Size))
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]product.Product, len(models))
	for i, model := range models {
		products[i] = *model.toDomain()
	}

	return products, total, nil
}

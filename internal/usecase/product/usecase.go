package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront-api/internal/domain/page"
	"storefront-api/internal/metrics"
	apperrors "storefront-api/pkg/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements the business logic for product management operations.
// Products carry no cross-entity uniqueness constraint, so there is no
// conflict path here.
type Service struct {
	repo     Repository
	sink     metrics.Sink
	alerter  *metrics.Alerter
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new product Service. A nil sink disables counter emission.
func New(r Repository, sink metrics.Sink, alerter *metrics.Alerter, log *zap.Logger) *Service {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Service{
		repo:     r,
		sink:     sink,
		alerter:  alerter,
		log:      log,
		validate: validator.New(),
	}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "gt":
				messages = append(messages, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
			case "gte":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func (s *Service) storeFailure(ctx context.Context, msg string, err error) error {
	if s.alerter != nil {
		s.alerter.DatabaseConnectionIssue(ctx, err)
	}
	return apperrors.NewInternalError(msg, err)
}

// ListProducts retrieves a paginated list of products with an optional
// case-insensitive name filter.
func (s *Service) ListProducts(ctx context.Context, in ListProductsRequest) (*page.Page[Product], error) {
	if in.Page < 0 {
		in.Page = 0
	}
	if in.Size <= 0 {
		in.Size = defaultPageSize
	}
	if in.Size > maxPageSize {
		in.Size = maxPageSize
	}

	s.log.Debug("listing products", zap.Int("page", in.Page), zap.Int("size", in.Size))

	req := page.Request{Page: in.Page, Size: in.Size}
	products, total, err := s.repo.List(ctx, in.Name, req)
	if err != nil {
		if apperrors.IsValidation(err) {
			s.log.Warn("invalid name filter", zap.Error(err))
			return nil, err
		}
		s.log.Error("failed to list products", zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to list products", err)
	}

	dtos := make([]Product, len(products))
	for i := range products {
		dtos[i] = toDTO(&products[i])
	}

	return page.New(dtos, req, total), nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		s.log.Warn("get product validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid product id")
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get product", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to get product", err)
	}
	if p == nil {
		s.sink.Increment(ctx, metrics.ProductNotFound)
		s.log.Warn("product not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("product", "Product not found")
	}

	dto := toDTO(p)
	return &dto, nil
}

// CreateProduct creates a new product after validating the request.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductRequest) (*Product, error) {
	s.log.Debug("creating product", zap.String("name", in.Name))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	p := fromCreateRequest(in)
	p.CreatedAt = nowStamp()

	saved, err := s.repo.Create(ctx, p)
	if err != nil {
		s.log.Error("failed to create product", zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to create product", err)
	}

	s.sink.Increment(ctx, metrics.ProductsCreated)
	s.log.Info("product created", zap.Int64("id", saved.ID), zap.String("name", saved.Name))

	dto := toDTO(saved)
	return &dto, nil
}

// UpdateProduct replaces all mutable fields of an existing product.
// CreatedAt is never touched; UpdatedAt is stamped on every successful
// update.
func (s *Service) UpdateProduct(ctx context.Context, id int64, in UpdateProductRequest) (*Product, error) {
	s.log.Debug("updating product", zap.Int64("id", id))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get product", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to get product", err)
	}
	if current == nil {
		s.sink.Increment(ctx, metrics.ProductNotFound)
		s.log.Warn("product not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("product", "Product not found")
	}

	applyUpdate(in, current)
	current.UpdatedAt = nowStamp()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		s.log.Error("failed to update product", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to update product", err)
	}

	s.sink.Increment(ctx, metrics.ProductsUpdated)
	s.log.Info("product updated", zap.Int64("id", updated.ID))

	dto := toDTO(updated)
	return &dto, nil
}

// DeleteProduct deletes a product after validating the ID. A non-positive
// ID fails before any store access and without touching counters.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	s.log.Debug("deleting product", zap.Int64("id", id))

	if id <= 0 {
		s.log.Warn("delete product validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return apperrors.NewValidationError("id", "invalid product id")
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.log.Error("failed to check product existence", zap.Int64("id", id), zap.Error(err))
		return s.storeFailure(ctx, "failed to check product existence", err)
	}
	if !exists {
		s.sink.Increment(ctx, metrics.ProductNotFound)
		s.log.Warn("product not found", zap.Int64("id", id))
		return apperrors.NewNotFoundError("product", "Product not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete product", zap.Int64("id", id), zap.Error(err))
		return s.storeFailure(ctx, "failed to delete product", err)
	}

	s.sink.Increment(ctx, metrics.ProductsDeleted)
	s.log.Info("product deleted", zap.Int64("id", id))
	return nil
}

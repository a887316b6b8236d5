package product_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storefront-api/internal/domain/page"
	domain "storefront-api/internal/domain/product"
	"storefront-api/internal/metrics"
	productuc "storefront-api/internal/usecase/product"
	apperrors "storefront-api/pkg/errors"
)

// MockRepository is a mock implementation of the product Repository
// interface.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, name *string, req page.Request) ([]domain.Product, int64, error) {
	args := m.Called(ctx, name, req)
	return args.Get(0).([]domain.Product), args.Get(1).(int64), args.Error(2)
}

// spySink records counter increments for assertions.
type spySink struct {
	mu     sync.Mutex
	counts map[string]int
}

func newSpySink() *spySink {
	return &spySink{counts: make(map[string]int)}
}

func (s *spySink) Increment(_ context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name]++
}

func (s *spySink) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[name]
}

func setupTestUsecase(t *testing.T) (productuc.Usecase, *MockRepository, *spySink) {
	mockRepo := new(MockRepository)
	sink := newSpySink()
	logger := zaptest.NewLogger(t)
	uc := productuc.New(mockRepo, sink, metrics.NewAlerter(sink, logger), logger)
	return uc, mockRepo, sink
}

// ==================== CREATE PRODUCT TESTS ====================

func TestCreateProduct_Success(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	req := productuc.CreateProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       19.99,
		Quantity:    5,
		Category:    "hardware",
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Name == req.Name && p.Price == req.Price && p.Quantity == 5 &&
			p.CreatedAt != "" && p.UpdatedAt == ""
	})).Return(&domain.Product{ID: 1, Name: req.Name, Price: req.Price, Quantity: 5, CreatedAt: "2026-01-02T03:04:05Z"}, nil)

	resp, err := uc.CreateProduct(ctx, req)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, 1, sink.count(metrics.ProductsCreated))
	mockRepo.AssertExpectations(t)
}

// TestCreateProduct_QuantityDefaultsToZero verifies that an omitted quantity
// passes validation and is stored as zero.
func TestCreateProduct_QuantityDefaultsToZero(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	req := productuc.CreateProductRequest{
		Name:  "Widget",
		Price: 9.99,
	}

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.Quantity == 0
	})).Return(&domain.Product{ID: 2, Name: "Widget", Price: 9.99, Quantity: 0}, nil)

	resp, err := uc.CreateProduct(ctx, req)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 0, resp.Quantity)
}

func TestCreateProduct_ValidationError_NameRequired(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)

	req := productuc.CreateProductRequest{Price: 9.99}

	resp, err := uc.CreateProduct(context.Background(), req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Name is required")
	mockRepo.AssertNotCalled(t, "Create")
}

func TestCreateProduct_ValidationError_PriceNotPositive(t *testing.T) {
	uc, _, _ := setupTestUsecase(t)

	req := productuc.CreateProductRequest{Name: "Widget", Price: -1}

	resp, err := uc.CreateProduct(context.Background(), req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateProduct_ValidationError_NegativeQuantity(t *testing.T) {
	uc, _, _ := setupTestUsecase(t)

	req := productuc.CreateProductRequest{Name: "Widget", Price: 9.99, Quantity: -2}

	resp, err := uc.CreateProduct(context.Background(), req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateProduct_RepositoryError(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection refused"))

	req := productuc.CreateProductRequest{Name: "Widget", Price: 9.99}
	resp, err := uc.CreateProduct(ctx, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, 1, sink.count(metrics.AlertsTriggered))
	assert.Equal(t, 0, sink.count(metrics.ProductsCreated))
}

// ==================== GET PRODUCT TESTS ====================

func TestGetProduct_Success(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	p := &domain.Product{ID: 7, Name: "Widget", Price: 19.99, Quantity: 3}
	mockRepo.On("GetByID", ctx, int64(7)).Return(p, nil)

	resp, err := uc.GetProduct(ctx, 7)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, 19.99, resp.Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	resp, err := uc.GetProduct(ctx, 99)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, sink.count(metrics.ProductNotFound))
}

func TestGetProduct_InvalidID(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)

	resp, err := uc.GetProduct(context.Background(), 0)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, sink.count(metrics.ProductNotFound))
	mockRepo.AssertNotCalled(t, "GetByID")
}

// ==================== UPDATE PRODUCT TESTS ====================

// TestUpdateProduct_Success verifies the full-replace semantics: every
// mutable field takes the request value, CreatedAt survives, UpdatedAt is
// stamped.
func TestUpdateProduct_Success(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	current := &domain.Product{
		ID: 3, Name: "Old", Description: "old desc", Price: 1.00,
		Quantity: 1, Category: "old", CreatedAt: "2026-01-02T03:04:05Z",
	}
	mockRepo.On("GetByID", ctx, int64(3)).Return(current, nil)
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == 3 &&
			p.Name == "New" &&
			p.Description == "" &&
			p.Price == 2.50 &&
			p.Quantity == 0 &&
			p.Category == "" &&
			p.CreatedAt == "2026-01-02T03:04:05Z" &&
			p.UpdatedAt != ""
	})).Return(current, nil)

	req := productuc.UpdateProductRequest{Name: "New", Price: 2.50}
	resp, err := uc.UpdateProduct(ctx, 3, req)

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 1, sink.count(metrics.ProductsUpdated))
	mockRepo.AssertExpectations(t)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(42)).Return(nil, nil)

	req := productuc.UpdateProductRequest{Name: "New", Price: 2.50}
	resp, err := uc.UpdateProduct(ctx, 42, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, sink.count(metrics.ProductNotFound))
	mockRepo.AssertNotCalled(t, "Update")
}

func TestUpdateProduct_ValidationError(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)

	req := productuc.UpdateProductRequest{Name: "New", Price: 0}
	resp, err := uc.UpdateProduct(context.Background(), 3, req)

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
	mockRepo.AssertNotCalled(t, "GetByID")
}

// ==================== DELETE PRODUCT TESTS ====================

func TestDeleteProduct_Success(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("ExistsByID", ctx, int64(5)).Return(true, nil)
	mockRepo.On("Delete", ctx, int64(5)).Return(nil)

	err := uc.DeleteProduct(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 1, sink.count(metrics.ProductsDeleted))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)
	ctx := context.Background()

	mockRepo.On("ExistsByID", ctx, int64(5)).Return(false, nil)

	err := uc.DeleteProduct(ctx, 5)

	assert.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, sink.count(metrics.ProductNotFound))
	mockRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteProduct_InvalidID(t *testing.T) {
	uc, mockRepo, sink := setupTestUsecase(t)

	err := uc.DeleteProduct(context.Background(), -1)

	assert.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, sink.count(metrics.ProductNotFound))
	mockRepo.AssertNotCalled(t, "ExistsByID")
}

// ==================== LIST PRODUCTS TESTS ====================

func TestListProducts_Defaults(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	products := []domain.Product{
		{ID: 1, Name: "Widget", Price: 1.00},
		{ID: 2, Name: "Gadget", Price: 2.00},
	}
	mockRepo.On("List", ctx, (*string)(nil), page.Request{Page: 0, Size: 10}).
		Return(products, int64(12), nil)

	resp, err := uc.ListProducts(ctx, productuc.ListProductsRequest{})

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.Content, 2)
	assert.Equal(t, int64(12), resp.TotalElements)
	assert.Equal(t, 2, resp.TotalPages)
}

func TestListProducts_WithNameFilter(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	name := "wid"
	mockRepo.On("List", ctx, &name, page.Request{Page: 0, Size: 10}).
		Return([]domain.Product{{ID: 1, Name: "Widget", Price: 1.00}}, int64(1), nil)

	resp, err := uc.ListProducts(ctx, productuc.ListProductsRequest{Name: &name})

	assert.NoError(t, err)
	require.NotNil(t, resp)
	assert.Len(t, resp.Content, 1)
	assert.Equal(t, "Widget", resp.Content[0].Name)
}

func TestListProducts_FilterValidationError(t *testing.T) {
	uc, mockRepo, _ := setupTestUsecase(t)
	ctx := context.Background()

	bad := strings.Repeat("a", 101)
	mockRepo.On("List", ctx, &bad, mock.Anything).
		Return([]domain.Product(nil), int64(0), apperrors.NewValidationError("name", "search query too long"))

	resp, err := uc.ListProducts(ctx, productuc.ListProductsRequest{Name: &bad})

	assert.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsValidation(err))
}

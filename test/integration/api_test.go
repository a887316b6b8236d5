package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront-api/internal/adapter/cache"
	"storefront-api/internal/adapter/db/postgres"
	ginhandler "storefront-api/internal/adapter/gin/handler"
	"storefront-api/internal/adapter/gin/router"
	"storefront-api/internal/adapter/repository/cached"
	"storefront-api/internal/metrics"
	productuc "storefront-api/internal/usecase/product"
	useruc "storefront-api/internal/usecase/user"
)

// APITestSuite exercises the full HTTP surface against real services, real
// repositories on an in-memory SQLite database, and a miniredis instance
// backing the cache and the counter sink.
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	mini   *miniredis.Miniredis
	client *goredis.Client
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(s.T())

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&postgres.UserSchema{}, &postgres.ProductSchema{}))

	s.mini = miniredis.RunT(s.T())
	s.client = goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})

	sink := metrics.NewRedisSink(s.client, log)
	alerter := metrics.NewAlerter(sink, log)

	userCache := cache.NewRedisUserCache(s.client, 5*time.Minute, log)
	userRepo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, log), userCache, log)
	productRepo := postgres.NewProductRepoPG(db, log)

	userHandler := ginhandler.NewUserHandler(useruc.New(userRepo, sink, alerter, log), log)
	productHandler := ginhandler.NewProductHandler(productuc.New(productRepo, sink, alerter, log), log)

	s.router = router.SetupRouter(userHandler, productHandler, nil, log)
}

func (s *APITestSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *APITestSuite) request(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
}

func (s *APITestSuite) counter(name string) string {
	val, err := s.mini.Get("metrics:" + name)
	if err != nil {
		return "0"
	}
	return val
}

type userBody struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type pageBody[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
}

// TestUserLifecycle walks a user through create, duplicate create, update,
// read-back, delete, and post-delete reads, checking status codes, the
// timestamp rules, and the emitted counters along the way.
func (s *APITestSuite) TestUserLifecycle() {
	// Create
	w := s.request(http.MethodPost, "/v1/users", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	})
	s.Equal(http.StatusCreated, w.Code)

	var created userBody
	s.decode(w, &created)
	s.Positive(created.ID)
	s.NotEmpty(created.CreatedAt)
	s.Empty(created.UpdatedAt)
	s.Equal("1", s.counter(metrics.UsersCreated))

	// Duplicate email is rejected and leaves a single row behind.
	w = s.request(http.MethodPost, "/v1/users", map[string]any{
		"name": "Impostor", "email": "alice@example.com", "password": "secret123",
	})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("1", s.counter(metrics.EmailConflicts))

	w = s.request(http.MethodGet, "/v1/users", nil)
	s.Equal(http.StatusOK, w.Code)
	var list pageBody[userBody]
	s.decode(w, &list)
	s.Equal(int64(1), list.TotalElements)

	// Update changes UpdatedAt but not CreatedAt.
	w = s.request(http.MethodPut, fmt.Sprintf("/v1/users/%d", created.ID), map[string]any{
		"name": "Alice Cooper", "email": "alice@example.com", "password": "secret123",
	})
	s.Equal(http.StatusOK, w.Code)

	var updated userBody
	s.decode(w, &updated)
	s.Equal("Alice Cooper", updated.Name)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.NotEmpty(updated.UpdatedAt)
	s.Equal("1", s.counter(metrics.UsersUpdated))

	// Read-back sees the update (cache was invalidated).
	w = s.request(http.MethodGet, fmt.Sprintf("/v1/users/%d", created.ID), nil)
	s.Equal(http.StatusOK, w.Code)
	var fetched userBody
	s.decode(w, &fetched)
	s.Equal("Alice Cooper", fetched.Name)

	// Delete, then both read and repeat delete are 404.
	w = s.request(http.MethodDelete, fmt.Sprintf("/v1/users/%d", created.ID), nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("1", s.counter(metrics.UsersDeleted))

	w = s.request(http.MethodGet, fmt.Sprintf("/v1/users/%d", created.ID), nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/v1/users/%d", created.ID), nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("2", s.counter(metrics.UsersNotFound))
}

// TestUserEmailSwap verifies that an update can move a user to a free email
// but not onto another user's email.
func (s *APITestSuite) TestUserEmailSwap() {
	w := s.request(http.MethodPost, "/v1/users", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "secret123",
	})
	s.Equal(http.StatusCreated, w.Code)
	var alice userBody
	s.decode(w, &alice)

	w = s.request(http.MethodPost, "/v1/users", map[string]any{
		"name": "Bob", "email": "bob@example.com", "password": "secret123",
	})
	s.Equal(http.StatusCreated, w.Code)
	var bob userBody
	s.decode(w, &bob)

	// Bob cannot take Alice's email.
	w = s.request(http.MethodPut, fmt.Sprintf("/v1/users/%d", bob.ID), map[string]any{
		"name": "Bob", "email": "alice@example.com", "password": "secret123",
	})
	s.Equal(http.StatusConflict, w.Code)

	// Bob can move to a free address.
	w = s.request(http.MethodPut, fmt.Sprintf("/v1/users/%d", bob.ID), map[string]any{
		"name": "Bob", "email": "robert@example.com", "password": "secret123",
	})
	s.Equal(http.StatusOK, w.Code)
}

// TestUserListFiltering verifies pagination and the case-insensitive name
// filter end to end.
func (s *APITestSuite) TestUserListFiltering() {
	for i, name := range []string{"Alice", "ALINA", "Bob", "Carol", "alfred"} {
		w := s.request(http.MethodPost, "/v1/users", map[string]any{
			"name": name, "email": fmt.Sprintf("u%d@example.com", i), "password": "secret123",
		})
		s.Equal(http.StatusCreated, w.Code)
	}

	w := s.request(http.MethodGet, "/v1/users?page=1&size=2", nil)
	s.Equal(http.StatusOK, w.Code)
	var pg pageBody[userBody]
	s.decode(w, &pg)
	s.Equal(int64(5), pg.TotalElements)
	s.Equal(3, pg.TotalPages)
	s.Len(pg.Content, 2)

	w = s.request(http.MethodGet, "/v1/users?name=al", nil)
	s.Equal(http.StatusOK, w.Code)
	s.decode(w, &pg)
	s.Equal(int64(3), pg.TotalElements)

	// Injection-shaped input is just a literal that matches nothing.
	w = s.request(http.MethodGet, "/v1/users?name=1%20OR%201%3D1", nil)
	s.Equal(http.StatusOK, w.Code)
	s.decode(w, &pg)
	s.Equal(int64(0), pg.TotalElements)

	// Oversized filter input is rejected.
	w = s.request(http.MethodGet, "/v1/users?name="+strings.Repeat("a", 101), nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

// TestProductFilterKeyword verifies that a name filter containing a SQL
// keyword is an ordinary substring match end to end.
func (s *APITestSuite) TestProductFilterKeyword() {
	w := s.request(http.MethodPost, "/v1/products", map[string]any{
		"name": "Software Update Kit", "price": 49.99,
	})
	s.Equal(http.StatusCreated, w.Code)
	w = s.request(http.MethodPost, "/v1/products", map[string]any{
		"name": "Desk Lamp", "price": 24.99,
	})
	s.Equal(http.StatusCreated, w.Code)

	w = s.request(http.MethodGet, "/v1/products?name=update", nil)
	s.Equal(http.StatusOK, w.Code)
	var pg pageBody[productBody]
	s.decode(w, &pg)
	s.Equal(int64(1), pg.TotalElements)
	s.Require().Len(pg.Content, 1)
	s.Equal("Software Update Kit", pg.Content[0].Name)
}

type productBody struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// TestProductLifecycle walks a product through the full CRUD surface,
// including the quantity default and full-replace update semantics.
func (s *APITestSuite) TestProductLifecycle() {
	// Quantity omitted defaults to zero.
	w := s.request(http.MethodPost, "/v1/products", map[string]any{
		"name": "Widget", "price": 19.99,
	})
	s.Equal(http.StatusCreated, w.Code)
	var created productBody
	s.decode(w, &created)
	s.Positive(created.ID)
	s.Equal(0, created.Quantity)
	s.Equal("1", s.counter(metrics.ProductsCreated))

	// Full-replace update: category omitted means cleared, not kept.
	w = s.request(http.MethodPut, fmt.Sprintf("/v1/products/%d", created.ID), map[string]any{
		"name": "Widget Pro", "price": 29.99, "quantity": 7,
	})
	s.Equal(http.StatusOK, w.Code)
	var updated productBody
	s.decode(w, &updated)
	s.Equal("Widget Pro", updated.Name)
	s.Equal(7, updated.Quantity)
	s.Empty(updated.Category)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.NotEmpty(updated.UpdatedAt)

	// Invalid price never reaches the store.
	w = s.request(http.MethodPost, "/v1/products", map[string]any{
		"name": "Freebie", "price": 0,
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.request(http.MethodDelete, fmt.Sprintf("/v1/products/%d", created.ID), nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.request(http.MethodGet, fmt.Sprintf("/v1/products/%d", created.ID), nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("1", s.counter(metrics.ProductNotFound))
}

// TestHealth verifies the liveness endpoint.
func (s *APITestSuite) TestHealth() {
	w := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "healthy")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

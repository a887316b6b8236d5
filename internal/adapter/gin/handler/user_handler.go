package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-api/internal/domain/page"
	usecase "storefront-api/internal/usecase/user"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  usecase.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc usecase.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateUserRequest represents the HTTP request body for updating a user
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func toUserResponse(u usecase.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	pageIdx, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil || pageIdx < 0 {
		pageIdx = defaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultSize)))
	if err != nil || size < 1 {
		size = defaultSize
	}

	// The name filter applies whenever the parameter is present, even empty.
	var name *string
	if v, ok := c.GetQuery("name"); ok {
		name = &v
	}

	h.log.Info("ListUsers request", zap.Int("page", pageIdx), zap.Int("size", size))

	resp, err := h.uc.ListUsers(c.Request.Context(), usecase.ListUsersRequest{
		Name: name,
		Page: pageIdx,
		Size: size,
	})
	if err != nil {
		h.log.Error("ListUsers failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, page.Map(resp, toUserResponse))
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.log.Info("GetUser request", zap.Int64("id", id))

	resp, err := h.uc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.log.Warn("GetUser failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("CreateUser request", zap.String("email", req.Email))

	resp, err := h.uc.CreateUser(c.Request.Context(), usecase.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("CreateUser failed", zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(*resp))
}

// UpdateUser handles PUT /v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	h.log.Info("UpdateUser request", zap.Int64("id", id), zap.String("email", req.Email))

	resp, err := h.uc.UpdateUser(c.Request.Context(), id, usecase.UpdateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.log.Warn("UpdateUser failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*resp))
}

// DeleteUser handles DELETE /v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	h.log.Info("DeleteUser request", zap.Int64("id", id))

	if err := h.uc.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Warn("DeleteUser failed", zap.Int64("id", id), zap.Error(err))
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path parameter. Non-numeric IDs never reach the
// service; non-positive numeric IDs do, so the service can enforce its
// own precondition.
func (h *UserHandler) parseID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}

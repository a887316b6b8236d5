package user

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

// Service implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
// Counter emission is fire-and-forget; it can never fail an operation.
type Service struct {
	repo     Repository
	sink     metrics.Sink
	alerter  *metrics.Alerter
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new user Service. A nil sink disables counter emission.
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

// formatValidationError converts validator.ValidationErrors into a typed
// validation error with a human-readable message.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
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

// storeFailure wraps an infrastructural repository error, raising a database
// alert on the way.
func (s *Service) storeFailure(ctx context.Context, msg string, err error) error {
	if s.alerter != nil {
		s.alerter.DatabaseConnectionIssue(ctx, err)
	}
	return apperrors.NewInternalError(msg, err)
}

// ListUsers retrieves a paginated list of users with an optional
// case-insensitive name filter.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*page.Page[User], error) {
	if in.Page < 0 {
		in.Page = 0
	}
	if in.Size <= 0 {
		in.Size = defaultPageSize
	}
	if in.Size > maxPageSize {
		in.Size = maxPageSize
	}

	s.log.Debug("listing users", zap.Int("page", in.Page), zap.Int("size", in.Size))

	req := page.Request{Page: in.Page, Size: in.Size}
	users, total, err := s.repo.List(ctx, in.Name, req)
	if err != nil {
		if apperrors.IsValidation(err) {
			s.log.Warn("invalid name filter", zap.Error(err))
			return nil, err
		}
		s.log.Error("failed to list users", zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to list users", err)
	}

	dtos := make([]User, len(users))
	for i := range users {
		dtos[i] = toDTO(&users[i])
	}

	return page.New(dtos, req, total), nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		s.log.Warn("get user validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to get user", err)
	}
	if u == nil {
		s.sink.Increment(ctx, metrics.UsersNotFound)
		s.log.Warn("user not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	dto := toDTO(u)
	return &dto, nil
}

// CreateUser creates a new user after validating the request and checking
// email uniqueness. The existence check is a fast path only: the store's
// unique index decides the winner under concurrent creates, and its
// violation is surfaced as the same conflict.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*User, error) {
	s.log.Debug("creating user", zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	taken, err := s.repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to validate email uniqueness", err)
	}
	if taken {
		s.sink.Increment(ctx, metrics.EmailConflicts)
		s.log.Warn("email already in use", zap.String("email", in.Email))
		return nil, apperrors.NewConflictError("user", "Email already in use")
	}

	u := fromCreateRequest(in)
	u.CreatedAt = nowStamp()

	saved, err := s.repo.Create(ctx, u)
	if err != nil {
		if apperrors.IsConflict(err) {
			// Lost the race: another create committed this email between
			// the check and the write.
			s.sink.Increment(ctx, metrics.EmailConflicts)
			s.log.Warn("email already in use", zap.String("email", in.Email))
			return nil, err
		}
		s.log.Error("failed to create user", zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to create user", err)
	}

	s.sink.Increment(ctx, metrics.UsersCreated)
	s.log.Info("user created", zap.Int64("id", saved.ID), zap.String("email", saved.Email))

	dto := toDTO(saved)
	return &dto, nil
}

// UpdateUser updates an existing user after validating the request and,
// when the email changes, checking that no other user holds it. CreatedAt
// is never touched; UpdatedAt is stamped on every successful update.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UpdateUserRequest) (*User, error) {
	s.log.Debug("updating user", zap.Int64("id", id), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to get user", err)
	}
	if current == nil {
		s.sink.Increment(ctx, metrics.UsersNotFound)
		s.log.Warn("user not found", zap.Int64("id", id))
		return nil, apperrors.NewNotFoundError("user", "User not found")
	}

	if in.Email != current.Email {
		taken, err := s.repo.ExistsByEmailExcludingID(ctx, in.Email, id)
		if err != nil {
			s.log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
			return nil, s.storeFailure(ctx, "failed to validate email uniqueness", err)
		}
		if taken {
			s.sink.Increment(ctx, metrics.EmailConflicts)
			s.log.Warn("email already in use", zap.String("email", in.Email), zap.Int64("id", id))
			return nil, apperrors.NewConflictError("user", "Email already in use")
		}
	}

	applyUpdate(in, current)
	current.UpdatedAt = nowStamp()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		if apperrors.IsConflict(err) {
			s.sink.Increment(ctx, metrics.EmailConflicts)
			s.log.Warn("email already in use", zap.String("email", in.Email))
			return nil, err
		}
		s.log.Error("failed to update user", zap.Int64("id", id), zap.Error(err))
		return nil, s.storeFailure(ctx, "failed to update user", err)
	}

	s.sink.Increment(ctx, metrics.UsersUpdated)
	s.log.Info("user updated", zap.Int64("id", updated.ID))

	dto := toDTO(updated)
	return &dto, nil
}

// DeleteUser deletes a user after validating the ID. A non-positive ID
// fails before any store access and without touching counters.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	s.log.Debug("deleting user", zap.Int64("id", id))

	if id <= 0 {
		s.log.Warn("delete user validation failed", zap.Int64("id", id), zap.String("reason", "invalid id"))
		return apperrors.NewValidationError("id", "invalid user id")
	}

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.log.Error("failed to check user existence", zap.Int64("id", id), zap.Error(err))
		return s.storeFailure(ctx, "failed to check user existence", err)
	}
	if !exists {
		s.sink.Increment(ctx, metrics.UsersNotFound)
		s.log.Warn("user not found", zap.Int64("id", id))
		return apperrors.NewNotFoundError("user", "User not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		return s.storeFailure(ctx, "failed to delete user", err)
	}

	s.sink.Increment(ctx, metrics.UsersDeleted)
	s.log.Info("user deleted", zap.Int64("id", id))
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/resource-service/internal/domain"
	"github.com/spec-kit/resource-service/internal/events"
	"github.com/spec-kit/resource-service/internal/repository"
	apperrors "github.com/spec-kit/resource-service/pkg/util/errorutil"
)

// UserService coordinates user CRUD.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// UserInput carries validated user fields. A nil IsAdmin keeps the stored value on update.
type UserInput struct {
	Name    string
	Email   string
	IsAdmin *bool
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// CreateUser persists a new user.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	user := &domain.User{
		Name:  input.Name,
		Email: input.Email,
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, userError(err, 0, input.Email)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserCreated,
		ResourceID: user.ID,
		Payload:    events.UserPayload{Email: user.Email, IsAdmin: user.IsAdmin},
	})
	return user, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err, id, "")
	}
	return user, nil
}

// ListUsers returns every user ordered by id.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser replaces the mutable fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err, id, "")
	}
	user.Name = input.Name
	user.Email = input.Email
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, userError(err, id, input.Email)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserUpdated,
		ResourceID: user.ID,
		Payload:    events.UserPayload{Email: user.Email, IsAdmin: user.IsAdmin},
	})
	return user, nil
}

// DeleteUser removes a user permanently.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userError(err, id, "")
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserDeleted,
		ResourceID: id,
	})
	return nil
}

func userError(err error, id int64, email string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	case errors.Is(err, repository.ErrDuplicateEmail):
		return apperrors.NewConflict(
			fmt.Sprintf("user with email %s already exists", email),
			map[string]any{"email": email},
		)
	default:
		return fmt.Errorf("user store: %w", err)
	}
}

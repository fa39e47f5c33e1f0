package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/resource-service/internal/domain"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when a user email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines persistence access for users.
type UserRepository interface {
	// Create assigns user.ID and persists the record.
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	// Create assigns ticket.ID and ticket.CreatedAt and persists the record.
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id int64) (*domain.Ticket, error)
	List(ctx context.Context) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error)
	Delete(ctx context.Context, id int64) error
}

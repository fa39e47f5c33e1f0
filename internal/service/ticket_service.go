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

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets              repository.TicketRepository
	users                repository.UserRepository
	dispatcher           events.Dispatcher
	enforceUserReference bool
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	// EnforceUserReference rejects tickets whose UserID matches no user.
	EnforceUserReference bool
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	UserID      int64
	Status      domain.TicketStatus
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:              deps.TicketRepo,
		users:                deps.UserRepo,
		dispatcher:           deps.Dispatcher,
		enforceUserReference: deps.EnforceUserReference,
	}
}

// CreateTicket persists a new ticket in the requested initial status.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if !input.Status.Valid() {
		return nil, apperrors.NewValidationError("status must be one of: Open, Closed",
			map[string]any{"status": string(input.Status)})
	}
	if s.enforceUserReference && s.users != nil {
		if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("userId does not reference an existing user",
					map[string]any{"userId": input.UserID})
			}
			return nil, fmt.Errorf("resolve ticket user: %w", err)
		}
	}

	ticket := &domain.Ticket{
		Title:       input.Title,
		Description: input.Description,
		UserID:      input.UserID,
		Status:      input.Status,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("ticket store: %w", err)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketCreated,
		ResourceID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			UserID: ticket.UserID,
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	return ticket, nil
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, ticketError(err, id)
	}
	return ticket, nil
}

// ListTickets returns every ticket ordered by id.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// UpdateStatus moves a ticket to newStatus. Re-applying the current status succeeds.
func (s *TicketService) UpdateStatus(ctx context.Context, id int64, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if !newStatus.Valid() {
		return nil, apperrors.NewValidationError("status must be one of: Open, Closed",
			map[string]any{"status": string(newStatus)})
	}
	current, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, ticketError(err, id)
	}
	if !domain.CanTransition(current.Status, newStatus) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": string(current.Status),
			"to":   string(newStatus),
		})
	}
	ticket, err := s.tickets.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return nil, ticketError(err, id)
	}
	if current.Status != newStatus {
		publishEvent(ctx, s.dispatcher, events.Event{
			Type:       events.EventTicketStatusChanged,
			ResourceID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: current.Status,
				NewStatus: newStatus,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket removes a ticket permanently.
func (s *TicketService) DeleteTicket(ctx context.Context, id int64) error {
	if err := s.tickets.Delete(ctx, id); err != nil {
		return ticketError(err, id)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventTicketDeleted,
		ResourceID: id,
	})
	return nil
}

func ticketError(err error, id int64) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return fmt.Errorf("ticket store: %w", err)
}

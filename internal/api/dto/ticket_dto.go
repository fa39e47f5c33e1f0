package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/resource-service/internal/domain"
)

// CreateTicketRequest payload for POST /tickets.
type CreateTicketRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	UserID      *int64 `json:"userId" validate:"required,gt=0"`
	Status      string `json:"status" validate:"required,oneof=Open Closed"`
}

// Normalize trims surrounding whitespace so blank strings count as missing.
func (r *CreateTicketRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Status = strings.TrimSpace(r.Status)
}

// UpdateTicketStatusRequest payload for PUT /tickets/:id/status.
type UpdateTicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Open Closed"`
}

// Normalize trims surrounding whitespace.
func (r *UpdateTicketStatusRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	UserID      int64               `json:"userId"`
	Status      domain.TicketStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID,
		Title:       ticket.Title,
		Description: ticket.Description,
		UserID:      ticket.UserID,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt.UTC(),
	}
}

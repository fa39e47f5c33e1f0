package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/resource-service/internal/api/dto"
	"github.com/spec-kit/resource-service/internal/domain"
	"github.com/spec-kit/resource-service/internal/service"
	"github.com/spec-kit/resource-service/internal/validation"
)

// TicketsHandler exposes the ticket resource.
type TicketsHandler struct {
	service   *service.TicketService
	validator *validation.Validator
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, validator *validation.Validator) *TicketsHandler {
	return &TicketsHandler{service: ticketService, validator: validator}
}

// CreateTicket handles POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	req, err := bindJSON[dto.CreateTicketRequest](c, h.validator.Struct)
	if err != nil {
		return err
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      *req.UserID,
		Status:      domain.TicketStatus(req.Status),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// ListTickets handles GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// GetTicket handles GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetTicket(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus handles PUT /tickets/:id/status and returns the bare ticket.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindJSON[dto.UpdateTicketStatusRequest](c, h.validator.Struct)
	if err != nil {
		return err
	}
	ticket, err := h.service.UpdateStatus(c.UserContext(), id, domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// DeleteTicket handles DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteTicket(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "ticket deleted successfully"})
}

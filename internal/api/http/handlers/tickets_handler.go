package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service  *service.TicketService
	validate RequestValidator
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, validate RequestValidator) *TicketsHandler {
	return &TicketsHandler{service: ticketService, validate: validate}
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), principal.User, service.TicketCreateInput{
		Name:     req.Name,
		Issue:    req.Issue,
		Priority: req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// ListAll handles GET /api/tickets (admin).
func (h *TicketsHandler) ListAll(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListAllTickets(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponses(tickets))
}

// ListMine handles GET /api/tickets/my-tickets.
func (h *TicketsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListOwnTickets(c.UserContext(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponses(tickets))
}

// Get handles GET /api/tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	if _, ok := auth.PrincipalFromContext(c); !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus handles PATCH /api/tickets/:id/status (admin).
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return err
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTicketResponse(ticket))
}

// DeleteMine handles DELETE /api/tickets/my-tickets/:id.
func (h *TicketsHandler) DeleteMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.DeleteOwnTicket(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Ticket deleted successfully"})
}

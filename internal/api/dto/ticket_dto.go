package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload. Priority must be explicit on creation.
type CreateTicketRequest struct {
	Name     string                `json:"name" validate:"required"`
	Issue    string                `json:"issue" validate:"required"`
	Priority domain.TicketPriority `json:"priority" validate:"required,oneof=Low Medium High"`
}

// UpdateStatusRequest payload for the admin status transition.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status" validate:"required,oneof=Open 'In Progress' Closed"`
}

// TicketResponse is the API projection of a ticket with its owner expanded.
type TicketResponse struct {
	ID        string                `json:"id"`
	Owner     *domain.TicketOwner   `json:"user"`
	Name      string                `json:"name"`
	Issue     string                `json:"issue"`
	Priority  domain.TicketPriority `json:"priority"`
	Status    domain.TicketStatus   `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// NewTicketResponse converts a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:        ticket.ID,
		Owner:     ticket.Owner,
		Name:      ticket.Name,
		Issue:     ticket.Issue,
		Priority:  ticket.Priority,
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}

// NewTicketResponses converts a slice preserving order.
func NewTicketResponses(tickets []domain.Ticket) []TicketResponse {
	items := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, NewTicketResponse(&tickets[i]))
	}
	return items
}

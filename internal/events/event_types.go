package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers. The values double as the
// wire-level event names delivered to realtime clients.
type EventType string

const (
	EventTicketCreated EventType = "ticketCreated"
	EventTicketUpdated EventType = "ticketUpdated"
	EventTicketDeleted EventType = "ticketDeleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketPayload carries the full expanded ticket for created/updated events.
// Every connected client receives it; ownership filtering is client-side.
type TicketPayload struct {
	ID        string                `json:"id"`
	Owner     *domain.TicketOwner   `json:"user"`
	Name      string                `json:"name"`
	Issue     string                `json:"issue"`
	Priority  domain.TicketPriority `json:"priority"`
	Status    domain.TicketStatus   `json:"status"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// TicketDeletedPayload identifies the removed ticket and its former owner.
type TicketDeletedPayload struct {
	TicketID string `json:"ticketId"`
	OwnerID  string `json:"ownerId"`
}

// NewTicketPayload projects a domain ticket onto the wire shape.
func NewTicketPayload(ticket *domain.Ticket) TicketPayload {
	return TicketPayload{
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

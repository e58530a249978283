package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService enforces the ticket state machine, ownership rules and the
// delete-eligibility policy.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Name     string
	Issue    string
	Priority domain.TicketPriority
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// CreateTicket persists a new ticket owned by the caller. Tickets always
// start Open regardless of input.
func (s *TicketService) CreateTicket(ctx context.Context, caller *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	name := strings.TrimSpace(input.Name)
	issue := strings.TrimSpace(input.Issue)
	if name == "" || issue == "" {
		return nil, apperrors.NewValidationError("name and issue required", nil)
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("priority must be Low, Medium, or High", map[string]any{"priority": string(input.Priority)})
	}

	ticket := &domain.Ticket{
		OwnerID:  caller.ID,
		Name:     name,
		Issue:    issue,
		Priority: input.Priority,
		Status:   domain.TicketStatusOpen,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	// re-read so the response and the broadcast carry the expanded owner
	saved, err := s.tickets.GetByID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketCreated, events.NewTicketPayload(saved))
	return saved, nil
}

// ListAllTickets returns every ticket, newest-created-first. Admin only.
func (s *TicketService) ListAllTickets(ctx context.Context, caller *domain.User) ([]domain.Ticket, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	return s.tickets.ListAll(ctx)
}

// ListOwnTickets returns the caller's tickets, newest-first.
func (s *TicketService) ListOwnTickets(ctx context.Context, caller *domain.User) ([]domain.Ticket, error) {
	return s.tickets.ListByOwner(ctx, caller.ID)
}

// GetTicket fetches a single ticket by id. Any authenticated caller may
// read any ticket; see the design notes on this permissive policy.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}
	return ticket, nil
}

// UpdateStatus moves a ticket to any of the three states. Transitions are
// admin-only and unconstrained; no state is terminal.
func (s *TicketService) UpdateStatus(ctx context.Context, caller *domain.User, id string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	if caller.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !domain.ValidStatus(newStatus) {
		return nil, apperrors.NewValidationError("status must be Open, In Progress, or Closed", map[string]any{"status": string(newStatus)})
	}

	if _, err := s.GetTicket(ctx, id); err != nil {
		return nil, err
	}
	if err := s.tickets.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}

	updated, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventTicketUpdated, events.NewTicketPayload(updated))
	return updated, nil
}

// DeleteOwnTicket removes a ticket. Only the owner may delete, and never
// while an admin has it In Progress.
func (s *TicketService) DeleteOwnTicket(ctx context.Context, caller *domain.User, id string) error {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return err
	}
	if ticket.OwnerID != caller.ID {
		return apperrors.NewForbidden("you can only delete your own tickets")
	}
	if ticket.Status == domain.TicketStatusInProgress {
		return apperrors.NewInvalidState("cannot delete ticket that is currently being worked on")
	}

	if err := s.tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return err
	}

	s.publish(ctx, events.EventTicketDeleted, events.TicketDeletedPayload{
		TicketID: ticket.ID,
		OwnerID:  ticket.OwnerID,
	})
	return nil
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

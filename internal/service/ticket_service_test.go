package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newTicketFixture(t *testing.T) (*TicketService, *fakeTicketRepo, *recordingDispatcher, *domain.User, *domain.User) {
	t.Helper()
	repo := newFakeTicketRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(repo, dispatcher)

	owner := &domain.User{ID: "user-1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	admin := &domain.User{ID: "admin-1", Name: "Root", Email: "root@example.com", Role: domain.RoleAdmin}
	repo.addOwner(owner)
	repo.addOwner(admin)
	return svc, repo, dispatcher, owner, admin
}

func mustCreate(t *testing.T, svc *TicketService, caller *domain.User) *domain.Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(context.Background(), caller, TicketCreateInput{
		Name:     caller.Name,
		Issue:    "printer broken",
		Priority: domain.TicketPriorityLow,
	})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return ticket
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return domainErr.Code
}

func TestCreateTicketStartsOpen(t *testing.T) {
	svc, _, dispatcher, owner, _ := newTicketFixture(t)

	ticket := mustCreate(t, svc, owner)

	if ticket.Status != domain.TicketStatusOpen {
		t.Fatalf("expected status Open, got %q", ticket.Status)
	}
	if ticket.OwnerID != owner.ID {
		t.Fatalf("expected owner %q, got %q", owner.ID, ticket.OwnerID)
	}
	if ticket.Owner == nil || ticket.Owner.Email != owner.Email {
		t.Fatalf("expected expanded owner, got %+v", ticket.Owner)
	}

	recorded := dispatcher.recorded()
	if len(recorded) != 1 || recorded[0].Type != events.EventTicketCreated {
		t.Fatalf("expected one ticketCreated event, got %+v", recorded)
	}
}

func TestCreateTicketRejectsInvalidInput(t *testing.T) {
	svc, _, dispatcher, owner, _ := newTicketFixture(t)

	cases := []TicketCreateInput{
		{Name: "", Issue: "broken", Priority: domain.TicketPriorityLow},
		{Name: "Alice", Issue: "   ", Priority: domain.TicketPriorityLow},
		{Name: "Alice", Issue: "broken", Priority: "Urgent"},
	}
	for _, input := range cases {
		if _, err := svc.CreateTicket(context.Background(), owner, input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		} else if code := domainCode(t, err); code != "VALIDATION_FAILED" {
			t.Fatalf("expected VALIDATION_FAILED, got %s", code)
		}
	}
	if len(dispatcher.recorded()) != 0 {
		t.Fatal("no events should be published for rejected input")
	}
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc, _, _, owner, admin := newTicketFixture(t)
	mustCreate(t, svc, owner)

	if _, err := svc.ListAllTickets(context.Background(), owner); err == nil {
		t.Fatal("expected authorization failure for non-admin")
	} else if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}

	tickets, err := svc.ListAllTickets(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
}

func TestListAllNewestFirst(t *testing.T) {
	svc, _, _, owner, admin := newTicketFixture(t)
	first := mustCreate(t, svc, owner)
	second := mustCreate(t, svc, owner)

	tickets, err := svc.ListAllTickets(context.Background(), admin)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tickets) != 2 || tickets[0].ID != second.ID || tickets[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %+v", tickets)
	}
}

func TestListOwnTicketsScopedToCaller(t *testing.T) {
	svc, repo, _, owner, admin := newTicketFixture(t)
	other := &domain.User{ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
	repo.addOwner(other)

	mustCreate(t, svc, owner)
	mustCreate(t, svc, other)

	tickets, err := svc.ListOwnTickets(context.Background(), owner)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if len(tickets) != 1 || tickets[0].OwnerID != owner.ID {
		t.Fatalf("expected only owner's ticket, got %+v", tickets)
	}

	adminTickets, err := svc.ListOwnTickets(context.Background(), admin)
	if err != nil {
		t.Fatalf("list own admin: %v", err)
	}
	if len(adminTickets) != 0 {
		t.Fatalf("admin owns no tickets, got %d", len(adminTickets))
	}
}

func TestGetTicketNotFound(t *testing.T) {
	svc, _, _, _, _ := newTicketFixture(t)

	_, err := svc.GetTicket(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected not found")
	}
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	svc, _, _, owner, _ := newTicketFixture(t)
	ticket := mustCreate(t, svc, owner)

	_, err := svc.UpdateStatus(context.Background(), owner, ticket.ID, domain.TicketStatusClosed)
	if err == nil {
		t.Fatal("expected authorization failure")
	}
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	svc, _, _, owner, admin := newTicketFixture(t)
	ticket := mustCreate(t, svc, owner)

	_, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, "Archived")
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestUpdateStatusTransitionsAreUnconstrained(t *testing.T) {
	svc, _, dispatcher, owner, admin := newTicketFixture(t)
	ticket := mustCreate(t, svc, owner)

	// any state may move to any other, including Closed back to Open
	for _, status := range []domain.TicketStatus{
		domain.TicketStatusClosed,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
	} {
		updated, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, status)
		if err != nil {
			t.Fatalf("update to %q: %v", status, err)
		}
		if updated.Status != status {
			t.Fatalf("expected %q, got %q", status, updated.Status)
		}
		if updated.Owner == nil {
			t.Fatal("expected expanded owner on updated record")
		}
	}

	var updatedEvents int
	for _, event := range dispatcher.recorded() {
		if event.Type == events.EventTicketUpdated {
			updatedEvents++
		}
	}
	if updatedEvents != 3 {
		t.Fatalf("expected 3 ticketUpdated events, got %d", updatedEvents)
	}
}

func TestUpdateStatusMissingTicket(t *testing.T) {
	svc, _, _, _, admin := newTicketFixture(t)

	_, err := svc.UpdateStatus(context.Background(), admin, "missing", domain.TicketStatusClosed)
	if err == nil {
		t.Fatal("expected not found")
	}
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestDeleteOwnTicketRules(t *testing.T) {
	svc, repo, _, owner, admin := newTicketFixture(t)
	other := &domain.User{ID: "user-2", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
	repo.addOwner(other)
	ticket := mustCreate(t, svc, owner)

	if err := svc.DeleteOwnTicket(context.Background(), owner, "missing"); err == nil {
		t.Fatal("expected not found for missing ticket")
	} else if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}

	if err := svc.DeleteOwnTicket(context.Background(), other, ticket.ID); err == nil {
		t.Fatal("expected authorization failure for non-owner")
	} else if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}

	if _, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, domain.TicketStatusInProgress); err != nil {
		t.Fatalf("move to In Progress: %v", err)
	}
	if err := svc.DeleteOwnTicket(context.Background(), owner, ticket.ID); err == nil {
		t.Fatal("expected invalid state for in-progress ticket, even for the owner")
	} else if code := domainCode(t, err); code != "INVALID_STATE" {
		t.Fatalf("expected INVALID_STATE, got %s", code)
	}
	if _, err := svc.GetTicket(context.Background(), ticket.ID); err != nil {
		t.Fatalf("ticket must survive a rejected delete: %v", err)
	}
}

func TestDeleteOwnTicketAfterClose(t *testing.T) {
	svc, _, dispatcher, owner, admin := newTicketFixture(t)
	ticket := mustCreate(t, svc, owner)

	if _, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, domain.TicketStatusClosed); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := svc.DeleteOwnTicket(context.Background(), owner, ticket.ID); err != nil {
		t.Fatalf("delete closed ticket: %v", err)
	}
	if _, err := svc.GetTicket(context.Background(), ticket.ID); err == nil {
		t.Fatal("expected not found after delete")
	}

	recorded := dispatcher.recorded()
	last := recorded[len(recorded)-1]
	if last.Type != events.EventTicketDeleted {
		t.Fatalf("expected ticketDeleted, got %s", last.Type)
	}
	payload, ok := last.Payload.(events.TicketDeletedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", last.Payload)
	}
	if payload.TicketID != ticket.ID || payload.OwnerID != owner.ID {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestStatusAndPriorityAlwaysInEnum(t *testing.T) {
	svc, _, _, owner, admin := newTicketFixture(t)
	ticket := mustCreate(t, svc, owner)

	check := func(tk *domain.Ticket) {
		t.Helper()
		if !domain.ValidStatus(tk.Status) {
			t.Fatalf("status out of enum: %q", tk.Status)
		}
		if !domain.ValidPriority(tk.Priority) {
			t.Fatalf("priority out of enum: %q", tk.Priority)
		}
	}

	check(ticket)
	updated, err := svc.UpdateStatus(context.Background(), admin, ticket.ID, domain.TicketStatusInProgress)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	check(updated)
	fetched, err := svc.GetTicket(context.Background(), ticket.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	check(fetched)
}

package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var created, updated int
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	dispatcher.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		created++
		return nil
	})
	dispatcher.Subscribe(EventTicketUpdated, func(context.Context, Event) error {
		updated++
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if created != 2 {
		t.Fatalf("expected both created handlers invoked, got %d", created)
	}
	if updated != 0 {
		t.Fatalf("updated handler must not fire, got %d", updated)
	}
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var reached bool
	dispatcher.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventTicketDeleted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventTicketDeleted}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Fatal("second handler must run despite first handler error")
	}
}

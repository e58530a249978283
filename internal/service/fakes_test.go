package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	owners  map[string]domain.TicketOwner
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*domain.Ticket),
		owners:  make(map[string]domain.TicketOwner),
	}
}

func (r *fakeTicketRepo) addOwner(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.owners[user.ID] = domain.TicketOwner{ID: user.ID, Name: user.Name, Email: user.Email}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	if owner, ok := r.owners[ticket.OwnerID]; ok {
		copied.Owner = &owner
	}
	return &copied, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(*domain.Ticket) bool { return true }), nil
}

func (r *fakeTicketRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(t *domain.Ticket) bool { return t.OwnerID == ownerID }), nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) collect(match func(*domain.Ticket) bool) []domain.Ticket {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if !match(ticket) {
			continue
		}
		copied := *ticket
		if owner, ok := r.owners[ticket.OwnerID]; ok {
			copied.Owner = &owner
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) recorded() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

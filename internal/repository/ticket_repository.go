package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketRepository encapsulates ticket persistence. Every read joins the
// owner so callers always receive the expanded {id, name, email} reference.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `
        t.id, t.user_id, t.name, t.issue, t.priority, t.status, t.created_at, t.updated_at,
        u.id, u.name, u.email`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (user_id, name, issue, priority, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.OwnerID,
		ticket.Name,
		ticket.Issue,
		ticket.Priority,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT` + ticketColumns + `
        FROM tickets t JOIN users u ON u.id = t.user_id
        WHERE t.id=$1`
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, id), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	const query = `
        SELECT` + ticketColumns + `
        FROM tickets t JOIN users u ON u.id = t.user_id
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Ticket, error) {
	const query = `
        SELECT` + ticketColumns + `
        FROM tickets t JOIN users u ON u.id = t.user_id
        WHERE t.user_id=$1
        ORDER BY t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// UpdateStatus writes a single row; Postgres row-level atomicity is the only
// concurrency guard (concurrent admin updates are last-write-wins).
func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tickets WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	var owner domain.TicketOwner
	if err := row.Scan(
		&ticket.ID,
		&ticket.OwnerID,
		&ticket.Name,
		&ticket.Issue,
		&ticket.Priority,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
	); err != nil {
		return err
	}
	ticket.Owner = &owner
	return nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

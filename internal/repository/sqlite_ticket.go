package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spec-kit/resource-service/internal/domain"
)

type sqliteTicketRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteTicketRepository returns a SQLite-backed implementation.
// now stamps CreatedAt; nil means time.Now.
func NewSQLiteTicketRepository(db *sql.DB, now func() time.Time) TicketRepository {
	if now == nil {
		now = time.Now
	}
	return &sqliteTicketRepository{db: db, now: now}
}

func (r *sqliteTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	createdAt := stamp(r.now())
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tickets (title, description, user_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		ticket.Title, ticket.Description, ticket.UserID, string(ticket.Status), createdAt.Format(sqliteTime))
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	ticket.ID = id
	ticket.CreatedAt = createdAt
	return nil
}

func (r *sqliteTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id)
	return r.single(row)
}

func (r *sqliteTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE tickets SET status = ? WHERE id = ? RETURNING `+ticketColumns, string(status), id)
	return r.single(row)
}

func (r *sqliteTicketRepository) single(row *sql.Row) (*domain.Ticket, error) {
	ticket, err := scanSQLiteTicket(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select ticket: %w", err)
	}
	return ticket, nil
}

func (r *sqliteTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	result := []domain.Ticket{}
	for rows.Next() {
		ticket, err := scanSQLiteTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func (r *sqliteTicketRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ticket: %w", err)
	}
	return requireAffected(res)
}

func scanSQLiteTicket(row rowScanner) (*domain.Ticket, error) {
	var (
		ticket    domain.Ticket
		status    string
		createdAt string
	)
	if err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.UserID,
		&status,
		&createdAt,
	); err != nil {
		return nil, err
	}
	parsed, err := parseSQLiteTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	parsedStatus, err := domain.ParseTicketStatus(status)
	if err != nil {
		return nil, err
	}
	ticket.Status = parsedStatus
	ticket.CreatedAt = parsed
	return &ticket, nil
}

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resource-service/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestPostgresUserCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@example.com", true).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	user := &domain.User{Name: "Ana", Email: "ana@example.com", IsAdmin: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(42), user.ID)
}

func TestPostgresUserCreate_DuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@example.com", false).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestPostgresUserCreate_DBError(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana", "ana@example.com", false).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &domain.User{Name: "Ana", Email: "ana@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}

func TestPostgresUserUpdate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("Bo", "bo@example.com", false, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("Bo", "bo@example.com", false, int64(999999)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("Bo", "taken@example.com", false, int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	ctx := context.Background()
	require.NoError(t, repo.Update(ctx, &domain.User{ID: 3, Name: "Bo", Email: "bo@example.com"}))
	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 999999, Name: "Bo", Email: "bo@example.com"}), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 3, Name: "Bo", Email: "taken@example.com"}), ErrDuplicateEmail)
}

func TestPostgresUserGetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT id, name, email, is_admin\s+FROM users WHERE id=\$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "is_admin"}).
			AddRow(int64(1), "Ana", "ana@example.com", true))
	mock.ExpectQuery(`SELECT id, name, email, is_admin\s+FROM users WHERE id=\$1`).
		WithArgs(int64(2)).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: 1, Name: "Ana", Email: "ana@example.com", IsAdmin: true}, *got)

	_, err = repo.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresUserListAndDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users ORDER BY id ASC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "email", "is_admin"}).
			AddRow(int64(1), "Ana", "ana@example.com", true).
			AddRow(int64(2), "Bo", "bo@example.com", false))
	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM users`).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ctx := context.Background()
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bo", users[1].Name)

	require.NoError(t, repo.Delete(ctx, 1))
	assert.ErrorIs(t, repo.Delete(ctx, 1), ErrNotFound)
}

func TestPostgresTicketCreateAndUpdateStatus(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTicketRepository(mock)
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs("Login", "Cannot sign in", int64(7), "Open").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), created))
	mock.ExpectQuery(`UPDATE tickets SET status=\$1`).
		WithArgs("Closed", int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "description", "user_id", "status", "created_at"}).
			AddRow(int64(10), "Login", "Cannot sign in", int64(7), "Closed", created))
	mock.ExpectQuery(`UPDATE tickets SET status=\$1`).
		WithArgs("Open", int64(999999)).
		WillReturnError(pgx.ErrNoRows)

	ctx := context.Background()
	ticket := &domain.Ticket{Title: "Login", Description: "Cannot sign in", UserID: 7, Status: domain.TicketStatusOpen}
	require.NoError(t, repo.Create(ctx, ticket))
	assert.Equal(t, int64(10), ticket.ID)
	assert.True(t, created.Equal(ticket.CreatedAt))

	updated, err := repo.UpdateStatus(ctx, 10, domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, updated.Status)
	assert.True(t, created.Equal(updated.CreatedAt))

	_, err = repo.UpdateStatus(ctx, 999999, domain.TicketStatusOpen)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresTicketGetListDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewTicketRepository(mock)
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{"id", "title", "description", "user_id", "status", "created_at"}

	mock.ExpectQuery(`FROM tickets WHERE id=\$1`).WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(10), "Login", "Cannot sign in", int64(7), "Open", created))
	mock.ExpectQuery(`FROM tickets WHERE id=\$1`).WithArgs(int64(11)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`FROM tickets ORDER BY id ASC`).
		WillReturnRows(pgxmock.NewRows(cols).AddRow(int64(10), "Login", "Cannot sign in", int64(7), "Open", created))
	mock.ExpectExec(`DELETE FROM tickets`).WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM tickets`).WithArgs(int64(10)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ctx := context.Background()
	got, err := repo.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, got.Status)

	_, err = repo.GetByID(ctx, 11)
	assert.ErrorIs(t, err, ErrNotFound)

	tickets, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)

	require.NoError(t, repo.Delete(ctx, 10))
	assert.ErrorIs(t, repo.Delete(ctx, 10), ErrNotFound)
}

package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resource-service/internal/domain"
)

// userRepositoryContract exercises behaviour every UserRepository backend must share.
func userRepositoryContract(t *testing.T, newRepo func(t *testing.T) UserRepository) {
	ctx := context.Background()

	t.Run("create assigns increasing ids", func(t *testing.T) {
		repo := newRepo(t)
		a := &domain.User{Name: "Ana", Email: "ana@example.com", IsAdmin: true}
		b := &domain.User{Name: "Bo", Email: "bo@example.com"}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))
		assert.Greater(t, a.ID, int64(0))
		assert.Greater(t, b.ID, a.ID)

		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, *a, *got)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := newRepo(t)
		first := &domain.User{Name: "One", Email: "dup@example.com"}
		require.NoError(t, repo.Create(ctx, first))

		err := repo.Create(ctx, &domain.User{Name: "Two", Email: "dup@example.com"})
		require.ErrorIs(t, err, ErrDuplicateEmail)

		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "One", got.Name)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := newRepo(t)
		a := &domain.User{Name: "A", Email: "a@example.com"}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Delete(ctx, a.ID))

		b := &domain.User{Name: "A", Email: "a@example.com"}
		require.NoError(t, repo.Create(ctx, b))
		assert.Greater(t, b.ID, a.ID)

		_, err := repo.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		a := &domain.User{Name: "A", Email: "a@example.com"}
		b := &domain.User{Name: "B", Email: "b@example.com"}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		a.Name = "A2"
		a.Email = "a2@example.com"
		a.IsAdmin = true
		require.NoError(t, repo.Update(ctx, a))
		got, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, *a, *got)

		// the old address is free again
		c := &domain.User{Name: "C", Email: "a@example.com"}
		require.NoError(t, repo.Create(ctx, c))

		b.Email = "a2@example.com"
		assert.ErrorIs(t, repo.Update(ctx, b), ErrDuplicateEmail)

		missing := &domain.User{ID: 999999, Name: "X", Email: "x@example.com"}
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
	})

	t.Run("keeping own email on update", func(t *testing.T) {
		repo := newRepo(t)
		a := &domain.User{Name: "A", Email: "same@example.com"}
		require.NoError(t, repo.Create(ctx, a))
		a.Name = "renamed"
		require.NoError(t, repo.Update(ctx, a))
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		repo := newRepo(t)
		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		for i := 0; i < 5; i++ {
			require.NoError(t, repo.Create(ctx, &domain.User{Name: "U", Email: fmt.Sprintf("u%d@example.com", i)}))
		}
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 5)
		for i := 1; i < len(users); i++ {
			assert.Less(t, users[i-1].ID, users[i].ID)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		repo := newRepo(t)
		assert.ErrorIs(t, repo.Delete(ctx, 999999), ErrNotFound)
	})

	t.Run("concurrent creates with one email admit exactly one", func(t *testing.T) {
		repo := newRepo(t)
		var (
			wg        sync.WaitGroup
			succeeded atomic.Int32
			conflicts atomic.Int32
		)
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Create(ctx, &domain.User{Name: "racer", Email: "race@example.com"})
				switch {
				case err == nil:
					succeeded.Add(1)
				case assert.ErrorIs(t, err, ErrDuplicateEmail):
					conflicts.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), succeeded.Load())
		assert.Equal(t, int32(15), conflicts.Load())
	})
}

// ticketRepositoryContract exercises behaviour every TicketRepository backend must share.
func ticketRepositoryContract(t *testing.T, newRepo func(t *testing.T, now func() time.Time) TicketRepository) {
	ctx := context.Background()
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.FixedZone("X", 3600))
	clock := func() time.Time { return fixed }

	newTicket := func() *domain.Ticket {
		return &domain.Ticket{
			Title:       "Login broken",
			Description: "User cannot sign in",
			UserID:      7,
			Status:      domain.TicketStatusOpen,
		}
	}

	t.Run("create stamps id and createdAt", func(t *testing.T) {
		repo := newRepo(t, clock)
		ticket := newTicket()
		require.NoError(t, repo.Create(ctx, ticket))
		assert.Greater(t, ticket.ID, int64(0))
		assert.True(t, ticket.CreatedAt.Equal(fixed.Truncate(time.Microsecond)))
		assert.Equal(t, time.UTC, ticket.CreatedAt.Location())

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, ticket.Title, got.Title)
		assert.Equal(t, ticket.Description, got.Description)
		assert.Equal(t, ticket.UserID, got.UserID)
		assert.Equal(t, domain.TicketStatusOpen, got.Status)
		assert.True(t, ticket.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("status update keeps other fields", func(t *testing.T) {
		repo := newRepo(t, clock)
		ticket := newTicket()
		require.NoError(t, repo.Create(ctx, ticket))

		updated, err := repo.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, updated.Status)
		assert.Equal(t, ticket.Title, updated.Title)
		assert.True(t, ticket.CreatedAt.Equal(updated.CreatedAt))

		again, err := repo.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, again.Status)

		got, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusClosed, got.Status)

		_, err = repo.UpdateStatus(ctx, 999999, domain.TicketStatusOpen)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete and list", func(t *testing.T) {
		repo := newRepo(t, clock)
		a, b := newTicket(), newTicket()
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))

		require.NoError(t, repo.Delete(ctx, a.ID))
		assert.ErrorIs(t, repo.Delete(ctx, a.ID), ErrNotFound)
		_, err := repo.GetByID(ctx, a.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		tickets, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, b.ID, tickets[0].ID)

		c := newTicket()
		require.NoError(t, repo.Create(ctx, c))
		assert.Greater(t, c.ID, b.ID)
	})
}

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/resource-service/internal/domain"
)

type memoryTicketRepository struct {
	mu   sync.RWMutex
	ids  sequence
	now  func() time.Time
	byID map[int64]domain.Ticket
}

// NewMemoryTicketRepository returns a process-local implementation.
// now stamps CreatedAt; nil means time.Now.
func NewMemoryTicketRepository(now func() time.Time) TicketRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryTicketRepository{
		now:  now,
		byID: make(map[int64]domain.Ticket),
	}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = r.ids.Next()
	ticket.CreatedAt = stamp(r.now())
	r.byID[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.RLock()
	result := make([]domain.Ticket, 0, len(r.byID))
	for _, ticket := range r.byID {
		result = append(result, ticket)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *memoryTicketRepository) UpdateStatus(_ context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	ticket.Status = status
	r.byID[id] = ticket
	return &ticket, nil
}

func (r *memoryTicketRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// stamp normalizes a creation time to UTC with microsecond precision,
// matching what the SQL backends can round-trip.
func stamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

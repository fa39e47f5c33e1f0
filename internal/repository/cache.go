package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/resource-service/internal/domain"
)

// recordCache stores JSON snapshots of records under "<prefix>:<id>".
// Redis failures degrade to cache misses; the wrapped store stays authoritative.
type recordCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

func (c recordCache[T]) key(id int64) string {
	return c.prefix + ":" + strconv.FormatInt(id, 10)
}

func (c recordCache[T]) get(ctx context.Context, id int64) (*T, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", zap.String("key", c.key(id)), zap.Error(err))
		}
		return nil, false
	}
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		c.logger.Warn("cache entry corrupt", zap.String("key", c.key(id)), zap.Error(err))
		c.evict(ctx, id)
		return nil, false
	}
	return &record, true
}

func (c recordCache[T]) set(ctx context.Context, id int64, record *T) {
	raw, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(id), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", c.key(id)), zap.Error(err))
	}
}

func (c recordCache[T]) evict(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		c.logger.Warn("cache evict failed", zap.String("key", c.key(id)), zap.Error(err))
	}
}

type cachedUserRepository struct {
	next  UserRepository
	cache recordCache[domain.User]
}

// NewCachedUserRepository puts a read-through Redis cache in front of next.
func NewCachedUserRepository(next UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	return &cachedUserRepository{
		next:  next,
		cache: recordCache[domain.User]{client: client, prefix: "users", ttl: ttl, logger: logger},
	}
}

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.next.Create(ctx, user)
}

func (r *cachedUserRepository) Update(ctx context.Context, user *domain.User) error {
	err := r.next.Update(ctx, user)
	r.cache.evict(ctx, user.ID)
	return err
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user, ok := r.cache.get(ctx, id); ok {
		return user, nil
	}
	user, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, id, user)
	return user, nil
}

func (r *cachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.next.List(ctx)
}

func (r *cachedUserRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	r.cache.evict(ctx, id)
	return err
}

type cachedTicketRepository struct {
	next  TicketRepository
	cache recordCache[domain.Ticket]
}

// NewCachedTicketRepository puts a read-through Redis cache in front of next.
func NewCachedTicketRepository(next TicketRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) TicketRepository {
	return &cachedTicketRepository{
		next:  next,
		cache: recordCache[domain.Ticket]{client: client, prefix: "tickets", ttl: ttl, logger: logger},
	}
}

func (r *cachedTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	return r.next.Create(ctx, ticket)
}

func (r *cachedTicketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	if ticket, ok := r.cache.get(ctx, id); ok {
		return ticket, nil
	}
	ticket, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.set(ctx, id, ticket)
	return ticket, nil
}

func (r *cachedTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.next.List(ctx)
}

func (r *cachedTicketRepository) UpdateStatus(ctx context.Context, id int64, status domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := r.next.UpdateStatus(ctx, id, status)
	r.cache.evict(ctx, id)
	return ticket, err
}

func (r *cachedTicketRepository) Delete(ctx context.Context, id int64) error {
	err := r.next.Delete(ctx, id)
	r.cache.evict(ctx, id)
	return err
}

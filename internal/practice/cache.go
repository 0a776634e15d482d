package practice

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 2 * time.Hour

// SessionCache defines session storage behavior (implemented by Redis-backed Cache).
type SessionCache interface {
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Set(ctx context.Context, s *Session) error
}

// Cache keeps in-flight practice sessions in Redis so grading sees exactly the
// questions that were served.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SessionCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// TTL is how long a stored session stays readable.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) key(id uuid.UUID) string {
	return "practice:session:" + id.String()
}

// Get returns nil, nil on a miss.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Cache) Set(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(s.ID), data, c.ttl).Err()
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/orienta/internal/session"
)

const (
	defaultPrefix    = "orienta"
	maxUpdateRetries = 5
)

// Redis stores sessions as JSON strings and guards updates with WATCH/MULTI.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis creates a Redis repository. A zero ttl keeps sessions forever.
func NewRedis(rdb *redis.Client, prefix string, ttl time.Duration) *Redis {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Redis{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Close closes the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, id)
}

func (r *Redis) activeKey(ownerID string) string {
	return fmt.Sprintf("%s:owner:%s:active", r.prefix, ownerID)
}

func (r *Redis) Create(ctx context.Context, s *session.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	sessionKey, activeKey := r.sessionKey(s.ID), r.activeKey(s.OwnerID)

	err = r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, sessionKey, activeKey).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return session.ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey, data, r.ttl)
			if s.State == session.StateInProgress {
				pipe.Set(ctx, activeKey, s.ID, r.ttl)
			}
			return nil
		})
		return err
	}, sessionKey, activeKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrConflict), errors.Is(err, redis.TxFailedErr):
		return session.ErrConflict
	default:
		return fmt.Errorf("create session: %w", err)
	}
}

func (r *Redis) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := r.rdb.Get(ctx, r.sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decode(data)
}

func (r *Redis) FindActive(ctx context.Context, ownerID string) (*session.Session, error) {
	id, err := r.rdb.Get(ctx, r.activeKey(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}

	s, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.State != session.StateInProgress {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (r *Redis) Update(ctx context.Context, id string, fn func(*session.Session) error) (*session.Session, error) {
	key := r.sessionKey(id)

	for i := 0; i < maxUpdateRetries; i++ {
		var updated *session.Session
		err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Bytes()
			if errors.Is(err, redis.Nil) {
				return session.ErrNotFound
			}
			if err != nil {
				return err
			}

			s, out, err := apply(data, id, fn)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, out, r.ttl)
				if s.State == session.StateInProgress {
					pipe.Set(ctx, r.activeKey(s.OwnerID), s.ID, r.ttl)
				} else {
					pipe.Del(ctx, r.activeKey(s.OwnerID))
				}
				return nil
			})
			if err != nil {
				return err
			}
			updated = s
			return nil
		}, key)

		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("%w: too many concurrent updates of %s", session.ErrConflict, id)
}

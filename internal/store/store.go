// Package store implements session.Repository on top of memory, SQLite and
// Redis.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/orienta/internal/session"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config selects and configures a driver.
type Config struct {
	Driver string `mapstructure:"driver"`
	SQLite struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"sqlite"`
	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		Prefix   string        `mapstructure:"prefix"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
}

// Closer is implemented by repositories holding external resources.
type Closer interface {
	Close() error
}

// Open creates the repository described by cfg.
func Open(ctx context.Context, cfg Config) (session.Repository, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		return NewSQLite(ctx, cfg.SQLite.Path)
	case DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedis(rdb, cfg.Redis.Prefix, cfg.Redis.TTL), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func encode(s *session.Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*session.Session, error) {
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}

// apply runs fn on a decoded copy of data and refuses changes of identity.
func apply(data []byte, id string, fn func(*session.Session) error) (*session.Session, []byte, error) {
	s, err := decode(data)
	if err != nil {
		return nil, nil, err
	}
	owner := s.OwnerID

	if err := fn(s); err != nil {
		return nil, nil, err
	}
	if s.ID != id || s.OwnerID != owner {
		return nil, nil, fmt.Errorf("%w: session identity cannot change", session.ErrConflict)
	}

	out, err := encode(s)
	if err != nil {
		return nil, nil, err
	}
	return s, out, nil
}

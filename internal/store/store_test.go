package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/orienta/internal/evidence"
	"github.com/spigell/orienta/internal/session"
	"github.com/spigell/orienta/internal/taxonomy"
)

func backends(t *testing.T) map[string]session.Repository {
	t.Helper()

	sqlite, err := NewSQLite(context.Background(), filepath.Join(t.TempDir(), "orienta.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})

	return map[string]session.Repository{
		"memory": NewMemory(),
		"sqlite": sqlite,
		"redis":  NewRedis(rdb, "test", 0),
	}
}

func newSession(id, owner string) *session.Session {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &session.Session{
		ID:        id,
		OwnerID:   owner,
		State:     session.StateInProgress,
		Evidence:  evidence.NewLedger(taxonomy.Keys()),
		Questions: []*session.Question{{ID: "q1", StepNumber: 1, Phase: 1, Text: "¿Qué te gusta?", Options: []string{"a", "b"}}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepositoryContract(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Create(ctx, newSession("s1", "owner-1")))

			got, err := repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, "owner-1", got.OwnerID)
			assert.Equal(t, "¿Qué te gusta?", got.Questions[0].Text)
			assert.Len(t, got.Evidence.Domains, len(taxonomy.Keys()))

			_, err = repo.Get(ctx, "missing")
			assert.ErrorIs(t, err, session.ErrNotFound)

			err = repo.Create(ctx, newSession("s2", "owner-1"))
			assert.ErrorIs(t, err, session.ErrConflict, "second in-progress session of the same owner")

			active, err := repo.FindActive(ctx, "owner-1")
			require.NoError(t, err)
			assert.Equal(t, "s1", active.ID)

			_, err = repo.FindActive(ctx, "owner-2")
			assert.ErrorIs(t, err, session.ErrNotFound)

			updated, err := repo.Update(ctx, "s1", func(s *session.Session) error {
				s.CurrentIndex = 1
				s.Evidence.Domains["salud"].Weight = 3
				s.Version++
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, 1, updated.CurrentIndex)

			got, err = repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, 3, got.Evidence.Weight("salud"))
			assert.Equal(t, int64(1), got.Version)

			boom := errors.New("boom")
			_, err = repo.Update(ctx, "s1", func(s *session.Session) error {
				s.CurrentIndex = 7
				return boom
			})
			assert.ErrorIs(t, err, boom)
			got, err = repo.Get(ctx, "s1")
			require.NoError(t, err)
			assert.Equal(t, 1, got.CurrentIndex, "failed update must not be persisted")

			_, err = repo.Update(ctx, "s1", func(s *session.Session) error {
				s.OwnerID = "thief"
				return nil
			})
			assert.ErrorIs(t, err, session.ErrConflict)

			_, err = repo.Update(ctx, "missing", func(*session.Session) error { return nil })
			assert.ErrorIs(t, err, session.ErrNotFound)

			_, err = repo.Update(ctx, "s1", func(s *session.Session) error {
				s.State = session.StateCompleted
				return nil
			})
			require.NoError(t, err)

			_, err = repo.FindActive(ctx, "owner-1")
			assert.ErrorIs(t, err, session.ErrNotFound, "completed sessions are not active")
			assert.NoError(t, repo.Create(ctx, newSession("s2", "owner-1")), "a new session is allowed after completion")
		})
	}
}

func TestRepositoryUpdatesAreAtomic(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Create(ctx, newSession("counter", "owner-c")))

			const workers = 8
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for {
						_, err := repo.Update(ctx, "counter", func(s *session.Session) error {
							s.Version++
							return nil
						})
						if !errors.Is(err, session.ErrConflict) {
							assert.NoError(t, err)
							return
						}
					}
				}()
			}
			wg.Wait()

			got, err := repo.Get(ctx, "counter")
			require.NoError(t, err)
			assert.Equal(t, int64(workers), got.Version)
		})
	}
}

func TestRedisUpdateRefreshesActiveKey(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewRedis(rdb, "test", time.Hour)
	require.NoError(t, repo.Create(ctx, newSession("s1", "owner-ttl")))

	mr.FastForward(50 * time.Minute)
	_, err = repo.Update(ctx, "s1", func(s *session.Session) error {
		s.Version++
		return nil
	})
	require.NoError(t, err)
	mr.FastForward(20 * time.Minute)

	active, err := repo.FindActive(ctx, "owner-ttl")
	require.NoError(t, err)
	assert.Equal(t, "s1", active.ID)
	assert.ErrorIs(t, repo.Create(ctx, newSession("s2", "owner-ttl")), session.ErrConflict)

	mr.FastForward(time.Hour)
	_, err = repo.FindActive(ctx, "owner-ttl")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	repo, err := Open(ctx, Config{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, repo)

	cfg := Config{Driver: DriverSQLite}
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "nested", "db.sqlite")
	repo, err = Open(ctx, cfg)
	require.NoError(t, err)
	if c, ok := repo.(Closer); ok {
		defer c.Close()
	}
	assert.IsType(t, &SQLite{}, repo)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	cfg = Config{Driver: DriverRedis}
	cfg.Redis.Addr = mr.Addr()
	repo, err = Open(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, repo)

	_, err = Open(ctx, Config{Driver: "mongo"})
	assert.Error(t, err)
}

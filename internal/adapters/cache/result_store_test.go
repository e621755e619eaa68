package cache

import (
	"context"
	"gps-route-service/internal/adapters/repositories"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/db"
	"gps-route-service/internal/ports"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = domain.Day{Year: 2026, Month: time.October, Day: 10}

func exerciseResultStore(t *testing.T, store ports.ResultStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, testDay)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, domain.DayAggregate{Day: testDay, RouteID: 4, TotalKm: 11834.5}))

	got, ok, err := store.Get(ctx, testDay)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.DayAggregate{Day: testDay, RouteID: 4, TotalKm: 11834.5}, got)

	// Overwrite keeps a single entry per day.
	require.NoError(t, store.Put(ctx, domain.DayAggregate{Day: testDay, RouteID: 5, TotalKm: 1}))
	got, _, err = store.Get(ctx, testDay)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteID(5), got.RouteID)

	_, ok, err = store.Get(ctx, domain.Day{Year: 2026, Month: time.October, Day: 11})
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, store.Put(ctx, domain.DayAggregate{RouteID: 1}))
}

func TestSqliteResultStore(t *testing.T) {
	conn, err := db.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSQLiteSchema(context.Background(), conn))

	exerciseResultStore(t, NewSqliteResultStore(conn))
}

func TestRedisResultStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisResultStore(client, "")
	exerciseResultStore(t, store)

	assert.True(t, mr.Exists(DefaultKeyPrefix+"2026-10-10"))
	assert.Equal(t, time.Duration(0), mr.TTL(DefaultKeyPrefix+"2026-10-10"))
}

func TestRedisResultStoreCorruptValue(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("p:2026-10-10", "not json"))

	_, _, err := NewRedisResultStore(client, "p:").Get(context.Background(), testDay)
	assert.Error(t, err)
}

func TestNilBackends(t *testing.T) {
	ctx := context.Background()
	for _, s := range []ports.ResultStore{&SQLResultStore{}, &SqliteResultStore{}, &RedisResultStore{}} {
		_, _, err := s.Get(ctx, testDay)
		assert.Error(t, err)
		assert.Error(t, s.Put(ctx, domain.DayAggregate{Day: testDay}))
	}
}

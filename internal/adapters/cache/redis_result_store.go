package cache

import (
	"context"
	"errors"
	"fmt"
	"gps-route-service/internal/domain"
	"gps-route-service/internal/platform/obs"
	"gps-route-service/internal/ports"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "gps-route:longest:"

// RedisResultStore shares day aggregates between service instances.
// Keys never expire.
type RedisResultStore struct {
	Client *redis.Client
	Prefix string
}

var _ ports.ResultStore = (*RedisResultStore)(nil)

type redisDayResult struct {
	RouteID int64   `json:"route_id"`
	TotalKm float64 `json:"total_km"`
}

func NewRedisResultStore(client *redis.Client, prefix string) *RedisResultStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisResultStore{Client: client, Prefix: prefix}
}

func (r *RedisResultStore) key(day domain.Day) string {
	return r.Prefix + day.String()
}

func (r *RedisResultStore) Get(ctx context.Context, day domain.Day) (_ domain.DayAggregate, _ bool, err error) {
	defer obs.Time(ctx, "result.redis.Get")(&err)

	if r.Client == nil {
		return domain.DayAggregate{}, false, errors.New("redis result store: client is nil")
	}

	raw, err := r.Client.Get(ctx, r.key(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.DayAggregate{}, false, nil
	}
	if err != nil {
		return domain.DayAggregate{}, false, fmt.Errorf("get day result %s: redis get: %w", day, err)
	}

	var v redisDayResult
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.DayAggregate{}, false, fmt.Errorf("get day result %s: decode: %w", day, err)
	}

	return domain.DayAggregate{Day: day, RouteID: domain.RouteID(v.RouteID), TotalKm: v.TotalKm}, true, nil
}

func (r *RedisResultStore) Put(ctx context.Context, agg domain.DayAggregate) error {
	if r.Client == nil {
		return errors.New("redis result store: client is nil")
	}

	if agg.Day.IsZero() {
		return errors.New("put day result: day must not be empty")
	}

	raw, err := json.Marshal(redisDayResult{RouteID: int64(agg.RouteID), TotalKm: agg.TotalKm})
	if err != nil {
		return fmt.Errorf("put day result %s: encode: %w", agg.Day, err)
	}

	if err := r.Client.Set(ctx, r.key(agg.Day), raw, 0).Err(); err != nil {
		return fmt.Errorf("put day result %s: redis set: %w", agg.Day, err)
	}

	return nil
}

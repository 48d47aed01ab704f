package usage

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldCount   = "count"
	fieldStarted = "started"
)

// RedisStore implements Store on top of Redis hashes, one per (tenant, period).
// Every operation is a network call and honours ctx deadlines.
type RedisStore struct {
	client   redis.UniversalClient
	prefix   string
	now      Clock
	ttlGrace time.Duration
}

// NewRedisStore creates a store using the given client.
func NewRedisStore(client redis.UniversalClient, opts ...Option) *RedisStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &RedisStore{
		client:   client,
		prefix:   o.keyPrefix,
		now:      o.now,
		ttlGrace: o.ttlGrace,
	}
}

func (s *RedisStore) key(tenantID string, period Period) string {
	return s.prefix + tenantID + ":" + string(period)
}

func (s *RedisStore) Increment(ctx context.Context, tenantID string) (Counter, error) {
	if tenantID == "" {
		return Counter{}, ErrInvalidTenantID
	}

	now := s.now().UTC()
	period := PeriodOf(now)
	key := s.key(tenantID, period)

	var (
		incr    *redis.IntCmd
		started *redis.StringCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.HIncrBy(ctx, key, fieldCount, 1)
		pipe.HSetNX(ctx, key, fieldStarted, now.UnixMilli())
		started = pipe.HGet(ctx, key, fieldStarted)
		pipe.ExpireAt(ctx, key, period.End().Add(s.ttlGrace))
		return nil
	})
	if err != nil {
		return Counter{}, errors.Join(ErrStoreUnavailable, err)
	}

	return Counter{
		TenantID:        tenantID,
		Period:          period,
		Count:           incr.Val(),
		WindowStartedAt: parseMillis(started.Val(), now),
	}, nil
}

func (s *RedisStore) Peek(ctx context.Context, tenantID string) (Counter, error) {
	if tenantID == "" {
		return Counter{}, ErrInvalidTenantID
	}

	period := PeriodOf(s.now())
	vals, err := s.client.HMGet(ctx, s.key(tenantID, period), fieldCount, fieldStarted).Result()
	if err != nil {
		return Counter{}, errors.Join(ErrStoreUnavailable, err)
	}

	snapshot := Counter{
		TenantID:        tenantID,
		Period:          period,
		WindowStartedAt: period.Start(),
	}
	if len(vals) == 2 {
		if raw, ok := vals[0].(string); ok {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return Counter{}, errors.Join(ErrStoreUnavailable, err)
			}
			snapshot.Count = n
		}
		if raw, ok := vals[1].(string); ok {
			snapshot.WindowStartedAt = parseMillis(raw, snapshot.WindowStartedAt)
		}
	}

	return snapshot, nil
}

func (s *RedisStore) Reset(ctx context.Context, tenantID string) error {
	if tenantID == "" {
		return ErrInvalidTenantID
	}

	period := PeriodOf(s.now())
	key := s.key(tenantID, period)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, fieldCount, 0)
		pipe.ExpireAt(ctx, key, period.End().Add(s.ttlGrace))
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func parseMillis(raw string, fallback time.Time) time.Time {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return time.UnixMilli(ms).UTC()
}

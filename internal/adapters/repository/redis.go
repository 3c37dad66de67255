package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/okian/xgflow/internal/adapters/matchfile"
	"github.com/okian/xgflow/pkg/metrics"
)

const defaultKeyPrefix = "xgflow"

// RedisStore is a Store shared between processes. Documents live under
// "<prefix>:timeline:<id>" and a sorted set "<prefix>:timelines" orders ids by
// the time they were stored.
type RedisStore struct {
	client   redis.UniversalClient
	prefix   string
	capacity int
	ttl      time.Duration
}

var _ Store = (*RedisStore)(nil)

// RedisOption applies a configuration option to the RedisStore.
type RedisOption func(*RedisStore)

// WithRedisCapacity bounds the number of indexed documents.
func WithRedisCapacity(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithTTL expires stored documents after d. Zero keeps them until evicted.
func WithTTL(d time.Duration) RedisOption {
	return func(s *RedisStore) {
		if d >= 0 {
			s.ttl = d
		}
	}
}

// WithKeyPrefix namespaces every key written by the store.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore wraps client. The caller owns the client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:   client,
		prefix:   defaultKeyPrefix,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) docKey(matchID string) string {
	return fmt.Sprintf("%s:timeline:%s", s.prefix, matchID)
}

func (s *RedisStore) indexKey() string {
	return s.prefix + ":timelines"
}

// Put implements Store.
func (s *RedisStore) Put(ctx context.Context, doc matchfile.Document) error {
	if doc.MatchID == "" {
		return ErrMissingID
	}
	data, err := sonic.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling timeline: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(doc.MatchID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(time.Now().UnixNano()), Member: doc.MatchID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing timeline: %w", err)
	}

	if err := s.evict(ctx); err != nil {
		return err
	}
	metrics.UpdateStoredTimelines(s.Count(ctx))
	return nil
}

// evict drops the oldest ids beyond capacity together with their documents.
func (s *RedisStore) evict(ctx context.Context) error {
	stale, err := s.client.ZRange(ctx, s.indexKey(), 0, int64(-s.capacity-1)).Result()
	if err != nil {
		return fmt.Errorf("reading timeline index: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	keys := make([]string, len(stale))
	members := make([]interface{}, len(stale))
	for i, id := range stale {
		keys[i] = s.docKey(id)
		members[i] = id
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, s.indexKey(), members...)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("evicting timelines: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, matchID string) (matchfile.Document, error) {
	data, err := s.client.Get(ctx, s.docKey(matchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return matchfile.Document{}, ErrNotFound
	}
	if err != nil {
		return matchfile.Document{}, fmt.Errorf("reading timeline: %w", err)
	}

	var doc matchfile.Document
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return matchfile.Document{}, fmt.Errorf("unmarshaling timeline: %w", err)
	}
	return doc, nil
}

// List implements Store. Ids whose document already expired are skipped.
func (s *RedisStore) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	ids, err := s.client.ZRevRange(ctx, s.indexKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("reading timeline index: %w", err)
	}
	if len(ids) == 0 {
		return []Summary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.docKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading timelines: %w", err)
	}

	out := make([]Summary, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var doc matchfile.Document
		if err := sonic.UnmarshalString(raw, &doc); err != nil {
			continue
		}
		out = append(out, summarize(doc))
	}
	return out, nil
}

// Count implements Store. Errors count as an empty store.
func (s *RedisStore) Count(ctx context.Context) int {
	n, err := s.client.ZCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

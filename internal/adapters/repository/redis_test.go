package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/xgflow/internal/adapters/matchfile"
)

// redisClient connects to XGFLOW_TEST_REDIS_URL or skips the test.
func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("XGFLOW_TEST_REDIS_URL")
	if url == "" {
		t.Skip("XGFLOW_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	return client
}

func TestRedisStoreKeys(t *testing.T) {
	Convey("Given a redis store with a custom prefix", t, func() {
		s := NewRedisStore(nil, WithKeyPrefix("test"), WithRedisCapacity(5), WithTTL(time.Minute))

		Convey("Keys are namespaced", func() {
			So(s.docKey("m1"), ShouldEqual, "test:timeline:m1")
			So(s.indexKey(), ShouldEqual, "test:timelines")
			So(s.capacity, ShouldEqual, 5)
			So(s.ttl, ShouldEqual, time.Minute)
		})

		Convey("Documents without an id are refused before any I/O", func() {
			So(s.Put(context.Background(), matchfile.Document{}), ShouldEqual, ErrMissingID)
		})

		Convey("Non-positive limits are refused before any I/O", func() {
			_, err := s.List(context.Background(), 0)
			So(err, ShouldEqual, ErrInvalidLimit)
		})
	})
}

func TestRedisStore(t *testing.T) {
	client := redisClient(t)

	Convey("Given a redis store", t, func() {
		ctx := context.Background()
		prefix := "xgflow-test-" + uuid.NewString()
		s := NewRedisStore(client, WithKeyPrefix(prefix), WithRedisCapacity(2))
		Reset(func() {
			keys, _ := client.Keys(ctx, prefix+"*").Result()
			if len(keys) > 0 {
				_ = client.Del(ctx, keys...).Err()
			}
		})

		Convey("A stored document round-trips", func() {
			So(s.Put(ctx, doc("a", 1.5)), ShouldBeNil)
			got, err := s.Get(ctx, "a")
			So(err, ShouldBeNil)
			So(got.Home.TotalXG, ShouldEqual, 1.5)
			So(got.Label, ShouldEqual, "label a")
		})

		Convey("Unknown ids are not found", func() {
			_, err := s.Get(ctx, "missing")
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("The oldest document is evicted past capacity", func() {
			for _, id := range []string{"a", "b", "c"} {
				So(s.Put(ctx, doc(id, 1)), ShouldBeNil)
			}
			So(s.Count(ctx), ShouldEqual, 2)
			_, err := s.Get(ctx, "a")
			So(err, ShouldEqual, ErrNotFound)

			list, err := s.List(ctx, 10)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 2)
			So(list[0].MatchID, ShouldEqual, "c")
		})
	})
}

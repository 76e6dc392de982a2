package rdx

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects the shared redis client used for live engagement
// fan-out. Returns an error instead of failing hard so the server can
// run without live updates when redis is absent.
func Init(ctx context.Context) error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	return Conn.Ping(ctx).Err()
}

func Publish(ctx context.Context, channel string, payload []byte) error {
	if Conn == nil {
		return nil
	}
	return Conn.Publish(ctx, channel, payload).Err()
}

func Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	if Conn == nil {
		return nil
	}
	return Conn.Subscribe(ctx, channels...)
}

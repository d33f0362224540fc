package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs Store with Redis. All errors are logged and swallowed so
// report reads fall through to the database when Redis is down.
type RedisStore struct {
	client *redis.Client
}

// Connect builds a RedisStore from REDIS_URL. An empty REDIS_URL disables
// caching (returns nil, nil); a set-but-unreachable Redis is an error so
// misconfiguration is visible at startup.
func Connect() (*RedisStore, error) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[cache] GET %s error: %v", key, err)
		return nil, false
	}
	return data, true
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("[cache] SET %s error: %v", key, err)
	}
}

// DeleteByPattern removes every key matching a glob pattern. SCAN is used
// instead of KEYS so invalidation doesn't block the server.
func (s *RedisStore) DeleteByPattern(ctx context.Context, pattern string) {
	iter := s.client.Scan(ctx, 0, pattern, 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] SCAN %s error: %v", pattern, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] DEL %d keys error: %v", len(keys), err)
	}
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

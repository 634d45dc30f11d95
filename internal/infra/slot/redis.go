package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	repo "github.com/Yash24242424/cloneverse-express/internal/repository"

	"github.com/redis/go-redis/v9"
)

// Redisの1キー = 1カート
type RedisSlot struct {
	client *redis.Client
	ttl    time.Duration // 0なら期限なし
}

func NewRedisSlot(client *redis.Client, ttl time.Duration) *RedisSlot {
	return &RedisSlot{client: client, ttl: ttl}
}

func (s *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return b, nil
}

func (s *RedisSlot) Set(ctx context.Context, key string, payload []byte) error {
	if err := s.client.Set(ctx, slotKey(key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisSlot) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, slotKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func slotKey(key string) string {
	return fmt.Sprintf("cart:%s", key)
}

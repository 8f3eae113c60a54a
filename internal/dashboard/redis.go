package dashboard

import (
	"context"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

// RedisStorage keeps the dashboard state in Redis, for deployments where
// the dashboard process is replicated and state must be shared.
type RedisStorage struct {
	client *redislib.Client
	prefix string
}

func NewRedisStorage(client *redislib.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "dashboard:"
	}
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStorage) Get(key string) (string, error) {
	ctx, cancel := s.opContext()
	defer cancel()

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if err == redislib.Nil {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *RedisStorage) Set(key, value string) error {
	ctx, cancel := s.opContext()
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *RedisStorage) Delete(key string) error {
	ctx, cancel := s.opContext()
	defer cancel()
	return s.client.Del(ctx, s.prefix+key).Err()
}

func (s *RedisStorage) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 3*time.Second)
}

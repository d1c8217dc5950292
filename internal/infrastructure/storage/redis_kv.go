package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/storefront/internal/domain/repository"
)

const redisPingAttempts = 10

// RedisKVStore Redis asosidagi KV ombor
type RedisKVStore struct {
	client *redis.Client
	log    logrus.FieldLogger
}

// NewRedisKVStore "host:port" yoki "redis://..." manzil bo'yicha client yaratish
func NewRedisKVStore(redisAddr string, log logrus.FieldLogger) (*RedisKVStore, error) {
	if redisAddr == "" {
		return nil, errors.New("redis address bo'sh bo'lmasligi kerak")
	}

	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		}
	}

	return &RedisKVStore{
		client: redis.NewClient(opts),
		log:    log.WithField("component", "redis_kv"),
	}, nil
}

// Initialize ulanishni tekshirish (backoff bilan)
func (r *RedisKVStore) Initialize(ctx context.Context) error {
	backoff := 200 * time.Millisecond
	for i := 1; i <= redisPingAttempts; i++ {
		err := r.client.Ping(ctx).Err()
		if err == nil {
			r.log.WithField("attempt", i).Info("redis ping ok")
			return nil
		}
		r.log.WithError(err).WithField("attempt", i).Warn("redis ping failed")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}
	return errors.Errorf("redis: %d urinishdan keyin ulanib bo'lmadi", redisPingAttempts)
}

// Read kalit qiymatini o'qish
func (r *RedisKVStore) Read(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "redis get %q", key)
	}
	return value, nil
}

// Write qiymatni yozish (muddatsiz)
func (r *RedisKVStore) Write(ctx context.Context, key, value string) error {
	return errors.Wrapf(r.client.Set(ctx, key, value, 0).Err(), "redis set %q", key)
}

// Remove kalitni o'chirish
func (r *RedisKVStore) Remove(ctx context.Context, key string) error {
	return errors.Wrapf(r.client.Del(ctx, key).Err(), "redis del %q", key)
}

// Close ulanishlarni yopish
func (r *RedisKVStore) Close() error {
	return r.client.Close()
}

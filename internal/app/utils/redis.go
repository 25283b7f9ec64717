package utils

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// NewRedisClient returns nil when addr is empty, which disables sessions.
func NewRedisClient(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

// SetSession stores the session of token in Redis.
func SetSession(ctx context.Context, rdb *redis.Client, token string, userID int, role string, ttl time.Duration) error {
	key := sessionPrefix + token
	data := map[string]interface{}{
		"user_id": strconv.Itoa(userID),
		"role":    role,
	}
	if err := rdb.HSet(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	if err := rdb.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("redis expire %s: %w", key, err)
	}
	return nil
}

// GetSession returns the session fields, or ok=false when it expired or was revoked.
func GetSession(ctx context.Context, rdb *redis.Client, token string) (map[string]string, bool, error) {
	res, err := rdb.HGetAll(ctx, sessionPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return res, len(res) > 0, nil
}

func DeleteSession(ctx context.Context, rdb *redis.Client, token string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, sessionPrefix+token).Err()
}

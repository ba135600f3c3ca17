package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

var ErrRedisNotConfigured = errors.New("redis client not initialized")

// InitRedis initializes the shared Redis client used for refresh tokens and
// the photographer directory cache.
func InitRedis(redisURL string) error {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	ctx := context.Background()
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// GenerateRefreshToken produces an opaque token. The token itself encodes
// nothing; it is only a key into Redis.
func GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// StoreRefreshToken maps a refresh token to a user id with an expiry.
func StoreRefreshToken(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	if RedisClient == nil {
		return ErrRedisNotConfigured
	}
	key := fmt.Sprintf("refresh:%s", token)
	return RedisClient.Set(ctx, key, userID, ttl).Err()
}

// ConsumeRefreshToken resolves a refresh token to its user id and deletes
// it, so each token can be exchanged exactly once.
func ConsumeRefreshToken(ctx context.Context, token string) (uint, error) {
	if RedisClient == nil {
		return 0, ErrRedisNotConfigured
	}
	key := fmt.Sprintf("refresh:%s", token)
	userID, err := RedisClient.GetDel(ctx, key).Uint64()
	if err != nil {
		return 0, err
	}
	return uint(userID), nil
}

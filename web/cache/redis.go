// Package cache provides the redis connection that backs login sessions. It
// runs an embedded redis (miniredis) unless an external server is configured.
package cache

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/raimis707/bookshelf/logger"
	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	isEmbedded = true
)

// InitRedis initializes the redis client. If redisAddr is empty, starts an
// embedded redis; otherwise connects to the external server at redisAddr.
func InitRedis(ctx context.Context, redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{
			Addr: mr.Addr(),
		})
		isEmbedded = true
		logger.Info("Embedded Redis started on ", mr.Addr())
		return nil
	}

	client = redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})
	isEmbedded = false
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to external Redis at ", redisAddr)
	return nil
}

func GetClient() *redis.Client {
	return client
}

func IsEmbedded() bool {
	return isEmbedded
}

// Close closes the redis connection and stops the embedded server if running.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}

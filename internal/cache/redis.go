package cache

import (
	"context"
	"fmt"

	"filmapp/internal/config"
	"filmapp/internal/logger"

	"github.com/redis/go-redis/v9"
)

// New connects to the Redis instance described by R_HOST, R_PORT, R_PASS
// and R_DB and pings it.
func New(ctx context.Context) (*redis.Client, error) {
	host, port, password, db := config.RedisConfig()

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Get().Info("Connection to Redis successful")
	return client, nil
}

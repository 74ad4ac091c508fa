package container

import (
	"context"
	"fmt"

	"filmapp/internal/bot"
	"filmapp/internal/cache"
	"filmapp/internal/config"
	"filmapp/internal/database"
	"filmapp/internal/logger"
	"filmapp/internal/services"
	"filmapp/internal/store"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Container struct {
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Logger   *logrus.Logger
	Store    store.SnapshotStore
	Telegram *services.TelegramClient
	Bot      *bot.Handler
}

func New(ctx context.Context, botToken string) (*Container, error) {
	c := &Container{Logger: logger.Get()}

	if err := c.initStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.Telegram = services.NewTelegramClient(&services.TelegramConfig{
		BotToken:      botToken,
		RatePerSecond: config.TelegramRate(),
		Logger:        c.Logger,
	})
	c.Bot = bot.NewHandler(c.Store, c.Telegram, c.Logger)

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	backend := config.StoreBackend()
	c.Logger.WithField("backend", backend).Info("Initializing snapshot store")

	switch backend {
	case config.BackendRedis:
		client, err := cache.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		c.Store = store.NewRedisStore(client, config.SnapshotTTL(), c.Logger)

	case config.BackendPostgres:
		pool, err := database.New(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = pool
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		c.Store = store.NewPostgresStore(pool, c.Logger)

	case config.BackendMemory:
		c.Logger.Warn("Using in-memory snapshot store, state is lost on restart")
		c.Store = store.NewMemoryStore()

	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}

	return nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}

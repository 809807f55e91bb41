package container

import (
	"context"
	"errors"
	"fmt"

	"goldapple/parser/internal/client"
	"goldapple/parser/internal/config"
	"goldapple/parser/internal/domain"
	"goldapple/parser/internal/proxy"
	"goldapple/parser/internal/repository"
	"goldapple/parser/internal/service"
	"goldapple/parser/internal/state"
	"goldapple/parser/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	RunID    string
	Client   client.GoldAppleClient
	Writer   storage.RowWriter
	Progress state.ProgressTracker

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		RunID:  uuid.NewString(),
	}

	proxySupplier := proxy.NewProxySupplier(ctx, cfg.GoldApple.Proxies, cfg.GoldApple.BaseURL)
	if len(cfg.GoldApple.Proxies) > 0 && proxySupplier.Len() == 0 {
		log.Warn("⚠️ No working proxy found, connecting directly")
	}

	container.Client = client.NewGoldAppleClient(cfg.GoldApple, proxySupplier)

	csvWriter, err := storage.NewCSVWriter(cfg.Output.Path)
	if err != nil {
		container.Close()
		return nil, err
	}
	writers := []storage.RowWriter{csvWriter}
	log.Infof("📝 Writing products to %s", cfg.Output.Path)

	if cfg.Database.Enabled {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			csvWriter.Close()
			container.Close()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		container.db = db

		productRepo := repository.NewProductRepository(db, container.RunID)
		if err := productRepo.EnsureSchema(ctx); err != nil {
			csvWriter.Close()
			container.Close()
			return nil, err
		}
		writers = append(writers, productRepo)
		log.Info("✅ Mirroring products to PostgreSQL")
	}
	container.Writer = storage.NewMultiWriter(writers...)

	container.Progress = state.NewNoopProgressTracker()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		container.redis = rdb

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")
		container.Progress = state.NewRedisProgressTracker(rdb)
	}

	container.Service = service.NewService(
		container.Client,
		container.Writer,
		container.Progress,
		container.RunID,
	)

	return container, nil
}

// Run executes one full pass over the catalog
func (c *Container) Run(ctx context.Context) (*domain.RunStats, error) {
	return c.Service.Run(ctx)
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	var errs []error
	if c.Writer != nil {
		if err := c.Writer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Client != nil {
		if err := c.Client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	log.Info("Container shut down successfully")
	return errors.Join(errs...)
}

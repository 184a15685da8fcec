package main

import (
	"alcyxob/gymbuddy/internal/config"
	"alcyxob/gymbuddy/internal/metrics"
	"alcyxob/gymbuddy/internal/repository"
	"alcyxob/gymbuddy/internal/repository/cache"
	"alcyxob/gymbuddy/internal/repository/memory"
	"alcyxob/gymbuddy/internal/repository/mongo"
	"alcyxob/gymbuddy/internal/repository/postgres"
	"alcyxob/gymbuddy/internal/service"
	"alcyxob/gymbuddy/internal/storage"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// openStore connects the configured database driver. The returned close
// function releases the connection.
func openStore(ctx context.Context, cfg config.Config) (repository.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(ctx, cfg.Database.URI)
		if err != nil {
			return repository.Store{}, nil, fmt.Errorf("connect mongo: %w", err)
		}
		db := client.Database(cfg.Database.Name)

		indexCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(indexCtx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return repository.Store{}, nil, fmt.Errorf("ensure indexes: %w", err)
		}

		closeFn := func() {
			log.Println("disconnecting mongo ...")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Errorf("disconnect mongo: %s", err)
			}
		}
		return mongo.NewStore(db), closeFn, nil

	case config.DriverPostgres:
		pool, err := postgres.NewDBPool(ctx, cfg.Database.PostgresURL)
		if err != nil {
			return repository.Store{}, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return repository.Store{}, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil

	case config.DriverMemory:
		log.Warnln("using the in-memory database, data is lost on exit")
		return memory.NewStore(), func() {}, nil
	}

	return repository.Store{}, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

// withCatalogCache wraps the catalog repository in the read-through cache.
func withCatalogCache(store repository.Store, cfg config.CatalogConfig, metricsManager *metrics.Manager) repository.Store {
	if cfg.CacheSizeMB <= 0 {
		return store
	}
	store.Catalog = cache.NewCatalogRepository(store.Catalog, cfg.CacheSizeMB, cfg.CacheTTL, metricsManager)
	return store
}

// newOpener returns a document opener that can read s3:// sources when an
// S3 bucket or endpoint is configured.
func newOpener(ctx context.Context, cfg config.S3Config) (*storage.Opener, error) {
	if cfg.BucketName == "" && cfg.Endpoint == "" {
		return storage.NewOpener(nil), nil
	}
	objects, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return storage.NewOpener(objects), nil
}

func newCalendar(cfg config.WorkoutsConfig) (service.Calendar, error) {
	loc, err := cfg.Location()
	if err != nil {
		return service.Calendar{}, err
	}
	firstDay, ok := service.ParseWeekday(cfg.WeekStart)
	if !ok {
		return service.Calendar{}, fmt.Errorf("invalid workouts.week_start %q", cfg.WeekStart)
	}
	return service.Calendar{Location: loc, FirstWeekday: firstDay}, nil
}

func seedCatalog(ctx context.Context, store repository.Store, opener *storage.Opener, source string) error {
	count, err := service.NewCatalogService(store.Catalog, opener).Seed(ctx, source)
	if err != nil {
		return fmt.Errorf("seed catalog from %s: %w", source, err)
	}
	log.Infof("catalog seeded with %d exercises from %s", count, source)
	return nil
}

package main

import (
	"context"
	"fmt"
	"time"

	"bookreviews/internal/db"
	"bookreviews/internal/domain/storage"
)

// openStorage connects the backend named by cfg.store. The returned func
// releases its connections.
func openStorage(cfg config) (*storage.Container, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cfg.store {
	case storage.DriverMongo:
		client, err := db.NewMongo(cfg.mongo.uri)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }

		c, err := storage.NewMongoContainer(ctx, client.Database(cfg.mongo.database))
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		return c, closeFn, nil

	case storage.DriverPostgres:
		if cfg.db.addr == "" {
			return nil, nil, fmt.Errorf("DB_ADDR is required for the %s driver", storage.DriverPostgres)
		}
		pool, err := db.New(cfg.db.addr, int32(cfg.db.maxOpenConns), cfg.db.maxIdleTime)
		if err != nil {
			return nil, nil, err
		}

		c, err := storage.NewPostgresContainer(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return c, pool.Close, nil

	case storage.DriverMemory:
		return storage.NewMemoryContainer(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.store)
	}
}

package storage

import (
	"context"
	"fmt"

	"bookreviews/internal/domain/reviews"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Container struct {
	Driver  string
	Reviews reviews.Store
}

// NewMongoContainer backs the container with db and makes sure the
// collection indexes exist.
func NewMongoContainer(ctx context.Context, db *mongo.Database) (*Container, error) {
	repo := reviews.NewMongoRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return &Container{Driver: DriverMongo, Reviews: repo}, nil
}

// NewPostgresContainer backs the container with pool and creates the schema
// if it does not exist yet.
func NewPostgresContainer(ctx context.Context, pool *pgxpool.Pool) (*Container, error) {
	if pool == nil {
		return nil, fmt.Errorf("storage container pool is nil")
	}
	repo := reviews.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return &Container{Driver: DriverPostgres, Reviews: repo}, nil
}

func NewMemoryContainer() *Container {
	return &Container{Driver: DriverMemory, Reviews: reviews.NewMemoryStore()}
}

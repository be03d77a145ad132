package reviews

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a live server: TEST_MONGO_URI=mongodb://localhost:27017 go test ./...
func TestMongoRepository(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, client.Ping(ctx, nil))

	n := 0
	testStoreContract(t, func(t *testing.T) Store {
		n++
		db := client.Database(fmt.Sprintf("bookreviews_test_%d_%d", time.Now().UnixNano(), n))
		t.Cleanup(func() { _ = db.Drop(context.Background()) })

		repo := NewMongoRepository(db)
		require.NoError(t, repo.EnsureIndexes(context.Background()))
		return repo
	})
}

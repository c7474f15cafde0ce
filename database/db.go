package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Options describes how to reach the record store with the service credential.
type Options struct {
	URL         string
	ServiceUser string
	ServiceKey  string
}

// Connect opens and pings a MongoDB client.
func Connect(ctx context.Context, opts Options) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(opts.URL)
	if opts.ServiceKey != "" {
		clientOptions.SetAuth(options.Credential{
			Username: opts.ServiceUser,
			Password: opts.ServiceKey,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts an in-memory Redis server and returns a client connected to
// it. Server and client are torn down with the test.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("failed to ping miniredis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return client, mr
}

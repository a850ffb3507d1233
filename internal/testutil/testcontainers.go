//go:build integration

// Package testutil starts the MongoDB container shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const defaultMongoImage = "mongo:7.0"

// MongoDBContainer wraps a running MongoDB testcontainer.
type MongoDBContainer struct {
	Container testcontainers.Container
	URI       string
}

// SetupMongoDB starts a MongoDB container. MONGO_TEST_IMAGE overrides the image.
func SetupMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	image := os.Getenv("MONGO_TEST_IMAGE")
	if image == "" {
		image = defaultMongoImage
	}

	container, err := mongodb.Run(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to start MongoDB container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}
	return &MongoDBContainer{Container: container, URI: uri}, nil
}

// Cleanup terminates the container.
func (m *MongoDBContainer) Cleanup(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	if err := m.Container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
)

// GetSharedMongoDB starts the package-wide container on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		shared, sharedErr = SetupMongoDB(ctx)
	})
	return shared, sharedErr
}

// SetupTestMainWithMongoDB runs m against one shared container and tears it down.
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	if err := shared.Cleanup(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: failed to clean up MongoDB container: %v\n", err)
	}
	return code
}

// GetSharedContainerURI panics when the shared container was never started.
func GetSharedContainerURI() string {
	if shared == nil {
		panic("shared MongoDB container not initialized; call GetSharedMongoDB first")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a unique MongoDB database name.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			return '_'
		}
		return r
	}, testName)
	if len(name) > 40 {
		name = name[:40]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1_000_000)
}

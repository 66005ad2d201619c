// Package containers starts throwaway infrastructure for integration tests.
// Callers skip their tests when Docker is unavailable.
package containers

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage = "postgres:15-alpine"
	RedisImage    = "redis:7-alpine"

	startupTimeout = 30 * time.Second
)

// StartPostgres runs a disposable Postgres and returns its connection string
// and a terminate func. Panics from the Docker client are turned into errors.
func StartPostgres(ctx context.Context) (connStr string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("postgres container panicked (likely Docker issue): %v", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		return "", nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return connStr, func() { _ = pgContainer.Terminate(context.Background()) }, nil
}

// StartRedis runs a disposable Redis and returns its host:port address
func StartRedis(ctx context.Context) (addr string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("redis container panicked (likely Docker issue): %v", r)
		}
	}()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(startupTimeout),
		},
		Started: true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start redis container: %w", err)
	}

	addr, err = c.Endpoint(ctx, "")
	if err != nil {
		_ = c.Terminate(ctx)
		return "", nil, fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	return addr, func() { _ = c.Terminate(context.Background()) }, nil
}

package repository_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// startPostgres boots a throwaway database with every migration applied.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	scripts, err := filepath.Glob("../migrations/*.up.sql")
	if err != nil {
		return nil, "", fmt.Errorf("filepath.Glob: %w", err)
	}

	container, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithDatabase("storefront"),
		postgres.WithInitScripts(scripts...),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}

package test_seeder

import (
	"context"
	"fmt"
	"pokemonapi/src/infra/postgres"
)

type TestSeeder struct {
	connector *postgres.Connector
}

func New(connector *postgres.Connector) TestSeeder {
	return TestSeeder{connector: connector}
}

// EnsureSchema creates the tables the repositories expect
func (ts TestSeeder) EnsureSchema(ctx context.Context) {
	err := postgres.WithConn(ctx, ts.connector, func(conn *postgres.Conn) error {
		return postgres.EnsureSchema(ctx, conn)
	})
	if err != nil {
		panic(fmt.Sprintf("Seeder.EnsureSchema failed: %v", err))
	}
}

func (ts TestSeeder) TruncateTables(ctx context.Context) {
	tables := []string{
		"pokemon",
	}

	err := postgres.WithConn(ctx, ts.connector, func(conn *postgres.Conn) error {
		for _, table := range tables {
			if _, err := conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
				return fmt.Errorf("failed to truncate %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		panic(err.Error())
	}
}

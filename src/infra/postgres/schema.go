package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the pokemon table when it does not exist yet.
func EnsureSchema(ctx context.Context, conn *Conn) error {
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create pokemon table: %w", err)
	}

	return nil
}

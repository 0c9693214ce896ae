package test_seeder

import (
	"context"
	"fmt"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/infra/postgres"
)

// InsertPokemon inserts a pokemon into the database for testing
func (ts TestSeeder) InsertPokemon(ctx context.Context, pokemon entities.Pokemon) {
	query := `
		INSERT INTO pokemon (id, name, types, height, weight, img_url, base_stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := postgres.WithConn(ctx, ts.connector, func(conn *postgres.Conn) error {
		_, err := conn.Exec(ctx, query,
			pokemon.ID,
			pokemon.Name,
			pokemon.Types,
			pokemon.Height,
			pokemon.Weight,
			pokemon.ImgURL,
			pokemon.BaseStats,
		)
		return err
	})
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertPokemon failed: %v", err))
	}
}

package test_seeder

import (
	"context"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/infra/postgres"
)

// SelectPokemonByID reads a row straight from the table; found is false when it does not exist
func (ts TestSeeder) SelectPokemonByID(ctx context.Context, id int64) (pokemon entities.Pokemon, found bool, err error) {
	query := `SELECT id, name, types, height, weight, img_url, base_stats
			  FROM pokemon WHERE id = $1`

	err = postgres.WithConn(ctx, ts.connector, func(conn *postgres.Conn) error {
		return conn.QueryRow(ctx, query, id).Scan(
			&pokemon.ID,
			&pokemon.Name,
			&pokemon.Types,
			&pokemon.Height,
			&pokemon.Weight,
			&pokemon.ImgURL,
			&pokemon.BaseStats,
		)
	})
	if postgres.IsNoRows(err) {
		return entities.Pokemon{}, false, nil
	}
	if err != nil {
		return entities.Pokemon{}, false, err
	}

	return pokemon, true, nil
}

func (ts TestSeeder) CountPokemon(ctx context.Context) (int, error) {
	var count int
	err := postgres.WithConn(ctx, ts.connector, func(conn *postgres.Conn) error {
		return conn.QueryRow(ctx, "SELECT COUNT(*) FROM pokemon").Scan(&count)
	})
	return count, err
}

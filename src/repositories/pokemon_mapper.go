package repositories

import (
	"pokemonapi/src/domain/entities"

	"github.com/jackc/pgx/v5/pgtype"
)

// pokemonColumns fixes the positional order every query selects and scanPokemon reads.
const pokemonColumns = "id, name, types, height, weight, img_url, base_stats"

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPokemon maps one positional row onto entities.Pokemon. NULL columns become zero values.
func scanPokemon(row rowScanner) (entities.Pokemon, error) {
	var (
		pokemon entities.Pokemon
		name    pgtype.Text
		height  pgtype.Text
		weight  pgtype.Text
		imgURL  pgtype.Text
	)

	err := row.Scan(
		&pokemon.ID,
		&name,
		&pokemon.Types,
		&height,
		&weight,
		&imgURL,
		&pokemon.BaseStats,
	)
	if err != nil {
		return entities.Pokemon{}, err
	}

	pokemon.Name = name.String
	pokemon.Height = height.String
	pokemon.Weight = weight.String
	pokemon.ImgURL = imgURL.String

	return pokemon, nil
}

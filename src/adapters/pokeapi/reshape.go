package pokeapi

import (
	"encoding/json"
	"fmt"
	"pokemonapi/src/domain/entities"
	"strconv"
)

// Reshape turns a PokeAPI payload into the persisted form. base_stats is encoded
// to its JSONB representation here, not at insert time.
func Reshape(raw RawPokemon) (entities.Pokemon, error) {
	baseStats := make(map[string]int, len(raw.Stats))
	for _, stat := range raw.Stats {
		baseStats[stat.Stat.Name] = stat.BaseStat
	}

	baseStatsJSON, err := json.Marshal(baseStats)
	if err != nil {
		return entities.Pokemon{}, fmt.Errorf("Reshape - failed to encode base_stats of %s: %w", raw.Name, err)
	}

	types := make([]string, 0, len(raw.Types))
	for _, pokeType := range raw.Types {
		types = append(types, pokeType.Type.Name)
	}

	var imgURL string
	if raw.Sprites.FrontDefault != nil {
		imgURL = *raw.Sprites.FrontDefault
	}

	return entities.Pokemon{
		ID:        raw.ID,
		Name:      raw.Name,
		Types:     types,
		Height:    strconv.Itoa(raw.Height),
		Weight:    strconv.Itoa(raw.Weight),
		ImgURL:    imgURL,
		BaseStats: baseStatsJSON,
	}, nil
}

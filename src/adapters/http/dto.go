package http

import (
	"encoding/json"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
)

type PokemonDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Types     []string        `json:"types"`
	Height    string          `json:"height"`
	Weight    string          `json:"weight"`
	ImgURL    string          `json:"img_url"`
	BaseStats json.RawMessage `json:"base_stats"`
}

// UpdatePokemonRequest is the PUT body. Absent and null fields are both left untouched.
type UpdatePokemonRequest struct {
	Name      *string         `json:"name,omitempty"`
	Types     *[]string       `json:"types,omitempty"`
	Height    *string         `json:"height,omitempty"`
	Weight    *string         `json:"weight,omitempty"`
	ImgURL    *string         `json:"img_url,omitempty"`
	BaseStats *map[string]int `json:"base_stats,omitempty"`
}

func (req UpdatePokemonRequest) ToDomain() domain.PokemonUpdate {
	return domain.PokemonUpdate{
		Name:      req.Name,
		Types:     req.Types,
		Height:    req.Height,
		Weight:    req.Weight,
		ImgURL:    req.ImgURL,
		BaseStats: req.BaseStats,
	}
}

func MapDomainToResponse(pokemon entities.Pokemon) PokemonDTO {
	types := pokemon.Types
	if types == nil {
		types = []string{}
	}

	baseStats := pokemon.BaseStats
	if len(baseStats) == 0 || string(baseStats) == "null" {
		baseStats = json.RawMessage(`{}`)
	}

	return PokemonDTO{
		ID:        pokemon.ID,
		Name:      pokemon.Name,
		Types:     types,
		Height:    pokemon.Height,
		Weight:    pokemon.Weight,
		ImgURL:    pokemon.ImgURL,
		BaseStats: baseStats,
	}
}

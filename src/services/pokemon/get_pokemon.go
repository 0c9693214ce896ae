package pokemon

import (
	"context"
	"fmt"
	"pokemonapi/src/domain/entities"
)

func (s *PokemonService) Get(ctx context.Context, id int64) (entities.Pokemon, error) {
	pokemon, err := s.pokemonStore.FindByID(ctx, id)
	if err != nil {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Get - failed to FindByID from repository: %w", err)
	}

	return pokemon, nil
}

package pokemon

import (
	"context"
	"fmt"
	"pokemonapi/src/domain/entities"
)

// ListAll returns every stored pokemon in database order.
func (s *PokemonService) ListAll(ctx context.Context) ([]entities.Pokemon, error) {
	pokemons, err := s.pokemonStore.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("PokemonService.ListAll - failed to FindAll from repository: %w", err)
	}

	return pokemons, nil
}

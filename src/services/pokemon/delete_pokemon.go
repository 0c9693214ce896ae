package pokemon

import (
	"context"
	"fmt"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
)

// Delete removes the pokemon and returns its state from immediately before the deletion.
func (s *PokemonService) Delete(ctx context.Context, id int64) (entities.Pokemon, error) {
	deleted, err := s.pokemonStore.Delete(ctx, id)
	if err != nil {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Delete - failed to Delete in repository: %w", err)
	}

	s.publish(ctx, domain.EventPokemonDeleted, deleted, nil)

	return deleted, nil
}

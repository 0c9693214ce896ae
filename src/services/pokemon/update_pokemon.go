package pokemon

import (
	"context"
	"fmt"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
)

// Update applies a partial update. An update without fields is rejected before
// the store is touched, whatever the id.
func (s *PokemonService) Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error) {
	if update.IsEmpty() {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Update - %w", domain.ErrInvalidRequest)
	}

	updated, err := s.pokemonStore.Update(ctx, id, update)
	if err != nil {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Update - failed to Update in repository: %w", err)
	}

	s.publish(ctx, domain.EventPokemonUpdated, updated, changedColumns(update))

	return updated, nil
}

func changedColumns(update domain.PokemonUpdate) []string {
	assignments, err := update.Assignments()
	if err != nil {
		return nil
	}

	columns := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		columns = append(columns, assignment.Column)
	}
	return columns
}

package pokemon

import (
	"context"
	"log/slog"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
)

type pokemonStore interface {
	FindAll(ctx context.Context) ([]entities.Pokemon, error)
	FindByID(ctx context.Context, id int64) (entities.Pokemon, error)
	Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error)
	Delete(ctx context.Context, id int64) (entities.Pokemon, error)
}

type eventPublisher interface {
	PublishPokemonEvent(ctx context.Context, eventType string, pokemon entities.Pokemon, fieldsChanged []string) error
}

type PokemonService struct {
	logger         *slog.Logger
	pokemonStore   pokemonStore
	eventPublisher eventPublisher
}

func NewPokemonService(
	logger *slog.Logger,
	pokemonStore pokemonStore,
	eventPublisher eventPublisher,
) *PokemonService {
	return &PokemonService{
		logger:         logger,
		pokemonStore:   pokemonStore,
		eventPublisher: eventPublisher,
	}
}

// publish is best effort: the change is already committed when it runs.
func (s *PokemonService) publish(ctx context.Context, eventType string, pokemon entities.Pokemon, fieldsChanged []string) {
	if s.eventPublisher == nil {
		return
	}

	if err := s.eventPublisher.PublishPokemonEvent(ctx, eventType, pokemon, fieldsChanged); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish pokemon event",
			"event_type", eventType,
			"pokemon_id", pokemon.ID,
			"error", err)
	}
}

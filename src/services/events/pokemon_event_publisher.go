package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/infra/kafka"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type messageProducer interface {
	Producer(messages []kafka.Message, topic string) error
}

type PokemonEventPublisher struct {
	logger   *slog.Logger
	producer messageProducer
	topic    string
}

// NewPokemonEventPublisher returns a publisher; a nil producer turns every publish into a no-op.
func NewPokemonEventPublisher(
	logger *slog.Logger,
	producer messageProducer,
	topic string,
) *PokemonEventPublisher {
	return &PokemonEventPublisher{
		logger:   logger,
		producer: producer,
		topic:    topic,
	}
}

// PublishPokemonEvent publishes one change event keyed by pokemon id, so all events
// of the same pokemon land on the same partition.
func (p *PokemonEventPublisher) PublishPokemonEvent(
	ctx context.Context,
	eventType string,
	pokemon entities.Pokemon,
	fieldsChanged []string,
) error {
	if p == nil || p.producer == nil {
		return nil
	}

	event := domain.PokemonEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC().UnixMilli(),
		Data:       pokemon,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("PokemonEventPublisher.PublishPokemonEvent - failed to marshal event: %w", err)
	}

	message := kafka.Message{
		Key:     strconv.FormatInt(pokemon.ID, 10),
		Value:   eventBytes,
		Headers: p.createEventHeaders(event, fieldsChanged),
	}

	if err := p.producer.Producer([]kafka.Message{message}, p.topic); err != nil {
		return fmt.Errorf("PokemonEventPublisher.PublishPokemonEvent - failed to publish to topic %s: %w", p.topic, err)
	}

	p.logger.DebugContext(ctx, "Published pokemon event",
		"event_id", event.EventID,
		"event_type", eventType,
		"pokemon_id", pokemon.ID)

	return nil
}

// createEventHeaders builds the headers consumers filter on without decoding the body.
func (p *PokemonEventPublisher) createEventHeaders(event domain.PokemonEvent, fieldsChanged []string) map[string]string {
	headers := map[string]string{
		"event_type":     event.EventType,
		"source_service": "pokemon-api",
		"schema_version": "v1",
		"event_id":       event.EventID,
	}

	if len(fieldsChanged) > 0 {
		headers["fields_changed"] = strings.Join(fieldsChanged, ",")
	}

	return headers
}

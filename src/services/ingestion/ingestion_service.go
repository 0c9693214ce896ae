package ingestion

import (
	"context"
	"log/slog"
	"pokemonapi/src/adapters/pokeapi"
	"pokemonapi/src/domain/entities"
)

type pokemonSource interface {
	FetchPage(ctx context.Context, limit int) []string
	FetchOne(ctx context.Context, identifier string) *pokeapi.RawPokemon
}

type pokemonWriter interface {
	BulkInsert(ctx context.Context, pokemons []entities.Pokemon) (int, error)
}

// Ingestor is the one-shot populator: list, fetch each sequentially, reshape, insert.
type Ingestor struct {
	logger        *slog.Logger
	pokemonSource pokemonSource
	pokemonWriter pokemonWriter
}

func NewIngestor(logger *slog.Logger, pokemonSource pokemonSource, pokemonWriter pokemonWriter) *Ingestor {
	return &Ingestor{
		logger:        logger,
		pokemonSource: pokemonSource,
		pokemonWriter: pokemonWriter,
	}
}

package ingestion

import (
	"context"
	"fmt"
	"pokemonapi/src/adapters/pokeapi"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
)

// Run populates storage with the first `limit` pokemon. Network failures are only
// counted as skipped; a failed listing reports zero work and never opens a connection.
func (i *Ingestor) Run(ctx context.Context, limit int) (domain.IngestReport, error) {
	var report domain.IngestReport

	identifiers := i.pokemonSource.FetchPage(ctx, limit)
	report.Listed = len(identifiers)

	if len(identifiers) == 0 {
		i.logger.WarnContext(ctx, "No Pokemon data to save")
		return report, nil
	}

	pokemons := make([]entities.Pokemon, 0, len(identifiers))
	for _, identifier := range identifiers {
		i.logger.InfoContext(ctx, "Scraping data", "identifier", identifier)

		raw := i.pokemonSource.FetchOne(ctx, identifier)
		if raw == nil {
			report.Skipped++
			continue
		}

		pokemon, err := pokeapi.Reshape(*raw)
		if err != nil {
			i.logger.WarnContext(ctx, "Failed to reshape data", "identifier", identifier, "error", err)
			report.Skipped++
			continue
		}

		pokemons = append(pokemons, pokemon)
	}
	report.Fetched = len(pokemons)

	i.logger.InfoContext(ctx, "Pokemon data collected", "count", report.Fetched, "skipped", report.Skipped)

	saved, err := i.pokemonWriter.BulkInsert(ctx, pokemons)
	if err != nil {
		return report, fmt.Errorf("Ingestor.Run - failed to BulkInsert: %w", err)
	}
	report.Saved = saved

	i.logger.InfoContext(ctx, "Pokemon successfully saved to the database", "count", saved)

	return report, nil
}

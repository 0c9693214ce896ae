package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/infra/redis"
	"time"
)

// Every key shares the {pokemon} hash tag so the generation can be watched
// together with the entry being written, also on a redis cluster.
const (
	cacheKeyAllPokemon = "{pokemon}:all"
	cacheKeyGeneration = "{pokemon}:generation"
	cacheWriteTimeout  = 2 * time.Second
)

type pokemonStore interface {
	FindAll(ctx context.Context) ([]entities.Pokemon, error)
	FindByID(ctx context.Context, id int64) (entities.Pokemon, error)
	Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error)
	Delete(ctx context.Context, id int64) (entities.Pokemon, error)
	BulkInsert(ctx context.Context, pokemons []entities.Pokemon) (int, error)
}

type pokemonCache interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	GetGeneration(ctx context.Context, generationKey string) (int64, error)
	BumpGeneration(ctx context.Context, generationKey string) error
	SetKeyIfGeneration(ctx context.Context, generationKey string, generation int64, key string, value string) (bool, error)
	InvalidateKeys(ctx context.Context, keys []string) error
}

// CachedPokemonRepository is a read-through cache in front of PokemonRepository.
// Writes go straight to Postgres, bump the cache generation and drop the affected keys.
// A read only fills the cache when the generation did not move while it hit Postgres.
type CachedPokemonRepository struct {
	logger            *slog.Logger
	pokemonRepository pokemonStore
	cache             pokemonCache
}

// NewCachedPokemonRepository accepts a nil redis client, in which case every call goes to Postgres.
func NewCachedPokemonRepository(
	logger *slog.Logger,
	pokemonRepository *PokemonRepository,
	redisClient *redis.RedisClient,
) *CachedPokemonRepository {
	repository := &CachedPokemonRepository{
		logger:            logger,
		pokemonRepository: pokemonRepository,
	}

	if redisClient != nil {
		repository.cache = redisClient
	}

	return repository
}

func (r *CachedPokemonRepository) FindAll(ctx context.Context) ([]entities.Pokemon, error) {
	var cached []entities.Pokemon
	if r.getFromCache(ctx, cacheKeyAllPokemon, &cached) {
		return cached, nil
	}

	generation, cacheable := r.currentGeneration(ctx)

	pokemons, err := r.pokemonRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		r.setInCache(ctx, generation, cacheKeyAllPokemon, pokemons)
	}
	return pokemons, nil
}

func (r *CachedPokemonRepository) FindByID(ctx context.Context, id int64) (entities.Pokemon, error) {
	cacheKey := pokemonCacheKey(id)

	var cached entities.Pokemon
	if r.getFromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	generation, cacheable := r.currentGeneration(ctx)

	pokemon, err := r.pokemonRepository.FindByID(ctx, id)
	if err != nil {
		return entities.Pokemon{}, err
	}

	if cacheable {
		r.setInCache(ctx, generation, cacheKey, pokemon)
	}
	return pokemon, nil
}

func (r *CachedPokemonRepository) Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error) {
	updated, err := r.pokemonRepository.Update(ctx, id, update)
	if err != nil {
		return entities.Pokemon{}, err
	}

	r.invalidate(ctx, id)
	return updated, nil
}

func (r *CachedPokemonRepository) Delete(ctx context.Context, id int64) (entities.Pokemon, error) {
	deleted, err := r.pokemonRepository.Delete(ctx, id)
	if err != nil {
		return entities.Pokemon{}, err
	}

	r.invalidate(ctx, id)
	return deleted, nil
}

// BulkInsert only adds rows that were missing, so no per-id entry can be stale;
// the cached list is.
func (r *CachedPokemonRepository) BulkInsert(ctx context.Context, pokemons []entities.Pokemon) (int, error) {
	saved, err := r.pokemonRepository.BulkInsert(ctx, pokemons)
	if err != nil {
		return 0, err
	}

	if saved > 0 {
		r.invalidateKeys(ctx, cacheKeyAllPokemon)
	}
	return saved, nil
}

func pokemonCacheKey(id int64) string {
	return fmt.Sprintf("{pokemon}:id:%d", id)
}

// getFromCache reports a hit only when the key exists and decodes; cache errors fall back to Postgres.
func (r *CachedPokemonRepository) getFromCache(ctx context.Context, cacheKey string, out any) bool {
	if r.cache == nil {
		return false
	}

	cachedJSON, found, err := r.cache.GetKey(ctx, cacheKey)
	if err != nil {
		r.logger.WarnContext(ctx, "Cache error", "key", cacheKey, "error", err)
		return false
	}
	if !found {
		r.logger.DebugContext(ctx, "Cache MISS", "key", cacheKey)
		return false
	}

	if err := json.Unmarshal([]byte(cachedJSON), out); err != nil {
		r.logger.WarnContext(ctx, "Failed to unmarshal cached data", "key", cacheKey, "error", err)
		return false
	}

	r.logger.DebugContext(ctx, "Cache HIT", "key", cacheKey)
	return true
}

// currentGeneration must be read before Postgres; false means the result is not cached.
func (r *CachedPokemonRepository) currentGeneration(ctx context.Context) (int64, bool) {
	if r.cache == nil {
		return 0, false
	}

	generation, err := r.cache.GetGeneration(ctx, cacheKeyGeneration)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to read cache generation", "error", err)
		return 0, false
	}

	return generation, true
}

func (r *CachedPokemonRepository) setInCache(ctx context.Context, generation int64, cacheKey string, value any) {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to marshal cache data", "key", cacheKey, "error", err)
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	stored, err := r.cache.SetKeyIfGeneration(ctxWithTimeout, cacheKeyGeneration, generation, cacheKey, string(dataJSON))
	if err != nil {
		r.logger.WarnContext(ctx, "Failed to set cache", "key", cacheKey, "error", err)
		return
	}
	if !stored {
		r.logger.DebugContext(ctx, "Cache write skipped, data changed during read", "key", cacheKey)
	}
}

func (r *CachedPokemonRepository) invalidate(ctx context.Context, id int64) {
	r.invalidateKeys(ctx, pokemonCacheKey(id), cacheKeyAllPokemon)
}

// invalidateKeys bumps the generation first so reads already in flight do not write back old rows.
func (r *CachedPokemonRepository) invalidateKeys(ctx context.Context, keys ...string) {
	if r.cache == nil {
		return
	}

	ctxWithTimeout, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
	defer cancel()

	if err := r.cache.BumpGeneration(ctxWithTimeout, cacheKeyGeneration); err != nil {
		r.logger.ErrorContext(ctx, "Failed to bump cache generation", "error", err)
	}

	if err := r.cache.InvalidateKeys(ctxWithTimeout, keys); err != nil {
		r.logger.ErrorContext(ctx, "Failed to invalidate cache", "keys", keys, "error", err)
	}
}

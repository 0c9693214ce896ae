package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"pokemonapi/src/adapters/pokeapi"
	"pokemonapi/src/helper/env"
	"pokemonapi/src/helper/logging"
	"pokemonapi/src/infra/postgres"
	"pokemonapi/src/infra/redis"
	"pokemonapi/src/repositories"
	"pokemonapi/src/services/ingestion"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	limit   int
	baseURL string
)

var rootCmd = &cobra.Command{
	Use:   "populator [--limit <n>] [--base-url <url>]",
	Short: "populator fetches the first pokemon from PokeAPI and stores them in Postgres.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if limit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", limit)
		}
		return populate(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&limit, "limit", 10, "How many pokemon to list and fetch.")
	rootCmd.Flags().StringVar(&baseURL, "base-url", env.GetString("POKEAPI_BASE_URL", pokeapi.DefaultBaseURL), "PokeAPI base URL.")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func populate(ctx context.Context) error {
	var (
		logger            *slog.Logger
		pokemonRepository *repositories.PokemonRepository
		ingestor          *ingestion.Ingestor
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			newLogger,
			newConnector,
			newRedisClient,
			newPokemonRepository,
			newCachedPokemonRepository,
			newPokeAPIClient,
			newIngestor,
		),
		fx.Populate(&logger, &pokemonRepository, &ingestor),
		fx.Invoke(registerClientHooks),
	)

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start populator: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	// A tabela é criada antes da listagem, mesmo que a PokeAPI esteja fora do ar
	if err := pokemonRepository.EnsureSchema(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to create schema", "error", err)
		return err
	}

	started := time.Now()
	report, err := ingestor.Run(ctx, limit)
	if err != nil {
		logger.ErrorContext(ctx, "Population failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "Population finished",
		"listed", report.Listed,
		"fetched", report.Fetched,
		"skipped", report.Skipped,
		"saved", report.Saved,
		"seconds", time.Since(started).Seconds())

	return nil
}

func newLogger() *slog.Logger {
	return logging.NewLogger(env.GetString("LOG_LEVEL", "info"), env.GetString("LOG_FILE"))
}

func newConnector() (*postgres.Connector, error) {
	return postgres.NewConnector(postgres.Config{
		Host:     env.MustGetString("POSTGRES_HOST"),
		Port:     env.GetString("POSTGRES_PORT", "5432"),
		DBName:   env.MustGetString("POSTGRES_DB"),
		User:     env.MustGetString("POSTGRES_USER"),
		Password: env.MustGetString("POSTGRES_PASSWORD"),
	})
}

// newRedisClient returns nil when REDIS_HOSTS is not set; the populator then has no cache to invalidate.
func newRedisClient() *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		return nil
	}

	redisDefaultTTL := time.Duration(env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)) * time.Second

	return redis.NewRedisClient(redisHosts, env.GetInt("REDIS_POOL_SIZE", 10), redisDefaultTTL)
}

func newPokemonRepository(connector *postgres.Connector) *repositories.PokemonRepository {
	return repositories.NewPokemonRepository(connector)
}

// newCachedPokemonRepository lets the inserts drop the list the API may have cached.
func newCachedPokemonRepository(
	logger *slog.Logger,
	pokemonRepository *repositories.PokemonRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedPokemonRepository {
	return repositories.NewCachedPokemonRepository(logger, pokemonRepository, redisClient)
}

func newPokeAPIClient(logger *slog.Logger) *pokeapi.Client {
	timeout := time.Duration(env.GetInt("POKEAPI_TIMEOUT_SECONDS", 0)) * time.Second

	return pokeapi.NewClient(logger, baseURL, timeout)
}

func newIngestor(
	logger *slog.Logger,
	client *pokeapi.Client,
	cachedPokemonRepository *repositories.CachedPokemonRepository,
) *ingestion.Ingestor {
	return ingestion.NewIngestor(logger, client, cachedPokemonRepository)
}

func registerClientHooks(lc fx.Lifecycle, logger *slog.Logger, redisClient *redis.RedisClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}

			if err := redisClient.Close(); err != nil {
				logger.Error("Failed to close redis client", "error", err)
			}
			return nil
		},
	})
}

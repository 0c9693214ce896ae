package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	httpadapter "pokemonapi/src/adapters/http"
	"pokemonapi/src/helper/env"
	"pokemonapi/src/helper/logging"
	"pokemonapi/src/infra/kafka"
	"pokemonapi/src/infra/postgres"
	"pokemonapi/src/infra/redis"
	"pokemonapi/src/repositories"
	"pokemonapi/src/services/events"
	"pokemonapi/src/services/pokemon"
	"time"

	"go.uber.org/fx"
)

func main() {
	log.SetOutput(os.Stdout)
	log.Println("Starting Pokemon API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newConnector,
			newRedisClient,
			newKafkaProducer,
			newPokemonRepository,
			newCachedPokemonRepository,
			newPokemonEventPublisher,
			newPokemonService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerClientHooks, registerServerHooks),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	<-app.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
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

// newRedisClient returns nil when REDIS_HOSTS is not set, which disables the cache.
func newRedisClient(logger *slog.Logger) *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS")
	if redisHosts == "" {
		logger.Info("REDIS_HOSTS not set, pokemon cache disabled")
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 10)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

// newKafkaProducer returns nil when KAFKA_BROKERS is not set, which disables change events.
func newKafkaProducer(logger *slog.Logger) (*kafka.KafkaProducer, error) {
	brokers := env.GetString("KAFKA_BROKERS")
	if brokers == "" {
		logger.Info("KAFKA_BROKERS not set, pokemon events disabled")
		return nil, nil
	}

	return kafka.NewKafkaProducer(logger, brokers)
}

func newPokemonRepository(connector *postgres.Connector) *repositories.PokemonRepository {
	return repositories.NewPokemonRepository(connector)
}

func newCachedPokemonRepository(
	logger *slog.Logger,
	pokemonRepository *repositories.PokemonRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedPokemonRepository {
	return repositories.NewCachedPokemonRepository(logger, pokemonRepository, redisClient)
}

func newPokemonEventPublisher(logger *slog.Logger, producer *kafka.KafkaProducer) *events.PokemonEventPublisher {
	topic := env.GetString("KAFKA_POKEMON_EVENTS_TOPIC", "pokemon-events")

	// Evita passar um ponteiro nil embrulhado na interface
	if producer == nil {
		return events.NewPokemonEventPublisher(logger, nil, topic)
	}

	return events.NewPokemonEventPublisher(logger, producer, topic)
}

func newPokemonService(
	logger *slog.Logger,
	cachedPokemonRepository *repositories.CachedPokemonRepository,
	eventPublisher *events.PokemonEventPublisher,
) *pokemon.PokemonService {
	return pokemon.NewPokemonService(logger, cachedPokemonRepository, eventPublisher)
}

func newServer(logger *slog.Logger, pokemonService *pokemon.PokemonService) *httpadapter.Server {
	port := env.GetInt("SERVER_ADDR", 8000)

	return httpadapter.NewServer(logger, port, pokemonService)
}

// registerClientHooks closes the optional redis and kafka clients on shutdown.
func registerClientHooks(
	lc fx.Lifecycle,
	logger *slog.Logger,
	redisClient *redis.RedisClient,
	producer *kafka.KafkaProducer,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if redisClient == nil {
				return nil
			}

			// Cache fora do ar não impede a subida da API
			if err := redisClient.HealthCheck(ctx); err != nil {
				logger.Warn("Redis health check failed", "error", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if redisClient != nil {
				if err := redisClient.Close(); err != nil {
					logger.Error("Failed to close redis client", "error", err)
				}
			}

			if producer != nil {
				if err := producer.Close(); err != nil {
					logger.Error("Failed to close Kafka producer", "error", err)
				}
			}
			return nil
		},
	})
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *httpadapter.Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}
			log.Println("Server exited gracefully")
			return nil
		},
	})
}

package repositories_test

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/helper/env"
	"pokemonapi/src/infra/postgres"
	"pokemonapi/src/repositories"
	"pokemonapi/src/test_artefacts/comparer"
	"pokemonapi/src/test_artefacts/stubs"
	"pokemonapi/src/test_artefacts/test_seeder"
)

var _ = Describe("PokemonRepository", func() {
	var (
		connector         *postgres.Connector
		testSeeder        test_seeder.TestSeeder
		pokemonRepository *repositories.PokemonRepository
		ctx               context.Context
		err               error
	)

	BeforeEach(func() {
		// Specs de banco só rodam com um Postgres de teste configurado
		dbHost := env.GetString("TEST_POSTGRES_HOST")
		if dbHost == "" {
			Skip("TEST_POSTGRES_HOST not set")
		}

		ctx = context.Background()

		connector, err = postgres.NewConnector(postgres.Config{
			Host:     dbHost,
			Port:     env.GetString("TEST_POSTGRES_PORT", "5432"),
			DBName:   env.MustGetString("TEST_POSTGRES_DB"),
			User:     env.MustGetString("TEST_POSTGRES_USER"),
			Password: env.MustGetString("TEST_POSTGRES_PASSWORD"),
		})
		if err != nil {
			panic(err)
		}

		pokemonRepository = repositories.NewPokemonRepository(connector)
		testSeeder = test_seeder.New(connector)

		// Limpar dados
		testSeeder.EnsureSchema(ctx)
		testSeeder.TruncateTables(ctx)
	})

	Context("when the table is empty", func() {
		It("lists nothing", func() {
			// ACT
			pokemons, err := pokemonRepository.FindAll(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(pokemons).NotTo(BeNil())
			Expect(pokemons).To(BeEmpty())
		})

		It("returns ErrPokemonNotFound by id", func() {
			// ACT
			_, err := pokemonRepository.FindByID(ctx, 1)

			// ASSERT
			Expect(errors.Is(err, domain.ErrPokemonNotFound)).To(BeTrue())
		})

		It("inserts nothing for an empty batch", func() {
			// ACT
			saved, err := pokemonRepository.BulkInsert(ctx, []entities.Pokemon{})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(0))
		})
	})

	Context("when a pokemon is stored", func() {
		var bulbasaur entities.Pokemon

		BeforeEach(func() {
			bulbasaur = stubs.NewPokemonStub().
				WithID(1).
				WithName("bulbasaur").
				WithTypes("grass", "poison").
				WithBaseStats(map[string]int{"hp": 45, "attack": 49}).
				Get()
			testSeeder.InsertPokemon(ctx, bulbasaur)
		})

		It("reads it back unchanged", func() {
			// ACT
			found, err := pokemonRepository.FindByID(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(bulbasaur, found, comparer.Pokemon())).To(BeEmpty())
		})

		It("updates only the supplied column", func() {
			// ARRANGE
			name := "ivysaur"

			// ACT
			updated, err := pokemonRepository.Update(ctx, 1, domain.PokemonUpdate{Name: &name})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("ivysaur"))

			Expect(cmp.Diff(bulbasaur, updated, comparer.Pokemon("Name"))).To(BeEmpty())

			stored, found, err := testSeeder.SelectPokemonByID(ctx, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(stored.Name).To(Equal("ivysaur"))
		})

		It("replaces base_stats as a whole", func() {
			// ARRANGE
			baseStats := map[string]int{"speed": 45}

			// ACT
			updated, err := pokemonRepository.Update(ctx, 1, domain.PokemonUpdate{BaseStats: &baseStats})

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.BaseStats).To(MatchJSON(`{"speed": 45}`))
		})

		It("returns ErrPokemonNotFound when updating an unknown id", func() {
			// ARRANGE
			name := "ghost"

			// ACT
			_, err := pokemonRepository.Update(ctx, 999, domain.PokemonUpdate{Name: &name})

			// ASSERT
			Expect(errors.Is(err, domain.ErrPokemonNotFound)).To(BeTrue())
		})

		It("deletes it and returns the pre-delete snapshot", func() {
			// ACT
			deleted, err := pokemonRepository.Delete(ctx, 1)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(cmp.Diff(bulbasaur, deleted, comparer.Pokemon())).To(BeEmpty())

			_, err = pokemonRepository.FindByID(ctx, 1)
			Expect(errors.Is(err, domain.ErrPokemonNotFound)).To(BeTrue())

			_, err = pokemonRepository.Delete(ctx, 1)
			Expect(errors.Is(err, domain.ErrPokemonNotFound)).To(BeTrue())
		})

		It("rolls the whole batch back on a duplicate id", func() {
			// ARRANGE
			batch := []entities.Pokemon{
				stubs.NewPokemonStub().WithID(2).Get(),
				stubs.NewPokemonStub().WithID(1).Get(),
			}

			// ACT
			saved, err := pokemonRepository.BulkInsert(ctx, batch)

			// ASSERT
			Expect(errors.Is(err, domain.ErrPokemonAlreadyExists)).To(BeTrue())
			Expect(saved).To(Equal(0))

			count, err := testSeeder.CountPokemon(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Context("when bulk inserting", func() {
		It("stores every record in one commit", func() {
			// ARRANGE
			batch := []entities.Pokemon{
				stubs.NewPokemonStub().WithID(1).Get(),
				stubs.NewPokemonStub().WithID(2).Get(),
				stubs.NewPokemonStub().WithID(3).Get(),
			}

			// ACT
			saved, err := pokemonRepository.BulkInsert(ctx, batch)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(3))

			pokemons, err := pokemonRepository.FindAll(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(pokemons).To(HaveLen(3))

			stored, found, err := testSeeder.SelectPokemonByID(ctx, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(cmp.Diff(batch[1], stored, comparer.Pokemon())).To(BeEmpty())
		})
	})

	It("keeps base_stats valid JSON on the way out", func() {
		// ARRANGE
		testSeeder.InsertPokemon(ctx, stubs.NewPokemonStub().WithID(7).Get())

		// ACT
		found, err := pokemonRepository.FindByID(ctx, 7)

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(json.Valid(found.BaseStats)).To(BeTrue())
	})
})

var _ = Describe("PokemonRepository without a database", func() {
	var (
		ctx               context.Context
		pokemonRepository *repositories.PokemonRepository
	)

	BeforeEach(func() {
		ctx = context.Background()

		unreachable, err := postgres.NewConnector(postgres.Config{
			Host:     "127.0.0.1",
			Port:     "1",
			DBName:   "pokemon",
			User:     "nobody",
			Password: "nothing",
		})
		Expect(err).NotTo(HaveOccurred())

		pokemonRepository = repositories.NewPokemonRepository(unreachable)
	})

	It("returns ErrDatabaseUnavailable when listing", func() {
		// ACT
		_, err := pokemonRepository.FindAll(ctx)

		// ASSERT
		Expect(errors.Is(err, domain.ErrDatabaseUnavailable)).To(BeTrue())
		Expect(errors.Is(err, postgres.ErrConnectionFailed)).To(BeTrue())
	})

	It("returns ErrDatabaseUnavailable when deleting", func() {
		// ACT
		_, err := pokemonRepository.Delete(ctx, 1)

		// ASSERT
		Expect(errors.Is(err, domain.ErrDatabaseUnavailable)).To(BeTrue())
		Expect(errors.Is(err, domain.ErrPokemonNotFound)).To(BeFalse())
	})

	It("rejects an empty update without connecting", func() {
		// ACT
		_, err := pokemonRepository.Update(ctx, 1, domain.PokemonUpdate{})

		// ASSERT
		Expect(errors.Is(err, domain.ErrInvalidRequest)).To(BeTrue())
		Expect(errors.Is(err, domain.ErrDatabaseUnavailable)).To(BeFalse())
	})

	It("inserts an empty batch without connecting", func() {
		// ACT
		saved, err := pokemonRepository.BulkInsert(ctx, []entities.Pokemon{})

		// ASSERT
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(Equal(0))
	})
})

package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	httpadapter "pokemonapi/src/adapters/http"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/test_artefacts/stubs"
)

type fakePokemonService struct {
	pokemons   map[int64]entities.Pokemon
	err        error
	lastUpdate *domain.PokemonUpdate
}

func (f *fakePokemonService) ListAll(ctx context.Context) ([]entities.Pokemon, error) {
	if f.err != nil {
		return nil, f.err
	}

	pokemons := make([]entities.Pokemon, 0, len(f.pokemons))
	for _, pokemon := range f.pokemons {
		pokemons = append(pokemons, pokemon)
	}
	return pokemons, nil
}

func (f *fakePokemonService) Get(ctx context.Context, id int64) (entities.Pokemon, error) {
	if f.err != nil {
		return entities.Pokemon{}, f.err
	}

	pokemon, ok := f.pokemons[id]
	if !ok {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Get - %w", domain.ErrPokemonNotFound)
	}
	return pokemon, nil
}

func (f *fakePokemonService) Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error) {
	f.lastUpdate = &update
	if update.IsEmpty() {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Update - %w", domain.ErrInvalidRequest)
	}
	if f.err != nil {
		return entities.Pokemon{}, f.err
	}

	pokemon, ok := f.pokemons[id]
	if !ok {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Update - %w", domain.ErrPokemonNotFound)
	}
	if update.Height != nil {
		pokemon.Height = *update.Height
	}
	f.pokemons[id] = pokemon
	return pokemon, nil
}

func (f *fakePokemonService) Delete(ctx context.Context, id int64) (entities.Pokemon, error) {
	if f.err != nil {
		return entities.Pokemon{}, f.err
	}

	pokemon, ok := f.pokemons[id]
	if !ok {
		return entities.Pokemon{}, fmt.Errorf("PokemonService.Delete - %w", domain.ErrPokemonNotFound)
	}
	delete(f.pokemons, id)
	return pokemon, nil
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

var _ = Describe("Server", func() {
	var (
		service *fakePokemonService
		handler http.Handler
	)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	do := func(method, path, body string) (int, envelope) {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}

		req := httptest.NewRequest(method, path, reader)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		var env envelope
		Expect(json.Unmarshal(rec.Body.Bytes(), &env)).To(Succeed())
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		return rec.Code, env
	}

	BeforeEach(func() {
		service = &fakePokemonService{pokemons: map[int64]entities.Pokemon{}}
		handler = httpadapter.NewServer(logger, 0, service).Handler()
	})

	Context("GET /api/pokemon", func() {
		It("returns an empty list when nothing is stored", func() {
			// ACT
			code, env := do(http.MethodGet, "/api/pokemon", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
			Expect(env.Status).To(Equal("success"))
			Expect(env.Code).To(Equal(200))
			Expect(env.Message).To(Equal("Data retrieved successfully"))
			Expect(env.Data).To(MatchJSON(`[]`))
		})

		It("returns every stored pokemon", func() {
			// ARRANGE
			service.pokemons[1] = stubs.NewPokemonStub().WithID(1).WithName("bulbasaur").Get()

			// ACT
			code, env := do(http.MethodGet, "/api/pokemon", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))

			var data []httpadapter.PokemonDTO
			Expect(json.Unmarshal(env.Data, &data)).To(Succeed())
			Expect(data).To(HaveLen(1))
			Expect(data[0].Name).To(Equal("bulbasaur"))
		})

		It("returns 500 when the database is unavailable", func() {
			// ARRANGE
			service.err = fmt.Errorf("PokemonService.ListAll - %w", domain.ErrDatabaseUnavailable)

			// ACT
			code, env := do(http.MethodGet, "/api/pokemon", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusInternalServerError))
			Expect(env.Status).To(Equal("error"))
			Expect(env.Message).To(Equal("Database connection failed"))
			Expect(env.Data).To(MatchJSON(`null`))
		})
	})

	Context("GET /api/pokemon/{id}", func() {
		It("returns the pokemon with every field", func() {
			// ARRANGE
			service.pokemons[1] = entities.Pokemon{
				ID:        1,
				Name:      "bulbasaur",
				Types:     []string{"grass", "poison"},
				Height:    "7",
				Weight:    "69",
				ImgURL:    "https://img.example/1.png",
				BaseStats: json.RawMessage(`{"hp":45}`),
			}

			// ACT
			code, env := do(http.MethodGet, "/api/pokemon/1", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
			Expect(env.Data).To(MatchJSON(`{
				"id": 1,
				"name": "bulbasaur",
				"types": ["grass", "poison"],
				"height": "7",
				"weight": "69",
				"img_url": "https://img.example/1.png",
				"base_stats": {"hp": 45}
			}`))
		})

		It("renders missing types and base_stats as empty collections", func() {
			// ARRANGE
			service.pokemons[2] = entities.Pokemon{ID: 2, Name: "ivysaur"}

			// ACT
			_, env := do(http.MethodGet, "/api/pokemon/2", "")

			// ASSERT
			var data httpadapter.PokemonDTO
			Expect(json.Unmarshal(env.Data, &data)).To(Succeed())
			Expect(data.Types).To(BeEmpty())
			Expect(data.BaseStats).To(MatchJSON(`{}`))
		})

		It("returns 404 for an unknown id", func() {
			// ACT
			code, env := do(http.MethodGet, "/api/pokemon/1", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusNotFound))
			Expect(env.Status).To(Equal("error"))
			Expect(env.Code).To(Equal(404))
			Expect(env.Message).To(Equal("Pokemon not found"))
		})

		It("returns 400 for a non-integer id", func() {
			// ACT
			code, env := do(http.MethodGet, "/api/pokemon/abc", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(Equal("Invalid Pokemon ID format"))
		})
	})

	Context("PUT /api/pokemon/{id}", func() {
		BeforeEach(func() {
			service.pokemons[1] = stubs.NewPokemonStub().WithID(1).WithName("bulbasaur").WithHeight("7").Get()
		})

		It("updates only the supplied fields", func() {
			// ACT
			code, env := do(http.MethodPut, "/api/pokemon/1", `{"height": "10"}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("Pokemon updated successfully"))

			var data httpadapter.PokemonDTO
			Expect(json.Unmarshal(env.Data, &data)).To(Succeed())
			Expect(data.Height).To(Equal("10"))
			Expect(data.Name).To(Equal("bulbasaur"))

			Expect(service.lastUpdate.Height).NotTo(BeNil())
			Expect(service.lastUpdate.Name).To(BeNil())
		})

		It("treats null fields as absent", func() {
			// ACT
			code, env := do(http.MethodPut, "/api/pokemon/1", `{"name": null}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(Equal("No fields to update"))
		})

		It("returns 400 for an empty object", func() {
			// ACT
			code, env := do(http.MethodPut, "/api/pokemon/1", `{}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(Equal("No fields to update"))
		})

		It("returns 400 for an empty body", func() {
			// ACT
			code, _ := do(http.MethodPut, "/api/pokemon/1", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for a malformed body", func() {
			// ACT
			code, env := do(http.MethodPut, "/api/pokemon/1", `{"height": 7}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(HavePrefix("Invalid request body"))
		})

		It("returns 400 when data follows the JSON object", func() {
			// ACT
			code, env := do(http.MethodPut, "/api/pokemon/1", `{"name": "x"} garbage`)

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(env.Message).To(HavePrefix("Invalid request body"))
			Expect(service.lastUpdate).To(BeNil())
		})

		It("returns 400 for two concatenated objects", func() {
			// ACT
			code, _ := do(http.MethodPut, "/api/pokemon/1", `{"name": "x"}{"height": "3"}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusBadRequest))
			Expect(service.lastUpdate).To(BeNil())
		})

		It("accepts trailing whitespace", func() {
			// ACT
			code, _ := do(http.MethodPut, "/api/pokemon/1", "{\"height\": \"10\"}\n  ")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
		})

		It("returns 404 for an unknown id", func() {
			// ACT
			code, _ := do(http.MethodPut, "/api/pokemon/999", `{"height": "10"}`)

			// ASSERT
			Expect(code).To(Equal(http.StatusNotFound))
		})
	})

	Context("DELETE /api/pokemon/{id}", func() {
		It("returns the deleted pokemon and then 404s", func() {
			// ARRANGE
			service.pokemons[1] = stubs.NewPokemonStub().WithID(1).WithName("bulbasaur").Get()

			// ACT
			code, env := do(http.MethodDelete, "/api/pokemon/1", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("Pokemon deleted successfully"))

			var data httpadapter.PokemonDTO
			Expect(json.Unmarshal(env.Data, &data)).To(Succeed())
			Expect(data.Name).To(Equal("bulbasaur"))

			code, _ = do(http.MethodGet, "/api/pokemon/1", "")
			Expect(code).To(Equal(http.StatusNotFound))
		})

		It("returns 404 for an unknown id", func() {
			// ACT
			code, _ := do(http.MethodDelete, "/api/pokemon/1", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusNotFound))
		})
	})

	Context("unknown routes", func() {
		It("returns the error envelope", func() {
			// ACT
			code, env := do(http.MethodGet, "/api/digimon", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusNotFound))
			Expect(env.Status).To(Equal("error"))
		})

		It("reports the health check", func() {
			// ACT
			code, env := do(http.MethodGet, "/healthz", "")

			// ASSERT
			Expect(code).To(Equal(http.StatusOK))
			Expect(env.Message).To(Equal("OK"))
		})
	})
})

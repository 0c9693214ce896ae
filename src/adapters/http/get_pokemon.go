package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListPokemon(w http.ResponseWriter, r *http.Request) {
	pokemons, err := s.pokemonService.ListAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	response := make([]PokemonDTO, 0, len(pokemons))
	for _, pokemon := range pokemons {
		response = append(response, MapDomainToResponse(pokemon))
	}

	writeSuccess(w, "Data retrieved successfully", response)
}

func (s *Server) GetPokemonByID(w http.ResponseWriter, r *http.Request) {
	pokemonID, ok := parsePokemonID(w, r)
	if !ok {
		return
	}

	pokemon, err := s.pokemonService.Get(r.Context(), pokemonID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Data retrieved successfully", MapDomainToResponse(pokemon))
}

// parsePokemonID writes a 400 and returns false when the path id is not an integer.
func parsePokemonID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	pokemonIDStr := chi.URLParam(r, "id")
	if pokemonIDStr == "" {
		writeError(w, http.StatusBadRequest, "Pokemon ID is required")
		return 0, false
	}

	pokemonID, err := strconv.ParseInt(pokemonIDStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid Pokemon ID format")
		return 0, false
	}

	return pokemonID, true
}

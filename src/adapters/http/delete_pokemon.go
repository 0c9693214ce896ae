package http

import "net/http"

func (s *Server) DeletePokemon(w http.ResponseWriter, r *http.Request) {
	pokemonID, ok := parsePokemonID(w, r)
	if !ok {
		return
	}

	deleted, err := s.pokemonService.Delete(r.Context(), pokemonID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Pokemon deleted successfully", MapDomainToResponse(deleted))
}

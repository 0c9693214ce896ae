package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

func (s *Server) UpdatePokemon(w http.ResponseWriter, r *http.Request) {
	pokemonID, ok := parsePokemonID(w, r)
	if !ok {
		return
	}

	request, err := decodeUpdateRequest(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := s.pokemonService.Update(r.Context(), pokemonID, request.ToDomain())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, "Pokemon updated successfully", MapDomainToResponse(updated))
}

// decodeUpdateRequest accepts an empty body as {} and rejects anything after the first JSON value.
func decodeUpdateRequest(body io.Reader) (UpdatePokemonRequest, error) {
	var request UpdatePokemonRequest

	decoder := json.NewDecoder(body)
	if err := decoder.Decode(&request); err != nil {
		if errors.Is(err, io.EOF) {
			return UpdatePokemonRequest{}, nil
		}
		return UpdatePokemonRequest{}, err
	}

	var trailing json.RawMessage
	if err := decoder.Decode(&trailing); !errors.Is(err, io.EOF) {
		return UpdatePokemonRequest{}, errors.New("unexpected data after JSON object")
	}

	return request, nil
}

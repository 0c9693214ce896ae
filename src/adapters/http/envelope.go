package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"pokemonapi/src/domain"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope wraps every response body.
type Envelope struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func writeEnvelope(w http.ResponseWriter, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(envelope.Code)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeEnvelope(w, Envelope{
		Status:  statusSuccess,
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeEnvelope(w, Envelope{
		Status:  statusError,
		Code:    code,
		Message: message,
	})
}

// writeServiceError maps domain errors onto status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrPokemonNotFound):
		writeError(w, http.StatusNotFound, domain.ErrPokemonNotFound.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, domain.ErrInvalidRequest.Error())
	case errors.Is(err, domain.ErrDatabaseUnavailable):
		s.logger.ErrorContext(r.Context(), "Database unavailable", "error", err)
		writeError(w, http.StatusInternalServerError, domain.ErrDatabaseUnavailable.Error())
	default:
		s.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, domain.ErrUnavailableServer.Error())
	}
}

package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type pokemonService interface {
	ListAll(ctx context.Context) ([]entities.Pokemon, error)
	Get(ctx context.Context, id int64) (entities.Pokemon, error)
	Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error)
	Delete(ctx context.Context, id int64) (entities.Pokemon, error)
}

// Server representa o servidor HTTP da API
type Server struct {
	logger         *slog.Logger
	server         *http.Server
	router         chi.Router
	port           int
	pokemonService pokemonService
}

func NewServer(
	logger *slog.Logger,
	port int,
	pokemonService pokemonService,
) *Server {
	server := &Server{
		router:         chi.NewRouter(),
		port:           port,
		logger:         logger,
		pokemonService: pokemonService,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.NotFound(s.RouteNotFound)
	r.MethodNotAllowed(s.MethodNotAllowed)

	r.Get("/healthz", s.Health)

	r.Get("/api/pokemon", s.ListPokemon)
	r.Get("/api/pokemon/{id}", s.GetPokemonByID)
	r.Put("/api/pokemon/{id}", s.UpdatePokemon)
	r.Delete("/api/pokemon/{id}", s.DeletePokemon)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"pokemonapi/src/domain"
	"pokemonapi/src/domain/entities"
	"pokemonapi/src/infra/postgres"
	"strings"
)

type PokemonRepository struct {
	connector *postgres.Connector
}

func NewPokemonRepository(connector *postgres.Connector) *PokemonRepository {
	return &PokemonRepository{connector: connector}
}

func (r *PokemonRepository) FindAll(ctx context.Context) ([]entities.Pokemon, error) {
	pokemons := make([]entities.Pokemon, 0)

	err := postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		rows, err := conn.Query(ctx, "SELECT "+pokemonColumns+" FROM pokemon")
		if err != nil {
			return fmt.Errorf("select failed: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			pokemon, err := scanPokemon(rows)
			if err != nil {
				return fmt.Errorf("failed to scan pokemon: %w", err)
			}
			pokemons = append(pokemons, pokemon)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, wrapError("PokemonRepository.FindAll", err)
	}

	return pokemons, nil
}

func (r *PokemonRepository) FindByID(ctx context.Context, id int64) (entities.Pokemon, error) {
	var pokemon entities.Pokemon

	err := postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		var err error
		pokemon, err = scanPokemon(conn.QueryRow(ctx, "SELECT "+pokemonColumns+" FROM pokemon WHERE id = $1", id))
		if postgres.IsNoRows(err) {
			return fmt.Errorf("id %d: %w", id, domain.ErrPokemonNotFound)
		}
		return err
	})
	if err != nil {
		return entities.Pokemon{}, wrapError("PokemonRepository.FindByID", err)
	}

	return pokemon, nil
}

// Update changes only the supplied columns in one UPDATE ... RETURNING statement,
// so a missing row and a successful update are told apart without a prior SELECT.
func (r *PokemonRepository) Update(ctx context.Context, id int64, update domain.PokemonUpdate) (entities.Pokemon, error) {
	assignments, err := update.Assignments()
	if err != nil {
		return entities.Pokemon{}, fmt.Errorf("PokemonRepository.Update - failed to encode fields: %w", err)
	}

	if len(assignments) == 0 {
		return entities.Pokemon{}, fmt.Errorf("PokemonRepository.Update - %w", domain.ErrInvalidRequest)
	}

	setClauses := make([]string, 0, len(assignments))
	args := make([]any, 0, len(assignments)+1)
	for i, assignment := range assignments {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", assignment.Column, i+1))
		args = append(args, assignment.Value)
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE pokemon SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "),
		len(args),
		pokemonColumns,
	)

	var updated entities.Pokemon
	err = postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		var err error
		updated, err = scanPokemon(conn.QueryRow(ctx, query, args...))
		if postgres.IsNoRows(err) {
			return fmt.Errorf("id %d: %w", id, domain.ErrPokemonNotFound)
		}
		return err
	})
	if err != nil {
		return entities.Pokemon{}, wrapError("PokemonRepository.Update", err)
	}

	return updated, nil
}

// Delete removes the row and returns the snapshot read under row lock immediately before deletion.
func (r *PokemonRepository) Delete(ctx context.Context, id int64) (entities.Pokemon, error) {
	var snapshot entities.Pokemon

	err := postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		snapshot, err = scanPokemon(tx.QueryRow(ctx, "SELECT "+pokemonColumns+" FROM pokemon WHERE id = $1 FOR UPDATE", id))
		if postgres.IsNoRows(err) {
			return fmt.Errorf("id %d: %w", id, domain.ErrPokemonNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		if _, err := tx.Exec(ctx, "DELETE FROM pokemon WHERE id = $1", id); err != nil {
			return fmt.Errorf("delete failed: %w", err)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return entities.Pokemon{}, wrapError("PokemonRepository.Delete", err)
	}

	return snapshot, nil
}

// BulkInsert runs one INSERT per pokemon and commits once at the end.
// Any failing insert rolls the whole batch back.
func (r *PokemonRepository) BulkInsert(ctx context.Context, pokemons []entities.Pokemon) (int, error) {
	if len(pokemons) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO pokemon (id, name, types, height, weight, img_url, base_stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		tx, err := conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer tx.Rollback(ctx)

		for _, pokemon := range pokemons {
			_, err := tx.Exec(ctx, query,
				pokemon.ID,
				pokemon.Name,
				pokemon.Types,
				pokemon.Height,
				pokemon.Weight,
				pokemon.ImgURL,
				pokemon.BaseStats,
			)
			if postgres.IsUniqueViolation(err) {
				return fmt.Errorf("id %d (%s): %w", pokemon.ID, pokemon.Name, domain.ErrPokemonAlreadyExists)
			}
			if err != nil {
				return fmt.Errorf("insert of pokemon %d failed: %w", pokemon.ID, err)
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return 0, wrapError("PokemonRepository.BulkInsert", err)
	}

	return len(pokemons), nil
}

func (r *PokemonRepository) EnsureSchema(ctx context.Context) error {
	err := postgres.WithConn(ctx, r.connector, func(conn *postgres.Conn) error {
		return postgres.EnsureSchema(ctx, conn)
	})
	if err != nil {
		return wrapError("PokemonRepository.EnsureSchema", err)
	}

	return nil
}

// wrapError prefixes the operation and tags connection failures with domain.ErrDatabaseUnavailable.
func wrapError(operation string, err error) error {
	if errors.Is(err, postgres.ErrConnectionFailed) {
		return fmt.Errorf("%s - %w: %w", operation, domain.ErrDatabaseUnavailable, err)
	}

	return fmt.Errorf("%s - %w", operation, err)
}

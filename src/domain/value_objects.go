package domain

import (
	"encoding/json"
	"errors"
	"pokemonapi/src/domain/entities"
)

var (
	ErrPokemonNotFound = errors.New("Pokemon not found")

	ErrInvalidRequest = errors.New("No fields to update")

	ErrPokemonAlreadyExists = errors.New("pokemon already exists")

	ErrDatabaseUnavailable = errors.New("Database connection failed")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ################ PARTIAL UPDATE OF A POKEMON ###############
// ############################################################

// PokemonUpdate carries the optional fields of a partial update.
// A nil field means "leave the stored column untouched".
type PokemonUpdate struct {
	Name      *string
	Types     *[]string
	Height    *string
	Weight    *string
	ImgURL    *string
	BaseStats *map[string]int
}

// ColumnValue is one "column = value" pair of an UPDATE statement.
type ColumnValue struct {
	Column string
	Value  interface{}
}

// Assignments returns the (column, value) pairs for the supplied fields only,
// always in table column order.
func (u PokemonUpdate) Assignments() ([]ColumnValue, error) {
	assignments := make([]ColumnValue, 0, 6)

	if u.Name != nil {
		assignments = append(assignments, ColumnValue{Column: "name", Value: *u.Name})
	}
	if u.Types != nil {
		assignments = append(assignments, ColumnValue{Column: "types", Value: *u.Types})
	}
	if u.Height != nil {
		assignments = append(assignments, ColumnValue{Column: "height", Value: *u.Height})
	}
	if u.Weight != nil {
		assignments = append(assignments, ColumnValue{Column: "weight", Value: *u.Weight})
	}
	if u.ImgURL != nil {
		assignments = append(assignments, ColumnValue{Column: "img_url", Value: *u.ImgURL})
	}
	if u.BaseStats != nil {
		baseStats, err := json.Marshal(*u.BaseStats)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, ColumnValue{Column: "base_stats", Value: json.RawMessage(baseStats)})
	}

	return assignments, nil
}

func (u PokemonUpdate) IsEmpty() bool {
	return u.Name == nil &&
		u.Types == nil &&
		u.Height == nil &&
		u.Weight == nil &&
		u.ImgURL == nil &&
		u.BaseStats == nil
}

// ############################################################
// ####################### INGESTION ##########################
// ############################################################

// IngestReport summarises one populator run.
type IngestReport struct {
	Listed  int `json:"listed"`
	Fetched int `json:"fetched"`
	Skipped int `json:"skipped"`
	Saved   int `json:"saved"`
}

// ############################################################
// ##################### DOMAIN EVENTS ########################
// ############################################################

const (
	EventPokemonUpdated = "pokemon.updated"
	EventPokemonDeleted = "pokemon.deleted"
)

// PokemonEvent is the payload published after a pokemon is changed through the API.
type PokemonEvent struct {
	EventID    string           `json:"event_id"`
	EventType  string           `json:"event_type"`
	OccurredAt int64            `json:"occurred_at"`
	Data       entities.Pokemon `json:"data"`
}

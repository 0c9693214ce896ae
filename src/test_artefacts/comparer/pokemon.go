package comparer

import (
	"encoding/json"
	"reflect"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"pokemonapi/src/domain/entities"
)

// Pokemon compara registros como a API os devolve: types nil equivale a [],
// base_stats ausente equivale a {} e a ordem das chaves do JSONB é ignorada.
func Pokemon(ignoredFields ...string) cmp.Option {
	options := cmp.Options{Types(), BaseStats()}
	if len(ignoredFields) > 0 {
		options = append(options, cmpopts.IgnoreFields(entities.Pokemon{}, ignoredFields...))
	}
	return options
}

// Types treats nil and empty type lists as equal; order still matters.
func Types() cmp.Option {
	return cmp.Comparer(func(x, y []string) bool {
		if len(x) == 0 && len(y) == 0 {
			return true
		}
		return slices.Equal(x, y)
	})
}

// BaseStats compares decoded JSON; empty and null both mean {}.
func BaseStats() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		xStats, xOK := decodeStats(x)
		yStats, yOK := decodeStats(y)
		if !xOK || !yOK {
			return false
		}
		return reflect.DeepEqual(xStats, yStats)
	})
}

func decodeStats(raw json.RawMessage) (any, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage(`{}`)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}
	return decoded, true
}

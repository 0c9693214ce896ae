package stubs

import (
	"encoding/json"
	"pokemonapi/src/domain/entities"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-faker/faker/v4"
)

var pokemonTypes = []string{"normal", "fire", "water", "grass", "electric", "poison", "flying", "psychic"}

type PokemonStub struct {
	pokemon entities.Pokemon
}

func NewPokemonStub() PokemonStub {
	baseStats := map[string]int{
		"hp":      gofakeit.Number(1, 255),
		"attack":  gofakeit.Number(1, 255),
		"defense": gofakeit.Number(1, 255),
		"speed":   gofakeit.Number(1, 255),
	}
	statsJSON, _ := json.Marshal(baseStats)

	pokemon := entities.Pokemon{
		ID:        int64(gofakeit.Number(1, 100000)),
		Name:      gofakeit.Username(),
		Types:     []string{gofakeit.RandomString(pokemonTypes)},
		Height:    strconv.Itoa(gofakeit.Number(1, 200)),
		Weight:    strconv.Itoa(gofakeit.Number(1, 10000)),
		ImgURL:    faker.URL(),
		BaseStats: statsJSON,
	}

	return PokemonStub{pokemon: pokemon}
}

func (ps PokemonStub) WithID(id int64) PokemonStub {
	ps.pokemon.ID = id
	return ps
}

func (ps PokemonStub) WithName(name string) PokemonStub {
	ps.pokemon.Name = name
	return ps
}

func (ps PokemonStub) WithTypes(types ...string) PokemonStub {
	ps.pokemon.Types = types
	return ps
}

func (ps PokemonStub) WithHeight(height string) PokemonStub {
	ps.pokemon.Height = height
	return ps
}

func (ps PokemonStub) WithBaseStats(baseStats map[string]int) PokemonStub {
	statsJSON, _ := json.Marshal(baseStats)
	ps.pokemon.BaseStats = statsJSON
	return ps
}

func (ps PokemonStub) Get() entities.Pokemon {
	return ps.pokemon
}

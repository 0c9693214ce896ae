package pokeapi

// Shapes of the PokeAPI v2 payloads; only the fields the populator reads are declared.

type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type pokemonListResponse struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []NamedResource `json:"results"`
}

type Sprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
}

type PokeType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type PokeStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// RawPokemon is the detail payload of GET /pokemon/{id or name}.
type RawPokemon struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Height  int        `json:"height"`
	Weight  int        `json:"weight"`
	Sprites Sprites    `json:"sprites"`
	Types   []PokeType `json:"types"`
	Stats   []PokeStat `json:"stats"`
}

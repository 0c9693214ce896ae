package entities

import "encoding/json"

// Pokemon is one row of the pokemon table. The id comes from PokeAPI and is never generated locally.
type Pokemon struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Types  []string `json:"types"`
	Height string   `json:"height"`
	Weight string   `json:"weight"`
	ImgURL string   `json:"img_url"`
	// Mapa aberto stat -> valor, mantido no formato JSONB em que é persistido.
	BaseStats json.RawMessage `json:"base_stats"`
}

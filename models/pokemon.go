package models

import "time"

// PokemonInfo is the fixed record shape returned by the Pokemon directory
type PokemonInfo struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Height float64        `json:"height"`
	Weight float64        `json:"weight"`
	Types  []string       `json:"types"`
	Stats  map[string]int `json:"stats"`
	Sprite string         `json:"sprite"`
}

// Data flattens the snapshot into the opaque payload stored on a roll
func (p *PokemonInfo) Data() map[string]any {
	return map[string]any{
		"id":     p.ID,
		"name":   p.Name,
		"height": p.Height,
		"weight": p.Weight,
		"types":  p.Types,
		"stats":  p.Stats,
		"sprite": p.Sprite,
	}
}

// PokemonRoll represents a rolled Pokemon captured at roll time.
// The stat snapshot is immutable; it is never re-fetched from the directory.
type PokemonRoll struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"userId"`
	PokemonID   int            `db:"pokemon_id" json:"pokemonId"`
	PokemonName string         `db:"pokemon_name" json:"pokemonName"`
	PokemonData map[string]any `db:"pokemon_data" json:"pokemonData"`
	Cost        int64          `db:"cost" json:"cost"`
	Timestamp   time.Time      `db:"timestamp" json:"timestamp"`
}

// Package pokeapi implements the Pokemon directory over the public PokeAPI.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pokecasino/models"
)

// Client fetches Pokemon snapshots from a PokeAPI-compatible endpoint
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a directory client against the given base URL,
// e.g. "https://pokeapi.co/api/v2"
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// pokemonResponse mirrors the subset of the PokeAPI pokemon resource we keep
type pokemonResponse struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Height int    `json:"height"`
	Weight int    `json:"weight"`
	Types  []struct {
		Type struct {
			Name string `json:"name"`
		} `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int `json:"base_stat"`
		Stat     struct {
			Name string `json:"name"`
		} `json:"stat"`
	} `json:"stats"`
	Sprites struct {
		FrontDefault string `json:"front_default"`
	} `json:"sprites"`
}

// Fetch retrieves a Pokemon snapshot by numeric id
func (c *Client) Fetch(ctx context.Context, pokemonID int) (*models.PokemonInfo, error) {
	url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, pokemonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pokemon request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon %d: %w", pokemonID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pokemon directory returned status %d for id %d", resp.StatusCode, pokemonID)
	}

	var payload pokemonResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode pokemon %d: %w", pokemonID, err)
	}

	info := &models.PokemonInfo{
		ID:     payload.ID,
		Name:   payload.Name,
		Height: float64(payload.Height) / 10, // decimeters to meters
		Weight: float64(payload.Weight) / 10, // hectograms to kilograms
		Stats:  make(map[string]int, len(payload.Stats)),
		Sprite: payload.Sprites.FrontDefault,
	}
	for _, t := range payload.Types {
		info.Types = append(info.Types, t.Type.Name)
	}
	for _, s := range payload.Stats {
		info.Stats[s.Stat.Name] = s.BaseStat
	}
	return info, nil
}

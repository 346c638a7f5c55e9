package config

import (
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	HTTPAddr string

	// Database configuration. Empty selects the in-memory store.
	DatabaseURL string

	// Discord configuration. Empty disables the bot surface.
	DiscordToken   string
	DiscordGuildID string

	// Economy settings
	StartingBalance  int64
	DailyBonusAmount int64

	// Tournament fee economy. Off by default: the bare size/participants
	// variant is authoritative.
	TournamentFeesEnabled bool

	// Pokemon directory
	PokemonAPIBaseURL string

	// Environment: "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		instance = load()
	})
	return instance
}

// load loads configuration from environment variables
func load() *Config {
	config := &Config{
		HTTPAddr:    ":8080",
		DatabaseURL: os.Getenv("DATABASE_URL"),

		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		StartingBalance:  1000,
		DailyBonusAmount: 100,

		TournamentFeesEnabled: os.Getenv("TOURNAMENT_FEES_ENABLED") == "true",

		PokemonAPIBaseURL: "https://pokeapi.co/api/v2",

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		config.HTTPAddr = addr
	}
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}
	if bonus := os.Getenv("DAILY_BONUS_AMOUNT"); bonus != "" {
		if parsedBonus, err := strconv.ParseInt(bonus, 10, 64); err == nil {
			config.DailyBonusAmount = parsedBonus
		}
	}
	if base := os.Getenv("POKEMON_API_BASE_URL"); base != "" {
		config.PokemonAPIBaseURL = base
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	return config
}

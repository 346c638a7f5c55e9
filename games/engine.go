package games

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"pokecasino/models"
)

// Outcome is the settled result of a single play
type Outcome struct {
	Result   models.GameResult
	Payout   int64
	GameData map[string]any
}

// Engine computes game outcomes. It holds its own rand source so tests can
// seed it; draws within one play are independent.
type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEngine creates an engine seeded from the wall clock
func NewEngine() *Engine {
	return NewEngineWithSeed(time.Now().UnixNano())
}

// NewEngineWithSeed creates an engine with a deterministic sequence of draws
func NewEngineWithSeed(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Play resolves one bet for the given game type. Choice is the variant-specific
// player input: heads|tails for coinflip, red|black|odd|even or a number string
// for roulette, ignored for slots and blackjack.
func (e *Engine) Play(gameType models.GameType, bet int64, choice string) (*Outcome, error) {
	if bet <= 0 {
		return nil, fmt.Errorf("bet amount must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch gameType {
	case models.GameTypeSlots:
		return e.playSlots(bet), nil
	case models.GameTypeCoinflip:
		return e.playCoinflip(bet, choice)
	case models.GameTypeBlackjack:
		return e.playBlackjack(bet), nil
	case models.GameTypeRoulette:
		return e.playRoulette(bet, choice), nil
	default:
		return nil, fmt.Errorf("unknown game type: %s", gameType)
	}
}

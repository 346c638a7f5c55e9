package events

import (
	"context"
	"sync"

	"pokecasino/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeUserCreated         EventType = "user_created"
	EventTypeBalanceChange       EventType = "balance_change"
	EventTypeGamePlayed          EventType = "game_played"
	EventTypeBonusClaimed        EventType = "bonus_claimed"
	EventTypePokemonRolled       EventType = "pokemon_rolled"
	EventTypeTournamentCompleted EventType = "tournament_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         string
	Username       string
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          string
	OldBalance      int64
	NewBalance      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// GamePlayedEvent represents a settled casino play
type GamePlayedEvent struct {
	UserID   string
	GameID   string
	GameType models.GameType
	Bet      int64
	Result   models.GameResult
	Payout   int64
}

func (e GamePlayedEvent) Type() EventType {
	return EventTypeGamePlayed
}

// BonusClaimedEvent represents a granted daily bonus
type BonusClaimedEvent struct {
	UserID string
	Amount int64
}

func (e BonusClaimedEvent) Type() EventType {
	return EventTypeBonusClaimed
}

// PokemonRolledEvent represents a recorded Pokemon roll
type PokemonRolledEvent struct {
	UserID      string
	PokemonID   int
	PokemonName string
	Cost        int64
}

func (e PokemonRolledEvent) Type() EventType {
	return EventTypePokemonRolled
}

// TournamentCompletedEvent represents a tournament reaching the completed state
type TournamentCompletedEvent struct {
	TournamentID string
	WinnerID     string
	PrizePool    int64
}

func (e TournamentCompletedEvent) Type() EventType {
	return EventTypeTournamentCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events until the enclosing unit of work commits,
// then flushes them to the real bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit. Events are emitted on a background
// context so handlers outlive the transaction's context.
func (b *TransactionalBus) Flush() {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard is called after rollback to clear pending state
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

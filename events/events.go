package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBidPlaced EventType = "bid_placed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// GameScoped is implemented by events that concern a single game. The bus
// delivers them to that game's subscribers in addition to type subscribers.
type GameScoped interface {
	ScopeGameID() int64
}

// BidPlacedEvent is emitted after an accepted bid has been committed
type BidPlacedEvent struct {
	BidID     int64           `json:"bid_id"`
	GameID    int64           `json:"game_id"`
	BidderID  int64           `json:"bidder_id"`
	Amount    decimal.Decimal `json:"amount"`
	IsWinning bool            `json:"is_winning"`
	CreatedAt time.Time       `json:"created_at"`

	// Price floor for the next bid once this bid is on the ledger
	MinimumAcceptableBid decimal.Decimal `json:"minimum_acceptable_bid"`
}

func (e BidPlacedEvent) Type() EventType {
	return EventTypeBidPlaced
}

func (e BidPlacedEvent) ScopeGameID() int64 {
	return e.GameID
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Subscription identifies a per-game handler so it can be removed again
type Subscription struct {
	gameID int64
	id     uint64
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu           sync.RWMutex
	handlers     map[EventType][]Handler
	gameHandlers map[int64]map[uint64]Handler
	nextID       uint64
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers:     make(map[EventType][]Handler),
		gameHandlers: make(map[int64]map[uint64]Handler),
	}
}

// Subscribe adds a handler for every event of the given type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// SubscribeGame adds a handler for events scoped to one game. The returned
// subscription must be passed to Unsubscribe when the listener goes away.
func (b *Bus) SubscribeGame(gameID int64, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := Subscription{gameID: gameID, id: b.nextID}

	if b.gameHandlers[gameID] == nil {
		b.gameHandlers[gameID] = make(map[uint64]Handler)
	}
	b.gameHandlers[gameID][sub.id] = handler

	log.WithFields(log.Fields{
		"game_id":     gameID,
		"subscribers": len(b.gameHandlers[gameID]),
	}).Debug("Subscribed live listener to game")

	return sub
}

// Unsubscribe removes a per-game handler. Unknown subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers, ok := b.gameHandlers[sub.gameID]
	if !ok {
		return
	}
	delete(handlers, sub.id)
	if len(handlers) == 0 {
		delete(b.gameHandlers, sub.gameID)
	}
}

// GameSubscriberCount returns the number of live listeners for a game
func (b *Bus) GameSubscriberCount(gameID int64) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.gameHandlers[gameID])
}

// Emit publishes an event to all matching handlers without blocking the caller
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers[event.Type()]))
	handlers = append(handlers, b.handlers[event.Type()]...)
	if scoped, ok := event.(GameScoped); ok {
		for _, h := range b.gameHandlers[scoped.ScopeGameID()] {
			handlers = append(handlers, h)
		}
	}
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

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

// TransactionalBus holds events raised inside a unit of work until the
// transaction commits, then hands them to the real bus.
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

// Flush is called after a successful commit. Handlers run detached from the
// request context so a finished request does not cancel them.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithField("pendingEventCount", len(b.pending)).Debug("Flushing committed events")

	eventCtx := context.WithoutCancel(ctx)
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}

// Pending returns the number of events waiting for commit
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

package game

import (
	"sync"
	"time"

	"github.com/lox/sueca/internal/deck"
)

// GameEvent represents any state change in a round. Every event carries a
// snapshot taken after the change, so subscribers can redraw from it.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	State() Snapshot
}

// RoundStartEvent is published after a new round has been dealt
type RoundStartEvent struct {
	RoundID   string
	TrumpCard deck.Card
	Leader    Seat
	Snapshot  Snapshot
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }
func (e RoundStartEvent) State() Snapshot      { return e.Snapshot }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(snap Snapshot) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   snap.RoundID,
		TrumpCard: snap.TrumpCard,
		Leader:    snap.CurrentSeat,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// CardPlayedEvent is published after every accepted play. Its snapshot shows
// the card on the table: for the fourth card of a trick the full trick is
// still present and the scores exclude it, with resolution following in
// TrickCompleteEvent.
type CardPlayedEvent struct {
	Play      Play
	Automated bool
	Fallback  bool // policy choice was illegal and replaced
	Snapshot  Snapshot
	timestamp time.Time
}

func (e CardPlayedEvent) EventType() EventType { return EventTypeCardPlayed }
func (e CardPlayedEvent) Timestamp() time.Time { return e.timestamp }
func (e CardPlayedEvent) State() Snapshot      { return e.Snapshot }

// NewCardPlayedEvent creates a new card played event
func NewCardPlayedEvent(play Play, automated, fallback bool, snap Snapshot) CardPlayedEvent {
	return CardPlayedEvent{
		Play:      play,
		Automated: automated,
		Fallback:  fallback,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// TrickCompleteEvent is published when the fourth card of a trick resolves it
type TrickCompleteEvent struct {
	Trick     TrickResult
	Snapshot  Snapshot
	timestamp time.Time
}

func (e TrickCompleteEvent) EventType() EventType { return EventTypeTrickComplete }
func (e TrickCompleteEvent) Timestamp() time.Time { return e.timestamp }
func (e TrickCompleteEvent) State() Snapshot      { return e.Snapshot }

// NewTrickCompleteEvent creates a new trick complete event
func NewTrickCompleteEvent(trick TrickResult, snap Snapshot) TrickCompleteEvent {
	return TrickCompleteEvent{
		Trick:     trick,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// RoundEndEvent is published once the last trick of a round resolves
type RoundEndEvent struct {
	RoundID   string
	Outcome   Outcome
	Tricks    []TrickResult
	Snapshot  Snapshot
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }
func (e RoundEndEvent) State() Snapshot      { return e.Snapshot }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(outcome Outcome, tricks []TrickResult, snap Snapshot) RoundEndEvent {
	return RoundEndEvent{
		RoundID:   snap.RoundID,
		Outcome:   outcome,
		Tricks:    tricks,
		Snapshot:  snap,
		timestamp: time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation. Delivery is
// synchronous, in subscription order.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. Subscribers must be
// comparable, so SubscriberFunc values cannot be removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

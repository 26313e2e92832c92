package game

import (
	"sync"
	"time"

	"github.com/Luto101/Solitaire/internal/game/board"
)

// EventType indicates the category of a game event.
type EventType string

const (
	EventCardsDrawn        EventType = "CARDS_DRAWN"
	EventStockRecycled     EventType = "STOCK_RECYCLED"
	EventFoundationMove    EventType = "FOUNDATION_MOVE"
	EventCardsPicked       EventType = "CARDS_PICKED"
	EventMoveCommitted     EventType = "MOVE_COMMITTED"
	EventMoveRejected      EventType = "MOVE_REJECTED"
	EventSelectionCanceled EventType = "SELECTION_CANCELED"
	EventMoveUndone        EventType = "MOVE_UNDONE"
	EventGameWon           EventType = "GAME_WON"
)

// Event describes something that happened on the board.
type Event struct {
	Type        EventType
	SessionID   string
	Location    board.Location // pile the event relates to
	Amount      int            // cards involved
	Moves       int            // board move counter after the event
	Timestamp   time.Time
	Description string
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

type typedListener struct {
	handle    int
	eventType EventType
	callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], typedListener{
		handle:    handle,
		eventType: eventType,
		callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not publish or subscribe from inside the callback.
func (bus *EventBus) Publish(event Event) {
	if bus == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.callback(event)
	}
}

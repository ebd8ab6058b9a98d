// Package events registers chart callbacks and delivers interaction events
// to them.
//
// Every event name has at most one callback; registering again replaces
// it. Delivery never happens inside the interaction that caused it: each
// invocation is posted to a [Scheduler] and runs on a later turn. A
// callback that panics is recovered and logged, and the remaining
// callbacks still run.
//
// A single interaction fires up to three events: the generic event of the
// shape's category (onKeyMouseEnter), an optional specific event for the
// shape within the category (onKeyPointMouseEnter), and the global event
// matching its suffix (onMouseEnter).
package events

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/observability"
	"github.com/matzehuels/semichord/pkg/shape"
)

// Event is the payload delivered to callbacks.
type Event struct {
	Elements []*shape.Shape
	Data     dataset.Datum
	Name     string
	Source   string
}

// Callback receives an event.
type Callback func(Event)

// Manager holds the callback registry of one chart.
type Manager struct {
	callbacks map[string]Callback
	sched     Scheduler
	logger    *log.Logger
	hooks     observability.EventHooks
}

// NewManager returns a manager posting invocations to sched. A nil
// scheduler gets a private [Queue], a nil logger uses log.Default() and nil
// hooks use the global registry.
func NewManager(sched Scheduler, logger *log.Logger, hooks observability.EventHooks) *Manager {
	if sched == nil {
		sched = NewQueue()
	}
	if logger == nil {
		logger = log.Default()
	}
	if hooks == nil {
		hooks = observability.Events()
	}
	return &Manager{
		callbacks: map[string]Callback{},
		sched:     sched,
		logger:    logger,
		hooks:     hooks,
	}
}

// RegisterCallback installs cb for name, replacing any previous callback.
// It returns false when name is empty or cb is nil.
func (m *Manager) RegisterCallback(name string, cb Callback) bool {
	if name == "" || cb == nil {
		return false
	}
	m.callbacks[name] = cb
	return true
}

// RegisteredCallback returns the callback for name, or nil.
func (m *Manager) RegisteredCallback(name string) Callback {
	return m.callbacks[name]
}

// ClearRegisteredCallbacks removes every callback.
func (m *Manager) ClearRegisteredCallbacks() {
	m.callbacks = map[string]Callback{}
}

// Names returns the event name catalog.
func (m *Manager) Names() Catalog { return Names() }

// Invoke schedules the callback registered for ev.Name. It does nothing
// when no callback is registered. The callback is resolved now, so a
// scheduled invocation runs even if the registration changes before it.
func (m *Manager) Invoke(ev Event) {
	if ev.Name == "" {
		return
	}
	cb, ok := m.callbacks[ev.Name]
	if !ok {
		return
	}
	m.hooks.OnDispatch(ev.Name)
	m.sched.Post(func() { m.run(cb, ev) })
}

func (m *Manager) run(cb Callback, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("callback panicked", "event", ev.Name, "source", ev.Source, "panic", r)
			m.hooks.OnCallbackPanic(ev.Name, r)
		}
	}()
	cb(ev)
}

// Dispatch fires the generic event, the specific event when both
// specificSource and specificEvent are set, and the global event inferred
// from the generic name. The global event's source is the specific source
// when there is one.
func (m *Manager) Dispatch(elements []*shape.Shape, data dataset.Datum, source, event, specificSource, specificEvent string) {
	m.Invoke(Event{Elements: elements, Data: data, Name: event, Source: source})

	if specificSource != "" && specificEvent != "" {
		m.Invoke(Event{Elements: elements, Data: data, Name: specificEvent, Source: specificSource})
	}

	if global := GlobalFor(event); global != "" {
		src := source
		if specificSource != "" {
			src = specificSource
		}
		m.Invoke(Event{Elements: elements, Data: data, Name: global, Source: src})
	}
}

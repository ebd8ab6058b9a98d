// Package chart is the public entry point: it turns records and a
// configuration into an interactive semi-chord chart mounted on a container
// element.
//
// # Lifecycle
//
// [New] validates the configuration against the container size, derives
// the key and attributes, computes the layout and builds the shape surface.
// [Chart.Update] and [Chart.SetConfig] repeat all of it; [Chart.Redraw]
// rebuilds only the shapes. Nothing is diffed: every draw replaces the
// surface and the coordinates.
//
//	c, err := chart.New(config.Box{Width: 800, Height: 500}, records,
//	    chart.WithKey("name"),
//	    chart.WithConfig(&config.Config{Radius: 150}),
//	)
//	c.Events().RegisterCallback("onRibbonClick", func(ev events.Event) {
//	    fmt.Println(ev.Data.Key, ev.Data.Attribute, ev.Data.Value)
//	})
//
// # Scheduling
//
// Callbacks never run inside the interaction that caused them. Without
// [WithScheduler] the chart keeps a private queue that the host drains
// with [Chart.RunPending]. Redraws requested from inside a callback are
// deferred the same way, so a callback can safely call Update.
package chart

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/semichord/pkg/config"
	"github.com/matzehuels/semichord/pkg/dataset"
	"github.com/matzehuels/semichord/pkg/errors"
	"github.com/matzehuels/semichord/pkg/events"
	"github.com/matzehuels/semichord/pkg/fonts"
	"github.com/matzehuels/semichord/pkg/interact"
	"github.com/matzehuels/semichord/pkg/layout"
	"github.com/matzehuels/semichord/pkg/observability"
	"github.com/matzehuels/semichord/pkg/render"
	"github.com/matzehuels/semichord/pkg/shape"
)

// Option configures [New].
type Option func(*options)

type options struct {
	cfg        *config.Config
	attributes []string
	key        string
	logger     *log.Logger
	sched      events.Scheduler
	measurer   fonts.Measurer
	hooks      observability.ChartHooks
	eventHooks observability.EventHooks
}

// WithConfig sets the chart configuration. Unset fields take defaults.
func WithConfig(cfg *config.Config) Option { return func(o *options) { o.cfg = cfg } }

// WithAttributes sets the attribute columns in display order. By default
// every field of the first record is an attribute.
func WithAttributes(attrs ...string) Option {
	return func(o *options) { o.attributes = attrs }
}

// WithKey sets the key field. By default the first attribute is the key.
func WithKey(key string) Option { return func(o *options) { o.key = key } }

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithScheduler delivers callbacks and deferred redraws through s instead
// of the chart's private queue.
func WithScheduler(s events.Scheduler) Option { return func(o *options) { o.sched = s } }

// WithMeasurer sets the text measurer used for label layout.
func WithMeasurer(m fonts.Measurer) Option { return func(o *options) { o.measurer = m } }

// WithHooks sets chart and event hooks. Nil hooks use the global registry.
func WithHooks(chart observability.ChartHooks, ev observability.EventHooks) Option {
	return func(o *options) {
		o.hooks = chart
		o.eventHooks = ev
	}
}

// Chart is a mounted semi-chord chart. It is not safe for concurrent use.
type Chart struct {
	id        string
	container config.Element

	records    []dataset.Record
	attributes []string
	key        string
	userCfg    *config.Config

	cfg     *config.Config
	table   *dataset.Table
	cc      *layout.Coordinates
	surface *shape.Surface

	events   *events.Manager
	handlers *interact.Handlers
	queue    *events.Queue
	raw      events.Scheduler

	logger   *log.Logger
	measurer fonts.Measurer
	hooks    observability.ChartHooks

	drawing    bool
	inCallback int
	deleted    bool
}

// New mounts a chart on container. It fails with INVALID_CONTAINER when
// container is nil, and with INVALID_DATA, INVALID_KEY, INVALID_ATTRIBUTES
// or INVALID_CONFIG when the input cannot be plotted.
func New(container config.Element, records []dataset.Record, opts ...Option) (*Chart, error) {
	if !config.Present(container) {
		return nil, errors.New(errors.ErrCodeInvalidContainer,
			"invalid container element: mount the chart on a sized element")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	if o.measurer == nil {
		o.measurer = fonts.Default()
	}
	if o.hooks == nil {
		o.hooks = observability.Chart()
	}

	c := &Chart{
		id:         uuid.NewString(),
		container:  container,
		records:    records,
		attributes: o.attributes,
		key:        o.key,
		userCfg:    o.cfg.Clone(),
		logger:     o.logger,
		measurer:   o.measurer,
		hooks:      o.hooks,
	}

	c.raw = o.sched
	if c.raw == nil {
		c.queue = events.NewQueue()
		c.raw = c.queue
	}
	// Callbacks are counted so redraws they request are deferred.
	callbacks := events.SchedulerFunc(func(task func()) {
		c.raw.Post(func() {
			c.inCallback++
			defer func() { c.inCallback-- }()
			task()
		})
	})

	c.events = events.NewManager(callbacks, c.logger, o.eventHooks)
	c.handlers = interact.New(c.events, func() *config.Config { return c.cfg })

	if err := c.prepare(); err != nil {
		return nil, err
	}
	c.draw()
	c.logger.Debug("chart mounted", "id", c.id, "records", len(c.table.Records), "attributes", len(c.table.Attributes))
	return c, nil
}

// ID returns the chart instance ID that prefixes every shape ID.
func (c *Chart) ID() string { return c.id }

// prepare validates the configuration and data and recomputes the layout.
// On failure the chart keeps its previous state.
func (c *Chart) prepare() error {
	cfg, err := config.Validate(c.userCfg.Clone(), c.container)
	if err != nil {
		c.logger.Error("invalid chart configuration", "err", err)
		return err
	}
	table, err := dataset.NewTable(c.records, c.attributes, c.key)
	if err != nil {
		c.logger.Error("invalid chart data", "err", err)
		return err
	}

	start := time.Now()
	cc := layout.Compute(cfg, table)
	c.hooks.OnLayoutComplete(len(table.Records), len(table.Attributes), time.Since(start))

	c.cfg, c.table, c.cc = cfg, table, cc
	// Later updates override the resolved inputs, not the raw ones.
	c.key, c.attributes = table.Key, append([]string(nil), table.Attributes...)
	return nil
}

// draw rebuilds the surface from the current coordinates. Any pinned
// shape is released since it no longer exists.
func (c *Chart) draw() {
	c.drawing = true
	defer func() { c.drawing = false }()

	start := time.Now()
	s := render.Build(c.cc, c.cfg, render.Options{
		ID:       c.id,
		Measurer: c.measurer,
		Wiring:   c.handlers,
	})
	c.handlers.Bind(s, c.cfg)
	c.surface = s
	c.hooks.OnRenderComplete(s.Len(), time.Since(start))
}

// busy reports whether a redraw must wait for a later turn.
func (c *Chart) busy() bool { return c.drawing || c.inCallback > 0 }

// later posts fn to the host scheduler, logging its error since nobody is
// left to receive it.
func (c *Chart) later(what string, fn func() error) {
	c.raw.Post(func() {
		if err := fn(); err != nil {
			c.logger.Warn("deferred "+what+" failed", "err", err)
		}
	})
}

func (c *Chart) checkDeleted() error {
	if c.deleted {
		return errors.New(errors.ErrCodeDeleted, "chart %s was deleted", c.id)
	}
	return nil
}

// UpdateOptions replaces parts of the chart input. Nil and empty fields
// keep their current values.
type UpdateOptions struct {
	Records    []dataset.Record
	Attributes []string
	Key        string
}

// Update replaces the given inputs, then re-validates, recomputes and
// redraws. Inputs it does not set keep the key and attributes resolved by
// the last successful draw. Called from a callback or during a draw it is deferred and
// returns nil.
func (c *Chart) Update(u UpdateOptions) error {
	if err := c.checkDeleted(); err != nil {
		return err
	}
	if c.busy() {
		c.later("update", func() error { return c.Update(u) })
		return nil
	}

	prev := struct {
		records    []dataset.Record
		attributes []string
		key        string
	}{c.records, c.attributes, c.key}

	if u.Records != nil {
		c.records = u.Records
	}
	if u.Attributes != nil {
		c.attributes = u.Attributes
	}
	if u.Key != "" {
		c.key = u.Key
	}
	if err := c.prepare(); err != nil {
		c.records, c.attributes, c.key = prev.records, prev.attributes, prev.key
		return err
	}
	c.draw()
	return nil
}

// Redraw rebuilds every shape from the current coordinates, dropping all
// highlights and the pin.
func (c *Chart) Redraw() error {
	if err := c.checkDeleted(); err != nil {
		return err
	}
	if c.busy() {
		c.later("redraw", c.Redraw)
		return nil
	}
	c.draw()
	return nil
}

// SetConfig replaces the configuration and updates the chart.
func (c *Chart) SetConfig(cfg *config.Config) error {
	if err := c.checkDeleted(); err != nil {
		return err
	}
	if c.busy() {
		cfg = cfg.Clone()
		c.later("config update", func() error { return c.SetConfig(cfg) })
		return nil
	}

	prev := c.userCfg
	c.userCfg = cfg.Clone()
	if err := c.prepare(); err != nil {
		c.userCfg = prev
		return err
	}
	c.draw()
	return nil
}

// Config returns a copy of the validated configuration, or nil once the
// chart is deleted.
func (c *Chart) Config() *config.Config {
	if c.deleted {
		return nil
	}
	return c.cfg.Clone()
}

// Coordinates returns the current layout. It is replaced, never mutated,
// by later draws.
func (c *Chart) Coordinates() *layout.Coordinates { return c.cc }

// Table returns the validated input table.
func (c *Chart) Table() *dataset.Table { return c.table }

// Delete removes every shape and callback. Later mutating calls fail with
// DELETED.
func (c *Chart) Delete() error {
	if err := c.checkDeleted(); err != nil {
		return err
	}
	c.surface.Clear()
	c.events.ClearRegisteredCallbacks()
	c.deleted = true
	c.logger.Debug("chart deleted", "id", c.id)
	return nil
}

// Events returns the callback registry.
func (c *Chart) Events() *events.Manager { return c.events }

// RunPending runs the callbacks queued on the chart's private queue and
// returns how many ran. With [WithScheduler] it does nothing.
func (c *Chart) RunPending() int {
	if c.queue == nil {
		return 0
	}
	return c.queue.RunPending()
}

// Trigger delivers a pointer action to the shape with the given ID.
func (c *Chart) Trigger(id string, a shape.Action) error {
	if err := c.checkDeleted(); err != nil {
		return err
	}
	return c.surface.Trigger(id, a)
}

// Elements gives access to the drawn shapes.
func (c *Chart) Elements() Elements { return Elements{c: c} }

// Elements exposes the chart's surface and color assignment.
type Elements struct{ c *Chart }

// Surface returns the current shape surface. It is empty once the chart is
// deleted.
func (e Elements) Surface() *shape.Surface { return e.c.surface }

// AttributeColor returns the color of attribute, or "" for an empty name.
func (e Elements) AttributeColor(attribute string) string {
	if attribute == "" || e.c.cc == nil {
		return ""
	}
	return e.c.cc.Color(attribute)
}

// Package numbercard implements a dashboard card for number and input_number
// entities: the current value, an icon, a name and an inline value control,
// with tap, hold and double tap actions.
//
// A Card is a small state container. Configuration, host snapshots and live
// values from the embedded control mark it dirty and schedule a render on its
// Scheduler; the render itself is the pure Compose function.
package numbercard

import (
	"context"
	"log/slog"

	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

// Scheduler receives render requests. Implementations must coalesce repeated
// requests for the same card into one Update call.
type Scheduler interface {
	Schedule(u Updater)
}

// Updater is something a Scheduler can render.
type Updater interface {
	Update() *render.Node
}

// Card is one number card instance. It is not safe for concurrent use; all
// calls must come from the host's UI goroutine (see Loop).
type Card struct {
	id         string
	frontend   Frontend
	dispatcher *Dispatcher
	scheduler  Scheduler

	config *types.CardConfig
	hass   *types.Hass
	value  *float64

	dirty     bool
	tree      *render.Node
	renders   int
	listeners map[int]func(*render.Node)
	nextSub   int
}

type CardOption func(*Card)

// WithID names the card in logs and dashboard lookups.
func WithID(id string) CardOption {
	return func(c *Card) { c.id = id }
}

func WithFrontend(fe Frontend) CardOption {
	return func(c *Card) { c.frontend = fe }
}

func WithActionHandler(h ActionHandler) CardOption {
	return func(c *Card) { c.dispatcher = NewDispatcher(h) }
}

// WithScheduler sets where render requests go. Without one the caller must
// call Update itself.
func WithScheduler(s Scheduler) CardOption {
	return func(c *Card) { c.scheduler = s }
}

func NewCard(opts ...CardOption) *Card {
	c := &Card{
		listeners: map[int]func(*render.Node){},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.frontend == nil {
		c.frontend = NewFrontend()
	}
	if c.dispatcher == nil {
		c.dispatcher = NewDispatcher(nil)
	}
	return c
}

func (c *Card) ID() string {
	return c.id
}

// SetConfig stores the resolved form of cfg and schedules a render.
func (c *Card) SetConfig(cfg types.CardConfig) {
	resolved := ResolveConfig(cfg)
	c.config = &resolved
	c.requestUpdate()
}

// Config returns the resolved config, false when none was set.
func (c *Card) Config() (types.CardConfig, bool) {
	if c.config == nil {
		return types.CardConfig{}, false
	}
	return *c.config, true
}

// SetHass hands the card a new host snapshot. The live override, if any, is kept.
func (c *Card) SetHass(hass *types.Hass) {
	c.hass = hass
	c.requestUpdate()
}

func (c *Card) Hass() *types.Hass {
	return c.hass
}

// Value returns the live override received from the embedded control.
func (c *Card) Value() (float64, bool) {
	if c.value == nil {
		return 0, false
	}
	return *c.value, true
}

func (c *Card) Phase() Phase {
	return PhaseOf(c.config, c.hass)
}

// CardSize is the card's height in dashboard rows.
func (c *Card) CardSize() int {
	return 1
}

// Render composes the tree for the current state without touching the dirty flag.
func (c *Card) Render() *render.Node {
	if c.config == nil {
		return nil
	}
	return Compose(ComposeInput{
		Frontend: c.frontend,
		Config:   *c.config,
		Hass:     c.hass,
		Value:    c.value,
	})
}

// Update renders, stores the tree, clears the dirty flag and notifies subscribers.
func (c *Card) Update() *render.Node {
	c.dirty = false
	c.tree = c.Render()
	c.renders++
	slog.Debug("Card rendered", "card", c.id, "phase", c.Phase().String(), "renders", c.renders)
	for _, fn := range c.listeners {
		fn(c.tree)
	}
	return c.tree
}

// Tree returns the last tree produced by Update.
func (c *Card) Tree() *render.Node {
	return c.tree
}

// Dirty reports whether a render has been requested but not performed.
func (c *Card) Dirty() bool {
	return c.dirty
}

// Renders counts completed Update calls.
func (c *Card) Renders() int {
	return c.renders
}

// Subscribe registers fn to receive every tree produced by Update.
// The returned function removes the subscription.
func (c *Card) Subscribe(fn func(*render.Node)) func() {
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

// HandleAction forwards a gesture from the state item to the action handler.
// It is a no-op until the card is fully renderable.
func (c *Card) HandleAction(ctx context.Context, ev ActionEvent) bool {
	if c.config == nil || c.hass == nil {
		return false
	}
	return c.dispatcher.Dispatch(ctx, c.hass, *c.config, ev.Action)
}

// HandleEvent routes a tree event by type. Unknown types are ignored.
func (c *Card) HandleEvent(ctx context.Context, eventType string, detail map[string]any) {
	switch eventType {
	case EventAction:
		action, _ := detail["action"].(string)
		c.HandleAction(ctx, ActionEvent{Action: action})
	case EventCurrentChange:
		c.OnCurrentChange(CurrentChangeFromDetail(detail))
	default:
		slog.Debug("Ignoring card event", "card", c.id, "type", eventType)
	}
}

func (c *Card) requestUpdate() {
	if c.dirty {
		return
	}
	c.dirty = true
	if c.scheduler != nil {
		c.scheduler.Schedule(c)
	}
}

package numbercard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/Xevion/go-ha-number-card/internal"
	"github.com/Xevion/go-ha-number-card/internal/connect"
	"github.com/Xevion/go-ha-number-card/internal/frontend"
	"github.com/Xevion/go-ha-number-card/internal/services"
	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

var ErrInvalidArgs = errors.New("invalid arguments provided")

// RenderFunc receives every tree a hosted card renders.
type RenderFunc func(cardID string, tree *render.Node)

// Dashboard hosts cards against a live Home Assistant instance. It owns the
// host snapshot, keeps it current from state_changed events and delivers it,
// along with UI events, to cards on its Loop.
type Dashboard struct {
	ctx       context.Context
	ctxCancel context.CancelFunc

	// Wraps the ws connection with added mutex locking
	conn       *connect.HAConnection
	writer     connect.Writer
	httpClient *internal.HttpClient

	loop     *Loop
	registry *Registry
	frontend Frontend
	services *services.Services
	actions  ActionHandler

	// hass is only read and replaced on the loop goroutine.
	hass *types.Hass

	// mu guards cards and order.
	mu    sync.RWMutex
	cards map[string]*Card
	order []string

	onRender         []RenderFunc
	onUIEvent        []types.UIEventFunc
	stateListenersId int64
}

// NewDashboard connects to Home Assistant, loads the current states and
// returns a dashboard ready for AddCard and Start.
func NewDashboard(request types.NewDashboardRequest) (*Dashboard, error) {
	if request.URL == "" || request.HAAuthToken == "" {
		slog.Error("URL and HAAuthToken are required arguments in NewDashboardRequest")
		return nil, ErrInvalidArgs
	}

	baseURL, err := url.Parse(request.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	ctx, ctxCancel := context.WithCancel(context.Background())
	conn, err := connect.Dial(ctx, baseURL, request.HAAuthToken)
	if err != nil {
		ctxCancel()
		return nil, err
	}

	httpClient := internal.NewHttpClient(ctx, baseURL, request.HAAuthToken)
	hass, err := loadSnapshot(httpClient, request)
	if err != nil {
		ctxCancel()
		_ = conn.Close()
		return nil, err
	}

	d := newDashboard(ctx, ctxCancel, conn, hass)
	d.conn = conn
	d.httpClient = httpClient
	return d, nil
}

// newDashboard wires a dashboard around an already connected writer.
func newDashboard(ctx context.Context, cancel context.CancelFunc, writer connect.Writer, hass *types.Hass) *Dashboard {
	d := &Dashboard{
		ctx:       ctx,
		ctxCancel: cancel,
		writer:    writer,
		loop:      NewLoop(),
		registry:  NewRegistry(),
		frontend:  NewFrontend(),
		services:  services.New(writer),
		hass:      hass,
		cards:     map[string]*Card{},
	}
	d.actions = services.NewActionHandler(d.services, d.emitUIEvent)
	if err := RegisterCards(d.registry); err != nil {
		slog.Error("Failed to register cards", "error", err)
	}
	return d
}

func loadSnapshot(c *internal.HttpClient, request types.NewDashboardRequest) (*types.Hass, error) {
	raw, err := c.GetStates()
	if err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}
	states, err := internal.ParseStates(raw)
	if err != nil {
		return nil, err
	}

	var core types.CoreConfig
	if raw, err := c.GetConfig(); err != nil {
		slog.Warn("Failed to load core config", "error", err)
	} else if core, err = internal.ParseCoreConfig(raw); err != nil {
		slog.Warn("Failed to parse core config", "error", err)
	}

	locale := request.Locale
	if locale.Language == "" {
		locale.Language = "en"
	}
	if locale.NumberFormat == "" {
		locale.NumberFormat = types.NumberFormatLanguage
	}

	return &types.Hass{
		States:   states,
		Entities: map[string]types.EntityRegistryEntry{},
		Locale:   locale,
		Config:   core,
		Localize: frontend.NewLocalizer(locale.Language, request.Translations),
	}, nil
}

// Registry returns the card registry the dashboard creates cards from.
func (d *Dashboard) Registry() *Registry {
	return d.registry
}

func (d *Dashboard) Loop() *Loop {
	return d.loop
}

// OnRender registers fn for every tree any hosted card renders.
// Register before Start.
func (d *Dashboard) OnRender(fn RenderFunc) {
	d.onRender = append(d.onRender, fn)
}

// OnUIEvent registers fn for frontend actions such as more-info or navigate.
// Register before Start.
func (d *Dashboard) OnUIEvent(fn types.UIEventFunc) {
	d.onUIEvent = append(d.onUIEvent, fn)
}

func (d *Dashboard) emitUIEvent(ctx context.Context, ev types.UIEvent) {
	for _, fn := range d.onUIEvent {
		fn(ctx, ev)
	}
}

// AddCard creates a card from cfg.Type (the number card when empty), gives it
// the config and the current snapshot, and schedules its first render.
// Call before Start or from a loop task.
func (d *Dashboard) AddCard(id string, cfg types.CardConfig) (*Card, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: card id is required", ErrInvalidArgs)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.cards[id]; exists {
		return nil, fmt.Errorf("%w: duplicate card id %q", ErrInvalidArgs, id)
	}

	cardType := cfg.Type
	if cardType == "" {
		cardType = CardType
	}
	card, err := d.registry.Create(cardType,
		WithID(id),
		WithFrontend(d.frontend),
		WithActionHandler(d.actions),
		WithScheduler(d.loop),
	)
	if err != nil {
		return nil, err
	}

	card.Subscribe(func(tree *render.Node) {
		for _, fn := range d.onRender {
			fn(id, tree)
		}
	})
	card.SetConfig(cfg)
	card.SetHass(d.hass)

	d.cards[id] = card
	d.order = append(d.order, id)
	return card, nil
}

// Card returns a hosted card by id.
func (d *Dashboard) Card(id string) (*Card, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.cards[id]
	return c, ok
}

// Cards returns hosted card ids in the order they were added.
func (d *Dashboard) Cards() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.order...)
}

// Dispatch delivers a tree event (action, current-change) to a card on the loop.
func (d *Dashboard) Dispatch(cardID, eventType string, detail map[string]any) error {
	card, ok := d.Card(cardID)
	if !ok {
		return fmt.Errorf("%w: unknown card %q", ErrInvalidArgs, cardID)
	}
	return d.loop.Post(func() {
		card.HandleEvent(d.ctx, eventType, detail)
	})
}

// SetValue plays the embedded control committing a value: the card gets the
// optimistic current-change first, then the set_value service call goes out.
func (d *Dashboard) SetValue(cardID string, value float64) error {
	card, ok := d.Card(cardID)
	if !ok {
		return fmt.Errorf("%w: unknown card %q", ErrInvalidArgs, cardID)
	}
	cfg, ok := card.Config()
	if !ok || cfg.Entity == "" {
		return fmt.Errorf("%w: card %q has no entity", ErrInvalidArgs, cardID)
	}

	if err := d.loop.Post(func() {
		card.OnCurrentChange(CurrentChangeEvent{Value: &value})
	}); err != nil {
		return err
	}
	if err := d.services.SetValue(cfg.Entity, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", cfg.Entity, err)
	}
	return nil
}

// Step plays the buttons control: the card gets its value moved one step of
// the entity, then the matching service call goes out. Both happen on the
// loop; failures there are logged.
func (d *Dashboard) Step(cardID string, up bool) error {
	card, ok := d.Card(cardID)
	if !ok {
		return fmt.Errorf("%w: unknown card %q", ErrInvalidArgs, cardID)
	}
	return d.loop.Post(func() {
		if err := d.step(card, up); err != nil {
			slog.Warn("Failed to step value", "card", cardID, "error", err)
		}
	})
}

func (d *Dashboard) step(card *Card, up bool) error {
	cfg, ok := card.Config()
	if !ok || cfg.Entity == "" {
		return fmt.Errorf("%w: card %q has no entity", ErrInvalidArgs, card.ID())
	}
	entity, ok := card.Hass().Entity(cfg.Entity)
	if !ok {
		return fmt.Errorf("%w: entity %q not found", ErrInvalidArgs, cfg.Entity)
	}

	current, ok := card.Value()
	if !ok {
		var err error
		if current, err = strconv.ParseFloat(entity.State, 64); err != nil {
			return fmt.Errorf("%w: state %q of %s is not a number", ErrInvalidArgs, entity.State, cfg.Entity)
		}
	}

	next, changed := stepValue(entity, current, up)
	if !changed {
		return nil
	}
	card.OnCurrentChange(CurrentChangeEvent{Value: &next})
	if err := d.services.Step(cfg.Entity, next, up); err != nil {
		return fmt.Errorf("failed to step %s: %w", cfg.Entity, err)
	}
	return nil
}

// setHass replaces the snapshot and hands it to every card. Loop goroutine only.
func (d *Dashboard) setHass(hass *types.Hass) {
	d.hass = hass

	d.mu.RLock()
	cards := make([]*Card, 0, len(d.order))
	for _, id := range d.order {
		cards = append(cards, d.cards[id])
	}
	d.mu.RUnlock()

	for _, card := range cards {
		card.SetHass(hass)
	}
}

// Start subscribes to state changes and runs the loop until the dashboard is
// closed or the websocket drops. Cards render once before events arrive.
func (d *Dashboard) Start() error {
	slog.Info("Starting", "cards", len(d.Cards()))

	d.loop.Tick()

	d.stateListenersId = internal.NextId()
	if err := connect.SubscribeToStateChangedEvents(d.stateListenersId, d.writer); err != nil {
		return err
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- d.loop.Run(d.ctx) }()

	if d.conn == nil {
		if err := <-loopErr; !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}

	msgs := make(chan connect.ChannelMessage, 100)
	go connect.ListenWebsocket(d.ctx, d.conn.Conn, msgs)

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				slog.Info("WebSocket channel closed, stopping main loop")
				d.ctxCancel()
				<-loopErr
				return nil
			}
			if msg.Id == d.stateListenersId && msg.Type == "event" {
				raw := msg.Raw
				if err := d.loop.Post(func() { d.handleStateChanged(raw) }); err != nil {
					slog.Warn("Dropping state change", "error", err)
				}
			}
		case err := <-loopErr:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// Close performs a clean shutdown: the loop stops, then the websocket and
// HTTP client are closed.
func (d *Dashboard) Close() error {
	if d.ctxCancel != nil {
		d.ctxCancel()
	}
	d.loop.Close()

	var errs []error
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			slog.Warn("Error closing WebSocket connection", "error", err)
			errs = append(errs, err)
		}
	}
	if d.httpClient != nil {
		if err := d.httpClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	// Give goroutines reading the socket a moment to observe the closure
	time.Sleep(100 * time.Millisecond)

	UnregisterCards(d.registry)
	return errors.Join(errs...)
}

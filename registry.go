package numbercard

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Xevion/go-ha-number-card/types"
)

const (
	// CardType is the element name the card registers under.
	CardType = "mushroom-number-card"
	// CustomPrefix marks third-party card types in dashboard configs.
	CustomPrefix = "custom:"
)

// EntityDomains are the domains the card accepts.
var EntityDomains = []string{"number", "input_number"}

var (
	ErrDuplicateCard = errors.New("card type already registered")
	ErrUnknownCard   = errors.New("unknown card type")
)

// CardInfo is what the host's card picker shows.
type CardInfo struct {
	Type        string
	Name        string
	Description string
	Preview     bool
}

// Definition describes a registrable card type.
type Definition struct {
	CardInfo
	New           func(opts ...CardOption) *Card
	StubConfig    func(hass *types.Hass) types.CardConfig
	ConfigElement func() *Editor
}

// Registry holds the card types known to a host. Hosts populate it during
// startup and clear it on teardown.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]Definition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]Definition),
	}
}

// Register adds a definition.
func (r *Registry) Register(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	def.Type = strings.TrimPrefix(def.Type, CustomPrefix)
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCard, def.Type)
	}
	r.defs[def.Type] = def
	r.order = append(r.order, def.Type)
	return nil
}

// Unregister removes a definition, reporting whether it was present.
func (r *Registry) Unregister(cardType string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cardType = strings.TrimPrefix(cardType, CustomPrefix)
	if _, exists := r.defs[cardType]; !exists {
		return false
	}
	delete(r.defs, cardType)
	r.order = slices.DeleteFunc(r.order, func(t string) bool { return t == cardType })
	return true
}

// Get looks a definition up by type, with or without the custom: prefix.
func (r *Registry) Get(cardType string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[strings.TrimPrefix(cardType, CustomPrefix)]
	return def, ok
}

// Cards lists registered cards in registration order.
func (r *Registry) Cards() []CardInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]CardInfo, 0, len(r.order))
	for _, t := range r.order {
		infos = append(infos, r.defs[t].CardInfo)
	}
	return infos
}

// Create builds a card of the given type.
func (r *Registry) Create(cardType string, opts ...CardOption) (*Card, error) {
	def, ok := r.Get(cardType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, cardType)
	}
	return def.New(opts...), nil
}

// NumberCard returns the number card definition.
func NumberCard() Definition {
	return Definition{
		CardInfo: CardInfo{
			Type:        CardType,
			Name:        "Mushroom Number Card",
			Description: "Card for number and input number entity",
			Preview:     true,
		},
		New:           NewCard,
		StubConfig:    StubConfig,
		ConfigElement: ConfigElement,
	}
}

// RegisterCards registers every card this module provides. Hosts call it once
// during plugin initialization.
func RegisterCards(r *Registry) error {
	if err := r.Register(NumberCard()); err != nil {
		return err
	}
	slog.Info("Registered cards", "count", 1)
	return nil
}

// UnregisterCards undoes RegisterCards on host teardown.
func UnregisterCards(r *Registry) {
	r.Unregister(CardType)
}

// StubConfig returns a starting config for the card picker, bound to the
// first number-like entity in the snapshot (by entity id). Entity is empty
// when there is none.
func StubConfig(hass *types.Hass) types.CardConfig {
	cfg := types.CardConfig{Type: CustomPrefix + CardType}
	if hass == nil {
		return cfg
	}

	ids := make([]string, 0, len(hass.States))
	for id := range hass.States {
		if slices.Contains(EntityDomains, types.ComputeDomain(id)) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	if len(ids) > 0 {
		cfg.Entity = ids[0]
	}
	return cfg
}

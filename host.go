package numbercard

import (
	"context"
	"time"

	"github.com/Xevion/go-ha-number-card/internal/frontend"
	"github.com/Xevion/go-ha-number-card/types"
)

// Frontend is the set of host helpers a card delegates to. The card decides
// when to call them and with what arguments; it never formats, translates or
// resolves colors itself.
type Frontend interface {
	// StateDisplay returns the host's localized text for the entity's state.
	StateDisplay(hass *types.Hass, entity types.Entity) string
	// RTL reports whether the host locale reads right to left.
	RTL(hass *types.Hass) bool
	FormatNumber(value float64, locale types.Locale, opts types.NumberFormatOptions) string
	// NumberFormatOptions returns entity specific options, or nil when there are none.
	NumberFormatOptions(entity types.Entity, entry *types.EntityRegistryEntry) *types.NumberFormatOptions
	DefaultFormatOptions(state string) types.NumberFormatOptions
	// RGBColor resolves a configured color to an "r,g,b" expression.
	RGBColor(color string) string
	RelativeTime(hass *types.Hass, t time.Time) string
	Localize(hass *types.Hass, key string) string
}

// ActionHandler executes action descriptors. Calls are fire and forget: the
// handler owns its failures and nothing flows back into the card.
type ActionHandler interface {
	HandleAction(ctx context.Context, req types.ActionRequest)
}

// ActionHandlerFunc adapts a function to ActionHandler.
type ActionHandlerFunc func(ctx context.Context, req types.ActionRequest)

func (f ActionHandlerFunc) HandleAction(ctx context.Context, req types.ActionRequest) {
	f(ctx, req)
}

// NewFrontend returns the default frontend helpers.
func NewFrontend() Frontend {
	return frontend.New()
}

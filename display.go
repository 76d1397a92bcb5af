package numbercard

import (
	"fmt"

	"github.com/Xevion/go-ha-number-card/types"
)

// FormatDisplay returns the value text for entity.
//
// Without an override it is the host's state display. With one, the override
// is formatted with the entity's own number options (falling back to options
// derived from the raw state) and the unit is appended after a single space.
// An empty unit leaves the trailing space in place.
func FormatDisplay(fe Frontend, hass *types.Hass, entity types.Entity, override *float64) string {
	if override == nil {
		return fe.StateDisplay(hass, entity)
	}

	entry, _ := hass.RegistryEntry(entity.EntityID)
	opts := fe.NumberFormatOptions(entity, entry)
	if opts == nil {
		defaults := fe.DefaultFormatOptions(entity.State)
		opts = &defaults
	}

	var locale types.Locale
	if hass != nil {
		locale = hass.Locale
	}
	return fmt.Sprintf("%s %s", fe.FormatNumber(*override, locale, *opts), entity.Unit())
}

// infoText picks the text for a primary or secondary info line. ok is false
// when the line should not be drawn.
func infoText(fe Frontend, hass *types.Hass, info, name, state string, entity types.Entity) (string, bool) {
	switch info {
	case types.InfoName:
		return name, true
	case types.InfoState:
		return state, true
	case types.InfoLastChanged:
		return fe.RelativeTime(hass, entity.LastChanged), true
	case types.InfoLastUpdated:
		return fe.RelativeTime(hass, entity.LastUpdated), true
	}
	return "", false
}

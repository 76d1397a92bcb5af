package frontend

import (
	"strconv"
	"strings"

	"github.com/Xevion/go-ha-number-card/types"
)

// numericDomains are displayed as formatted numbers with their unit.
var numericDomains = map[string]bool{
	"number":       true,
	"input_number": true,
	"sensor":       true,
	"counter":      true,
}

// StateDisplay returns the localized text for an entity's current state.
func (f *Frontend) StateDisplay(hass *types.Hass, entity types.Entity) string {
	switch entity.State {
	case types.StateUnavailable, types.StateUnknown:
		return f.Localize(hass, "state.default."+entity.State)
	}

	if !numericDomains[entity.Domain()] {
		return entity.State
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(entity.State), 64)
	if err != nil {
		return entity.State
	}

	var locale types.Locale
	if hass != nil {
		locale = hass.Locale
	}
	entry, _ := hass.RegistryEntry(entity.EntityID)
	opts := f.NumberFormatOptions(entity, entry)
	if opts == nil {
		d := f.DefaultFormatOptions(entity.State)
		opts = &d
	}

	formatted := f.FormatNumber(value, locale, *opts)
	unit := entity.Unit()
	switch unit {
	case "":
		return formatted
	case "%":
		return formatted + unit
	default:
		return formatted + " " + unit
	}
}

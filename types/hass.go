package types

import (
	"maps"
	"strings"
	"time"
)

const (
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
)

// Entity is a single entity state object as Home Assistant reports it.
type Entity struct {
	EntityID    string         `json:"entity_id"`
	State       string         `json:"state"`
	Attributes  map[string]any `json:"attributes"`
	LastChanged time.Time      `json:"last_changed"`
	LastUpdated time.Time      `json:"last_updated"`
}

// Domain returns the part of the entity id before the first dot.
func (e Entity) Domain() string {
	return ComputeDomain(e.EntityID)
}

// Attribute returns the raw attribute value for key.
func (e Entity) Attribute(key string) (any, bool) {
	if e.Attributes == nil {
		return nil, false
	}
	v, ok := e.Attributes[key]
	return v, ok
}

// StringAttribute returns the attribute for key when it is a string, else "".
func (e Entity) StringAttribute(key string) string {
	v, ok := e.Attribute(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (e Entity) FriendlyName() string {
	return e.StringAttribute("friendly_name")
}

// Unit returns the declared unit of measurement, "" when none is declared.
func (e Entity) Unit() string {
	return e.StringAttribute("unit_of_measurement")
}

func (e Entity) Picture() string {
	return e.StringAttribute("entity_picture")
}

// Available reports whether the entity is in any state other than unavailable.
func (e Entity) Available() bool {
	return e.State != StateUnavailable
}

// Active reports whether the entity should be drawn as active (not off and known).
func (e Entity) Active() bool {
	switch e.State {
	case StateUnavailable, StateUnknown, "off":
		return false
	}
	return true
}

// ComputeDomain returns the domain of an entity id such as "number.boiler".
func ComputeDomain(entityID string) string {
	domain, _, _ := strings.Cut(entityID, ".")
	return domain
}

// EntityRegistryEntry is the display-relevant part of an entity registry entry.
type EntityRegistryEntry struct {
	EntityID         string `json:"entity_id" yaml:"entity_id"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty"`
	Icon             string `json:"icon,omitempty" yaml:"icon,omitempty"`
	DisplayPrecision *int   `json:"display_precision,omitempty" yaml:"display_precision,omitempty"`
}

// NumberFormat is the user's preferred number format.
type NumberFormat string

const (
	NumberFormatLanguage     NumberFormat = "language"
	NumberFormatSystem       NumberFormat = "system"
	NumberFormatCommaDecimal NumberFormat = "comma_decimal"
	NumberFormatDecimalComma NumberFormat = "decimal_comma"
	NumberFormatSpaceComma   NumberFormat = "space_comma"
	NumberFormatNone         NumberFormat = "none"
)

// Locale holds the frontend locale preferences.
type Locale struct {
	Language     string       `json:"language" yaml:"language"`
	NumberFormat NumberFormat `json:"number_format" yaml:"number_format"`
}

// NumberFormatOptions mirrors the fraction digit options of a locale-aware number formatter.
// A nil field means "not specified".
type NumberFormatOptions struct {
	MinimumFractionDigits *int
	MaximumFractionDigits *int
}

// CoreConfig is the subset of the Home Assistant core configuration used by cards.
type CoreConfig struct {
	LocationName string            `json:"location_name"`
	TimeZone     string            `json:"time_zone"`
	Version      string            `json:"version"`
	UnitSystem   map[string]string `json:"unit_system"`
}

// LocalizeFunc translates a localization key. It returns "" for unknown keys.
type LocalizeFunc func(key string, args ...any) string

// Hass is a read-only snapshot of the host context handed to cards.
// Cards must never mutate it; the host replaces the whole snapshot on change.
type Hass struct {
	States   map[string]Entity
	Entities map[string]EntityRegistryEntry
	Locale   Locale
	Config   CoreConfig
	Localize LocalizeFunc
}

// Entity looks up the state object for entityID.
func (h *Hass) Entity(entityID string) (Entity, bool) {
	if h == nil || h.States == nil {
		return Entity{}, false
	}
	e, ok := h.States[entityID]
	return e, ok
}

// RegistryEntry looks up the entity registry entry for entityID.
func (h *Hass) RegistryEntry(entityID string) (*EntityRegistryEntry, bool) {
	if h == nil || h.Entities == nil {
		return nil, false
	}
	e, ok := h.Entities[entityID]
	if !ok {
		return nil, false
	}
	return &e, true
}

// Translate calls Localize, returning "" when none is set.
func (h *Hass) Translate(key string, args ...any) string {
	if h == nil || h.Localize == nil {
		return ""
	}
	return h.Localize(key, args...)
}

// WithState returns a copy of the snapshot where entity replaces any previous state
// of the same id. The receiver is left untouched.
func (h *Hass) WithState(entity Entity) *Hass {
	next := *h
	next.States = maps.Clone(h.States)
	if next.States == nil {
		next.States = map[string]Entity{}
	}
	next.States[entity.EntityID] = entity
	return &next
}

// WithoutState returns a copy of the snapshot with entityID removed.
func (h *Hass) WithoutState(entityID string) *Hass {
	next := *h
	next.States = maps.Clone(h.States)
	delete(next.States, entityID)
	return &next
}

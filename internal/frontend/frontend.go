// Package frontend provides default implementations of the host frontend
// helpers a card calls into: state display, number formatting, reading
// direction, color resolution, relative time and translations.
package frontend

import (
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/Xevion/go-ha-number-card/types"
)

// DefaultTranslations are used when the host snapshot has no translation for a key.
var DefaultTranslations = map[string]string{
	"state.default.unavailable": "Unavailable",
	"state.default.unknown":     "Unknown",
	"card.not_found":            "Entity not found",
}

// Frontend implements the helpers with Home Assistant's frontend semantics.
// The zero value is ready to use.
type Frontend struct{}

func New() *Frontend {
	return &Frontend{}
}

var defaultLocalizer = NewLocalizer("", nil)

// Localize translates key through the snapshot's Localize function, then
// DefaultTranslations, then returns the key itself.
func (f *Frontend) Localize(hass *types.Hass, key string) string {
	if s := hass.Translate(key); s != "" {
		return s
	}
	if s := defaultLocalizer(key); s != "" {
		return s
	}
	return key
}

// NewLocalizer returns a LocalizeFunc for lang. DefaultTranslations are
// registered for every language; overrides apply to lang and the languages
// under it. Messages take printf style arguments.
func NewLocalizer(lang string, overrides map[string]string) types.LocalizeFunc {
	tag := parseLanguage(lang)

	cat := catalog.NewBuilder()
	for key, msg := range DefaultTranslations {
		if err := cat.SetString(language.Und, key, msg); err != nil {
			slog.Warn("Invalid default translation", "key", key, "error", err)
		}
	}
	for key, msg := range overrides {
		if err := cat.SetString(tag, key, msg); err != nil {
			slog.Warn("Invalid translation", "language", tag, "key", key, "error", err)
		}
	}

	p := message.NewPrinter(tag, message.Catalog(cat))
	return func(key string, args ...any) string {
		if cat.Context(tag, discard{}).Execute(key) == catalog.ErrNotFound {
			return ""
		}
		return p.Sprintf(key, args...)
	}
}

func parseLanguage(lang string) language.Tag {
	if lang == "" {
		return language.Und
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return language.Und
	}
	return tag
}

// discard renders nothing. Executing a key with it only reports whether the
// catalog has a message for it.
type discard struct{}

func (discard) Render(string)       {}
func (discard) Arg(int) interface{} { return nil }

package frontend

import (
	"golang.org/x/text/language"

	"github.com/Xevion/go-ha-number-card/types"
)

var rtlScripts = map[string]bool{
	"Arab": true,
	"Hebr": true,
	"Thaa": true,
	"Syrc": true,
	"Nkoo": true,
	"Adlm": true,
	"Mand": true,
	"Samr": true,
}

// RTL reports whether the snapshot's language is written right to left.
func (f *Frontend) RTL(hass *types.Hass) bool {
	if hass == nil || hass.Locale.Language == "" {
		return false
	}
	tag, err := language.Parse(hass.Locale.Language)
	if err != nil {
		return false
	}
	script, _ := tag.Script()
	return rtlScripts[script.String()]
}

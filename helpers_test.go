package numbercard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Xevion/go-ha-number-card/types"
)

// fakeFrontend returns predictable strings so tests can tell which helper
// produced a piece of text.
type fakeFrontend struct {
	rtl        bool
	entityOpts *types.NumberFormatOptions
	rgb        map[string]string

	rgbCalls    []string
	formatCalls []types.NumberFormatOptions
	defaultArgs []string
}

func (f *fakeFrontend) StateDisplay(_ *types.Hass, entity types.Entity) string {
	return "display:" + entity.State
}

func (f *fakeFrontend) RTL(*types.Hass) bool {
	return f.rtl
}

func (f *fakeFrontend) FormatNumber(value float64, _ types.Locale, opts types.NumberFormatOptions) string {
	f.formatCalls = append(f.formatCalls, opts)
	digits := -1
	if opts.MaximumFractionDigits != nil {
		digits = *opts.MaximumFractionDigits
	}
	return strconv.FormatFloat(value, 'f', digits, 64)
}

func (f *fakeFrontend) NumberFormatOptions(types.Entity, *types.EntityRegistryEntry) *types.NumberFormatOptions {
	return f.entityOpts
}

func (f *fakeFrontend) DefaultFormatOptions(state string) types.NumberFormatOptions {
	f.defaultArgs = append(f.defaultArgs, state)
	return types.NumberFormatOptions{MaximumFractionDigits: intPtr(1)}
}

func (f *fakeFrontend) RGBColor(color string) string {
	f.rgbCalls = append(f.rgbCalls, color)
	if rgb, ok := f.rgb[color]; ok {
		return rgb
	}
	return "var(--rgb-" + color + ")"
}

func (f *fakeFrontend) RelativeTime(_ *types.Hass, t time.Time) string {
	return fmt.Sprintf("ago:%d", t.Unix())
}

func (f *fakeFrontend) Localize(_ *types.Hass, key string) string {
	return "t:" + key
}

// recordingHandler collects dispatched action requests.
type recordingHandler struct {
	requests []types.ActionRequest
}

func (h *recordingHandler) HandleAction(_ context.Context, req types.ActionRequest) {
	h.requests = append(h.requests, req)
}

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func numberEntity(id, state, unit string) types.Entity {
	attrs := map[string]any{"friendly_name": "Boiler"}
	if unit != "" {
		attrs["unit_of_measurement"] = unit
	}
	return types.Entity{
		EntityID:    id,
		State:       state,
		Attributes:  attrs,
		LastChanged: time.Unix(1000, 0),
		LastUpdated: time.Unix(2000, 0),
	}
}

func snapshot(entities ...types.Entity) *types.Hass {
	states := map[string]types.Entity{}
	for _, e := range entities {
		states[e.EntityID] = e
	}
	return &types.Hass{
		States: states,
		Locale: types.Locale{Language: "en", NumberFormat: types.NumberFormatLanguage},
	}
}

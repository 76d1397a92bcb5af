package numbercard

import (
	"encoding/json"
	"log/slog"
	"reflect"
)

// CurrentChangeEvent is emitted by the embedded value control while the user
// drags or steps the value, before the backend confirms it.
type CurrentChangeEvent struct {
	Value *float64
}

// CurrentChangeFromDetail decodes an event detail payload of the form
// {"value": number}. Any Go integer or float kind and json.Number count as a
// number; a missing or non-numeric value decodes to a nil Value.
func CurrentChangeFromDetail(detail map[string]any) CurrentChangeEvent {
	var ev CurrentChangeEvent
	if v, ok := toFloat(detail["value"]); ok {
		ev.Value = &v
	}
	return ev
}

func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// OnCurrentChange absorbs a live value from the embedded control. A defined
// value replaces the override and schedules a render; an undefined one is
// ignored.
//
// The override is never reconciled with later host state: once set it is
// shown until the next event carrying a value arrives, even if the host
// pushes a different state in between.
func (c *Card) OnCurrentChange(ev CurrentChangeEvent) {
	if ev.Value == nil {
		return
	}
	v := *ev.Value
	c.value = &v
	slog.Debug("Live value override set", "card", c.id, "value", v)
	c.requestUpdate()
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/types"
)

type recorder struct {
	messages []map[string]any
	err      error
}

func (r *recorder) WriteMessage(msg any) error {
	if r.err != nil {
		return r.err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	r.messages = append(r.messages, m)
	return nil
}

type uiRecorder struct {
	events []types.UIEvent
}

func (u *uiRecorder) record(_ context.Context, ev types.UIEvent) {
	u.events = append(u.events, ev)
}

func newHandler() (*ActionHandler, *recorder, *uiRecorder) {
	rec := &recorder{}
	ui := &uiRecorder{}
	return NewActionHandler(New(rec), ui.record), rec, ui
}

func request(a types.ActionConfig) types.ActionRequest {
	return types.ActionRequest{EntityID: "number.boiler", Gesture: types.GestureTap, Action: a}
}

func TestHandleActionMoreInfo(t *testing.T) {
	h, rec, ui := newHandler()
	h.HandleAction(context.Background(), request(types.ActionConfig{Action: types.ActionMoreInfo}))

	assert.Empty(t, rec.messages)
	require.Len(t, ui.events, 1)
	assert.Equal(t, UIEventMoreInfo, ui.events[0].Type)
	assert.Equal(t, "number.boiler", ui.events[0].Detail["entityId"])
}

func TestHandleActionToggle(t *testing.T) {
	h, rec, ui := newHandler()
	h.HandleAction(context.Background(), request(types.ActionConfig{Action: types.ActionToggle}))

	assert.Empty(t, ui.events)
	require.Len(t, rec.messages, 1)
	msg := rec.messages[0]
	assert.Equal(t, "call_service", msg["type"])
	assert.Equal(t, "homeassistant", msg["domain"])
	assert.Equal(t, "toggle", msg["service"])
	assert.Equal(t, map[string]any{"entity_id": "number.boiler"}, msg["target"])
}

func TestHandleActionPerformAction(t *testing.T) {
	tests := []struct {
		name   string
		action types.ActionConfig
	}{
		{
			name: "perform-action",
			action: types.ActionConfig{
				Action:        types.ActionPerformAction,
				PerformAction: "number.set_value",
				Data:          map[string]any{"value": 3.0},
				Target:        map[string]any{"entity_id": "number.other"},
			},
		},
		{
			name: "legacy call-service",
			action: types.ActionConfig{
				Action:      types.ActionCallService,
				Service:     "number.set_value",
				ServiceData: map[string]any{"value": 3.0},
				Target:      map[string]any{"entity_id": "number.other"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, rec, _ := newHandler()
			h.HandleAction(context.Background(), request(tt.action))

			require.Len(t, rec.messages, 1)
			msg := rec.messages[0]
			assert.Equal(t, "number", msg["domain"])
			assert.Equal(t, "set_value", msg["service"])
			assert.Equal(t, map[string]any{"value": 3.0}, msg["service_data"])
			assert.Equal(t, map[string]any{"entity_id": "number.other"}, msg["target"])
		})
	}
}

func TestHandleActionInvalidName(t *testing.T) {
	h, rec, _ := newHandler()
	h.HandleAction(context.Background(), request(types.ActionConfig{Action: types.ActionPerformAction, PerformAction: "nodot"}))
	assert.Empty(t, rec.messages)
}

func TestHandleActionFrontendEvents(t *testing.T) {
	tests := []struct {
		action   types.ActionConfig
		uiType   string
		detailOK func(map[string]any) bool
	}{
		{types.ActionConfig{Action: types.ActionNavigate, NavigationPath: "/lovelace/1"}, UIEventNavigate,
			func(d map[string]any) bool { return d["path"] == "/lovelace/1" }},
		{types.ActionConfig{Action: types.ActionURL, URLPath: "https://example.com"}, UIEventOpenURL,
			func(d map[string]any) bool { return d["url"] == "https://example.com" }},
		{types.ActionConfig{Action: types.ActionAssist}, UIEventShowDialog,
			func(d map[string]any) bool { return d["dialog"] == "assist" }},
		{types.ActionConfig{Action: types.ActionFireDOMEvent}, UIEventCustom,
			func(d map[string]any) bool { return d["entityId"] == "number.boiler" }},
	}

	for _, tt := range tests {
		t.Run(tt.action.Action, func(t *testing.T) {
			h, rec, ui := newHandler()
			h.HandleAction(context.Background(), request(tt.action))

			assert.Empty(t, rec.messages)
			require.Len(t, ui.events, 1)
			assert.Equal(t, tt.uiType, ui.events[0].Type)
			assert.True(t, tt.detailOK(ui.events[0].Detail))
		})
	}
}

func TestHandleActionNoopCases(t *testing.T) {
	for _, a := range []types.ActionConfig{
		{Action: types.ActionNone},
		{Action: "unknown-thing"},
		{Action: types.ActionNavigate},
		{Action: types.ActionURL},
	} {
		h, rec, ui := newHandler()
		h.HandleAction(context.Background(), request(a))
		assert.Empty(t, rec.messages, a.Action)
		assert.Empty(t, ui.events, a.Action)
	}
}

func TestHandleActionWriteFailureIsSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("socket closed")}
	h := NewActionHandler(New(rec), nil)

	assert.NotPanics(t, func() {
		h.HandleAction(context.Background(), request(types.ActionConfig{Action: types.ActionToggle}))
	})
}

func TestSetValuePicksDomain(t *testing.T) {
	rec := &recorder{}
	s := New(rec)

	require.NoError(t, s.SetValue("number.boiler", 50))
	require.NoError(t, s.SetValue("input_number.volume", 0.5))
	require.NoError(t, s.InputNumber.Increment("input_number.volume"))

	require.Len(t, rec.messages, 3)
	assert.Equal(t, "number", rec.messages[0]["domain"])
	assert.Equal(t, map[string]any{"value": 50.0}, rec.messages[0]["service_data"])
	assert.Equal(t, "input_number", rec.messages[1]["domain"])
	assert.Equal(t, "set_value", rec.messages[1]["service"])
	assert.Equal(t, "increment", rec.messages[2]["service"])
}

func TestStepPicksService(t *testing.T) {
	rec := &recorder{}
	s := New(rec)

	require.NoError(t, s.Step("input_number.volume", 0.5, true))
	require.NoError(t, s.Step("input_number.volume", 0.3, false))
	require.NoError(t, s.Step("number.boiler", 56, true))

	require.Len(t, rec.messages, 3)
	assert.Equal(t, "increment", rec.messages[0]["service"])
	assert.Nil(t, rec.messages[0]["service_data"])
	assert.Equal(t, "decrement", rec.messages[1]["service"])
	assert.Equal(t, map[string]any{"entity_id": "input_number.volume"}, rec.messages[1]["target"])
	assert.Equal(t, "number", rec.messages[2]["domain"])
	assert.Equal(t, "set_value", rec.messages[2]["service"])
	assert.Equal(t, map[string]any{"value": 56.0}, rec.messages[2]["service_data"])
}

package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Xevion/go-ha-number-card/types"
)

// UI event types emitted for actions that are handled by the frontend.
const (
	UIEventMoreInfo   = "hass-more-info"
	UIEventNavigate   = "location-changed"
	UIEventOpenURL    = "open-url"
	UIEventShowDialog = "show-dialog"
	UIEventCustom     = "ll-custom"
)

// ActionHandler executes card action descriptors. Backend actions become
// service calls on the websocket; frontend actions become UI events.
// Failures are logged here and never reported back to the card.
type ActionHandler struct {
	services *Services
	ui       types.UIEventFunc
}

// NewActionHandler returns a handler. A nil ui drops frontend actions.
func NewActionHandler(services *Services, ui types.UIEventFunc) *ActionHandler {
	return &ActionHandler{services: services, ui: ui}
}

func (h *ActionHandler) HandleAction(ctx context.Context, req types.ActionRequest) {
	a := req.Action
	var err error

	switch a.Action {
	case types.ActionNone:
		return
	case types.ActionMoreInfo:
		h.emit(ctx, UIEventMoreInfo, map[string]any{"entityId": req.EntityID})
	case types.ActionNavigate:
		if a.NavigationPath == "" {
			slog.Warn("Navigate action without navigation_path", "entity", req.EntityID)
			return
		}
		h.emit(ctx, UIEventNavigate, map[string]any{"path": a.NavigationPath, "replace": false})
	case types.ActionURL:
		if a.URLPath == "" {
			slog.Warn("URL action without url_path", "entity", req.EntityID)
			return
		}
		h.emit(ctx, UIEventOpenURL, map[string]any{"url": a.URLPath})
	case types.ActionAssist:
		h.emit(ctx, UIEventShowDialog, map[string]any{"dialog": "assist"})
	case types.ActionFireDOMEvent:
		h.emit(ctx, UIEventCustom, map[string]any{"action": a, "entityId": req.EntityID})
	case types.ActionToggle:
		err = h.services.HomeAssistant.Toggle(req.EntityID)
	case types.ActionPerformAction, types.ActionCallService:
		err = h.performAction(a)
	default:
		slog.Warn("Unknown action", "action", a.Action, "entity", req.EntityID)
		return
	}

	if err != nil {
		slog.Error("Action failed", "action", a.Action, "entity", req.EntityID, "error", err)
	}
}

func (h *ActionHandler) performAction(a types.ActionConfig) error {
	name := a.PerformAction
	if name == "" {
		name = a.Service
	}
	domain, service, ok := strings.Cut(name, ".")
	if !ok || domain == "" || service == "" {
		slog.Warn("Invalid action name", "perform_action", name)
		return nil
	}

	data := a.Data
	if data == nil {
		data = a.ServiceData
	}
	return h.services.Call(domain, service, data, a.Target)
}

func (h *ActionHandler) emit(ctx context.Context, eventType string, detail map[string]any) {
	if h.ui == nil {
		slog.Debug("No UI sink, dropping UI event", "type", eventType)
		return
	}
	h.ui(ctx, types.UIEvent{Type: eventType, Detail: detail})
}

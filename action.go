package numbercard

import (
	"context"
	"log/slog"

	"github.com/Xevion/go-ha-number-card/types"
)

// ActionEvent is emitted by the interactive state item for one gesture.
type ActionEvent struct {
	Action string
}

// ActionHandlerOptions tells the gesture recognizer which gestures to detect.
type ActionHandlerOptions struct {
	HasHold        bool
	HasDoubleClick bool
}

// HasAction reports whether a descriptor does something when triggered.
func HasAction(a *types.ActionConfig) bool {
	return a != nil && a.Action != types.ActionNone
}

// ActionFor returns the descriptor configured for gesture, or nil.
func ActionFor(cfg types.CardConfig, gesture string) *types.ActionConfig {
	switch gesture {
	case types.GestureTap:
		return cfg.TapAction
	case types.GestureHold:
		return cfg.HoldAction
	case types.GestureDoubleTap:
		return cfg.DoubleTapAction
	}
	return nil
}

// HandlerOptions derives gesture recognition options from a resolved config.
func HandlerOptions(cfg types.CardConfig) ActionHandlerOptions {
	return ActionHandlerOptions{
		HasHold:        HasAction(cfg.HoldAction),
		HasDoubleClick: HasAction(cfg.DoubleTapAction),
	}
}

// Interactive reports whether any gesture has an effective action, in which
// case the state item shows the pointer affordance.
func Interactive(cfg types.CardConfig) bool {
	return HasAction(cfg.TapAction) || HasAction(cfg.HoldAction) || HasAction(cfg.DoubleTapAction)
}

// Dispatcher forwards gestures to the host action handler.
type Dispatcher struct {
	handler ActionHandler
}

func NewDispatcher(handler ActionHandler) *Dispatcher {
	return &Dispatcher{handler: handler}
}

// Dispatch looks up the descriptor for the gesture and hands it to the
// handler. It returns false without calling the handler when the gesture has
// no descriptor or no handler is set.
func (d *Dispatcher) Dispatch(ctx context.Context, hass *types.Hass, cfg types.CardConfig, gesture string) bool {
	action := ActionFor(cfg, gesture)
	if action == nil {
		slog.Debug("No action configured for gesture", "gesture", gesture, "entity", cfg.Entity)
		return false
	}
	if d == nil || d.handler == nil {
		slog.Debug("No action handler, dropping gesture", "gesture", gesture, "entity", cfg.Entity)
		return false
	}

	slog.Debug("Dispatching action", "gesture", gesture, "action", action.Action, "entity", cfg.Entity)
	d.handler.HandleAction(ctx, types.ActionRequest{
		Hass:     hass,
		Config:   cfg,
		EntityID: cfg.Entity,
		Gesture:  gesture,
		Action:   *action,
	})
	return true
}

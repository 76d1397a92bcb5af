package numbercard

import (
	"encoding/json"
	"log/slog"

	"github.com/Xevion/go-ha-number-card/types"
)

type stateChangedMsg struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Event struct {
		Data struct {
			EntityID string        `json:"entity_id"`
			NewState *types.Entity `json:"new_state"`
			OldState *types.Entity `json:"old_state"`
		} `json:"data"`
		EventType string `json:"event_type"`
		Origin    string `json:"origin"`
	} `json:"event"`
}

// applyStateChanged folds a state_changed event into hass and returns the new
// snapshot. A null new_state means the entity was removed. The second result is
// false when the event could not be used, in which case hass is returned as is.
func applyStateChanged(hass *types.Hass, raw []byte) (*types.Hass, bool) {
	var msg stateChangedMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.Error("Error unmarshalling state_changed event", "error", err)
		return hass, false
	}

	data := msg.Event.Data
	if data.EntityID == "" {
		return hass, false
	}
	if data.NewState == nil {
		return hass.WithoutState(data.EntityID), true
	}

	entity := *data.NewState
	if entity.EntityID == "" {
		entity.EntityID = data.EntityID
	}
	return hass.WithState(entity), true
}

// handleStateChanged runs on the loop goroutine.
func (d *Dashboard) handleStateChanged(raw []byte) {
	next, ok := applyStateChanged(d.hass, raw)
	if !ok {
		return
	}
	d.setHass(next)
}

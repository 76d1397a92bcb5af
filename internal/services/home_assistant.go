package services

import (
	"github.com/Xevion/go-ha-number-card/internal/connect"
)

type HomeAssistant struct {
	conn connect.Writer
}

// Toggle a Home Assistant entity. Used by the toggle action.
func (ha *HomeAssistant) Toggle(entityId string) error {
	req := NewBaseServiceRequest(entityId)
	req.Domain = "homeassistant"
	req.Service = "toggle"

	return ha.conn.WriteMessage(req)
}

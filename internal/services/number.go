package services

import (
	"strings"

	"github.com/Xevion/go-ha-number-card/internal/connect"
)

type Number struct {
	conn connect.Writer
}

func (n Number) SetValue(entityId string, value float64) error {
	req := NewBaseServiceRequest(entityId)
	req.Domain = "number"
	req.Service = "set_value"
	req.ServiceData = map[string]any{"value": value}

	return n.conn.WriteMessage(req)
}

type InputNumber struct {
	conn connect.Writer
}

func (ib InputNumber) Set(entityId string, value float64) error {
	req := NewBaseServiceRequest(entityId)
	req.Domain = "input_number"
	req.Service = "set_value"
	req.ServiceData = map[string]any{"value": value}

	return ib.conn.WriteMessage(req)
}

func (ib InputNumber) Increment(entityId string) error {
	req := NewBaseServiceRequest(entityId)
	req.Domain = "input_number"
	req.Service = "increment"

	return ib.conn.WriteMessage(req)
}

func (ib InputNumber) Decrement(entityId string) error {
	req := NewBaseServiceRequest(entityId)
	req.Domain = "input_number"
	req.Service = "decrement"

	return ib.conn.WriteMessage(req)
}

func isInputNumber(entityId string) bool {
	return strings.HasPrefix(entityId, "input_number.")
}

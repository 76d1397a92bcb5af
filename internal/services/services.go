package services

import (
	"github.com/Xevion/go-ha-number-card/internal"
	"github.com/Xevion/go-ha-number-card/internal/connect"
)

// Services groups the service call builders used by hosted cards.
type Services struct {
	conn          connect.Writer
	HomeAssistant *HomeAssistant
	Number        *Number
	InputNumber   *InputNumber
}

func New(conn connect.Writer) *Services {
	return &Services{
		conn:          conn,
		HomeAssistant: &HomeAssistant{conn: conn},
		Number:        &Number{conn: conn},
		InputNumber:   &InputNumber{conn: conn},
	}
}

type BaseServiceRequest struct {
	Id          int64          `json:"id"`
	RequestType string         `json:"type"` // hardcoded "call_service"
	Domain      string         `json:"domain"`
	Service     string         `json:"service"`
	ServiceData map[string]any `json:"service_data,omitempty"`
	Target      map[string]any `json:"target,omitempty"`
}

func NewBaseServiceRequest(entityId string) BaseServiceRequest {
	request := BaseServiceRequest{
		Id:          internal.NextId(),
		RequestType: "call_service",
	}

	if entityId != "" {
		request.Target = map[string]any{"entity_id": entityId}
	}

	return request
}

// Call performs an arbitrary domain.service call. A nil target is omitted.
func (s *Services) Call(domain, service string, data, target map[string]any) error {
	req := NewBaseServiceRequest("")
	req.Domain = domain
	req.Service = service
	req.ServiceData = data
	req.Target = target

	return s.conn.WriteMessage(req)
}

// SetValue sets a number or input_number entity to value, picking the
// service by the entity's domain.
func (s *Services) SetValue(entityId string, value float64) error {
	if isInputNumber(entityId) {
		return s.InputNumber.Set(entityId, value)
	}
	return s.Number.SetValue(entityId, value)
}

// Step moves an entity one step. input_number has its own increment and
// decrement services; number only takes set_value, so it gets value.
func (s *Services) Step(entityId string, value float64, up bool) error {
	if !isInputNumber(entityId) {
		return s.Number.SetValue(entityId, value)
	}
	if up {
		return s.InputNumber.Increment(entityId)
	}
	return s.InputNumber.Decrement(entityId)
}

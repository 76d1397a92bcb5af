package internal

import (
	"encoding/json"
	"fmt"

	"github.com/Xevion/go-ha-number-card/types"
)

// ParseState decodes one entity state object.
func ParseState(raw []byte) (types.Entity, error) {
	var e types.Entity
	if err := json.Unmarshal(raw, &e); err != nil {
		return types.Entity{}, fmt.Errorf("failed to parse entity state: %w", err)
	}
	if e.EntityID == "" {
		return types.Entity{}, fmt.Errorf("entity state has no entity_id")
	}
	return e, nil
}

// ParseStates decodes the /api/states array into a map keyed by entity id.
func ParseStates(raw []byte) (map[string]types.Entity, error) {
	var list []types.Entity
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse states: %w", err)
	}

	states := make(map[string]types.Entity, len(list))
	for _, e := range list {
		if e.EntityID == "" {
			continue
		}
		states[e.EntityID] = e
	}
	return states, nil
}

// ParseCoreConfig decodes the /api/config payload.
func ParseCoreConfig(raw []byte) (types.CoreConfig, error) {
	var cfg types.CoreConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return types.CoreConfig{}, fmt.Errorf("failed to parse core config: %w", err)
	}
	return cfg, nil
}

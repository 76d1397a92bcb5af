package numbercard

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Xevion/go-ha-number-card/types"
)

// ResolveConfig applies the default actions: tap and hold open the more-info
// dialog unless configured. Double tap has no default. Everything else passes
// through untouched, and resolving twice gives the same result.
func ResolveConfig(cfg types.CardConfig) types.CardConfig {
	if cfg.TapAction == nil {
		cfg.TapAction = &types.ActionConfig{Action: types.ActionMoreInfo}
	}
	if cfg.HoldAction == nil {
		cfg.HoldAction = &types.ActionConfig{Action: types.ActionMoreInfo}
	}
	return cfg
}

// ParseConfig decodes a card configuration from YAML (or JSON).
func ParseConfig(data []byte) (types.CardConfig, error) {
	var cfg types.CardConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.CardConfig{}, fmt.Errorf("failed to parse card config: %w", err)
	}
	return cfg, nil
}

// MarshalConfig encodes a card configuration as YAML.
func MarshalConfig(cfg types.CardConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode card config: %w", err)
	}
	return out, nil
}

// Package config loads the dashboard file used by the numbercard CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Xevion/go-ha-number-card/types"
)

var (
	ErrMissingURL   = errors.New("home_assistant.url is required")
	ErrMissingToken = errors.New("home_assistant.token is required")
	ErrDuplicateID  = errors.New("duplicate card id")
)

// Config represents a dashboard: where Home Assistant lives and which cards to host.
type Config struct {
	HomeAssistant HomeAssistantConfig `yaml:"home_assistant"`
	Locale        LocaleConfig        `yaml:"locale"`
	Log           LogConfig           `yaml:"log"`
	Translations  map[string]string   `yaml:"translations"`
	Cards         []CardEntry         `yaml:"cards"`
}

// HomeAssistantConfig contains connection settings
type HomeAssistantConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// LocaleConfig mirrors the user's frontend locale profile
type LocaleConfig struct {
	Language     string `yaml:"language"`
	NumberFormat string `yaml:"number_format"` // language, system, comma_decimal, decimal_comma, space_comma, none
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// CardEntry is one hosted card: an id plus the card's own configuration.
type CardEntry struct {
	ID     string           `yaml:"id"`
	Config types.CardConfig `yaml:",inline"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes data, resolves environment references and applies defaults.
//
// Connection, locale and log settings and card entity ids may reference the
// environment as $VAR, ${VAR} or ${VAR:default}. Other card options are taken
// as written.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, field := range []*string{
		&cfg.HomeAssistant.URL,
		&cfg.HomeAssistant.Token,
		&cfg.Locale.Language,
		&cfg.Locale.NumberFormat,
		&cfg.Log.Level,
	} {
		*field = fromEnv(*field)
	}
	for i := range cfg.Cards {
		cfg.Cards[i].Config.Entity = fromEnv(cfg.Cards[i].Config.Entity)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Locale.Language == "" {
		cfg.Locale.Language = "en"
	}
	if cfg.Locale.NumberFormat == "" {
		cfg.Locale.NumberFormat = string(types.NumberFormatLanguage)
	}

	// Cards without an id get a generated one
	for i := range cfg.Cards {
		if cfg.Cards[i].ID == "" {
			cfg.Cards[i].ID = uuid.New().String()
		}
	}

	return &cfg, nil
}

// Validate checks the settings needed to connect.
func (c *Config) Validate() error {
	var errs []error
	if c.HomeAssistant.URL == "" {
		errs = append(errs, ErrMissingURL)
	}
	if c.HomeAssistant.Token == "" {
		errs = append(errs, ErrMissingToken)
	}

	seen := map[string]bool{}
	for _, card := range c.Cards {
		if seen[card.ID] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateID, card.ID))
		}
		seen[card.ID] = true
	}
	return errors.Join(errs...)
}

// Request builds the connection request for a dashboard.
func (c *Config) Request() types.NewDashboardRequest {
	return types.NewDashboardRequest{
		URL:         c.HomeAssistant.URL,
		HAAuthToken: c.HomeAssistant.Token,
		Locale: types.Locale{
			Language:     c.Locale.Language,
			NumberFormat: types.NumberFormat(c.Locale.NumberFormat),
		},
		Translations: c.Translations,
	}
}

// LogLevel returns the configured slog level, info when it is not recognized.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// fromEnv resolves environment references in value. Unset or empty
// variables take the default after the colon, or nothing.
func fromEnv(value string) string {
	if !strings.Contains(value, "$") {
		return value
	}
	return os.Expand(value, func(ref string) string {
		name, fallback, _ := strings.Cut(ref, ":")
		if v := os.Getenv(strings.TrimSpace(name)); v != "" {
			return v
		}
		return fallback
	})
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/types"
)

const sample = `
home_assistant:
  url: ${NUMBERCARD_TEST_URL:http://localhost:8123}
  token: ${NUMBERCARD_TEST_TOKEN}
locale:
  language: de
  number_format: decimal_comma
log:
  level: debug
translations:
  card.not_found: Nicht gefunden
cards:
  - id: boiler
    entity: number.boiler
    icon_color: red
    tap_action:
      action: toggle
  - entity: ${NUMBERCARD_TEST_ENTITY:input_number.volume}
    name: Costs $5
    display_mode: buttons
`

func TestParse(t *testing.T) {
	t.Setenv("NUMBERCARD_TEST_TOKEN", "secret")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:8123", cfg.HomeAssistant.URL)
	assert.Equal(t, "secret", cfg.HomeAssistant.Token)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())

	require.Len(t, cfg.Cards, 2)
	assert.Equal(t, "boiler", cfg.Cards[0].ID)
	assert.Equal(t, "number.boiler", cfg.Cards[0].Config.Entity)
	assert.Equal(t, "red", cfg.Cards[0].Config.IconColor)
	require.NotNil(t, cfg.Cards[0].Config.TapAction)
	assert.Equal(t, types.ActionToggle, cfg.Cards[0].Config.TapAction.Action)

	assert.NotEmpty(t, cfg.Cards[1].ID)
	assert.Equal(t, types.DisplayModeButtons, cfg.Cards[1].Config.DisplayMode)
	assert.Equal(t, "input_number.volume", cfg.Cards[1].Config.Entity)
	assert.Equal(t, "Costs $5", cfg.Cards[1].Config.Name)

	req := cfg.Request()
	assert.Equal(t, "secret", req.HAAuthToken)
	assert.Equal(t, types.Locale{Language: "de", NumberFormat: types.NumberFormatDecimalComma}, req.Locale)
	assert.Equal(t, "Nicht gefunden", req.Translations["card.not_found"])
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("cards: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.Equal(t, string(types.NumberFormatLanguage), cfg.Locale.NumberFormat)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestValidate(t *testing.T) {
	cfg := &Config{Cards: []CardEntry{{ID: "a"}, {ID: "a"}}}
	err := cfg.Validate()

	assert.ErrorIs(t, err, ErrMissingURL)
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLogLevelUnknown(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "chatty"}}
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("home_assistant:\n  url: http://ha:8123\n  token: t\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://ha:8123", cfg.HomeAssistant.URL)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NUMBERCARD_TEST_SET", "value")

	assert.Equal(t, "value", fromEnv("${NUMBERCARD_TEST_SET}"))
	assert.Equal(t, "value", fromEnv("$NUMBERCARD_TEST_SET"))
	assert.Equal(t, "http://value:8123", fromEnv("http://${NUMBERCARD_TEST_SET}:8123"))
	assert.Equal(t, "fallback", fromEnv("${NUMBERCARD_TEST_UNSET:fallback}"))
	assert.Equal(t, "", fromEnv("${NUMBERCARD_TEST_UNSET}"))
	assert.Equal(t, "plain", fromEnv("plain"))
}

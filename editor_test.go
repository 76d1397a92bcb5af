package numbercard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/types"
)

func TestEditorSchema(t *testing.T) {
	e := NumberCard().ConfigElement()
	schema := e.Schema()

	require.NotEmpty(t, schema)
	assert.Equal(t, "entity", schema[0].Name)
	assert.True(t, schema[0].Required)
	assert.Equal(t, map[string]any{"domain": EntityDomains}, schema[0].Selector["entity"])

	// Built once and shared between editors.
	assert.Same(t, &schema[0], &ConfigElement().Schema()[0])
}

func TestEditorSet(t *testing.T) {
	e := ConfigElement()
	e.SetConfig(types.CardConfig{Type: "custom:mushroom-number-card", Entity: "number.boiler"})

	var changes []types.CardConfig
	e.OnConfigChanged(func(cfg types.CardConfig) { changes = append(changes, cfg) })

	require.NoError(t, e.Set("name", "Water"))
	require.NoError(t, e.Set("fill_container", true))
	require.NoError(t, e.Set("tap_action", map[string]any{"action": "toggle"}))

	cfg := e.Config()
	assert.Equal(t, "number.boiler", cfg.Entity)
	assert.Equal(t, "Water", cfg.Name)
	require.NotNil(t, cfg.FillContainer)
	assert.True(t, *cfg.FillContainer)
	require.NotNil(t, cfg.TapAction)
	assert.Equal(t, types.ActionToggle, cfg.TapAction.Action)
	assert.Len(t, changes, 3)

	require.NoError(t, e.Set("name", nil))
	assert.Empty(t, e.Config().Name)
}

func TestEditorSetRejects(t *testing.T) {
	e := ConfigElement()
	e.SetConfig(types.CardConfig{Entity: "number.boiler"})

	assert.Error(t, e.Set("bogus", 1))
	assert.Error(t, e.Set("tap_action", "not a map"))
	assert.Equal(t, "number.boiler", e.Config().Entity)
}

func TestEditorYAML(t *testing.T) {
	e := ConfigElement()
	e.SetConfig(types.CardConfig{Entity: "number.boiler", Layout: types.LayoutVertical})

	out, err := e.YAML()
	require.NoError(t, err)
	assert.Equal(t, "entity: number.boiler\nlayout: vertical\n", string(out))
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xevion/go-ha-number-card/internal"
)

const statesJSON = `[
  {"entity_id": "sensor.outside", "state": "12", "attributes": {}},
  {"entity_id": "number.boiler", "state": "55", "attributes": {"friendly_name": "Boiler", "unit_of_measurement": "°C", "step": 1}},
  {"entity_id": "input_number.volume", "state": "0.4", "attributes": {"friendly_name": "Volume"}}
]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "numbercard", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.NotEmpty(t, root.Long)
	assert.True(t, root.SilenceUsage)
	assert.Equal(t, internal.Version(), root.Version)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "numbercard version "+internal.Version()+"\n", out)

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Equal(t, "numbercard version "+internal.Version()+"\n", out)
}

func TestRender(t *testing.T) {
	states := writeFile(t, "states.json", statesJSON)
	card := writeFile(t, "card.yaml", "entity: number.boiler\n")

	out, err := execute(t, "render", "--card", card, "--states", states)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<ha-card>"))
	assert.Contains(t, out, `.primary="Boiler"`)
	assert.Contains(t, out, `.secondary="55 °C"`)
}

func TestRenderLiveValue(t *testing.T) {
	states := writeFile(t, "states.json", statesJSON)
	card := writeFile(t, "card.yaml", "entity: number.boiler\n")

	out, err := execute(t, "render", "--card", card, "--states", states, "--value", "60")
	require.NoError(t, err)
	assert.Contains(t, out, `.secondary="60 °C"`)
}

func TestRenderMissingEntity(t *testing.T) {
	states := writeFile(t, "states.json", statesJSON)
	card := writeFile(t, "card.yaml", "entity: number.gone\n")

	out, err := execute(t, "render", "--card", card, "--states", states)
	require.NoError(t, err)
	assert.Contains(t, out, `class="not-found"`)
	assert.Contains(t, out, `.primary="number.gone"`)
}

func TestRenderNothing(t *testing.T) {
	card := writeFile(t, "card.yaml", "name: Empty\n")

	out, err := execute(t, "render", "--card", card)
	require.NoError(t, err)
	assert.Equal(t, emptyTree+"\n", out)
}

func TestRenderRequiresCard(t *testing.T) {
	_, err := execute(t, "render")
	assert.Error(t, err)
}

func TestRenderPretty(t *testing.T) {
	states := writeFile(t, "states.json", statesJSON)
	card := writeFile(t, "card.yaml", "entity: number.boiler\n")

	out, err := execute(t, "render", "--card", card, "--states", states, "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, "ha-card")
	assert.Contains(t, out, "╭")
}

func TestStub(t *testing.T) {
	states := writeFile(t, "states.json", statesJSON)

	out, err := execute(t, "stub", "--states", states)
	require.NoError(t, err)
	assert.Equal(t, "type: custom:mushroom-number-card\nentity: input_number.volume\n", out)

	out, err = execute(t, "stub", "--list")
	require.NoError(t, err)
	assert.Equal(t, "custom:mushroom-number-card\tMushroom Number Card\tCard for number and input number entity\n", out)
}

type fakeController struct {
	values   map[string]float64
	steps    []string
	gestures []string
}

func (f *fakeController) Step(cardID string, up bool) error {
	dir := "down"
	if up {
		dir = "up"
	}
	f.steps = append(f.steps, cardID+":"+dir)
	return nil
}

func (f *fakeController) SetValue(cardID string, value float64) error {
	if f.values == nil {
		f.values = map[string]float64{}
	}
	f.values[cardID] = value
	return nil
}

func (f *fakeController) Dispatch(cardID, eventType string, detail map[string]any) error {
	f.gestures = append(f.gestures, cardID+":"+eventType+":"+detail["action"].(string))
	return nil
}

func TestRunCommand(t *testing.T) {
	c := &fakeController{}

	require.NoError(t, runCommand(c, "set boiler 42.5"))
	require.NoError(t, runCommand(c, "tap boiler"))
	require.NoError(t, runCommand(c, "double_tap boiler"))
	require.NoError(t, runCommand(c, "inc volume"))
	require.NoError(t, runCommand(c, "dec volume"))

	assert.Equal(t, map[string]float64{"boiler": 42.5}, c.values)
	assert.Equal(t, []string{"volume:up", "volume:down"}, c.steps)
	assert.Equal(t, []string{"boiler:action:tap", "boiler:action:double_tap"}, c.gestures)

	for _, line := range []string{"set", "set boiler", "set boiler abc", "inc boiler 2", "jump boiler"} {
		assert.ErrorIs(t, runCommand(c, line), ErrBadCommand, line)
	}
}

func TestWatchRequiresValidConfig(t *testing.T) {
	path := writeFile(t, "dashboard.yaml", "cards: []\n")
	_, err := execute(t, "watch", "--config", path)
	assert.Error(t, err)
}

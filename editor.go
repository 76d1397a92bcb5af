package numbercard

import (
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Xevion/go-ha-number-card/types"
)

// SchemaField is one form field of the visual editor.
type SchemaField struct {
	Name     string
	Required bool
	Selector map[string]any
}

var (
	editorSchemaOnce sync.Once
	editorSchema     []SchemaField
)

func loadEditorSchema() []SchemaField {
	editorSchemaOnce.Do(func() {
		actions := []string{
			types.ActionMoreInfo, types.ActionToggle, types.ActionNavigate, types.ActionURL,
			types.ActionPerformAction, types.ActionAssist, types.ActionNone,
		}
		editorSchema = []SchemaField{
			{Name: "entity", Required: true, Selector: map[string]any{"entity": map[string]any{"domain": EntityDomains}}},
			{Name: "name", Selector: map[string]any{"text": map[string]any{}}},
			{Name: "icon", Selector: map[string]any{"icon": map[string]any{}}},
			{Name: "icon_color", Selector: map[string]any{"mush_color": map[string]any{}}},
			{Name: "display_mode", Selector: map[string]any{"select": map[string]any{
				"options": []string{types.DisplayModeSlider, types.DisplayModeButtons},
			}}},
			{Name: "layout", Selector: map[string]any{"select": map[string]any{
				"options": []string{types.LayoutDefault, types.LayoutVertical, types.LayoutHorizontal},
			}}},
			{Name: "fill_container", Selector: map[string]any{"boolean": map[string]any{}}},
			{Name: "primary_info", Selector: map[string]any{"select": map[string]any{"options": infoOptions()}}},
			{Name: "secondary_info", Selector: map[string]any{"select": map[string]any{"options": infoOptions()}}},
			{Name: "icon_type", Selector: map[string]any{"select": map[string]any{
				"options": []string{types.IconTypeIcon, types.IconTypeEntityPicture, types.IconTypeNone},
			}}},
			{Name: "tap_action", Selector: map[string]any{"ui_action": map[string]any{"actions": actions}}},
			{Name: "hold_action", Selector: map[string]any{"ui_action": map[string]any{"actions": actions}}},
			{Name: "double_tap_action", Selector: map[string]any{"ui_action": map[string]any{"actions": actions}}},
		}
	})
	return editorSchema
}

func infoOptions() []string {
	return []string{types.InfoName, types.InfoState, types.InfoLastChanged, types.InfoLastUpdated, types.InfoNone}
}

// Editor is the visual configuration editor of the card.
type Editor struct {
	schema   []SchemaField
	config   types.CardConfig
	onChange []func(types.CardConfig)
}

// ConfigElement returns a new editor. The form schema is built on first use.
func ConfigElement() *Editor {
	return &Editor{schema: loadEditorSchema()}
}

func (e *Editor) Schema() []SchemaField {
	return e.schema
}

// SetConfig loads cfg into the editor without emitting a change.
func (e *Editor) SetConfig(cfg types.CardConfig) {
	e.config = cfg
}

func (e *Editor) Config() types.CardConfig {
	return e.config
}

// OnConfigChanged registers fn to receive the config after every successful Set.
func (e *Editor) OnConfigChanged(fn func(types.CardConfig)) {
	e.onChange = append(e.onChange, fn)
}

// Set changes one schema field. A nil value removes the field.
func (e *Editor) Set(field string, value any) error {
	if !slices.ContainsFunc(e.schema, func(f SchemaField) bool { return f.Name == field }) {
		return fmt.Errorf("unknown editor field %q", field)
	}

	raw, err := yaml.Marshal(e.config)
	if err != nil {
		return fmt.Errorf("failed to encode card config: %w", err)
	}
	fields := map[string]any{}
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("failed to decode card config: %w", err)
	}
	if value == nil {
		delete(fields, field)
	} else {
		fields[field] = value
	}

	raw, err = yaml.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to encode field %q: %w", field, err)
	}
	var next types.CardConfig
	if err := yaml.Unmarshal(raw, &next); err != nil {
		return fmt.Errorf("invalid value for %q: %w", field, err)
	}

	e.config = next
	for _, fn := range e.onChange {
		fn(next)
	}
	return nil
}

// YAML returns the current config as YAML.
func (e *Editor) YAML() ([]byte, error) {
	return MarshalConfig(e.config)
}

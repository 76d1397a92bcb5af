package types

import "context"

// Action names understood by the host action service.
const (
	ActionMoreInfo      = "more-info"
	ActionToggle        = "toggle"
	ActionNavigate      = "navigate"
	ActionURL           = "url"
	ActionPerformAction = "perform-action"
	ActionCallService   = "call-service" // legacy name of perform-action
	ActionFireDOMEvent  = "fire-dom-event"
	ActionAssist        = "assist"
	ActionNone          = "none"
)

// Gestures carried by the action event of the interactive wrapper.
const (
	GestureTap       = "tap"
	GestureHold      = "hold"
	GestureDoubleTap = "double_tap"
)

// Display modes of the embedded value control.
const (
	DisplayModeSlider  = "slider"
	DisplayModeButtons = "buttons"
)

// Layouts.
const (
	LayoutDefault    = "default"
	LayoutVertical   = "vertical"
	LayoutHorizontal = "horizontal"
)

// Info kinds for the primary and secondary text lines.
const (
	InfoName        = "name"
	InfoState       = "state"
	InfoLastChanged = "last-changed"
	InfoLastUpdated = "last-updated"
	InfoNone        = "none"
)

// Icon types.
const (
	IconTypeIcon          = "icon"
	IconTypeEntityPicture = "entity-picture"
	IconTypeNone          = "none"
)

// ActionConfig is an action descriptor as stored in card configuration.
type ActionConfig struct {
	Action         string         `yaml:"action" json:"action"`
	NavigationPath string         `yaml:"navigation_path,omitempty" json:"navigation_path,omitempty"`
	URLPath        string         `yaml:"url_path,omitempty" json:"url_path,omitempty"`
	PerformAction  string         `yaml:"perform_action,omitempty" json:"perform_action,omitempty"`
	Service        string         `yaml:"service,omitempty" json:"service,omitempty"`
	Data           map[string]any `yaml:"data,omitempty" json:"data,omitempty"`
	ServiceData    map[string]any `yaml:"service_data,omitempty" json:"service_data,omitempty"`
	Target         map[string]any `yaml:"target,omitempty" json:"target,omitempty"`
}

// CardConfig is the persisted, user-authored configuration of a number card.
type CardConfig struct {
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Entity      string `yaml:"entity,omitempty" json:"entity,omitempty"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	IconColor   string `yaml:"icon_color,omitempty" json:"icon_color,omitempty"`
	DisplayMode string `yaml:"display_mode,omitempty" json:"display_mode,omitempty"`

	Layout        string `yaml:"layout,omitempty" json:"layout,omitempty"`
	FillContainer *bool  `yaml:"fill_container,omitempty" json:"fill_container,omitempty"`
	PrimaryInfo   string `yaml:"primary_info,omitempty" json:"primary_info,omitempty"`
	SecondaryInfo string `yaml:"secondary_info,omitempty" json:"secondary_info,omitempty"`
	IconType      string `yaml:"icon_type,omitempty" json:"icon_type,omitempty"`

	// Legacy appearance switches, only consulted when the fields above are empty.
	Vertical         bool `yaml:"vertical,omitempty" json:"vertical,omitempty"`
	HideName         bool `yaml:"hide_name,omitempty" json:"hide_name,omitempty"`
	HideState        bool `yaml:"hide_state,omitempty" json:"hide_state,omitempty"`
	HideIcon         bool `yaml:"hide_icon,omitempty" json:"hide_icon,omitempty"`
	UseEntityPicture bool `yaml:"use_entity_picture,omitempty" json:"use_entity_picture,omitempty"`

	TapAction       *ActionConfig `yaml:"tap_action,omitempty" json:"tap_action,omitempty"`
	HoldAction      *ActionConfig `yaml:"hold_action,omitempty" json:"hold_action,omitempty"`
	DoubleTapAction *ActionConfig `yaml:"double_tap_action,omitempty" json:"double_tap_action,omitempty"`
}

// Appearance is derived from CardConfig on every render.
type Appearance struct {
	Layout        string
	FillContainer bool
	PrimaryInfo   string
	SecondaryInfo string
	IconType      string
}

// ActionRequest is what a card hands to the host action service for one gesture.
type ActionRequest struct {
	Hass     *Hass
	Config   CardConfig
	EntityID string
	Gesture  string
	Action   ActionConfig
}

// UIEvent is a frontend-side effect requested by an action, such as opening
// the more-info dialog or navigating to another dashboard path.
type UIEvent struct {
	Type   string
	Detail map[string]any
}

// UIEventFunc receives UI events.
type UIEventFunc func(ctx context.Context, ev UIEvent)

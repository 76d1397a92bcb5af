package numbercard

import (
	"fmt"

	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

// Custom properties driven by icon_color.
const (
	VarIconColor     = "--icon-color"
	VarShapeColor    = "--shape-color"
	VarSliderColor   = "--slider-color"
	VarSliderBgColor = "--slider-bg-color"
)

// backgroundAlpha is the opacity of the shape and slider track fill.
const backgroundAlpha = "0.2"

// ComputeAppearance derives layout settings from cfg, falling back to the
// legacy boolean switches.
func ComputeAppearance(cfg types.CardConfig) types.Appearance {
	a := types.Appearance{
		Layout:        cfg.Layout,
		PrimaryInfo:   cfg.PrimaryInfo,
		SecondaryInfo: cfg.SecondaryInfo,
		IconType:      cfg.IconType,
	}
	if cfg.FillContainer != nil {
		a.FillContainer = *cfg.FillContainer
	}

	if a.Layout == "" {
		a.Layout = types.LayoutDefault
		if cfg.Vertical {
			a.Layout = types.LayoutVertical
		}
	}
	if a.PrimaryInfo == "" {
		a.PrimaryInfo = types.InfoName
		if cfg.HideName {
			a.PrimaryInfo = types.InfoNone
		}
	}
	if a.SecondaryInfo == "" {
		a.SecondaryInfo = types.InfoState
		if cfg.HideState {
			a.SecondaryInfo = types.InfoNone
		}
	}
	if a.IconType == "" {
		switch {
		case cfg.HideIcon:
			a.IconType = types.IconTypeNone
		case cfg.UseEntityPicture:
			a.IconType = types.IconTypeEntityPicture
		default:
			a.IconType = types.IconTypeIcon
		}
	}
	return a
}

// Theme is everything visual a render pass derives from configuration and locale.
type Theme struct {
	Appearance types.Appearance
	RTL        bool
	// IconStyle overrides the shape icon colors. Empty means the default
	// number state color applies.
	IconStyle render.Style
	// ControlStyle overrides the embedded control's track colors.
	ControlStyle render.Style
}

// ResolveTheme computes the Theme for one render pass. The icon color is
// resolved once and that single result feeds both the icon and the control
// variables.
func ResolveTheme(fe Frontend, hass *types.Hass, cfg types.CardConfig) Theme {
	theme := Theme{
		Appearance: ComputeAppearance(cfg),
		RTL:        fe.RTL(hass),
	}
	if cfg.IconColor != "" {
		rgb := fe.RGBColor(cfg.IconColor)
		theme.IconStyle = colorVars(rgb, VarIconColor, VarShapeColor)
		theme.ControlStyle = colorVars(rgb, VarSliderColor, VarSliderBgColor)
	}
	return theme
}

func colorVars(rgb, solid, background string) render.Style {
	return render.Style{
		solid:      fmt.Sprintf("rgb(%s)", rgb),
		background: fmt.Sprintf("rgba(%s, %s)", rgb, backgroundAlpha),
	}
}

package numbercard

import (
	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

// Element tags used in the card's render tree.
const (
	TagCard         = "ha-card"
	TagCardLayout   = "mushroom-card"
	TagStateItem    = "mushroom-state-item"
	TagShapeIcon    = "mushroom-shape-icon"
	TagShapeAvatar  = "mushroom-shape-avatar"
	TagStateIcon    = "ha-state-icon"
	TagIcon         = "ha-icon"
	TagBadgeIcon    = "mushroom-badge-icon"
	TagStateInfo    = "mushroom-state-info"
	TagValueControl = "mushroom-number-value-control"
	TagActions      = "div"
)

// Events routed from the tree into the card.
const (
	EventAction        = "action"
	EventCurrentChange = "current-change"
)

// Slots of the state item.
const (
	SlotIcon  = "icon"
	SlotBadge = "badge"
	SlotInfo  = "info"
)

// Styles is the card's static stylesheet. Without icon_color the shape icon
// falls back to the number state color of the theme.
const Styles = `mushroom-state-item[interactive] {
    cursor: pointer;
}
mushroom-shape-icon {
    --icon-color: rgb(var(--rgb-state-number));
    --shape-color: rgba(var(--rgb-state-number), 0.2);
}
mushroom-number-value-control {
    flex: 1;
}`

// ComposeInput is everything one render pass depends on.
type ComposeInput struct {
	Frontend Frontend
	// Config must already be resolved.
	Config types.CardConfig
	Hass   *types.Hass
	// Value is the live override, nil when none was received.
	Value *float64
}

// Phase of a card in its configuration and host lifecycle.
type Phase int

const (
	PhaseUnconfigured Phase = iota
	PhaseAwaitingHost
	PhaseEntityMissing
	PhaseRendering
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseAwaitingHost:
		return "awaiting-host"
	case PhaseEntityMissing:
		return "entity-missing"
	case PhaseRendering:
		return "rendering"
	}
	return "unknown"
}

// PhaseOf computes the phase for a config (nil when never set) and snapshot.
func PhaseOf(cfg *types.CardConfig, hass *types.Hass) Phase {
	switch {
	case cfg == nil || cfg.Entity == "":
		return PhaseUnconfigured
	case hass == nil:
		return PhaseAwaitingHost
	}
	if _, ok := hass.Entity(cfg.Entity); !ok {
		return PhaseEntityMissing
	}
	return PhaseRendering
}

// Compose builds the render tree. It returns nil when there is nothing to
// draw, a placeholder when the entity is missing, and the full card otherwise.
func Compose(in ComposeInput) *render.Node {
	switch PhaseOf(&in.Config, in.Hass) {
	case PhaseUnconfigured, PhaseAwaitingHost:
		return nil
	case PhaseEntityMissing:
		return composeNotFound(in)
	}

	cfg := in.Config
	entity, _ := in.Hass.Entity(cfg.Entity)
	theme := ResolveTheme(in.Frontend, in.Hass, cfg)

	name := cfg.Name
	if name == "" {
		name = entity.FriendlyName()
	}
	stateDisplay := FormatDisplay(in.Frontend, in.Hass, entity, in.Value)

	var picture string
	if theme.Appearance.IconType == types.IconTypeEntityPicture {
		picture = entity.Picture()
	}

	var iconSlot, badgeSlot *render.Node
	if theme.Appearance.IconType != types.IconTypeNone {
		if picture != "" {
			iconSlot = composePicture(picture)
		} else {
			iconSlot = composeIcon(entity, cfg.Icon, theme)
		}
		badgeSlot = composeBadge(entity)
	}

	item := render.El(TagStateItem,
		iconSlot,
		badgeSlot,
		composeInfo(in, theme.Appearance, name, stateDisplay, entity),
	).
		BoolAttr("rtl", theme.RTL).
		BoolAttr("interactive", Interactive(cfg)).
		Prop("appearance", theme.Appearance).
		Prop("actionHandler", HandlerOptions(cfg)).
		On(EventAction)

	control := render.El(TagValueControl).
		Prop("hass", in.Hass).
		Prop("entity", entity.EntityID).
		Prop("displayMode", cfg.DisplayMode).
		WithStyle(theme.ControlStyle).
		On(EventCurrentChange)

	actions := render.El(TagActions, control).
		Class("actions", true).
		BoolAttr("rtl", theme.RTL)

	return cardChrome(theme, item, actions)
}

func cardChrome(theme Theme, children ...*render.Node) *render.Node {
	layout := render.El(TagCardLayout, children...).
		Prop("appearance", theme.Appearance).
		BoolAttr("rtl", theme.RTL)
	return render.El(TagCard, layout).
		Class("fill-container", theme.Appearance.FillContainer)
}

func composeIcon(entity types.Entity, icon string, theme Theme) *render.Node {
	stateIcon := render.El(TagStateIcon).Prop("state", entity.EntityID)
	if icon != "" {
		stateIcon.Prop("icon", icon)
	}
	return render.El(TagShapeIcon, stateIcon).
		InSlot(SlotIcon).
		Prop("disabled", !entity.Active()).
		WithStyle(theme.IconStyle)
}

func composePicture(picture string) *render.Node {
	return render.El(TagShapeAvatar).
		InSlot(SlotIcon).
		Prop("picture_url", picture)
}

func composeBadge(entity types.Entity) *render.Node {
	if entity.Available() {
		return nil
	}
	return render.El(TagBadgeIcon).
		InSlot(SlotBadge).
		Class("unavailable", true).
		Prop("icon", "mdi:help")
}

func composeInfo(in ComposeInput, a types.Appearance, name, state string, entity types.Entity) *render.Node {
	primary, hasPrimary := infoText(in.Frontend, in.Hass, a.PrimaryInfo, name, state, entity)
	secondary, hasSecondary := infoText(in.Frontend, in.Hass, a.SecondaryInfo, name, state, entity)
	if !hasPrimary && !hasSecondary {
		return nil
	}

	info := render.El(TagStateInfo).InSlot(SlotInfo)
	if hasPrimary {
		info.Prop("primary", primary)
	}
	if hasSecondary {
		info.Prop("secondary", secondary)
	}
	return info
}

// composeNotFound renders the missing entity placeholder inside the usual
// card chrome, naming the configured entity id.
func composeNotFound(in ComposeInput) *render.Node {
	theme := Theme{
		Appearance: ComputeAppearance(in.Config),
		RTL:        in.Frontend.RTL(in.Hass),
	}
	theme.Appearance.FillContainer = true

	item := render.El(TagStateItem,
		render.El(TagShapeIcon, render.El(TagIcon).Prop("icon", "mdi:help")).
			InSlot(SlotIcon).
			Prop("disabled", true),
		render.El(TagBadgeIcon).
			InSlot(SlotBadge).
			Class("not-found", true).
			Prop("icon", "mdi:exclamation-thick"),
		render.El(TagStateInfo).
			InSlot(SlotInfo).
			Prop("primary", in.Config.Entity).
			Prop("secondary", in.Frontend.Localize(in.Hass, "card.not_found")),
	).
		BoolAttr("rtl", theme.RTL).
		Prop("appearance", theme.Appearance)

	return cardChrome(theme, item).Class("not-found", true)
}

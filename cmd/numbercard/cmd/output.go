package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Xevion/go-ha-number-card/internal"
	"github.com/Xevion/go-ha-number-card/internal/frontend"
	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

const emptyTree = "(nothing to render)"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// writeTree prints a rendered tree, framed with the card id when pretty is set.
func writeTree(w io.Writer, id string, tree *render.Node, pretty bool) error {
	body := strings.TrimSuffix(render.String(tree), "\n")
	if tree == nil {
		body = emptyTree
	}

	if !pretty {
		if id != "" {
			body = "# " + id + "\n" + body
		}
		_, err := fmt.Fprintln(w, body)
		return err
	}

	framed := boxStyle.Render(body)
	if id != "" {
		framed = lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(id), framed)
	}
	_, err := fmt.Fprintln(w, framed)
	return err
}

// loadHass builds a host snapshot from a saved /api/states response.
func loadHass(statesPath string, locale types.Locale) (*types.Hass, error) {
	states := map[string]types.Entity{}
	if statesPath != "" {
		raw, err := os.ReadFile(statesPath)
		if err != nil {
			return nil, err
		}
		if states, err = internal.ParseStates(raw); err != nil {
			return nil, err
		}
	}

	return &types.Hass{
		States:   states,
		Entities: map[string]types.EntityRegistryEntry{},
		Locale:   locale,
		Localize: frontend.NewLocalizer(locale.Language, nil),
	}, nil
}

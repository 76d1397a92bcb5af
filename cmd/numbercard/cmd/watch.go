package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	numbercard "github.com/Xevion/go-ha-number-card"
	"github.com/Xevion/go-ha-number-card/internal/config"
	"github.com/Xevion/go-ha-number-card/render"
	"github.com/Xevion/go-ha-number-card/types"
)

var ErrBadCommand = errors.New("bad command")

// Controller is the part of the dashboard driven by stdin commands.
type Controller interface {
	SetValue(cardID string, value float64) error
	Step(cardID string, up bool) error
	Dispatch(cardID, eventType string, detail map[string]any) error
}

func newWatchCmd() *cobra.Command {
	var configPath string
	var pretty bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render cards live against Home Assistant",
		Long: `Watch connects to the Home Assistant instance in the dashboard file,
hosts its cards and prints every tree they render as states change.

Commands read from stdin drive the cards:
  set <card> <value>    move the value control and commit the value
  inc <card>            press the plus button (dec for minus)
  tap <card>            tap gesture (also hold, double_tap)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, configPath, pretty)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "f", "dashboard.yaml", "dashboard file")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "frame the output for terminals")
	return cmd
}

func runWatch(cmd *cobra.Command, configPath string, pretty bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	d, err := numbercard.NewDashboard(cfg.Request())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	d.OnRender(func(id string, tree *render.Node) {
		if err := writeTree(out, id, tree, pretty); err != nil {
			slog.Warn("Failed to print tree", "card", id, "error", err)
		}
	})
	d.OnUIEvent(func(_ context.Context, ev types.UIEvent) {
		slog.Info("UI event", "type", ev.Type, "detail", ev.Detail)
	})

	for _, entry := range cfg.Cards {
		if _, err := d.AddCard(entry.ID, entry.Config); err != nil {
			_ = d.Close()
			return fmt.Errorf("failed to add card %q: %w", entry.ID, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go readCommands(ctx, cmd.InOrStdin(), d)

	done := make(chan error, 1)
	go func() { done <- d.Start() }()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
		closeErr := d.Close()
		if err := <-done; err != nil {
			return err
		}
		return closeErr
	case err := <-done:
		return errors.Join(err, d.Close())
	}
}

func readCommands(ctx context.Context, in io.Reader, c Controller) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := runCommand(c, line); err != nil {
			slog.Warn("Command failed", "command", line, "error", err)
		}
	}
}

// runCommand applies one stdin command line to c.
func runCommand(c Controller, line string) error {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return fmt.Errorf("%w: %q", ErrBadCommand, line)
	}

	switch verb, cardID := fields[0], fields[1]; verb {
	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("%w: usage: set <card> <value>", ErrBadCommand)
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("%w: invalid value %q", ErrBadCommand, fields[2])
		}
		return c.SetValue(cardID, value)
	case "inc", "dec":
		if len(fields) != 2 {
			return fmt.Errorf("%w: usage: %s <card>", ErrBadCommand, verb)
		}
		return c.Step(cardID, verb == "inc")
	case types.GestureTap, types.GestureHold, types.GestureDoubleTap:
		return c.Dispatch(cardID, numbercard.EventAction, map[string]any{"action": verb})
	default:
		return fmt.Errorf("%w: unknown verb %q", ErrBadCommand, verb)
	}
}

package commands

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexsys/internal/hexsys"
	"github.com/colonyops/hexsys/internal/tui"
	"github.com/colonyops/hexsys/pkg/notice"
)

type TuiCmd struct {
	flags *Flags
	app   *hexsys.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *hexsys.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	var notices notice.Buffer
	defer func() { _ = notices.Flush(os.Stderr) }()

	s, err := cmd.app.NewSession(ctx)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	before := s.History().Len()

	m := tui.New(ctx, s, tui.Options{SheetPath: cmd.app.Sheet.Path()})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	if n := s.History().Len() - before; n > 0 {
		if cmd.app.Config.History.Persist {
			notices.Addf("%d draw(s) logged to %s", n, cmd.app.Config.DatabasePath())
		} else {
			notices.Addf("%d draw(s) logged; history persistence is off", n)
		}
	}

	log.Info().Int("draws", s.History().Len()-before).Msg("tui exited")
	return nil
}

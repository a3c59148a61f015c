package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/internal/hexsys"
	"github.com/colonyops/hexsys/pkg/iojson"
)

type HistoryCmd struct {
	flags *Flags
	app   *hexsys.App

	// flags
	limit      int
	jsonOutput bool
	yes        bool
	input      iojson.FileReader[[]history.Record]
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags, app *hexsys.App) *HistoryCmd {
	return &HistoryCmd{flags: flags, app: app}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "Show the persisted draw log",
		UsageText: "hexsys history [--limit N] [--json]",
		Description: `Displays the most recent draws, oldest first.

Use --json for one JSON object per line, suitable for jq or for
'hexsys history import'.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "number of draws to show (0 for all)",
				Value:       20,
				Destination: &cmd.limit,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
		Commands: []*cli.Command{
			{
				Name:      "clear",
				Usage:     "Delete every persisted draw",
				UsageText: "hexsys history clear [--yes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runClear,
			},
			{
				Name:      "import",
				Usage:     "Import draws from a JSON array",
				UsageText: "hexsys history import [-f file]",
				Description: `Reads a JSON array of draws from a file or stdin and appends them to the
log. Draws whose id is already stored are skipped.`,
				Flags:  []cli.Flag{cmd.input.Flag()},
				Action: cmd.runImport,
			},
			{
				Name:      "reset-schema",
				Usage:     "Drop and recreate the draw tables",
				UsageText: "hexsys history reset-schema [--yes]",
				Description: `Reverts every schema step of the draw database and applies them again.
Use it when 'hexsys doctor' reports a schema problem. Every stored draw is
deleted.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "yes",
						Aliases:     []string{"y"},
						Usage:       "skip the confirmation prompt",
						Destination: &cmd.yes,
					},
				},
				Action: cmd.runResetSchema,
			},
		},
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	recs, err := cmd.app.Draws.List(ctx, cmd.limit)
	if err != nil {
		return fmt.Errorf("list draws: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, r := range recs {
			if err := iojson.WriteLine(out, r); err != nil {
				return fmt.Errorf("encode draw: %w", err)
			}
		}
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintf(os.Stderr, "No draws found\n")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tWHITE\tRED\tDRAWN\tRISKED\tSUCCESSES\tCOMPLICATIONS\tMODIFIERS")
	for _, r := range recs {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%t\t%d\t%d\t%s\n",
			r.Time.Local().Format("2006-01-02 15:04"),
			r.Primary,
			r.Secondary,
			history.FormatTokens(r.Drawn()),
			r.Risked,
			r.Successes(),
			r.Complications(),
			modifiers(r),
		)
	}
	return w.Flush()
}

func modifiers(r history.Record) string {
	var mods []string
	if r.Confused {
		mods = append(mods, "confused")
	}
	if r.Adrenalined {
		mods = append(mods, "adrenaline")
	}
	if len(r.Traits) > 0 {
		mods = append(mods, fmt.Sprintf("%d trait(s)", len(r.Traits)))
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ", ")
}

// confirm asks a yes/no question unless --yes was given.
func (cmd *HistoryCmd) confirm(title string) (bool, error) {
	if cmd.yes {
		return true, nil
	}

	confirmed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(cmd.app.Config.DatabasePath()).
				Value(&confirmed),
		),
	).WithTheme(styles.FormTheme()).Run()
	return confirmed, err
}

func (cmd *HistoryCmd) runClear(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirm("Delete the draw log?")
	if err != nil || !ok {
		return err
	}

	n, err := cmd.app.Draws.Clear(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Deleted %d draw(s)\n", n)
	return nil
}

func (cmd *HistoryCmd) runResetSchema(ctx context.Context, c *cli.Command) error {
	ok, err := cmd.confirm("Rebuild the draw database? Every stored draw is deleted.")
	if err != nil || !ok {
		return err
	}

	if err := cmd.app.DB.RebuildSchema(ctx); err != nil {
		return fmt.Errorf("rebuild schema: %w", err)
	}

	version, _, err := cmd.app.DB.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Draw database rebuilt at schema version %d\n", version)
	return nil
}

func (cmd *HistoryCmd) runImport(ctx context.Context, c *cli.Command) error {
	recs, err := cmd.input.Read()
	if err != nil {
		return fmt.Errorf("read draws: %w", err)
	}

	res, err := cmd.app.ImportDraws(ctx, recs)
	if err != nil {
		return err
	}

	return iojson.WriteLine(c.Root().Writer, res)
}

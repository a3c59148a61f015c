package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/internal/hexsys"
)

// sheetGlob matches sheet files anywhere below the sheets directory.
const sheetGlob = "**/*.toml"

const defaultRenderWidth = 100

type SheetCmd struct {
	flags *Flags
	app   *hexsys.App

	// flags
	raw bool
}

// NewSheetCmd creates a new sheet command
func NewSheetCmd(flags *Flags, app *hexsys.App) *SheetCmd {
	return &SheetCmd{flags: flags, app: app}
}

// Register adds the sheet command to the application
func (cmd *SheetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "sheet",
		Usage: "Character sheet commands",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "Render the character sheet",
				UsageText: "hexsys sheet show [--raw]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "raw",
						Usage:       "print markdown without rendering",
						Destination: &cmd.raw,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:        "init",
				Usage:       "Create or update the character sheet interactively",
				UsageText:   "hexsys sheet init",
				Description: "Prompts for the character's name and objective and writes the sheet file. Existing nodes and lists are kept.",
				Action:      cmd.runInit,
			},
			{
				Name:      "ls",
				Usage:     "List sheet files in the sheets directory",
				UsageText: "hexsys sheet ls",
				Action:    cmd.runLs,
			},
		},
	})

	return app
}

func (cmd *SheetCmd) runShow(_ context.Context, c *cli.Command) error {
	sh, err := cmd.app.Sheet.Read()
	if err != nil {
		return err
	}

	md := sh.Markdown()
	out := c.Root().Writer
	if cmd.raw {
		_, err := fmt.Fprint(out, md)
		return err
	}

	rendered, err := renderMarkdown(md, terminalWidth())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render sheet: %w", err)
	}
	return out, nil
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultRenderWidth
	}
	return w
}

func (cmd *SheetCmd) runInit(ctx context.Context, c *cli.Command) error {
	sh, err := cmd.app.Sheet.Read()
	if err != nil {
		return err
	}

	name := sh.Character.Name
	objective := sh.Character.Objective

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Who are you playing?").
				CharLimit(sheet.FieldMaxLen).
				Validate(validateRequired).
				Value(&name),
			huh.NewInput().
				Title("Objective").
				Description("What does the character want?").
				CharLimit(sheet.FieldMaxLen).
				Validate(validateFieldLen).
				Value(&objective),
		),
	).WithTheme(styles.FormTheme()).Run()
	if err != nil {
		return err
	}

	sh.Character.Set(sheet.FieldName, strings.TrimSpace(name))
	sh.Character.Set(sheet.FieldObjective, strings.TrimSpace(objective))

	if err := cmd.app.Sheet.Save(ctx, sh); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Wrote %s\n", cmd.app.Sheet.Path())
	return nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return validateFieldLen(s)
}

func validateFieldLen(s string) error {
	if utf8.RuneCountInString(strings.TrimSpace(s)) > sheet.FieldMaxLen {
		return fmt.Errorf("at most %d characters", sheet.FieldMaxLen)
	}
	return nil
}

func (cmd *SheetCmd) runLs(_ context.Context, c *cli.Command) error {
	dir := cmd.app.Config.SheetsDir
	matches, err := findSheets(dir)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Fprintf(os.Stderr, "No sheets found in %s\n", dir)
		return nil
	}

	active := cmd.app.Sheet.Path()
	out := c.Root().Writer
	for _, m := range matches {
		marker := "  "
		if m == active {
			marker = "* "
		}
		_, _ = fmt.Fprintln(out, marker+m)
	}
	return nil
}

// findSheets returns the absolute paths of every sheet file below dir. A
// missing directory yields no sheets.
func findSheets(dir string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	rel, err := doublestar.Glob(os.DirFS(dir), sheetGlob, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob sheets: %w", err)
	}

	out := make([]string, len(rel))
	for i, r := range rel {
		out[i] = filepath.Join(dir, filepath.FromSlash(r))
	}
	return out, nil
}

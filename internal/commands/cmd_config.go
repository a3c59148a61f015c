package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/hexsys/internal/core/styles"
	"github.com/colonyops/hexsys/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config command to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "hexsys config validate [options]",
				Description: "Validates the configuration file, checking the theme, limits and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
		},
	})

	return app
}

type validationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationReport struct {
	Valid  bool              `json:"valid"`
	Errors []validationIssue `json:"errors,omitempty"`
}

func (cmd *ConfigCmd) runValidate(_ context.Context, c *cli.Command) error {
	report, err := buildReport(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.format == "json" {
		if err := iojson.WriteWith(out, c.Root().ErrWriter, report); err != nil {
			return err
		}
	} else {
		for _, issue := range report.Errors {
			_, _ = fmt.Fprintf(out, "%s %s\n", styles.ErrorStyle.Render(issue.Field+":"), issue.Message)
		}
		if report.Valid {
			_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render("Configuration is valid"))
		} else {
			_, _ = fmt.Fprintf(out, "\n%d error(s) found\n", len(report.Errors))
		}
	}

	if !report.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// buildReport converts a validation error into a report. Errors that are
// not field errors are returned as is.
func buildReport(err error) (validationReport, error) {
	if err == nil {
		return validationReport{Valid: true}, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return validationReport{}, err
	}

	report := validationReport{Errors: make([]validationIssue, len(fieldErrs))}
	for i, fe := range fieldErrs {
		report.Errors[i] = validationIssue{Field: fe.Field, Message: fe.Err.Error()}
	}
	return report, nil
}

package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/hexsys/internal/core/config"
	"github.com/colonyops/hexsys/internal/core/sheet"
)

// ConfigCheck validates the loaded configuration and the paths it names.
type ConfigCheck struct {
	cfg        *config.Config
	configPath string
}

func NewConfigCheck(cfg *config.Config, configPath string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, configPath: configPath}
}

func (c *ConfigCheck) Name() string { return "Configuration" }

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	switch _, err := os.Stat(c.configPath); {
	case c.configPath == "":
		result.add("config file", StatusWarn, "no path set, using defaults")
	case errors.Is(err, os.ErrNotExist):
		result.add("config file", StatusWarn, "not found, using defaults")
	case err != nil:
		result.add("config file", StatusFail, err.Error())
	default:
		result.add("config file", StatusPass, c.configPath)
	}

	err := c.cfg.ValidateDeep(c.configPath)
	if err == nil {
		result.add("settings", StatusPass, "")
		return result
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		result.add("settings", StatusFail, err.Error())
		return result
	}
	for _, fe := range fieldErrs {
		result.add(fe.Field, StatusFail, fe.Err.Error())
	}
	return result
}

// DrawCounter is the subset of the draw store used by StorageCheck.
type DrawCounter interface {
	Count(ctx context.Context) (int, error)
}

// SchemaReporter reports the applied and the newest known schema version.
type SchemaReporter interface {
	SchemaVersion(ctx context.Context) (current, latest int, err error)
}

// StorageCheck verifies the draw history database answers queries and its
// schema matches this build.
type StorageCheck struct {
	draws   DrawCounter
	schema  SchemaReporter
	persist bool
}

func NewStorageCheck(draws DrawCounter, schema SchemaReporter, persist bool) *StorageCheck {
	return &StorageCheck{draws: draws, schema: schema, persist: persist}
}

func (c *StorageCheck) Name() string { return "Storage" }

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.persist {
		result.add("history persistence", StatusPass, "enabled")
	} else {
		result.add("history persistence", StatusWarn, "disabled, draws are kept in memory only")
	}

	current, latest, err := c.schema.SchemaVersion(ctx)
	switch {
	case err != nil:
		result.add("schema", StatusFail, err.Error())
	case current > latest:
		result.add("schema", StatusFail, fmt.Sprintf("version %d was written by a newer hexsys (this build knows %d)", current, latest))
	case current < latest:
		result.add("schema", StatusWarn, fmt.Sprintf("version %d of %d, run 'hexsys history reset-schema'", current, latest))
	default:
		result.add("schema", StatusPass, fmt.Sprintf("version %d", current))
	}

	n, err := c.draws.Count(ctx)
	if err != nil {
		result.add("database", StatusFail, err.Error())
		return result
	}
	result.add("database", StatusPass, fmt.Sprintf("%d stored draws", n))
	return result
}

// SheetProbe is the subset of the sheet store used by SheetCheck.
type SheetProbe interface {
	Path() string
	Read() (sheet.Sheet, error)
	Busy() (bool, error)
}

// SheetCheck verifies the active character sheet parses and is not locked.
type SheetCheck struct {
	sheet SheetProbe
}

func NewSheetCheck(sheet SheetProbe) *SheetCheck {
	return &SheetCheck{sheet: sheet}
}

func (c *SheetCheck) Name() string { return "Character sheet" }

func (c *SheetCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}
	path := c.sheet.Path()

	switch _, err := os.Stat(path); {
	case errors.Is(err, os.ErrNotExist):
		result.add("file", StatusWarn, path+" does not exist yet")
	case err != nil:
		result.add("file", StatusFail, err.Error())
	default:
		if _, err := c.sheet.Read(); err != nil {
			result.add("file", StatusFail, err.Error())
		} else {
			result.add("file", StatusPass, path)
		}
	}

	busy, err := c.sheet.Busy()
	switch {
	case err != nil:
		result.add("lock", StatusFail, err.Error())
	case busy:
		result.add("lock", StatusWarn, "held by another process, edits will not be saved")
	default:
		result.add("lock", StatusPass, "free")
	}
	return result
}

// Package hexsys wires the configuration, the sheet file and the draw
// store into the services the commands and the TUI consume.
package hexsys

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/hexsys/internal/core/config"
	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/session"
	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/data/db"
	"github.com/colonyops/hexsys/internal/data/stores"
)

// App is the central entry point for all hexsys operations.
// Commands and the TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Config *config.Config
	DB     *db.DB
	Draws  *stores.DrawStore
	Sheet  *sheet.Store
	Build  BuildInfo
	log    zerolog.Logger
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, database *db.DB, build BuildInfo, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		DB:     database,
		Draws:  stores.NewDrawStore(database),
		Sheet:  sheet.NewStore(cfg.SheetPath, logger.With().Str("component", "sheet").Logger()),
		Build:  build,
		log:    logger,
	}
}

// WithSheet returns a copy of a that reads and writes the sheet at path.
func (a *App) WithSheet(path string) *App {
	cp := *a
	cp.Sheet = sheet.NewStore(path, a.log.With().Str("component", "sheet").Logger())
	return &cp
}

// NewSession loads the character sheet and the most recent draws and
// returns a session ready to be driven. When history persistence is off,
// draws live in memory only.
func (a *App) NewSession(ctx context.Context) (*session.Session, error) {
	sh := a.Sheet.Load()

	var (
		sink  history.Sink
		prior []history.Record
	)
	if a.Config.History.Persist {
		recs, err := a.Draws.List(ctx, a.Config.History.LoadLimit)
		if err != nil {
			return nil, fmt.Errorf("load draw history: %w", err)
		}
		sink = a.Draws
		prior = recs
	}

	a.log.Debug().
		Str("sheet", a.Sheet.Path()).
		Int("prior_draws", len(prior)).
		Bool("persist", sink != nil).
		Msg("session created")

	return session.New(session.Deps{
		Sheet:   sh,
		History: history.New(sink, prior...),
		Saver:   a.Sheet,
		Logger:  a.log.With().Str("component", "session").Logger(),
	}), nil
}

// ImportResult summarizes an import.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportDraws appends recs to the draw store. Records without an id get a
// new one; records whose id is already stored are skipped.
func (a *App) ImportDraws(ctx context.Context, recs []history.Record) (ImportResult, error) {
	var res ImportResult
	for _, r := range recs {
		if r.ID == "" {
			r.ID = uuid.NewString()
		} else {
			_, err := a.Draws.Get(ctx, r.ID)
			switch {
			case err == nil:
				res.Skipped++
				continue
			case !errors.Is(err, stores.ErrNotFound):
				return res, fmt.Errorf("import draw %s: %w", r.ID, err)
			}
		}

		if err := a.Draws.Append(ctx, r); err != nil {
			return res, fmt.Errorf("import draw %s: %w", r.ID, err)
		}
		res.Imported++
	}

	a.log.Info().Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("draws imported")
	return res, nil
}

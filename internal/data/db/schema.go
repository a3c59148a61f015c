package db

import (
	"cmp"
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// stepFile matches "0001_draws.up.sql" and "0001_draws.down.sql".
var stepFile = regexp.MustCompile(`^(\d{4})_([a-z0-9_]+)\.(up|down)\.sql$`)

// step is one numbered schema change and its reverse.
type step struct {
	version int
	name    string
	up      string
	down    string
}

// loadSteps reads the step files under dir in fsys, sorted by version.
// Every version needs both an up and a down file with the same name.
func loadSteps(fsys fs.FS, dir string) ([]step, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schema steps: %w", err)
	}

	byVersion := make(map[int]*step)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		m := stepFile.FindStringSubmatch(entry.Name())
		if m == nil {
			return nil, fmt.Errorf("schema step %q: name must look like NNNN_name.up.sql", entry.Name())
		}
		version, _ := strconv.Atoi(m[1])
		if version == 0 {
			return nil, fmt.Errorf("schema step %q: version starts at 0001", entry.Name())
		}

		body, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema step %s: %w", entry.Name(), err)
		}

		s := byVersion[version]
		if s == nil {
			s = &step{version: version, name: m[2]}
			byVersion[version] = s
		}
		if s.name != m[2] {
			return nil, fmt.Errorf("schema step %04d: up and down names differ (%s, %s)", version, s.name, m[2])
		}

		half := &s.up
		if m[3] == "down" {
			half = &s.down
		}
		if *half != "" {
			return nil, fmt.Errorf("schema step %04d: duplicate %s file", version, m[3])
		}
		*half = string(body)
	}

	steps := make([]step, 0, len(byVersion))
	for _, s := range byVersion {
		if s.up == "" || s.down == "" {
			return nil, fmt.Errorf("schema step %04d (%s): needs both up and down files", s.version, s.name)
		}
		steps = append(steps, *s)
	}
	slices.SortFunc(steps, func(a, b step) int { return cmp.Compare(a.version, b.version) })

	return steps, nil
}

func embeddedSteps() ([]step, error) {
	return loadSteps(migrationsFS, "migrations")
}

const schemaTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       TEXT NOT NULL,
		applied_at INTEGER NOT NULL
	)`

// applied returns the recorded schema versions.
func applied(ctx context.Context, conn *sql.DB) (map[int]bool, error) {
	if _, err := conn.ExecContext(ctx, schemaTable); err != nil {
		return nil, fmt.Errorf("create schema table: %w", err)
	}

	rows, err := conn.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema versions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("read schema versions: %w", err)
		}
		out[v] = true
	}
	return out, rows.Err()
}

// migrate applies every step that is not recorded yet, oldest first.
func (db *DB) migrate(ctx context.Context) error {
	steps, err := embeddedSteps()
	if err != nil {
		return err
	}

	done, err := applied(ctx, db.conn)
	if err != nil {
		return err
	}

	for _, s := range steps {
		if done[s.version] {
			continue
		}

		log.Info().Int("version", s.version).Str("name", s.name).Msg("applying schema step")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, s.up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, name, applied_at) VALUES (?, ?, ?)`,
				s.version, s.name, time.Now().UnixNano())
			return err
		})
		if err != nil {
			return fmt.Errorf("apply schema step %04d (%s): %w", s.version, s.name, err)
		}
	}

	return nil
}

// Rollback reverts the n most recently applied schema steps.
func (db *DB) Rollback(ctx context.Context, n int) error {
	if n <= 0 {
		return fmt.Errorf("rollback: step count must be positive, got %d", n)
	}

	steps, err := embeddedSteps()
	if err != nil {
		return err
	}

	done, err := applied(ctx, db.conn)
	if err != nil {
		return err
	}

	var revert []step
	for _, s := range slices.Backward(steps) {
		if done[s.version] {
			revert = append(revert, s)
		}
	}
	if n > len(revert) {
		return fmt.Errorf("rollback: %d steps requested, %d applied", n, len(revert))
	}

	for _, s := range revert[:n] {
		log.Info().Int("version", s.version).Str("name", s.name).Msg("reverting schema step")
		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, s.down); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, s.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert schema step %04d (%s): %w", s.version, s.name, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied step and the highest step this
// build knows about. current > latest means a newer hexsys wrote the file.
func (db *DB) SchemaVersion(ctx context.Context) (current, latest int, err error) {
	steps, err := embeddedSteps()
	if err != nil {
		return 0, 0, err
	}
	if len(steps) > 0 {
		latest = steps[len(steps)-1].version
	}

	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return 0, 0, fmt.Errorf("read schema version: %w", err)
	}
	return current, latest, nil
}

// RebuildSchema reverts every applied step and applies them again. All
// stored draws are lost.
func (db *DB) RebuildSchema(ctx context.Context) error {
	steps, err := embeddedSteps()
	if err != nil {
		return err
	}

	done, err := applied(ctx, db.conn)
	if err != nil {
		return err
	}

	n := 0
	for _, s := range steps {
		if done[s.version] {
			n++
		}
	}
	if n > 0 {
		if err := db.Rollback(ctx, n); err != nil {
			return err
		}
	}
	return db.migrate(ctx)
}

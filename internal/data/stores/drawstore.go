// Package stores implements SQLite-backed persistence for domain types.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/token"
	"github.com/colonyops/hexsys/internal/data/db"
)

// ErrNotFound is returned when a draw does not exist.
var ErrNotFound = errors.New("draw not found")

// DrawStore persists history records using SQLite.
type DrawStore struct {
	db *db.DB
}

var _ history.Sink = (*DrawStore)(nil)

// NewDrawStore creates a new SQLite-backed draw store.
func NewDrawStore(db *db.DB) *DrawStore {
	return &DrawStore{db: db}
}

const drawColumns = `id, drawn_at, primary_count, secondary_count, traits, misfortunes,
	first_draw, risked, risk_draw, confused, adrenalined`

// Append inserts r. Appending an existing id fails. A write that finds the
// database busy is retried once.
func (s *DrawStore) Append(ctx context.Context, r history.Record) error {
	row, err := recordToRow(r)
	if err != nil {
		return fmt.Errorf("encode draw %s: %w", r.ID, err)
	}

	err = retryBusy(ctx, func() error {
		_, err := s.db.Conn().ExecContext(ctx,
			`INSERT INTO draws (`+drawColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.ID, row.DrawnAt, row.Primary, row.Secondary, row.Traits, row.Misfortunes,
			row.FirstDraw, row.Risked, row.RiskDraw, row.Confused, row.Adrenalined,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert draw %s: %w", r.ID, err)
	}
	return nil
}

// Get returns the draw with the given id.
func (s *DrawStore) Get(ctx context.Context, id string) (history.Record, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT `+drawColumns+` FROM draws WHERE id = ?`, id)

	r, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return history.Record{}, fmt.Errorf("get draw %s: %w", id, ErrNotFound)
		}
		return history.Record{}, fmt.Errorf("get draw %s: %w", id, err)
	}
	return r, nil
}

// List returns the most recent limit draws, oldest first. A limit of zero
// or less returns every draw.
func (s *DrawStore) List(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT `+drawColumns+` FROM (
			SELECT * FROM draws ORDER BY drawn_at DESC, rowid DESC LIMIT ?
		) ORDER BY drawn_at ASC, rowid ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []history.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to convert draw: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}

	return records, nil
}

// Count returns the number of stored draws.
func (s *DrawStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM draws`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count draws: %w", err)
	}
	return n, nil
}

// Clear deletes every draw and returns how many were removed.
func (s *DrawStore) Clear(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM draws`)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear draws: %w", err)
	}
	return n, nil
}

// drawRow is the column representation of a record.
type drawRow struct {
	ID          string
	DrawnAt     int64
	Primary     int
	Secondary   int
	Traits      string
	Misfortunes string
	FirstDraw   string
	Risked      bool
	RiskDraw    string
	Confused    bool
	Adrenalined bool
}

func recordToRow(r history.Record) (drawRow, error) {
	row := drawRow{
		ID:          r.ID,
		DrawnAt:     r.Time.UnixNano(),
		Primary:     r.Primary,
		Secondary:   r.Secondary,
		Risked:      r.Risked,
		Confused:    r.Confused,
		Adrenalined: r.Adrenalined,
	}

	fields := []struct {
		dst *string
		v   any
	}{
		{&row.Traits, nonNil(r.Traits)},
		{&row.Misfortunes, r.Misfortunes},
		{&row.FirstDraw, nonNil(r.FirstDraw)},
		{&row.RiskDraw, nonNil(r.RiskDraw)},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.v)
		if err != nil {
			return drawRow{}, err
		}
		*f.dst = string(data)
	}

	return row, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (history.Record, error) {
	var row drawRow
	err := sc.Scan(&row.ID, &row.DrawnAt, &row.Primary, &row.Secondary, &row.Traits,
		&row.Misfortunes, &row.FirstDraw, &row.Risked, &row.RiskDraw, &row.Confused, &row.Adrenalined)
	if err != nil {
		return history.Record{}, err
	}
	return rowToRecord(row)
}

func rowToRecord(row drawRow) (history.Record, error) {
	r := history.Record{
		ID:          row.ID,
		Time:        time.Unix(0, row.DrawnAt).UTC(),
		Primary:     row.Primary,
		Secondary:   row.Secondary,
		Risked:      row.Risked,
		Confused:    row.Confused,
		Adrenalined: row.Adrenalined,
	}

	if err := json.Unmarshal([]byte(row.Traits), &r.Traits); err != nil {
		return history.Record{}, fmt.Errorf("decode traits: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Misfortunes), &r.Misfortunes); err != nil {
		return history.Record{}, fmt.Errorf("decode misfortunes: %w", err)
	}

	var err error
	if r.FirstDraw, err = decodeTokens(row.FirstDraw); err != nil {
		return history.Record{}, fmt.Errorf("decode first draw: %w", err)
	}
	if r.RiskDraw, err = decodeTokens(row.RiskDraw); err != nil {
		return history.Record{}, fmt.Errorf("decode risk draw: %w", err)
	}

	return r, nil
}

func decodeTokens(s string) ([]token.Kind, error) {
	var ts []token.Kind
	if err := json.Unmarshal([]byte(s), &ts); err != nil {
		return nil, err
	}
	return ts, nil
}

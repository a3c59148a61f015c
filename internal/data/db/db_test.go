package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	database, err := Open(dataDir, DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = os.Stat(filepath.Join(dataDir, FileName))
	assert.NoError(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	dataDir := t.TempDir()

	first, err := Open(dataDir, DefaultOpenOptions())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dataDir, DefaultOpenOptions())
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func TestWithTx(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	insert := func(id string) func(*sql.Tx) error {
		return func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO draws (id, drawn_at, primary_count, secondary_count) VALUES (?, 1, 1, 1)", id)
			return err
		}
	}

	require.NoError(t, database.WithTx(ctx, insert("committed")))

	boom := errors.New("boom")
	err := database.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insert("rolled-back")(tx); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, database.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM draws").Scan(&count))
	assert.Equal(t, 1, count)
}

package stores

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/colonyops/hexsys/internal/data/db"
)

// busyRetryWait is the pause before a write rejected with SQLITE_BUSY is
// tried again.
const busyRetryWait = 50 * time.Millisecond

// sqliteCode returns the primary result code of a SQLite error.
func sqliteCode(err error) (int, bool) {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code() & 0xff, true
}

// IsBusyError reports whether another connection held the write lock
// longer than the busy timeout.
func IsBusyError(err error) bool {
	code, ok := sqliteCode(err)
	return ok && (code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED)
}

// IsCorruptionError reports whether err means the database file is unusable.
func IsCorruptionError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		switch code {
		case sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CANTOPEN:
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "database disk image is malformed") ||
		strings.Contains(msg, "file is not a database")
}

// isBusy is swapped in tests that cannot provoke a real lock conflict.
var isBusy = IsBusyError

// retryBusy runs write and, if it fails with a busy error, runs it once more
// after busyRetryWait.
func retryBusy(ctx context.Context, write func() error) error {
	err := write()
	if !isBusy(err) {
		return err
	}

	select {
	case <-ctx.Done():
		return err
	case <-time.After(busyRetryWait):
	}
	return write()
}

// RecoverFromCorruption moves the database file and its WAL and SHM files
// aside as <name>.corrupt.<timestamp> so the next Open starts empty. A WAL or
// SHM file that cannot be moved is removed.
func RecoverFromCorruption(dataDir string) error {
	dbPath := filepath.Join(dataDir, db.FileName)
	backup := fmt.Sprintf("%s.corrupt.%s", dbPath, time.Now().Format("20060102-150405"))

	for _, suffix := range []string{"", "-wal", "-shm"} {
		src := dbPath + suffix
		err := os.Rename(src, backup+suffix)
		switch {
		case err == nil, errors.Is(err, os.ErrNotExist):
			continue
		case suffix == "":
			return fmt.Errorf("back up corrupt database: %w", err)
		}
		if rmErr := os.Remove(src); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			return fmt.Errorf("remove stale %s file: %w", strings.TrimPrefix(suffix, "-"), rmErr)
		}
	}

	return nil
}

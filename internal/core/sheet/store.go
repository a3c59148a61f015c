package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/hexsys/internal/core/hexgrid"
	"github.com/colonyops/hexsys/internal/core/sections"
)

// DefaultFileName is the sheet file name inside the data directory.
const DefaultFileName = "character_sheet.toml"

// ErrLocked is returned by Save when another process holds the sheet lock.
var ErrLocked = errors.New("sheet is locked by another process")

const lockRetry = 25 * time.Millisecond

// document is the on-disk shape. Arrays are slices so files with missing
// or extra entries still decode.
type document struct {
	Character characterDoc `toml:"character"`
	Nodes     []string     `toml:"nodes"`
	Lists     listsDoc     `toml:"lists"`
}

type characterDoc struct {
	Name      string `toml:"name"`
	Objective string `toml:"objective"`
}

type listsDoc struct {
	Misfortunes           []string `toml:"misfortunes"`
	MisfortunesDifficulty []string `toml:"misfortunes_difficulty"`
	Resources             []string `toml:"resources"`
	Notes                 string   `toml:"notes"`
	Lessons               []string `toml:"lessons"`
}

// Store reads and writes a sheet as TOML.
type Store struct {
	path        string
	lock        *flock.Flock
	lockTimeout time.Duration
	log         zerolog.Logger
}

// NewStore creates a store for the sheet at path.
func NewStore(path string, logger zerolog.Logger) *Store {
	return &Store{
		path:        path,
		lock:        flock.New(path + ".lock"),
		lockTimeout: 500 * time.Millisecond,
		log:         logger,
	}
}

// Path returns the sheet file path.
func (s *Store) Path() string { return s.path }

// Read decodes the sheet file. A missing file yields an empty sheet and no
// error.
func (s *Store) Read() (Sheet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Sheet{}, nil
		}
		return Sheet{}, fmt.Errorf("read sheet: %w", err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Sheet{}, fmt.Errorf("parse sheet: %w", err)
	}

	return fromDocument(doc), nil
}

// Load is the best-effort variant of Read: any failure is logged and an
// empty sheet is returned.
func (s *Store) Load() Sheet {
	sh, err := s.Read()
	if err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("using empty character sheet")
		return Sheet{}
	}
	return sh
}

// Busy reports whether another process currently holds the sheet lock.
// A missing sheet directory is not busy.
func (s *Store) Busy() (bool, error) {
	if _, err := os.Stat(filepath.Dir(s.path)); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("probe sheet lock: %w", err)
	}
	if !locked {
		return true, nil
	}
	return false, s.lock.Unlock()
}

// Save writes sh atomically while holding the sheet lock.
func (s *Store) Save(ctx context.Context, sh Sheet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create sheet dir: %w", err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	locked, err := s.lock.TryLockContext(lockCtx, lockRetry)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("lock sheet: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = s.lock.Unlock() }()

	data, err := toml.Marshal(toDocument(sh))
	if err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write sheet: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace sheet: %w", err)
	}

	s.log.Debug().Str("path", s.path).Msg("sheet saved")
	return nil
}

func toDocument(sh Sheet) document {
	return document{
		Character: characterDoc{
			Name:      sh.Character.Name,
			Objective: sh.Character.Objective,
		},
		Nodes: sh.Nodes[:],
		Lists: listsDoc{
			Misfortunes:           sh.Lists.Misfortunes[:],
			MisfortunesDifficulty: sh.Lists.MisfortunesDifficulty[:],
			Resources:             sh.Lists.Resources[:],
			Notes:                 sh.Lists.Notes,
			Lessons:               sh.Lists.Lessons[:],
		},
	}
}

func fromDocument(doc document) Sheet {
	var sh Sheet
	sh.Character.Set(FieldName, doc.Character.Name)
	sh.Character.Set(FieldObjective, doc.Character.Objective)

	fill(sh.Nodes[:], doc.Nodes, hexgrid.MaxTextLen)
	fill(sh.Lists.Misfortunes[:], doc.Lists.Misfortunes, sections.Misfortunes.MaxLen())
	fill(sh.Lists.MisfortunesDifficulty[:], doc.Lists.MisfortunesDifficulty, sections.MisfortunesDifficulty.MaxLen())
	fill(sh.Lists.Resources[:], doc.Lists.Resources, sections.Resources.MaxLen())
	fill(sh.Lists.Lessons[:], doc.Lists.Lessons, sections.Lessons.MaxLen())
	sh.Lists.Notes = Truncate(doc.Lists.Notes, sections.Notes.MaxLen())

	return sh
}

// fill copies src into dst, truncating each entry to maxLen runes. Extra
// entries are dropped and missing ones stay empty.
func fill(dst, src []string, maxLen int) {
	for i := 0; i < len(dst) && i < len(src); i++ {
		dst[i] = Truncate(src[i], maxLen)
	}
}

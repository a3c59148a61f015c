package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/core/token"
)

type fakeSaver struct {
	saved []sheet.Sheet
	err   error
}

func (f *fakeSaver) Save(_ context.Context, sh sheet.Sheet) error {
	f.saved = append(f.saved, sh)
	return f.err
}

func newTestSession(t *testing.T, sh sheet.Sheet) (*Session, *fakeSaver) {
	t.Helper()

	saver := &fakeSaver{}
	ids := 0
	s := New(Deps{
		Sheet:  sh,
		Saver:  saver,
		Rand:   rand.New(rand.NewSource(1)),
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		NewID: func() string {
			ids++
			return fmt.Sprintf("draw-%d", ids)
		},
	})
	return s, saver
}

// setCounts drives the draw tab counters through intents.
func setCounts(s *Session, primary, secondary, drawCount int) {
	s.focus = FocusWhite
	for range primary {
		s.Up()
	}
	s.focus = FocusRed
	for range secondary {
		s.Up()
	}
	s.focus = FocusDrawInput
	for range drawCount - 1 {
		s.Up()
	}
	s.focus = FocusWhite
}

func TestNew_Defaults(t *testing.T) {
	s, _ := newTestSession(t, sheet.Sheet{})

	assert.Equal(t, ModeNavigating, s.Mode())
	assert.Equal(t, TabDraw, s.Tab())
	assert.Equal(t, FocusWhite, s.Focus())
	assert.Equal(t, 1, s.DrawCount())
	assert.Equal(t, 9, s.Grid().Selected())
	assert.Equal(t, 0, s.History().Len())
}

func TestRiskDraw_TopsUpToFive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 5, 3, 2)

	s.PerformFirstDraw(ctx)

	assert.Len(t, s.Drawn(), 2)
	assert.Equal(t, ModePopupConfirmRisk, s.Mode())
	assert.Equal(t, 0, s.History().Len())

	s.PerformRiskDraw(ctx)

	assert.Len(t, s.Drawn(), 5)
	require.Equal(t, 1, s.History().Len())
	rec := s.History().At(0)
	assert.True(t, rec.Risked)
	assert.Len(t, rec.FirstDraw, 2)
	assert.Len(t, rec.RiskDraw, 3)
	assert.Equal(t, 5, rec.Primary)
	assert.Equal(t, 3, rec.Secondary)
	assert.Equal(t, ModeNavigating, s.Mode())
}

func TestCancelDraw_AfterForcedFour(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 10, 5, 1)
	s.ToggleForced()
	require.Equal(t, 4, s.DrawCount())

	s.PerformFirstDraw(ctx)

	assert.Len(t, s.Drawn(), 4)
	assert.Equal(t, ModePopupConfirmRisk, s.Mode())

	s.CancelDraw(ctx)

	require.Equal(t, 1, s.History().Len())
	rec := s.History().At(0)
	assert.False(t, rec.Risked)
	assert.Empty(t, rec.RiskDraw)
	assert.True(t, rec.Adrenalined)
	assert.False(t, s.ForcedFour())
	assert.Equal(t, ModeNavigating, s.Mode())
}

func TestRiskCompletion(t *testing.T) {
	ctx := context.Background()

	for k := 1; k <= 4; k++ {
		t.Run(fmt.Sprintf("first draw %d", k), func(t *testing.T) {
			s, _ := newTestSession(t, sheet.Sheet{})
			setCounts(s, 4, 4, k)

			s.PerformFirstDraw(ctx)
			require.Len(t, s.Drawn(), k)
			require.Equal(t, ModePopupConfirmRisk, s.Mode())

			s.PerformRiskDraw(ctx)

			rec := s.History().At(0)
			assert.Len(t, rec.RiskDraw, RiskTarget-k)
			assert.Len(t, s.Drawn(), RiskTarget)
			assert.Equal(t, 8-RiskTarget, s.PoolLen())
		})
	}
}

func TestRiskDraw_SmallPool(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 1, 1, 1)

	s.PerformFirstDraw(ctx)
	s.PerformRiskDraw(ctx)

	rec := s.History().At(0)
	assert.Len(t, rec.Drawn(), 2, "never more than the pool held")
	assert.LessOrEqual(t, len(s.Drawn()), RiskTarget)
}

func TestHistoryGrowsByOnePerCommit(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 3, 3, 2)

	steps := []func(){
		func() { s.PerformFirstDraw(ctx); s.PerformRiskDraw(ctx) },
		func() { s.PerformFirstDraw(ctx); s.CancelDraw(ctx) },
		func() { s.PerformFirstDraw(ctx); s.PerformRiskDraw(ctx) },
	}

	var before []history.Record
	for i, step := range steps {
		step()
		require.Equal(t, i+1, s.History().Len())
		for j, r := range before {
			assert.Equal(t, r, s.History().At(j), "record %d changed", j)
		}
		before = s.History().Records()
	}
}

func TestFirstDraw_LogsImmediatelyAtTarget(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t, sheet.Sheet{})
	setCounts(s, 5, 5, 1)
	// only reachable with a draw count of at least RiskTarget
	s.drawCount = RiskTarget

	s.PerformFirstDraw(ctx)

	assert.Equal(t, ModeNavigating, s.Mode())
	require.Equal(t, 1, s.History().Len())
	assert.False(t, s.History().At(0).Risked)
}

func TestCommit_ClearsModifiersKeepsCounts(t *testing.T) {
	ctx := context.Background()
	var sh sheet.Sheet
	sh.Nodes[9] = "Archer"
	sh.Lists.Misfortunes[1] = "Hunted"
	sh.Lists.MisfortunesDifficulty[1] = "2"

	s, _ := newTestSession(t, sh)
	setCounts(s, 2, 2, 3)
	s.ToggleTrait(9)
	s.ToggleMisfortune(1)
	s.ToggleRandom()

	s.PerformFirstDraw(ctx)
	s.CancelDraw(ctx)

	rec := s.History().At(0)
	assert.Equal(t, []int{9}, rec.Traits)
	assert.Equal(t, [4]int{0, 2, 0, 0}, rec.Misfortunes)
	assert.True(t, rec.Confused)
	assert.Equal(t, "draw-1", rec.ID)

	assert.False(t, s.RandomMode())
	assert.Empty(t, s.UsedTraits())
	assert.Equal(t, 0, s.MisfortuneExtra(1))

	p, sec := s.Counts()
	assert.Equal(t, 3, p)
	assert.Equal(t, 4, sec)
	assert.Equal(t, 3, s.DrawCount())
}

type failingSink struct{}

func (failingSink) Append(context.Context, history.Record) error { return errors.New("boom") }

func TestCommit_SinkFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	s := New(Deps{
		History: history.New(failingSink{}),
		Rand:    rand.New(rand.NewSource(2)),
		Logger:  zerolog.Nop(),
	})
	setCounts(s, 2, 2, 1)

	s.PerformFirstDraw(ctx)
	s.CancelDraw(ctx)

	assert.Equal(t, 1, s.History().Len())
	assert.NotEmpty(t, s.History().At(0).ID)
}

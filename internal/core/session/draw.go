package session

import (
	"context"

	"github.com/colonyops/hexsys/internal/core/history"
	"github.com/colonyops/hexsys/internal/core/sheet"
	"github.com/colonyops/hexsys/internal/core/token"
)

// Increment raises the focused draw tab counter.
func (s *Session) Increment() {
	switch s.focus {
	case FocusWhite:
		if s.primary < MaxTokens {
			s.primary++
		}
	case FocusRed:
		if s.secondary < MaxTokens {
			s.secondary++
		}
	case FocusDrawInput:
		if s.drawCount < MaxDrawCount && !s.forced {
			s.drawCount++
		}
	}
}

// Decrement lowers the focused draw tab counter.
//
// Lowering white also drops the most recently used trait. Lowering red
// removes base difficulty first; once only misfortune difficulty is left
// the lowest-indexed active misfortune is cleared as a whole.
func (s *Session) Decrement() {
	switch s.focus {
	case FocusWhite:
		if s.primary == 0 {
			return
		}
		s.primary--
		if n := len(s.usedTraits); n > 0 {
			s.usedTraits = s.usedTraits[:n-1]
		}
	case FocusRed:
		if s.secondary == 0 {
			return
		}
		if s.secondary > s.extraTotal() {
			s.secondary--
			return
		}
		for i, d := range s.extra {
			if d > 0 {
				s.secondary -= d
				s.extra[i] = 0
				return
			}
		}
	case FocusDrawInput:
		if s.drawCount > MinDrawCount && !s.forced {
			s.drawCount--
		}
	}
}

func (s *Session) extraTotal() int {
	total := 0
	for _, d := range s.extra {
		total += d
	}
	return total
}

// ToggleRandom flips confusion for this turn.
func (s *Session) ToggleRandom() { s.random = !s.random }

// ToggleForced flips adrenaline for this turn. Turning it on fixes the draw
// count at four, turning it off returns it to one.
func (s *Session) ToggleForced() {
	s.forced = !s.forced
	if s.forced {
		s.drawCount = MaxDrawCount
	} else {
		s.drawCount = MinDrawCount
	}
}

// ToggleTrait uses or releases node i as a trait. Unset nodes are
// ignored.
func (s *Session) ToggleTrait(i int) {
	if !s.grid.IsSet(i) {
		return
	}
	for pos, t := range s.usedTraits {
		if t == i {
			last := len(s.usedTraits) - 1
			s.usedTraits[pos] = s.usedTraits[last]
			s.usedTraits = s.usedTraits[:last]
			if s.primary > 0 {
				s.primary--
			}
			return
		}
	}
	s.usedTraits = append(s.usedTraits, i)
	s.primary++
}

// ToggleMisfortune activates or deactivates misfortune i. Activating adds
// its difficulty to the red count; deactivating removes the same amount.
// Misfortunes without text are ignored.
func (s *Session) ToggleMisfortune(i int) {
	if i < 0 || i >= len(s.extra) || s.lists.Misfortunes[i] == "" {
		return
	}
	if s.extra[i] != 0 {
		s.secondary -= s.extra[i]
		s.extra[i] = 0
		return
	}
	s.extra[i] = s.lists.Difficulty(i)
	s.secondary += s.extra[i]
}

// RequestDraw opens the draw confirmation when both counts are set.
func (s *Session) RequestDraw() {
	if s.mode != ModeNavigating || s.primary == 0 || s.secondary == 0 {
		return
	}
	s.mode = ModePopupConfirmDraw
}

// PerformFirstDraw builds the pool and draws the first tokens. A draw
// shorter than RiskTarget offers a risk draw; otherwise the turn is logged
// right away.
func (s *Session) PerformFirstDraw(ctx context.Context) {
	s.pool = token.Build(s.primary, s.secondary, s.random, s.rng)
	s.drawn = s.pool.Draw(s.drawCount)
	s.firstDraw = append([]token.Kind(nil), s.drawn...)

	s.log.Debug().
		Int("primary", s.primary).
		Int("secondary", s.secondary).
		Int("draw_count", s.drawCount).
		Bool("random", s.random).
		Int("drawn", len(s.drawn)).
		Msg("first draw")

	if len(s.drawn) < RiskTarget {
		s.mode = ModePopupConfirmRisk
		return
	}

	s.commit(ctx, false, nil)
	s.mode = ModeNavigating
}

// PerformRiskDraw tops the draw up to RiskTarget tokens from the same pool
// and logs the turn as risked.
func (s *Session) PerformRiskDraw(ctx context.Context) {
	var risk []token.Kind
	if remaining := RiskTarget - len(s.drawn); remaining > 0 {
		risk = s.pool.Draw(remaining)
		s.drawn = append(s.drawn, risk...)
	}
	s.commit(ctx, true, risk)
	s.mode = ModeNavigating
}

// CancelDraw declines the risk draw and logs the turn as is.
func (s *Session) CancelDraw(ctx context.Context) {
	s.commit(ctx, false, nil)
	s.mode = ModeNavigating
}

// commit appends the turn to the history and clears the turn modifiers.
// Counts are kept.
func (s *Session) commit(ctx context.Context, risked bool, risk []token.Kind) {
	rec := history.Record{
		ID:          s.newID(),
		Time:        s.now(),
		Primary:     s.primary,
		Secondary:   s.secondary,
		Traits:      append([]int{}, s.usedTraits...),
		Misfortunes: s.extra,
		FirstDraw:   append([]token.Kind{}, s.firstDraw...),
		Risked:      risked,
		RiskDraw:    append([]token.Kind{}, risk...),
		Confused:    s.random,
		Adrenalined: s.forced,
	}

	if err := s.history.Append(ctx, rec); err != nil {
		s.log.Error().Err(err).Msg("draw kept in memory only")
	}

	s.log.Info().
		Str("id", rec.ID).
		Bool("risked", risked).
		Int("successes", rec.Successes()).
		Int("complications", rec.Complications()).
		Msg("draw logged")

	s.random = false
	s.forced = false
	s.usedTraits = nil
	s.extra = [history.MisfortuneSlots]int{}
}

// Reset clears counters, modifiers, the current draw and every selection.
// History is kept.
func (s *Session) Reset() {
	if s.mode != ModeNavigating {
		return
	}

	s.primary = 0
	s.secondary = 0
	s.drawCount = MinDrawCount
	s.drawn = nil
	s.firstDraw = nil
	s.pool = nil
	s.random = false
	s.forced = false
	s.focus = FocusWhite
	s.usedTraits = nil
	s.extra = [history.MisfortuneSlots]int{}
	s.grid.ResetSelection()
	s.cursor.Reset()
	s.field = sheet.FieldNone
}

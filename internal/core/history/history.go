// Package history defines the draw log domain types.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/hexsys/internal/core/token"
)

// MisfortuneSlots is the number of misfortunes that can add difficulty.
const MisfortuneSlots = 4

// Record is one completed draw with the modifiers active at draw time.
type Record struct {
	ID          string               `json:"id"`
	Time        time.Time            `json:"time"`
	Primary     int                  `json:"primary"`
	Secondary   int                  `json:"secondary"`
	Traits      []int                `json:"traits"`
	Misfortunes [MisfortuneSlots]int `json:"misfortunes"`
	FirstDraw   []token.Kind         `json:"first_draw"`
	Risked      bool                 `json:"risked"`
	RiskDraw    []token.Kind         `json:"risk_draw"`
	Confused    bool                 `json:"confused"`
	Adrenalined bool                 `json:"adrenalined"`
}

// Drawn returns every token drawn, first draw then risk draw.
func (r Record) Drawn() []token.Kind {
	out := make([]token.Kind, 0, len(r.FirstDraw)+len(r.RiskDraw))
	out = append(out, r.FirstDraw...)
	return append(out, r.RiskDraw...)
}

// Successes returns the number of primary tokens drawn.
func (r Record) Successes() int { return token.Count(r.Drawn(), token.Primary) }

// Complications returns the number of secondary tokens drawn.
func (r Record) Complications() int { return token.Count(r.Drawn(), token.Secondary) }

// FormatTokens renders ts as a comma separated list, or "-" when empty.
func FormatTokens(ts []token.Kind) string {
	if len(ts) == 0 {
		return "-"
	}
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

// clone returns a deep copy so callers can never mutate a stored record.
func (r Record) clone() Record {
	r.Traits = append([]int(nil), r.Traits...)
	r.FirstDraw = append([]token.Kind(nil), r.FirstDraw...)
	r.RiskDraw = append([]token.Kind(nil), r.RiskDraw...)
	return r
}

// Sink receives every appended record, typically for persistence.
type Sink interface {
	Append(ctx context.Context, r Record) error
}

// History is the append-only log of completed draws.
type History struct {
	records []Record
	sink    Sink
}

// New creates a history that forwards appended records to sink. sink may
// be nil. prior seeds the log with records from an earlier session, oldest
// first; they are not forwarded to the sink.
func New(sink Sink, prior ...Record) *History {
	h := &History{sink: sink}
	for _, r := range prior {
		h.records = append(h.records, r.clone())
	}
	return h
}

// Append adds r to the log and forwards it to the sink. The record is kept
// in memory even when the sink fails.
func (h *History) Append(ctx context.Context, r Record) error {
	h.records = append(h.records, r.clone())
	if h.sink == nil {
		return nil
	}
	if err := h.sink.Append(ctx, r); err != nil {
		return fmt.Errorf("persist draw %s: %w", r.ID, err)
	}
	return nil
}

// Len returns the number of records.
func (h *History) Len() int { return len(h.records) }

// At returns a copy of record i, oldest first.
func (h *History) At(i int) Record { return h.records[i].clone() }

// Records returns copies of all records, oldest first.
func (h *History) Records() []Record {
	out := make([]Record, len(h.records))
	for i, r := range h.records {
		out[i] = r.clone()
	}
	return out
}

// Last returns the most recent record.
func (h *History) Last() (Record, bool) {
	if len(h.records) == 0 {
		return Record{}, false
	}
	return h.records[len(h.records)-1].clone(), true
}

// Package token implements the two-kind token pool and its
// sampling-without-replacement draw.
package token

import (
	"fmt"
	"math/rand"
)

// Kind is the kind of a single drawable token.
type Kind int

const (
	Primary   Kind = iota // white, a success
	Secondary             // red, a complication
)

func (k Kind) String() string {
	switch k {
	case Primary:
		return "White"
	case Secondary:
		return "Red"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Primary, Secondary:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("unknown token kind %d", int(k))
	}
}

// UnmarshalText decodes a kind written by MarshalText.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "White":
		*k = Primary
	case "Red":
		*k = Secondary
	default:
		return fmt.Errorf("unknown token kind %q", b)
	}
	return nil
}

// Rand is the single uniform choice primitive the pool needs.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var _ Rand = (*rand.Rand)(nil)

// Pool is the multiset of tokens available for one draw.
type Pool struct {
	primary   int
	secondary int
	contents  []Kind
	rng       Rand
}

// Build creates a pool holding primary + secondary tokens.
//
// When random is set, every primary slot is independently resolved to
// Primary or Secondary with equal probability. Secondary slots are never
// converted. The conversion is resampled on every call.
func Build(primary, secondary int, random bool, rng Rand) *Pool {
	primary = max(primary, 0)
	secondary = max(secondary, 0)

	contents := make([]Kind, 0, primary+secondary)
	for range primary {
		if random && rng.Intn(2) == 1 {
			contents = append(contents, Secondary)
			continue
		}
		contents = append(contents, Primary)
	}
	for range secondary {
		contents = append(contents, Secondary)
	}

	return &Pool{
		primary:   primary,
		secondary: secondary,
		contents:  contents,
		rng:       rng,
	}
}

// Len returns the number of tokens left in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.contents)
}

// Counts returns the primary and secondary counts the pool was built from.
func (p *Pool) Counts() (primary, secondary int) {
	return p.primary, p.secondary
}

// Contents returns a copy of the remaining tokens.
func (p *Pool) Contents() []Kind {
	if p == nil {
		return nil
	}
	out := make([]Kind, len(p.contents))
	copy(out, p.contents)
	return out
}

// Draw removes min(n, Len()) uniformly chosen tokens and returns them in
// draw order. Asking for more than the pool holds is not an error.
func (p *Pool) Draw(n int) []Kind {
	if p == nil || n <= 0 || len(p.contents) == 0 {
		return []Kind{}
	}

	n = min(n, len(p.contents))
	drawn := make([]Kind, 0, n)
	for range n {
		picked := p.contents[p.rng.Intn(len(p.contents))]
		p.remove(picked)
		drawn = append(drawn, picked)
	}
	return drawn
}

// remove deletes the first element matching k.
func (p *Pool) remove(k Kind) {
	for i, c := range p.contents {
		if c == k {
			p.contents = append(p.contents[:i], p.contents[i+1:]...)
			return
		}
	}
}

// Count returns how many tokens of kind k are in ts.
func Count(ts []Kind, k Kind) int {
	n := 0
	for _, t := range ts {
		if t == k {
			n++
		}
	}
	return n
}

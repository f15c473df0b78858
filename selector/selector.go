// Package selector picks one move from a list of generated plays
// according to a configured strategy. The strategy set is closed; any
// other policy belongs to the caller, working off the full play list.
package selector

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
)

// StrategyKind names one of the supported selection policies.
type StrategyKind string

const (
	// Strongest picks the best play by the canonical move ordering.
	Strongest StrategyKind = "strongest"
	// Restricted is Strongest, but only over plays whose formed words
	// all appear in a restriction sub-lexicon.
	Restricted StrategyKind = "restricted"
	// RestrictedWeighted applies the Restricted filter and then picks
	// randomly, weighting each play by score raised to an exponent.
	RestrictedWeighted StrategyKind = "restricted_weighted"
)

// A Strategy configures a Selector. Lexicon names the restriction
// sub-lexicon for the restricted kinds; Exponent is the weighting
// exponent for RestrictedWeighted (zero means 1.0).
type Strategy struct {
	Kind     StrategyKind `yaml:"kind"`
	Lexicon  string       `yaml:"lexicon,omitempty"`
	Exponent float64      `yaml:"exponent,omitempty"`
}

// A Selector implements one selection strategy against a board.
type Selector struct {
	strategy Strategy
	subLex   *dawg.SimpleDawg
	board    *board.GameBoard
	rng      *frand.RNG
}

// An Option modifies a Selector at construction time.
type Option func(*Selector)

// WithRNG injects the random source used by RestrictedWeighted, so
// selection can be made deterministic in tests.
func WithRNG(rng *frand.RNG) Option {
	return func(s *Selector) { s.rng = rng }
}

// WithSubLexicon provides the restriction sub-lexicon for the
// restricted strategy kinds.
func WithSubLexicon(d *dawg.SimpleDawg) Option {
	return func(s *Selector) { s.subLex = d }
}

// NewSelector builds a Selector for the given strategy. Unknown
// strategy kinds and missing restriction lexicons are rejected here,
// not at selection time.
func NewSelector(cfg Strategy, b *board.GameBoard, opts ...Option) (*Selector, error) {
	s := &Selector{strategy: cfg, board: b}
	for _, o := range opts {
		o(s)
	}
	switch cfg.Kind {
	case Strongest:
	case Restricted, RestrictedWeighted:
		if s.subLex == nil {
			return nil, fmt.Errorf("strategy %q requires a restriction lexicon (%q)",
				cfg.Kind, cfg.Lexicon)
		}
	default:
		return nil, fmt.Errorf("unknown strategy kind %q", cfg.Kind)
	}
	if s.rng == nil {
		s.rng = frand.New()
	}
	if s.strategy.Exponent == 0 {
		s.strategy.Exponent = 1.0
	}
	return s, nil
}

// Kind returns the selector's strategy kind.
func (s *Selector) Kind() StrategyKind {
	return s.strategy.Kind
}

// Select picks a move from the generated plays. The second return is
// false when no play qualifies; that is not an error, and the caller
// decides whether to pass or exchange instead.
func (s *Selector) Select(plays []*move.Move) (*move.Move, bool) {
	candidates := lo.Filter(plays, func(m *move.Move, _ int) bool {
		return m.Action() == move.MoveTypePlay
	})
	if s.strategy.Kind != Strongest {
		candidates = lo.Filter(candidates, func(m *move.Move, _ int) bool {
			return s.allWordsAllowed(m)
		})
	}
	if len(candidates) == 0 {
		return nil, false
	}
	if s.strategy.Kind == RestrictedWeighted {
		return s.weightedPick(candidates), true
	}
	best := candidates[0]
	for _, m := range candidates[1:] {
		if m.Compare(best) < 0 {
			best = m
		}
	}
	return best, true
}

// allWordsAllowed reports whether every word the play would form (the
// main word and all crossers) is in the restriction sub-lexicon.
func (s *Selector) allWordsAllowed(m *move.Move) bool {
	words, err := s.board.FormedWords(m)
	if err != nil {
		return false
	}
	for _, w := range words {
		if !s.subLex.HasWord(w) {
			return false
		}
	}
	return true
}

// weightedPick draws one play with probability proportional to
// score^exponent. If every weight is zero it falls back to the play
// that is first in the canonical ordering.
func (s *Selector) weightedPick(candidates []*move.Move) *move.Move {
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, m := range candidates {
		if m.Score() > 0 {
			weights[i] = math.Pow(float64(m.Score()), s.strategy.Exponent)
		}
		total += weights[i]
	}
	if total == 0 {
		best := candidates[0]
		for _, m := range candidates[1:] {
			if m.Compare(best) < 0 {
				best = m
			}
		}
		return best
	}
	r := s.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}

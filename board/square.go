package board

import (
	"fmt"

	"github.com/domino14/crosshatch/tilemapping"
)

// A BonusSquare is a bonus square (duh)
type BonusSquare rune

const (
	// Bonus3WS is a triple word score
	Bonus3WS BonusSquare = '='
	// Bonus3LS is a triple letter score
	Bonus3LS BonusSquare = '"'
	// Bonus2LS is a double letter score
	Bonus2LS BonusSquare = '\''
	// Bonus2WS is a double word score
	Bonus2WS BonusSquare = '-'
	// NoBonus is a plain square.
	NoBonus BonusSquare = ' '
)

// WordMultiplier returns the word multiplier of this bonus square.
func (b BonusSquare) WordMultiplier() int {
	switch b {
	case Bonus3WS:
		return 3
	case Bonus2WS:
		return 2
	}
	return 1
}

// LetterMultiplier returns the letter multiplier of this bonus square.
func (b BonusSquare) LetterMultiplier() int {
	switch b {
	case Bonus3LS:
		return 3
	case Bonus2LS:
		return 2
	}
	return 1
}

// A Square is a single square in a game board. It contains the bonus
// markings, if any, a letter, if any (0 if empty), and the cross-sets,
// cross-scores, and anchor flags used by move generation. Once a square
// is occupied it stays occupied for the rest of the game.
type Square struct {
	letter tilemapping.MachineLetter
	bonus  BonusSquare

	hcrossSet CrossSet
	vcrossSet CrossSet
	// the scores of the tiles on either side of this square.
	hcrossScore int
	vcrossScore int
	hAnchor     bool
	vAnchor     bool
}

func (s Square) String() string {
	return fmt.Sprintf("<(%v) (%s)>", s.letter, string(s.bonus))
}

func (s *Square) Letter() tilemapping.MachineLetter {
	return s.letter
}

func (s *Square) Bonus() BonusSquare {
	return s.bonus
}

func (s Square) DisplayString(alph *tilemapping.TileMapping) string {
	if s.letter == 0 {
		if s.bonus != NoBonus {
			return string(s.bonus)
		}
		return "."
	}
	return string(alph.Letter(s.letter))
}

func (s *Square) setCrossSet(cs CrossSet, dir BoardDirection) {
	if dir == HorizontalDirection {
		s.hcrossSet = cs
	} else if dir == VerticalDirection {
		s.vcrossSet = cs
	}
}

func (s *Square) setCrossScore(score int, dir BoardDirection) {
	if dir == HorizontalDirection {
		s.hcrossScore = score
	} else if dir == VerticalDirection {
		s.vcrossScore = score
	}
}

func (s *Square) getCrossSet(dir BoardDirection) *CrossSet {
	if dir == HorizontalDirection {
		return &s.hcrossSet
	}
	return &s.vcrossSet
}

func (s *Square) getCrossScore(dir BoardDirection) int {
	if dir == HorizontalDirection {
		return s.hcrossScore
	}
	return s.vcrossScore
}

func (s *Square) setAnchor(dir BoardDirection) {
	if dir == HorizontalDirection {
		s.hAnchor = true
	} else if dir == VerticalDirection {
		s.vAnchor = true
	}
}

func (s *Square) resetAnchors() {
	s.hAnchor = false
	s.vAnchor = false
}

func (s *Square) anchor(dir BoardDirection) bool {
	if dir == HorizontalDirection {
		return s.hAnchor
	}
	return s.vAnchor
}

func (s *Square) IsEmpty() bool {
	return s.letter == 0
}

func (s *Square) equals(s2 *Square) bool {
	return s.bonus == s2.bonus &&
		s.letter == s2.letter &&
		s.hcrossSet == s2.hcrossSet &&
		s.vcrossSet == s2.vcrossSet &&
		s.hcrossScore == s2.hcrossScore &&
		s.vcrossScore == s2.vcrossScore &&
		s.hAnchor == s2.hAnchor &&
		s.vAnchor == s2.vAnchor
}

func (s *Square) copy() *Square {
	c := &Square{}
	*c = *s
	return c
}

func (s *Square) copyFrom(s2 *Square) {
	*s = *s2
}

package board

import (
	"fmt"
	"strings"

	"github.com/domino14/crosshatch/tilemapping"
)

// ToDisplayText returns a human-readable plaintext representation of
// the board, with row numbers and column letters around the edge.
func (g *GameBoard) ToDisplayText(alph *tilemapping.TileMapping) string {
	var str string
	n := g.Dim()
	row := "   "
	for i := 0; i < n; i++ {
		row = row + fmt.Sprintf("%c", 'A'+i) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	for i := 0; i < n; i++ {
		row := fmt.Sprintf("%2d|", i+1)
		for j := 0; j < n; j++ {
			row = row + g.squares[i][j].DisplayString(alph) + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", n*2) + "\n"
	return "\n" + str
}

// SetRow sets a single row of the board from a string, one rune per
// column, spaces meaning empty squares. Meant for setting up test and
// analysis positions; it does not touch cross-sets or anchors.
func (g *GameBoard) SetRow(rowNum int, letters string, alph *tilemapping.TileMapping) ([]tilemapping.MachineLetter, error) {
	for idx := 0; idx < g.Dim(); idx++ {
		g.SetLetter(rowNum, idx, 0)
	}
	lettersPlayed := []tilemapping.MachineLetter{}
	for idx, r := range letters {
		if r == ' ' {
			continue
		}
		letter, err := alph.Val(r)
		if err != nil {
			return nil, err
		}
		g.SetLetter(rowNum, idx, letter)
		lettersPlayed = append(lettersPlayed, letter)
	}
	return lettersPlayed, nil
}

// Equals checks the boards for equality. Two boards are equal if all
// the squares are equal. This includes anchors, letters, and cross-sets.
func (g *GameBoard) Equals(g2 *GameBoard) bool {
	if g.Dim() != g2.Dim() {
		return false
	}
	if g.tilesPlayed != g2.tilesPlayed {
		return false
	}
	if g.transposed != g2.transposed {
		return false
	}
	for row := 0; row < g.Dim(); row++ {
		for col := 0; col < g.Dim(); col++ {
			if !g.GetSquare(row, col).equals(g2.GetSquare(row, col)) {
				return false
			}
		}
	}
	return true
}

// Copy returns a deep copy of this board.
func (g *GameBoard) Copy() *GameBoard {
	newg := &GameBoard{
		transposed:  g.transposed,
		tilesPlayed: g.tilesPlayed,
	}
	newg.squares = make([][]*Square, len(g.squares))
	for ridx, r := range g.squares {
		newg.squares[ridx] = make([]*Square, len(r))
		for cidx, c := range r {
			newg.squares[ridx][cidx] = c.copy()
		}
	}
	return newg
}

// CopyFrom copies the squares and other info from another board into
// this one, in place.
func (g *GameBoard) CopyFrom(other *GameBoard) {
	for ridx, r := range other.squares {
		for cidx, sq := range r {
			g.squares[ridx][cidx].copyFrom(sq)
		}
	}
	g.transposed = other.transposed
	g.tilesPlayed = other.tilesPlayed
}

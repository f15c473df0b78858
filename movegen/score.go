package movegen

import (
	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// BingoBonus is the bonus for playing a full rack in one move.
const BingoBonus = 50

// scoreStrip scores the word currently on the strip between leftstrip
// and rightstrip, in the board's current orientation. Fresh tiles get
// letter and word multipliers and pay into any cross word; tiles
// already on the board count at face value only. Blanks are worth zero
// but multipliers on their squares still apply to the words they are
// part of.
func (gen *Generator) scoreStrip(leftstrip, rightstrip int) int {
	b, ld := gen.board, gen.letDist
	row := gen.curRowIdx

	mainScore := 0
	wordMultiplier := 1
	crossTotal := 0
	fresh := 0
	for col := leftstrip; col <= rightstrip; col++ {
		ml := gen.strip[col]
		if ml == 0 {
			mainScore += ld.Score(b.GetLetter(row, col))
			continue
		}
		bonus := b.GetBonus(row, col)
		ls := ld.Score(ml) * bonus.LetterMultiplier()
		mainScore += ls
		wordMultiplier *= bonus.WordMultiplier()
		fresh++
		if b.GetCrossSet(row, col, gen.crossDir) != board.TrivialCrossSet {
			crossTotal += (b.GetCrossScore(row, col, gen.crossDir) + ls) *
				bonus.WordMultiplier()
		}
	}
	score := mainScore*wordMultiplier + crossTotal
	if fresh == tilemapping.RackSize {
		score += BingoBonus
	}
	return score
}

// ScorePlay computes the score of an unplayed move against the current
// board. It needs the board in its natural orientation with cross-sets
// and cross-scores up to date, and a move whose tile strip covers the
// whole main word. The session layer uses it to verify scores on
// externally supplied plays.
func ScorePlay(b *board.GameBoard, ld *tilemapping.LetterDistribution,
	m *move.Move) int {

	row, col, vertical := m.CoordsAndVertical()
	ri, ci := 0, 1
	crossDir := board.VerticalDirection
	if vertical {
		ri, ci = 1, 0
		crossDir = board.HorizontalDirection
	}

	mainScore := 0
	wordMultiplier := 1
	crossTotal := 0
	fresh := 0
	for idx, ml := range m.Tiles() {
		r, c := row+ri*idx, col+ci*idx
		if ml == 0 {
			mainScore += ld.Score(b.GetLetter(r, c))
			continue
		}
		bonus := b.GetBonus(r, c)
		ls := ld.Score(ml) * bonus.LetterMultiplier()
		mainScore += ls
		wordMultiplier *= bonus.WordMultiplier()
		fresh++
		if b.GetCrossSet(r, c, crossDir) != board.TrivialCrossSet {
			crossTotal += (b.GetCrossScore(r, c, crossDir) + ls) *
				bonus.WordMultiplier()
		}
	}
	score := mainScore*wordMultiplier + crossTotal
	if fresh == tilemapping.RackSize {
		score += BingoBonus
	}
	return score
}

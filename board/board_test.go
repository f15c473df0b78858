package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

func TestBoardLayout(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	is.Equal(b.Dim(), 15)

	is.Equal(b.GetBonus(0, 0), Bonus3WS)
	is.Equal(b.GetBonus(0, 7), Bonus3WS)
	is.Equal(b.GetBonus(14, 14), Bonus3WS)
	is.Equal(b.GetBonus(0, 3), Bonus2LS)
	is.Equal(b.GetBonus(1, 5), Bonus3LS)
	is.Equal(b.GetBonus(1, 1), Bonus2WS)
	is.Equal(b.GetBonus(7, 7), Bonus2WS)
	is.Equal(b.GetBonus(0, 1), NoBonus)

	is.Equal(Bonus3WS.WordMultiplier(), 3)
	is.Equal(Bonus2WS.WordMultiplier(), 2)
	is.Equal(Bonus3LS.LetterMultiplier(), 3)
	is.Equal(Bonus2LS.LetterMultiplier(), 2)
	is.Equal(NoBonus.WordMultiplier(), 1)
	is.Equal(NoBonus.LetterMultiplier(), 1)
}

func TestEmptyBoardAnchors(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	is.True(b.IsEmpty())
	// The opening move generates from the center square, in one
	// direction only.
	is.True(b.IsAnchor(7, 7, HorizontalDirection))
	is.True(!b.IsAnchor(7, 7, VerticalDirection))
	for r := 0; r < 15; r++ {
		for c := 0; c < 15; c++ {
			if r == 7 && c == 7 {
				continue
			}
			if b.IsAnchor(r, c, HorizontalDirection) || b.IsAnchor(r, c, VerticalDirection) {
				t.Errorf("unexpected anchor at %d, %d", r, c)
			}
		}
	}
}

func TestAnchorsAfterPlacement(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	alph := tilemapping.EnglishAlphabet()
	_, err := b.SetRow(7, "   HELLO", alph)
	is.NoErr(err)
	b.UpdateAllAnchors()

	// Empty squares orthogonally adjacent to tiles are anchors in both
	// directions.
	is.True(b.IsAnchor(7, 2, HorizontalDirection))
	is.True(b.IsAnchor(7, 2, VerticalDirection))
	is.True(b.IsAnchor(7, 8, HorizontalDirection))
	is.True(b.IsAnchor(6, 5, VerticalDirection))
	is.True(b.IsAnchor(8, 3, HorizontalDirection))
	// Occupied squares are not anchors.
	is.True(!b.IsAnchor(7, 5, HorizontalDirection))
	// Diagonal adjacency does not make an anchor.
	is.True(!b.IsAnchor(6, 2, HorizontalDirection))
	is.True(!b.IsAnchor(8, 8, VerticalDirection))
}

func TestSetLetterAccounting(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	is.Equal(b.TilesPlayed(), 0)
	b.SetLetter(3, 4, 5)
	is.Equal(b.TilesPlayed(), 1)
	is.True(b.HasLetter(3, 4))
	is.Equal(b.GetLetter(3, 4), tilemapping.MachineLetter(5))
	b.SetLetter(3, 4, 0)
	is.Equal(b.TilesPlayed(), 0)
	is.True(!b.HasLetter(3, 4))

	b.SetLetter(3, 4, 5)
	b.Clear()
	is.True(b.IsEmpty())
	is.Equal(b.TilesPlayed(), 0)
}

func TestTranspose(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	b.SetLetter(2, 5, 9)
	is.True(!b.IsTransposed())
	b.Transpose()
	is.True(b.IsTransposed())
	is.Equal(b.GetLetter(5, 2), tilemapping.MachineLetter(9))
	is.True(!b.HasLetter(2, 5))
	b.Transpose()
	is.Equal(b.GetLetter(2, 5), tilemapping.MachineLetter(9))
}

func TestWordEdgeAndTraverse(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	ld, err := tilemapping.EnglishLetterDistribution()
	is.NoErr(err)
	_, err = b.SetRow(7, "   HELLO", ld.TileMapping())
	is.NoErr(err)

	is.Equal(b.WordEdge(7, 5, LeftDirection), 3)
	is.Equal(b.WordEdge(7, 5, RightDirection), 7)
	is.Equal(b.WordEdge(7, 3, LeftDirection), 3)
	// HELLO scores 4 + 1 + 1 + 1 + 1.
	is.Equal(b.TraverseBackwardsForScore(7, 7, ld), 8)
	is.Equal(b.TraverseBackwardsForScore(7, 4, ld), 5)
	is.True(b.LeftAndRightEmpty(7, 9))
	is.True(!b.LeftAndRightEmpty(7, 8))
}

func TestPlayMove(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	alph := tilemapping.EnglishAlphabet()
	m, err := move.NewScoringMoveSimple(24, "8D", "HELLO", "", alph)
	is.NoErr(err)
	is.NoErr(b.PlayMove(m))
	is.Equal(b.TilesPlayed(), 5)
	is.Equal(b.GetLetter(7, 3), tilemapping.MachineLetter(8))
	is.True(b.IsAnchor(7, 8, HorizontalDirection))
	is.True(!b.IsAnchor(7, 7, HorizontalDirection))

	// A vertical play through the L.
	m2, err := move.NewScoringMoveSimple(5, "F7", "A.E", "", alph)
	is.NoErr(err)
	is.NoErr(b.PlayMove(m2))
	is.Equal(b.GetLetter(6, 5), tilemapping.MachineLetter(1))
	is.Equal(b.GetLetter(8, 5), tilemapping.MachineLetter(5))
	is.Equal(b.TilesPlayed(), 7)
}

func TestPlayMoveErrors(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	alph := tilemapping.EnglishAlphabet()
	m, err := move.NewScoringMoveSimple(24, "8D", "HELLO", "", alph)
	is.NoErr(err)
	is.NoErr(b.PlayMove(m))

	// Placing over an occupied square.
	m2, err := move.NewScoringMoveSimple(5, "8D", "XI", "", alph)
	is.NoErr(err)
	err = b.PlayMove(m2)
	var ipe *IllegalPlacementError
	is.True(errors.As(err, &ipe))
	is.Equal(ipe.Row, 7)
	is.Equal(ipe.Col, 3)

	// A play-through marker over an empty square.
	m3, err := move.NewScoringMoveSimple(5, "8J", ".X", "", alph)
	is.NoErr(err)
	is.True(b.PlayMove(m3) != nil)

	// Running off the board.
	m4, err := move.NewScoringMoveSimple(5, "8N", "WORDS", "", alph)
	is.NoErr(err)
	is.True(b.PlayMove(m4) != nil)

	// A failed placement leaves the board untouched.
	is.Equal(b.TilesPlayed(), 5)
}

func TestFormedWords(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	ld, err := tilemapping.EnglishLetterDistribution()
	is.NoErr(err)
	alph := ld.TileMapping()
	_, err = b.SetRow(7, "   HELLO", alph)
	is.NoErr(err)

	// AS played vertically, its S hooking HELLO into HELLOS.
	m, err := move.NewScoringMoveSimple(0, "I7", "AS", "", alph)
	is.NoErr(err)
	words, err := b.FormedWords(m)
	is.NoErr(err)
	is.Equal(len(words), 2)
	is.Equal(words[0].UserVisible(alph), "AS")
	is.Equal(words[1].UserVisible(alph), "HELLOS")

	// A single tile extending the main word; the extension is picked up
	// even though the strip holds just the S.
	m2, err := move.NewScoringMoveSimple(0, "8I", "S", "", alph)
	is.NoErr(err)
	words, err = b.FormedWords(m2)
	is.NoErr(err)
	is.Equal(len(words), 1)
	is.Equal(words[0].UserVisible(alph), "HELLOS")
}

func TestEqualsAndCopy(t *testing.T) {
	is := is.New(t)
	b := MakeBoard(CrosshatchGameBoard)
	alph := tilemapping.EnglishAlphabet()
	_, err := b.SetRow(4, "  CAT", alph)
	is.NoErr(err)
	b.UpdateAllAnchors()

	c := b.Copy()
	is.True(b.Equals(c))
	c.SetLetter(10, 10, 1)
	is.True(!b.Equals(c))
	c.CopyFrom(b)
	is.True(b.Equals(c))
}

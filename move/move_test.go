package move

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crosshatch/tilemapping"
)

type coordTestStruct struct {
	row      int
	col      int
	vertical bool
	output   string
}

var coordTests = []coordTestStruct{
	{0, 0, false, "1A"},
	{0, 0, true, "A1"},
	{14, 14, false, "15O"},
	{14, 14, true, "O15"},
	{9, 8, false, "10I"},
	{9, 8, true, "I10"},
	{1, 7, false, "2H"},
	{1, 7, true, "H2"},
}

func TestToBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		calc := ToBoardGameCoords(tc.row, tc.col, tc.vertical)
		if calc != tc.output {
			t.Errorf("For row=%v col=%v vertical=%v got %v, expected %v",
				tc.row, tc.col, tc.vertical, calc, tc.output)
		}
	}
}

func TestFromBoardGameCoords(t *testing.T) {
	for _, tc := range coordTests {
		row, col, vertical := FromBoardGameCoords(tc.output)
		if row != tc.row || col != tc.col || vertical != tc.vertical {
			t.Errorf("For coord %v expected (%v, %v, %v) got (%v, %v, %v)",
				tc.output, tc.row, tc.col, tc.vertical, row, col, vertical)
		}
	}
}

func TestScoringMoveSimple(t *testing.T) {
	is := is.New(t)
	alph := tilemapping.EnglishAlphabet()
	m, err := NewScoringMoveSimple(35, "A7", "HELLO", "QI", alph)
	is.NoErr(err)
	r, c, v := m.CoordsAndVertical()
	is.Equal(r, 6)
	is.Equal(c, 0)
	is.True(v)
	is.Equal(m.Score(), 35)
	is.Equal(m.TilesPlayed(), 5)
	is.True(!m.Bingo())
	is.Equal(m.Action(), MoveTypePlay)
}

func TestPlayedThroughTilesAndBingo(t *testing.T) {
	is := is.New(t)
	alph := tilemapping.EnglishAlphabet()
	m, err := NewScoringMoveSimple(86, "8D", "FRIENDS.", "", alph)
	is.NoErr(err)
	is.Equal(m.TilesPlayed(), 7)
	is.True(m.Bingo())

	m, err = NewScoringMoveSimple(22, "8D", "F.IEND", "", alph)
	is.NoErr(err)
	is.Equal(m.TilesPlayed(), 5)
	is.True(!m.Bingo())
}

func TestCompareOrdering(t *testing.T) {
	is := is.New(t)
	alph := tilemapping.EnglishAlphabet()
	mk := func(score int, coords, word string) *Move {
		m, err := NewScoringMoveSimple(score, coords, word, "", alph)
		is.NoErr(err)
		return m
	}
	// Higher score sorts first.
	is.True(mk(30, "8H", "NO").Compare(mk(20, "1A", "NO")) < 0)
	// Same score: lower row first.
	is.True(mk(20, "3A", "NO").Compare(mk(20, "8A", "NO")) < 0)
	// Same square: horizontal before vertical.
	is.True(mk(20, "8H", "NO").Compare(mk(20, "H8", "NO")) < 0)
	// Same square and orientation: lexicographically smaller strip first.
	is.True(mk(20, "8H", "AN").Compare(mk(20, "8H", "NA")) < 0)
	// Identical plays compare equal.
	is.Equal(mk(20, "8H", "AN").Compare(mk(20, "8H", "AN")), 0)
}

func TestUniqueSingleTileKey(t *testing.T) {
	is := is.New(t)
	alph := tilemapping.EnglishAlphabet()
	// The same Q dropped on the same square, generated in either
	// direction, keys identically.
	m1, err := NewScoringMoveSimple(21, "8H", ".Q", "", alph)
	is.NoErr(err)
	m2, err := NewScoringMoveSimple(21, "I8", "Q.", "", alph)
	is.NoErr(err)
	is.Equal(m1.UniqueSingleTileKey(), m2.UniqueSingleTileKey())

	// A different square keys differently.
	m3, err := NewScoringMoveSimple(21, "8H", "Q.", "", alph)
	is.NoErr(err)
	is.True(m1.UniqueSingleTileKey() != m3.UniqueSingleTileKey())
}

package movegen

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/crosses"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// setupGen builds a generator over a tiny lexicon and a board position
// described one row at a time, with cross-sets and anchors current.
func setupGen(t *testing.T, words []string, rows map[int]string) (
	*Generator, *board.GameBoard, *dawg.SimpleDawg, *tilemapping.LetterDistribution) {
	t.Helper()

	ld, err := tilemapping.EnglishLetterDistribution()
	if err != nil {
		t.Fatal(err)
	}
	d, err := dawg.BuildFromWords(ld.TileMapping(), "test", words)
	if err != nil {
		t.Fatal(err)
	}
	b := board.MakeBoard(board.CrosshatchGameBoard)
	for rowNum, letters := range rows {
		if _, err := b.SetRow(rowNum, letters, ld.TileMapping()); err != nil {
			t.Fatal(err)
		}
	}
	b.UpdateAllAnchors()
	crosses.GenAllCrossSets(b, d, ld)
	gen := NewGenerator(d, b, ld)
	gen.SetMaxWorkers(4)
	return gen, b, d, ld
}

func rack(t *testing.T, letters string) *tilemapping.Rack {
	t.Helper()
	return tilemapping.RackFromString(letters, tilemapping.EnglishAlphabet())
}

func TestGenAllOpeningBoard(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"AB", "BA"}, nil)

	plays := gen.GenAll(rack(t, "AB"), false)
	is.Equal(len(plays), 4)
	for _, p := range plays {
		is.Equal(p.Action(), move.MoveTypePlay)
		r, c, vertical := p.CoordsAndVertical()
		is.True(!vertical)
		is.Equal(r, 7)
		// Every opening play covers the center square.
		is.True(c <= 7 && c+len(p.Tiles()) > 7)
		// A1 + B3, doubled on the center square.
		is.Equal(p.Score(), 8)
	}
	// Canonical order: same score, so position then tiles break the tie.
	is.Equal(plays[0].BoardCoords(), "8G")
	is.Equal(plays[0].Tiles().UserVisible(gen.dawg.TileMapping()), "AB")
}

func TestGenAllBingo(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"ABCDEFG"}, nil)

	plays := gen.GenAll(rack(t, "ABCDEFG"), false)
	// One placement per starting column that still covers the center.
	is.Equal(len(plays), 7)
	for _, p := range plays {
		is.True(p.Bingo())
		is.Equal(p.TilesPlayed(), 7)
	}
	// 8F puts the G on the double letter at column L:
	// (28 + 7) * 2 + 50.
	is.Equal(plays[0].Score(), 120)
	is.Equal(plays[0].BoardCoords(), "8F")
}

func TestGenAllBlanksScoreZero(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"AB", "BA"}, nil)

	plays := gen.GenAll(rack(t, "A?"), false)
	is.Equal(len(plays), 4)
	alph := gen.dawg.TileMapping()
	for _, p := range plays {
		// The blank contributes nothing; the A doubles to 2.
		is.Equal(p.Score(), 2)
		uv := p.Tiles().UserVisible(alph)
		is.True(uv == "Ab" || uv == "bA")
	}
}

func TestGenAllHooksAndDedupe(t *testing.T) {
	is := is.New(t)
	gen, b, _, ld := setupGen(t, []string{"CAT", "CATS", "TS"},
		map[int]string{
			6: "      T",
			7: "   CAT",
		})

	plays := gen.GenAll(rack(t, "S"), false)
	// The S on the square right of CAT makes CATS and TS at once; the
	// two generation passes both find it and the duplicate is dropped.
	// The other two spots make TS alone.
	is.Equal(len(plays), 3)

	is.Equal(plays[0].Score(), 8)
	r, c, vertical := plays[0].CoordsAndVertical()
	is.Equal(r, 6)
	is.Equal(c, 6)
	is.True(vertical)

	is.Equal(plays[1].Score(), 2)
	is.Equal(plays[2].Score(), 2)

	// Every generated play's score survives independent rescoring.
	for _, p := range plays {
		is.Equal(ScorePlay(b, ld, p), p.Score())
	}
}

func TestGenAllRespectsCrossSets(t *testing.T) {
	is := is.New(t)
	// NET on the board; a second row tile constrains what may land
	// between them.
	gen, _, _, _ := setupGen(t, []string{"NET", "NIT", "NOT", "NUT", "TO"},
		map[int]string{7: "   NET"})

	plays := gen.GenAll(rack(t, "O"), false)
	// The only legal single-tile hook is O under the T (TO); NETO is
	// not a word, and nothing else touches.
	is.Equal(len(plays), 1)
	is.Equal(plays[0].TilesPlayed(), 1)
	r, c, vertical := plays[0].CoordsAndVertical()
	is.True(vertical)
	is.Equal(r, 7)
	is.Equal(c, 5)
}

func TestGenAllPhonyPrefixIsSafe(t *testing.T) {
	is := is.New(t)
	// TC is parked on the board but is not a prefix of anything; the
	// generator must skip it without panicking.
	gen, _, _, _ := setupGen(t, []string{"CAT", "CATS", "TS"},
		map[int]string{7: "  TC"})

	plays := gen.GenAll(rack(t, "A"), false)
	is.Equal(len(plays), 0)
}

func TestGenAllDeterministic(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"AB", "BA", "ABBA", "BAA"}, nil)

	first := append([]*move.Move{}, gen.GenAll(rack(t, "AABB?"), false)...)
	second := gen.GenAll(rack(t, "AABB?"), false)
	is.Equal(len(first), len(second))
	for i := range first {
		is.Equal(first[i].Compare(second[i]), 0)
	}
}

func TestTopPlayRecorder(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"ABCDEFG"}, nil)
	gen.SetPlayRecorder(TopPlayRecorder)

	plays := gen.GenAll(rack(t, "ABCDEFG"), false)
	is.Equal(len(plays), 1)
	is.Equal(plays[0].Score(), 120)
	is.Equal(plays[0].BoardCoords(), "8F")
}

func TestGenerateExchangeMoves(t *testing.T) {
	is := is.New(t)
	// A lexicon the rack cannot play into, so everything generated is
	// an exchange.
	gen, _, _, _ := setupGen(t, []string{"ZZ"}, nil)

	plays := gen.GenAll(rack(t, "AABC"), true)
	// Non-empty sub-multisets of AABC: 3 * 2 * 2 - 1.
	is.Equal(len(plays), 11)
	seen := map[string]bool{}
	alph := gen.dawg.TileMapping()
	for _, p := range plays {
		is.Equal(p.Action(), move.MoveTypeExchange)
		key := p.Tiles().UserVisible(alph)
		is.True(!seen[key])
		seen[key] = true
	}
	is.True(seen["AABC"])
	is.True(seen["A"])
}

func TestGenAllLeavesRackIntact(t *testing.T) {
	is := is.New(t)
	gen, _, _, _ := setupGen(t, []string{"AB", "BA"}, nil)
	r := rack(t, "AB")
	gen.GenAll(r, false)
	is.Equal(r.NumTiles(), uint8(2))
	is.Equal(r.TilesOn().UserVisible(gen.dawg.TileMapping()), "AB")
}

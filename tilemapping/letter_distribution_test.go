package tilemapping

import (
	"testing"

	"github.com/matryer/is"
)

func TestLetterDistributionScores(t *testing.T) {
	is := is.New(t)
	ld, err := EnglishLetterDistribution()
	is.NoErr(err)

	is.Equal(ld.Score(0), 0)
	// A designated blank scores zero no matter its letter.
	is.Equal(ld.Score(MachineLetter(1).Blank()), 0)
	is.Equal(ld.Score(1), 1)   // A
	is.Equal(ld.Score(8), 4)   // H
	is.Equal(ld.Score(17), 10) // Q
	is.Equal(ld.Score(25), 4)  // Y
	is.Equal(ld.Score(26), 10) // Z
}

func TestLetterDistributionWordScore(t *testing.T) {
	is := is.New(t)
	ld, err := EnglishLetterDistribution()
	is.NoErr(err)

	mw, err := ToMachineWord("CoOKIE", ld.TileMapping())
	is.NoErr(err)
	is.Equal(ld.WordScore(mw), 11)
}

func TestLetterDistributionCounts(t *testing.T) {
	is := is.New(t)
	ld, err := EnglishLetterDistribution()
	is.NoErr(err)

	is.Equal(ld.NumTotalTiles(), 100)
	dist := ld.Distribution()
	is.Equal(dist[0], uint8(2))  // blanks
	is.Equal(dist[5], uint8(12)) // E
	is.Equal(dist[26], uint8(1)) // Z
}

func TestNamedLetterDistributionFallsBackToEmbedded(t *testing.T) {
	is := is.New(t)
	ld, err := NamedLetterDistribution(t.TempDir(), "english")
	is.NoErr(err)
	is.Equal(ld.NumTotalTiles(), 100)
}

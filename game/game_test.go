package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crosshatch/config"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

var sessionWords = []string{
	"HELLO", "HELLOS", "AS", "CAT", "CATS", "AB", "BA",
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	ld, err := tilemapping.EnglishLetterDistribution()
	if err != nil {
		t.Fatal(err)
	}
	d, err := dawg.BuildFromWords(ld.TileMapping(), "test", sessionWords)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSession(&config.Config{MovegenWorkers: 2}, d, ld)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func simpleMove(t *testing.T, s *Session, score int, coords, word string) *move.Move {
	t.Helper()
	m, err := move.NewScoringMoveSimple(score, coords, word, "",
		tilemapping.EnglishAlphabet())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNewSession(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.Equal(s.Rack().NumTiles(), uint8(7))
	is.Equal(s.BagCount(), 93)
	is.True(s.Board().IsEmpty())
	is.Equal(s.Score(), 0)
	is.Equal(len(s.History()), 0)
}

func TestSetRack(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("QWERTY"))
	is.Equal(s.Rack().String(), "EQRTWY")
	is.Equal(s.BagCount(), 94)

	// Only one Q in the distribution.
	err := s.SetRack("QQW")
	var ire *InvalidRackError
	is.True(errors.As(err, &ire))
	// The failed swap left everything as it was.
	is.Equal(s.Rack().String(), "EQRTWY")
	is.Equal(s.BagCount(), 94)

	is.True(s.SetRack("AEIOUAEI") != nil) // eight tiles
}

func TestValidateRack(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("QWERTY"))
	// The Q is on our rack; a second one does not exist.
	is.NoErr(s.ValidateRack("QA"))
	is.True(s.ValidateRack("QQ") != nil)
	is.True(s.ValidateRack("ZZ") != nil)
	is.NoErr(s.ValidateRack("??AA"))
}

func TestCommitOpeningPlay(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))

	// H on the double letter at 8D, doubled again by the center.
	m := simpleMove(t, s, 24, "8D", "HELLO")
	is.NoErr(s.Commit(m))
	is.Equal(s.Score(), 24)
	is.Equal(len(s.History()), 1)
	is.Equal(s.Board().TilesPlayed(), 5)
	is.Equal(s.Rack().NumTiles(), uint8(7)) // refilled
	is.Equal(s.BagCount(), 88)
}

func TestCommitRejectsWrongScore(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	m := simpleMove(t, s, 10, "8D", "HELLO")
	err := s.Commit(m)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "score mismatch"))
	is.True(s.Board().IsEmpty())
	is.Equal(s.Score(), 0)
}

func TestCommitRejectsPhonyWord(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	m := simpleMove(t, s, 24, "8G", "XY")
	err := s.Commit(m)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "not in the lexicon"))
	is.True(s.Board().IsEmpty())
}

func TestCommitRejectsTilesNotOnRack(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	m := simpleMove(t, s, 10, "8G", "CAT")
	err := s.Commit(m)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "not all on the rack"))
}

func TestCommitRequiresCenterOpening(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	// 27 is the correct score at 1A; the placement is still illegal.
	m := simpleMove(t, s, 27, "1A", "HELLO")
	err := s.Commit(m)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "center"))
}

func TestCommitRequiresConnection(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	is.NoErr(s.Commit(simpleMove(t, s, 24, "8D", "HELLO")))

	is.NoErr(s.SetRack("CATSXYZ"))
	// CAT in a far corner touches nothing.
	m := simpleMove(t, s, 15, "15A", "CAT")
	err := s.Commit(m)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "connect"))
}

func TestCommitRequiresFullWordStrip(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("CATSXYZ"))
	is.NoErr(s.Commit(simpleMove(t, s, 10, "8F", "CAT")))

	is.NoErr(s.SetRack("SXYZQWE"))
	// A bare S at 8I spells only part of CATS and would be scored as a
	// one-tile word. It has to be written ...S from 8F; reject it no
	// matter which score it claims.
	for _, score := range []int{6, 1} {
		err := s.Commit(simpleMove(t, s, score, "8I", "S"))
		is.True(err != nil)
		is.True(strings.Contains(err.Error(), "whole word"))
	}
	// Same when the strip stops just short of a board tile.
	err := s.Commit(simpleMove(t, s, 7, "8E", "S"))
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "whole word"))

	is.Equal(s.Score(), 10)
	is.Equal(s.Board().TilesPlayed(), 3)

	// Spelled out in full, the extension commits at the CATS score.
	is.NoErr(s.Commit(simpleMove(t, s, 6, "8F", "...S")))
	is.Equal(s.Score(), 16)
	is.Equal(s.Board().TilesPlayed(), 4)
}

func TestCommitHookingPlay(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("HELLOXY"))
	is.NoErr(s.Commit(simpleMove(t, s, 24, "8D", "HELLO")))

	is.NoErr(s.SetRack("AS"))
	// AS at I7: the A doubles, the S makes HELLOS.
	m := simpleMove(t, s, 12, "I7", "AS")
	is.NoErr(s.Commit(m))
	is.Equal(s.Score(), 36)
	is.Equal(len(s.History()), 2)
	is.Equal(s.Rack().NumTiles(), uint8(7))
}

func TestCommitExchangeAndPass(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("QWERTY"))
	tiles, err := tilemapping.ToMachineWord("QW", tilemapping.EnglishAlphabet())
	is.NoErr(err)
	ex := move.NewExchangeMove(tiles, nil, tilemapping.EnglishAlphabet())
	is.NoErr(s.Commit(ex))
	is.Equal(s.Rack().NumTiles(), uint8(6))
	is.Equal(s.BagCount(), 94)
	is.Equal(len(s.History()), 1)

	pass := move.NewPassMove(nil, tilemapping.EnglishAlphabet())
	is.NoErr(s.Commit(pass))
	is.Equal(len(s.History()), 2)
}

func TestCommitExchangeRequiresRackTiles(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("QWERTY"))
	tiles, err := tilemapping.ToMachineWord("ZZ", tilemapping.EnglishAlphabet())
	is.NoErr(err)
	err = s.Commit(move.NewExchangeMove(tiles, nil, tilemapping.EnglishAlphabet()))
	is.True(err != nil)
	is.Equal(s.Rack().NumTiles(), uint8(6))
}

func TestGenerateAll(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("AB"))

	plays := s.GenerateAll(false)
	is.Equal(len(plays), 4)
	for _, p := range plays {
		is.Equal(p.Action(), move.MoveTypePlay)
	}

	withEx := s.GenerateAll(true)
	exchanges := 0
	for _, p := range withEx {
		if p.Action() == move.MoveTypeExchange {
			exchanges++
		}
	}
	// Non-empty subsets of AB.
	is.Equal(exchanges, 3)
}

func TestGenerateAsync(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("AB"))

	res, ok := <-s.GenerateAsync(context.Background())
	is.True(ok)
	is.NoErr(res.Err)
	is.Equal(len(res.Moves), 4)
}

func TestFallbackMove(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	is.NoErr(s.SetRack("QWERTY"))
	m := s.FallbackMove()
	// The bag is nearly full, so the fallback is a full-rack exchange.
	is.Equal(m.Action(), move.MoveTypeExchange)
	is.Equal(len(m.Tiles()), 6)
}

func TestValidateWords(t *testing.T) {
	is := is.New(t)
	s := newTestSession(t)
	ok, err := s.ValidateWord("HELLO")
	is.NoErr(err)
	is.True(ok)
	ok, err = s.ValidateWord("OLLEH")
	is.NoErr(err)
	is.True(!ok)

	invalid, err := s.ValidateWords([]string{"HELLO", "OLLEH", "CATS", "TACS"})
	is.NoErr(err)
	is.Equal(invalid, []string{"OLLEH", "TACS"})
}

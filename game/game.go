// Package game holds one playing session: a board, a bag, a rack and
// the machinery to generate, verify and commit moves against them. A
// Session serializes its own mutation; several sessions can share one
// dictionary graph.
package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/config"
	"github.com/domino14/crosshatch/crosses"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/movegen"
	"github.com/domino14/crosshatch/tilemapping"
)

// An InvalidRackError is returned when a requested rack cannot be drawn
// from the tiles that remain outside the board. It is surfaced rather
// than silently corrected.
type InvalidRackError struct {
	Rack string
}

func (e *InvalidRackError) Error() string {
	return fmt.Sprintf("rack %q is not available from the unseen tiles", e.Rack)
}

// A Session is one game in progress.
type Session struct {
	sync.Mutex

	cfg     *config.Config
	dawg    *dawg.SimpleDawg
	dist    *tilemapping.LetterDistribution
	board   *board.GameBoard
	bag     *tilemapping.Bag
	rack    *tilemapping.Rack
	gen     *movegen.Generator
	history []*move.Move
	score   int
}

// NewSession creates a session with a fresh standard board and a full
// bag, and draws an opening rack.
func NewSession(cfg *config.Config, d *dawg.SimpleDawg,
	dist *tilemapping.LetterDistribution) (*Session, error) {

	b := board.MakeBoard(board.CrosshatchGameBoard)
	crosses.GenAllCrossSets(b, d, dist)
	s := &Session{
		cfg:   cfg,
		dawg:  d,
		dist:  dist,
		board: b,
		bag:   dist.MakeBag(),
		rack:  tilemapping.NewRack(d.TileMapping()),
		gen:   movegen.NewGenerator(d, b, dist),
	}
	s.gen.SetMaxWorkers(cfg.MovegenWorkers)
	drawn, err := s.bag.DrawAtMost(tilemapping.RackSize)
	if err != nil {
		return nil, err
	}
	s.rack.Set(drawn)
	return s, nil
}

// Board returns the session's board. Callers must not mutate it.
func (s *Session) Board() *board.GameBoard { return s.board }

// Rack returns the current rack.
func (s *Session) Rack() *tilemapping.Rack { return s.rack }

// Score returns the total score of all committed plays.
func (s *Session) Score() int { return s.score }

// History returns the committed moves, oldest first.
func (s *Session) History() []*move.Move { return s.history }

// BagCount returns the number of tiles left in the bag.
func (s *Session) BagCount() int {
	s.Lock()
	defer s.Unlock()
	return s.bag.TilesRemaining()
}

// SetRack replaces the current rack with the given user-visible
// letters, returning the old tiles to the bag first. An unavailable
// rack leaves the session unchanged and returns *InvalidRackError.
func (s *Session) SetRack(letters string) error {
	s.Lock()
	defer s.Unlock()
	mls, err := tilemapping.ToMachineLetters(letters, s.dawg.TileMapping())
	if err != nil {
		return err
	}
	if len(mls) > tilemapping.RackSize {
		return &InvalidRackError{Rack: letters}
	}
	for i, ml := range mls {
		// A rack holds undesignated tiles; lowercase designations make
		// no sense here.
		mls[i] = rackSlot(ml)
	}
	s.bag.PutBack(s.rack.TilesOn())
	if err := s.bag.RemoveTiles(mls); err != nil {
		// Roll back the putback so the session stays consistent.
		if err2 := s.bag.RemoveTiles(s.rack.TilesOn()); err2 != nil {
			log.Error().Err(err2).Msg("rack rollback failed")
		}
		return &InvalidRackError{Rack: letters}
	}
	s.rack.Set(mls)
	return nil
}

// ValidateRack checks that the given letters could legally be a rack
// right now, against the ledger of unseen tiles, without changing any
// state.
func (s *Session) ValidateRack(letters string) error {
	s.Lock()
	defer s.Unlock()
	mls, err := tilemapping.ToMachineLetters(letters, s.dawg.TileMapping())
	if err != nil {
		return err
	}
	if len(mls) > tilemapping.RackSize {
		return &InvalidRackError{Rack: letters}
	}
	avail := map[tilemapping.MachineLetter]int{}
	for _, ml := range s.bag.Peek() {
		avail[ml]++
	}
	for _, ml := range s.rack.TilesOn() {
		avail[ml]++
	}
	for _, ml := range mls {
		slot := rackSlot(ml)
		avail[slot]--
		if avail[slot] < 0 {
			return &InvalidRackError{Rack: letters}
		}
	}
	return nil
}

// GenerateAll generates every legal play for the current rack and
// board, optionally with exchange moves when at least a full rack of
// tiles remains in the bag.
func (s *Session) GenerateAll(withExchanges bool) []*move.Move {
	s.Lock()
	defer s.Unlock()
	addExchange := withExchanges && s.bag.TilesRemaining() >= tilemapping.RackSize
	plays := s.gen.GenAll(s.rack, addExchange)
	out := make([]*move.Move, len(plays))
	copy(out, plays)
	return out
}

// Result carries the outcome of an asynchronous generation.
type Result struct {
	Moves []*move.Move
	Err   error
}

// GenerateAsync runs generation off the caller's goroutine and delivers
// exactly one Result on the returned channel. If the context expires
// first, the Result carries its error; generation still finishes in the
// background and releases the session lock.
func (s *Session) GenerateAsync(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		done := make(chan []*move.Move, 1)
		go func() {
			done <- s.GenerateAll(false)
		}()
		select {
		case <-ctx.Done():
			out <- Result{Err: ctx.Err()}
		case moves := <-done:
			out <- Result{Moves: moves}
		}
	}()
	return out
}

// Commit verifies and applies a move: for a play, the score must match,
// the tiles must come from the rack, every formed word must be in the
// lexicon and the placement must connect; the board, cross-sets,
// anchors, rack and bag are then updated and replacements drawn. A
// failed verification leaves the session untouched.
func (s *Session) Commit(m *move.Move) error {
	s.Lock()
	defer s.Unlock()

	switch m.Action() {
	case move.MoveTypePass:
		s.history = append(s.history, m)
		return nil
	case move.MoveTypeExchange:
		return s.commitExchange(m)
	case move.MoveTypePlay:
		return s.commitPlay(m)
	}
	return fmt.Errorf("unknown move action %d", m.Action())
}

func (s *Session) commitExchange(m *move.Move) error {
	if s.bag.TilesRemaining() < tilemapping.RackSize {
		return fmt.Errorf("cannot exchange with %d tiles in the bag",
			s.bag.TilesRemaining())
	}
	if !s.rackHas(m.Tiles()) {
		return fmt.Errorf("exchanged tiles are not all on the rack")
	}
	drawn, err := s.bag.Exchange(m.Tiles())
	if err != nil {
		return err
	}
	for _, ml := range m.Tiles() {
		s.rack.Take(rackSlot(ml))
	}
	for _, ml := range drawn {
		s.rack.Add(ml)
	}
	s.history = append(s.history, m)
	return nil
}

func (s *Session) commitPlay(m *move.Move) error {
	if !s.rackHas(m.Tiles()) {
		return fmt.Errorf("played tiles are not all on the rack")
	}
	if err := s.checkStripCoversWord(m); err != nil {
		return err
	}
	expected := movegen.ScorePlay(s.board, s.dist, m)
	if m.Score() != expected {
		return fmt.Errorf("score mismatch: move claims %d, board says %d",
			m.Score(), expected)
	}
	words, err := s.board.FormedWords(m)
	if err != nil {
		return err
	}
	for _, w := range words {
		if !s.dawg.HasWord(w) {
			return fmt.Errorf("%s is not in the lexicon %s",
				w.UserVisible(s.dawg.TileMapping()), s.dawg.LexiconName())
		}
	}
	if err := s.checkConnected(m, words); err != nil {
		return err
	}
	if err := s.board.PlayMove(m); err != nil {
		return err
	}
	crosses.UpdateCrossSetsForMove(s.board, m, s.dawg, s.dist)
	for _, ml := range m.Tiles() {
		if ml == 0 {
			continue
		}
		s.rack.Take(rackSlot(ml))
	}
	drawn, err := s.bag.DrawAtMost(int(tilemapping.RackSize - s.rack.NumTiles()))
	if err != nil {
		return err
	}
	for _, ml := range drawn {
		s.rack.Add(ml)
	}
	s.score += m.Score()
	s.history = append(s.history, m)
	log.Debug().Str("play", m.ShortDescription()).Int("total", s.score).
		Msg("committed play")
	return nil
}

// checkStripCoversWord rejects a play whose tile strip abuts an
// occupied square at either end. Such a strip only spells part of the
// main word, so scoring it square by square would miss the tiles it
// extends; the caller has to mark those with playthrough dots instead.
func (s *Session) checkStripCoversWord(m *move.Move) error {
	row, col, vertical := m.CoordsAndVertical()
	ri, ci := 0, 1
	if vertical {
		ri, ci = 1, 0
	}
	n := len(m.Tiles())
	for _, pos := range [][2]int{
		{row - ri, col - ci},
		{row + ri*n, col + ci*n},
	} {
		if s.board.PosExists(pos[0], pos[1]) && s.board.HasLetter(pos[0], pos[1]) {
			return fmt.Errorf("play must spell out the whole word; use . for tiles already on the board")
		}
	}
	return nil
}

// checkConnected rejects plays that touch nothing: on an empty board
// the play must cover the center square, otherwise it must run through
// or alongside at least one existing tile.
func (s *Session) checkConnected(m *move.Move, words []tilemapping.MachineWord) error {
	row, col, vertical := m.CoordsAndVertical()
	if s.board.IsEmpty() {
		center := s.board.Dim() / 2
		covers := false
		for idx := range m.Tiles() {
			r, c := row, col+idx
			if vertical {
				r, c = row+idx, col
			}
			if r == center && c == center {
				covers = true
			}
		}
		if !covers {
			return fmt.Errorf("the first play must cover the center square")
		}
		return nil
	}
	if len(words) > 1 {
		return nil
	}
	// A single formed word connects if it includes or extends onto any
	// board tile.
	if len(words[0]) > m.TilesPlayed() {
		return nil
	}
	return fmt.Errorf("play does not connect to any tile on the board")
}

// rackHas reports whether the rack contains every played tile of the
// strip, blanks counted as blanks.
func (s *Session) rackHas(tiles tilemapping.MachineWord) bool {
	scratch := s.rack.Copy()
	for _, ml := range tiles {
		if ml == 0 {
			continue
		}
		slot := rackSlot(ml)
		if !scratch.Has(slot) {
			return false
		}
		scratch.Take(slot)
	}
	return true
}

// rackSlot maps a tile to its rack slot; blank-designated letters live
// in the blank slot.
func rackSlot(ml tilemapping.MachineLetter) tilemapping.MachineLetter {
	if ml.IsBlanked() {
		return 0
	}
	return ml
}

// FallbackMove is what the session does when no play qualifies: an
// exchange of the whole rack while the bag still allows it, otherwise a
// pass.
func (s *Session) FallbackMove() *move.Move {
	s.Lock()
	defer s.Unlock()
	tiles := s.rack.TilesOn()
	if s.bag.TilesRemaining() >= tilemapping.RackSize {
		return move.NewExchangeMove(tiles, tilemapping.MachineWord{},
			s.dawg.TileMapping())
	}
	return move.NewPassMove(tiles, s.dawg.TileMapping())
}

// ValidateWord reports whether the given user-visible word is in the
// session's lexicon.
func (s *Session) ValidateWord(word string) (bool, error) {
	mw, err := tilemapping.ToMachineWord(word, s.dawg.TileMapping())
	if err != nil {
		return false, err
	}
	return s.dawg.HasWord(mw), nil
}

// ValidateWords checks several words at once, returning the ones that
// are not in the lexicon.
func (s *Session) ValidateWords(words []string) ([]string, error) {
	var invalid []string
	for _, w := range words {
		ok, err := s.ValidateWord(w)
		if err != nil {
			return nil, err
		}
		if !ok {
			invalid = append(invalid, w)
		}
	}
	return invalid, nil
}

package movegen

import (
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// A PlayRecorderFunc is called by the generator every time it finds a
// legal play, with the word spanning leftstrip to rightstrip on the
// current strip. The rack holds the unplayed tiles (the leave).
type PlayRecorderFunc func(gen *Generator, rack *tilemapping.Rack,
	leftstrip, rightstrip int, t move.MoveType)

// NullPlayRecorder is a no-op recorder, for counting-only benchmarks.
func NullPlayRecorder(gen *Generator, rack *tilemapping.Rack,
	leftstrip, rightstrip int, t move.MoveType) {
}

// AllPlaysRecorder records every play the generator finds.
func AllPlaysRecorder(gen *Generator, rack *tilemapping.Rack,
	leftstrip, rightstrip int, t move.MoveType) {

	gen.plays = append(gen.plays, gen.buildPlay(rack, leftstrip, rightstrip))
}

// TopPlayRecorder keeps only the single best play found so far, by the
// canonical move ordering. It saves the memory of materializing huge
// play lists when only the strongest play is wanted.
func TopPlayRecorder(gen *Generator, rack *tilemapping.Rack,
	leftstrip, rightstrip int, t move.MoveType) {

	play := gen.buildPlay(rack, leftstrip, rightstrip)
	if len(gen.plays) == 0 {
		gen.plays = append(gen.plays, play)
		return
	}
	if play.Compare(gen.plays[0]) < 0 {
		gen.plays[0] = play
	}
}

// buildPlay materializes the current strip contents into a scored Move
// with real board coordinates.
func (gen *Generator) buildPlay(rack *tilemapping.Rack,
	leftstrip, rightstrip int) *move.Move {

	wordCopy := make(tilemapping.MachineWord, rightstrip-leftstrip+1)
	copy(wordCopy, gen.strip[leftstrip:rightstrip+1])
	leave := rack.TilesOn()
	score := gen.scoreStrip(leftstrip, rightstrip)

	rowStart, colStart := gen.curRowIdx, leftstrip
	if gen.vertical {
		// The board is transposed during the vertical pass; flip back
		// to real coordinates.
		rowStart, colStart = leftstrip, gen.curRowIdx
	}
	return move.NewScoringMove(score, wordCopy, leave, gen.vertical,
		gen.tilesPlayed, gen.dawg.TileMapping(), rowStart, colStart)
}

// Package crosses computes cross-sets and cross-scores for a game
// board. A cross-set is the set of letters allowed on an empty square
// by the perpendicular words through it; keeping them current lets the
// move generator validate a whole column of candidates with one bit
// test per letter.
package crosses

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// Generator is the public interface for cross-set generation. There are
// two concrete implementations below:
// - CrossScoreOnlyGenerator{Dist}
// - DawgCrossSetGenerator{Dist, Dawg}
type Generator interface {
	Generate(b *board.GameBoard, row int, col int, dir board.BoardDirection)
	GenerateAll(b *board.GameBoard)
	UpdateForMove(b *board.GameBoard, m *move.Move)
}

// We have to go through this dance since go will not let us simply
// provide Generator with default implementations of GenerateAll and
// UpdateForMove that call a given implementation of Generate.
type iGenerator interface {
	Generate(b *board.GameBoard, row int, col int, dir board.BoardDirection)
}

// generateAll generates cross-sets for every square, in both board
// orientations. The direction label records which way the word
// fragments that produced the set were running: the untransposed pass
// reads row fragments and stores under Horizontal, the transposed pass
// stores under Vertical. The move generator consults the set whose
// label is perpendicular to its own direction of travel.
func generateAll(g iGenerator, b *board.GameBoard) {
	n := b.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Generate(b, i, j, board.HorizontalDirection)
		}
	}
	b.Transpose()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.Generate(b, i, j, board.VerticalDirection)
		}
	}
	// And transpose back to the original orientation.
	b.Transpose()
}

func updateForMove(g iGenerator, b *board.GameBoard, m *move.Move) {
	log.Debug().Msgf("Updating for move: %s", m.ShortDescription())
	row, col, vertical := m.CoordsAndVertical()
	// Every tile placed by this move creates new "across" words, and we
	// need to update the cross-sets on both sides of these across
	// words, as well as the cross-sets for THIS word.

	// Assumes all across words are HORIZONTAL.
	calcForAcross := func(rowStart int, colStart int, csd board.BoardDirection) {
		for row := rowStart; row < len(m.Tiles())+rowStart; row++ {
			if m.Tiles()[row-rowStart] == 0 {
				// No new "across word" was generated by this tile, so
				// no need to update the cross-set.
				continue
			}
			// Otherwise, look along this row. Note, the edge is still
			// part of the word.
			rightCol := b.WordEdge(row, colStart, board.RightDirection)
			leftCol := b.WordEdge(row, colStart, board.LeftDirection)
			g.Generate(b, row, rightCol+1, csd)
			g.Generate(b, row, leftCol-1, csd)
			// This should clear the cross-set on the just played tile.
			g.Generate(b, row, colStart, csd)
		}
	}

	// Assumes self is HORIZONTAL.
	calcForSelf := func(rowStart int, colStart int, csd board.BoardDirection) {
		// Generate cross-sets on either side of the word.
		for col := colStart - 1; col <= colStart+len(m.Tiles()); col++ {
			g.Generate(b, rowStart, col, csd)
		}
	}

	if vertical {
		calcForAcross(row, col, board.HorizontalDirection)
		b.Transpose()
		row, col = col, row
		calcForSelf(row, col, board.VerticalDirection)
		b.Transpose()
	} else {
		calcForSelf(row, col, board.HorizontalDirection)
		b.Transpose()
		row, col = col, row
		calcForAcross(row, col, board.VerticalDirection)
		b.Transpose()
	}
}

// ----------------------------------------------------------------------
// Use a CrossScoreOnlyGenerator when you don't need cross-sets.

type CrossScoreOnlyGenerator struct {
	Dist *tilemapping.LetterDistribution
}

func (g CrossScoreOnlyGenerator) Generate(b *board.GameBoard, row int, col int,
	dir board.BoardDirection) {
	genCrossScore(b, row, col, dir, g.Dist)
}

func (g CrossScoreOnlyGenerator) GenerateAll(b *board.GameBoard) {
	generateAll(g, b)
}

func (g CrossScoreOnlyGenerator) UpdateForMove(b *board.GameBoard, m *move.Move) {
	updateForMove(g, b, m)
}

func genCrossScore(b *board.GameBoard, row int, col int, dir board.BoardDirection,
	ld *tilemapping.LetterDistribution) {
	if row < 0 || row >= b.Dim() || col < 0 || col >= b.Dim() {
		return
	}
	// If the square has a letter in it, its cross-score is 0.
	if b.HasLetter(row, col) {
		b.SetCrossScore(row, col, 0, dir)
		return
	}
	if b.LeftAndRightEmpty(row, col) {
		b.SetCrossScore(row, col, 0, dir)
		return
	}
	// There is a letter to the left, to the right, or both.
	rightCol := b.WordEdge(row, col+1, board.RightDirection)
	if rightCol == col {
		score := b.TraverseBackwardsForScore(row, col-1, ld)
		b.SetCrossScore(row, col, score, dir)
	} else {
		scoreR := b.TraverseBackwardsForScore(row, rightCol, ld)
		scoreL := b.TraverseBackwardsForScore(row, col-1, ld)
		b.SetCrossScore(row, col, scoreR+scoreL, dir)
	}
}

// ----------------------------------------------------------------------
// DawgCrossSetGenerator generates cross-sets via the dictionary graph.

type DawgCrossSetGenerator struct {
	Dist *tilemapping.LetterDistribution
	Dawg *dawg.SimpleDawg
}

func (g DawgCrossSetGenerator) Generate(b *board.GameBoard, row int, col int,
	dir board.BoardDirection) {
	GenCrossSet(b, row, col, dir, g.Dawg, g.Dist)
}

func (g DawgCrossSetGenerator) GenerateAll(b *board.GameBoard) {
	generateAll(g, b)
}

func (g DawgCrossSetGenerator) UpdateForMove(b *board.GameBoard, m *move.Move) {
	updateForMove(g, b, m)
}

// Wrapper functions to save rewriting all the tests.

func GenAllCrossSets(b *board.GameBoard, d *dawg.SimpleDawg,
	ld *tilemapping.LetterDistribution) {
	gen := DawgCrossSetGenerator{Dist: ld, Dawg: d}
	gen.GenerateAll(b)
}

func UpdateCrossSetsForMove(b *board.GameBoard, m *move.Move, d *dawg.SimpleDawg,
	ld *tilemapping.LetterDistribution) {
	gen := DawgCrossSetGenerator{Dist: ld, Dawg: d}
	gen.UpdateForMove(b, m)
}

func GenAllCrossScores(b *board.GameBoard, ld *tilemapping.LetterDistribution) {
	gen := CrossScoreOnlyGenerator{Dist: ld}
	gen.GenerateAll(b)
}

// ----------------------------------------------------------------------
// Implementation for DawgCrossSetGenerator

// readFragment collects the contiguous letters from col going in the
// given direction, in left-to-right board order. Blanked letters are
// kept as-is; traversal unblanks and scoring wants them at zero.
func readFragment(b *board.GameBoard, row int, col int, dir board.WordDirection) tilemapping.MachineWord {
	frag := tilemapping.MachineWord{}
	for b.PosExists(row, col) {
		ml := b.GetLetter(row, col)
		if ml == 0 {
			break
		}
		if dir == board.LeftDirection {
			frag = append(tilemapping.MachineWord{ml}, frag...)
		} else {
			frag = append(frag, ml)
		}
		col += int(dir)
	}
	return frag
}

// traverse follows one arc per letter from nodeIdx. It returns 0 if any
// letter has no arc; this can occur if a phony was played and stayed on
// the board, or if a real word has no further extensions.
func traverse(d *dawg.SimpleDawg, nodeIdx uint32, word tilemapping.MachineWord) uint32 {
	for _, ml := range word {
		nodeIdx = d.NextNodeIdx(nodeIdx, ml)
		if nodeIdx == 0 {
			return 0
		}
	}
	return nodeIdx
}

// GenCrossSet generates the cross-set and cross-score for an individual
// square, reading word fragments along the current row. A letter L is
// in the set iff prefix+L+suffix is a word, where prefix and suffix are
// the fragments immediately left and right of the square.
func GenCrossSet(b *board.GameBoard, row int, col int, dir board.BoardDirection,
	d *dawg.SimpleDawg, ld *tilemapping.LetterDistribution) {

	if row < 0 || row >= b.Dim() || col < 0 || col >= b.Dim() {
		return
	}
	// If the square has a letter in it, its cross-set and cross-score
	// should both be 0.
	if b.HasLetter(row, col) {
		b.SetCrossScore(row, col, 0, dir)
		b.ClearCrossSet(row, col, dir)
		return
	}
	// If there's no tile adjacent to this square along this row, every
	// letter is allowed.
	if b.LeftAndRightEmpty(row, col) {
		b.SetCrossScore(row, col, 0, dir)
		b.SetCrossSet(row, col, board.TrivialCrossSet, dir)
		return
	}

	prefix := readFragment(b, row, col-1, board.LeftDirection)
	suffix := readFragment(b, row, col+1, board.RightDirection)
	b.SetCrossScore(row, col, prefix.Score(ld)+suffix.Score(ld), dir)

	pNode := traverse(d, d.GetRootNodeIndex(), prefix)
	if pNode == 0 {
		b.ClearCrossSet(row, col, dir)
		return
	}
	cs := board.CrossSet(0)
	numLetters := d.TileMapping().NumLetters()
	for i := uint8(1); i <= numLetters; i++ {
		ml := tilemapping.MachineLetter(i)
		if len(suffix) == 0 {
			// The candidate letter ends the word, so it must be in the
			// letter set of the node the prefix led to.
			if d.InLetterSet(ml, pNode) {
				cs.Set(ml)
			}
			continue
		}
		sNode := d.NextNodeIdx(pNode, ml)
		if sNode == 0 {
			continue
		}
		sNode = traverse(d, sNode, suffix[:len(suffix)-1])
		if sNode != 0 && d.InLetterSet(suffix[len(suffix)-1], sNode) {
			cs.Set(ml)
		}
	}
	b.SetCrossSet(row, col, cs, dir)
}

// Package movegen contains all the move-generating functions. It makes
// heavy use of the board and dawg packages and is based on the
// algorithm from the Appel & Jacobson paper, "The World's Fastest
// Scrabble Program". Traversal is iterative with an explicit frame
// stack rather than recursive, so generation cost stays flat no matter
// how deep the dictionary graph runs.
package movegen

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/crosshatch/board"
	"github.com/domino14/crosshatch/dawg"
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// MoveGenerator is a generic interface for generating moves.
type MoveGenerator interface {
	GenAll(rack *tilemapping.Rack, addExchange bool) []*move.Move
	Plays() []*move.Move
	SetPlayRecorder(pr PlayRecorderFunc)
}

// A leftPart is a rack-built word beginning: a path from the graph root
// spelling out tiles that can sit to the left of an anchor. They are
// computed once per GenAll and shared by every anchor.
type leftPart struct {
	word    tilemapping.MachineWord
	nodeIdx uint32
	rack    *tilemapping.Rack
}

// A frame is one level of the iterative extend-right traversal. It
// remembers which candidate letters remain to be tried at its column
// and what it has currently placed, so the placement can be undone
// before the next candidate or before popping.
type frame struct {
	col     int
	nodeIdx uint32
	onBoard bool
	letters []tilemapping.MachineLetter
	idx     int
	placed  tilemapping.MachineLetter
}

// Generator contains the structures needed to generate moves for a
// position on a board, given a rack. The same generator must not be
// used concurrently; GenAll clones it internally for its row workers.
type Generator struct {
	dawg    *dawg.SimpleDawg
	board   *board.GameBoard
	letDist *tilemapping.LetterDistribution

	numWorkers   int
	playRecorder PlayRecorderFunc

	// Traversal state, valid during a single row's generation.
	curRowIdx   int
	vertical    bool
	anchorDir   board.BoardDirection
	crossDir    board.BoardDirection
	rack        *tilemapping.Rack
	scratch     *tilemapping.Rack
	strip       []tilemapping.MachineLetter
	leftstrip   int
	tilesPlayed int
	frames      []frame
	plays       []*move.Move
}

// NewGenerator creates a Generator for the given dictionary graph,
// board and letter distribution.
func NewGenerator(d *dawg.SimpleDawg, b *board.GameBoard,
	ld *tilemapping.LetterDistribution) *Generator {

	gen := &Generator{
		dawg:         d,
		board:        b,
		letDist:      ld,
		playRecorder: AllPlaysRecorder,
		rack:         tilemapping.NewRack(d.TileMapping()),
		scratch:      tilemapping.NewRack(d.TileMapping()),
		strip:        make([]tilemapping.MachineLetter, b.Dim()),
	}
	return gen
}

// SetPlayRecorder sets the recorder that captures plays as they are
// found. The default is AllPlaysRecorder.
func (gen *Generator) SetPlayRecorder(pr PlayRecorderFunc) {
	gen.playRecorder = pr
}

// SetMaxWorkers sets the number of parallel row workers for GenAll.
// Zero or negative means one worker per CPU.
func (gen *Generator) SetMaxWorkers(n int) {
	gen.numWorkers = n
}

// Plays returns the plays generated by the last call to GenAll.
func (gen *Generator) Plays() []*move.Move {
	return gen.plays
}

func (gen *Generator) clone() *Generator {
	return &Generator{
		dawg:         gen.dawg,
		board:        gen.board,
		letDist:      gen.letDist,
		playRecorder: gen.playRecorder,
		rack:         tilemapping.NewRack(gen.dawg.TileMapping()),
		scratch:      tilemapping.NewRack(gen.dawg.TileMapping()),
		strip:        make([]tilemapping.MachineLetter, gen.board.Dim()),
	}
}

// GenAll generates all moves on the board. It assigns a score to each
// play and returns the list in a canonical order: by score descending,
// then by position, orientation and tiles. The ordering is a total
// order, so the output is deterministic no matter how the row workers
// get scheduled. If addExchange is true, exchange moves for every
// subset of the rack are appended as well.
func (gen *Generator) GenAll(rack *tilemapping.Rack, addExchange bool) []*move.Move {
	gen.plays = gen.plays[:0]
	leftParts := gen.findLeftParts(rack)
	dim := gen.board.Dim()
	workers := gen.numWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	for _, vertical := range []bool{false, true} {
		if vertical {
			gen.board.Transpose()
		}
		results := make([][]*move.Move, dim)
		var g errgroup.Group
		g.SetLimit(workers)
		for row := 0; row < dim; row++ {
			row := row
			vertical := vertical
			g.Go(func() error {
				wg := gen.clone()
				wg.rack.CopyFrom(rack)
				wg.vertical = vertical
				if vertical {
					wg.anchorDir = board.VerticalDirection
					wg.crossDir = board.HorizontalDirection
				} else {
					wg.anchorDir = board.HorizontalDirection
					wg.crossDir = board.VerticalDirection
				}
				wg.genRow(row, leftParts)
				results[row] = wg.plays
				return nil
			})
		}
		// The workers never return errors; Wait is just a barrier.
		g.Wait() //nolint:errcheck
		if vertical {
			gen.board.Transpose()
		}
		for _, r := range results {
			gen.plays = append(gen.plays, r...)
		}
	}

	if addExchange {
		gen.generateExchangeMoves(rack)
	}

	sort.Slice(gen.plays, func(i, j int) bool {
		return gen.plays[i].Compare(gen.plays[j]) < 0
	})
	gen.dedupeSingleTilePlays()
	return gen.plays
}

// dedupeSingleTilePlays removes duplicate one-tile plays. A single tile
// that hooks words in both orientations is found by both generation
// passes; after the canonical sort the first occurrence wins, so the
// survivor is deterministic.
func (gen *Generator) dedupeSingleTilePlays() {
	seen := map[int]bool{}
	out := gen.plays[:0]
	for _, p := range gen.plays {
		if p.Action() == move.MoveTypePlay && p.TilesPlayed() == 1 {
			k := p.UniqueSingleTileKey()
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, p)
	}
	gen.plays = out
}

func (gen *Generator) genRow(row int, leftParts [][]*leftPart) {
	gen.curRowIdx = row
	dim := gen.board.Dim()
	lastAnchor := -1
	for col := 0; col < dim; col++ {
		if !gen.board.IsAnchor(row, col, gen.anchorDir) {
			continue
		}
		// Count the open squares to the anchor's left, up to but not
		// including the previous anchor. These bound the rack-built
		// left parts; anything further left belongs to an earlier
		// anchor's move set.
		openCnt := 0
		left := col
		for left > 0 && left > lastAnchor+1 && gen.board.GetSquare(row, left-1).IsEmpty() {
			openCnt++
			left--
		}
		gen.genFromAnchor(col, openCnt, leftParts)
		lastAnchor = col
	}
}

func (gen *Generator) genFromAnchor(anchor int, maxLeft int, leftParts [][]*leftPart) {
	b, d := gen.board, gen.dawg
	row := gen.curRowIdx

	if maxLeft == 0 && anchor > 0 && !b.GetSquare(row, anchor-1).IsEmpty() {
		// Tiles already on the board just before this anchor form a
		// fixed prefix; advance it through the graph and try to
		// complete it to the right.
		startCol := b.WordEdge(row, anchor-1, board.LeftDirection)
		nodeIdx := d.GetRootNodeIndex()
		for c := startCol; c < anchor; c++ {
			nodeIdx = d.NextNodeIdx(nodeIdx, b.GetLetter(row, c))
			if nodeIdx == 0 {
				// No path; a phony is parked there, or the word has no
				// extensions.
				return
			}
			gen.strip[c] = 0
		}
		gen.leftstrip = startCol
		gen.tilesPlayed = 0
		gen.extendRight(anchor, nodeIdx)
		return
	}

	// Start on the anchor square itself with an empty prefix.
	gen.leftstrip = anchor
	gen.tilesPlayed = 0
	gen.extendRight(anchor, d.GetRootNodeIndex())

	// Then try every rack-built left part that fits in the open space.
	leftReach := maxLeft
	if r := int(gen.rack.NumTiles()) - 1; r < leftReach {
		leftReach = r
	}
	fullRack := gen.rack
	for leftLen := 1; leftLen <= leftReach; leftLen++ {
		for _, lp := range leftParts[leftLen-1] {
			for k, ml := range lp.word {
				gen.strip[anchor-leftLen+k] = ml
			}
			gen.scratch.CopyFrom(lp.rack)
			gen.rack = gen.scratch
			gen.leftstrip = anchor - leftLen
			gen.tilesPlayed = leftLen
			gen.extendRight(anchor, lp.nodeIdx)
			gen.rack = fullRack
		}
	}
}

// extendRight is the core traversal. Starting at startCol with the
// graph at startNode, it covers squares rightward with rack tiles,
// respecting board tiles, cross-sets and the graph, and records a play
// whenever a word ends at a square boundary.
func (gen *Generator) extendRight(startCol int, startNode uint32) {
	b, d := gen.board, gen.dawg
	row := gen.curRowIdx
	dim := b.Dim()

	gen.frames = gen.frames[:0]
	gen.pushFrame(startCol, startNode)

	for len(gen.frames) > 0 {
		f := &gen.frames[len(gen.frames)-1]
		if f.placed != 0 {
			// Undo the previous placement at this level.
			if !f.onBoard {
				gen.rack.Add(rackIdx(f.placed))
				gen.tilesPlayed--
				gen.strip[f.col] = 0
			}
			f.placed = 0
		}
		if f.idx >= len(f.letters) {
			gen.frames = gen.frames[:len(gen.frames)-1]
			continue
		}
		ml := f.letters[f.idx]
		f.idx++
		f.placed = ml
		if !f.onBoard {
			gen.strip[f.col] = ml
			gen.rack.Take(rackIdx(ml))
			gen.tilesPlayed++
		}

		if d.InLetterSet(ml, f.nodeIdx) &&
			(f.col == dim-1 || b.GetSquare(row, f.col+1).IsEmpty()) &&
			gen.tilesPlayed > 0 &&
			f.col-gen.leftstrip+1 >= 2 {
			gen.playRecorder(gen, gen.rack, gen.leftstrip, f.col, move.MoveTypePlay)
		}

		nextNode := d.NextNodeIdx(f.nodeIdx, ml)
		col := f.col
		if nextNode != 0 && col+1 < dim {
			// Pushing may grow the frames slice and invalidate f; it
			// is re-fetched at the top of the loop.
			gen.pushFrame(col+1, nextNode)
		}
	}
}

// pushFrame computes the candidate letters for the given column and
// pushes a traversal frame for them. On an occupied square the single
// candidate is the board tile; on an empty square, candidates are the
// rack letters (with blank substitution) that pass the square's
// cross-check and have either a graph arc or a word ending here.
func (gen *Generator) pushFrame(col int, nodeIdx uint32) {
	b, d := gen.board, gen.dawg
	row := gen.curRowIdx

	sq := b.GetSquare(row, col)
	if !sq.IsEmpty() {
		gen.strip[col] = 0
		gen.frames = append(gen.frames, frame{
			col:     col,
			nodeIdx: nodeIdx,
			onBoard: true,
			letters: []tilemapping.MachineLetter{sq.Letter()},
		})
		return
	}

	var letters []tilemapping.MachineLetter
	if gen.rack.NumTiles() > 0 {
		crossSet := b.GetCrossSet(row, col, gen.crossDir)
		hasBlank := gen.rack.CountOf(0) > 0
		avail := uint64(d.GetLetterSet(nodeIdx))
		d.IterateArcs(nodeIdx, func(l tilemapping.MachineLetter, child uint32) {
			avail |= 1 << l
		})
		numLetters := d.TileMapping().NumLetters()
		for i := uint8(1); i <= numLetters; i++ {
			ml := tilemapping.MachineLetter(i)
			if avail&(1<<ml) == 0 || !crossSet.Allowed(ml) {
				continue
			}
			if gen.rack.Has(ml) {
				letters = append(letters, ml)
			}
			if hasBlank {
				letters = append(letters, ml.Blank())
			}
		}
	}
	gen.frames = append(gen.frames, frame{
		col:     col,
		nodeIdx: nodeIdx,
		letters: letters,
	})
}

// rackIdx maps a played letter to its rack slot; blank-designated
// letters consume the blank.
func rackIdx(ml tilemapping.MachineLetter) tilemapping.MachineLetter {
	if ml.IsBlanked() {
		return 0
	}
	return ml
}

// findLeftParts enumerates every word beginning that can be built
// purely from the rack: all graph paths from the root of length 1 to
// rack size minus one (one tile must remain for the anchor square).
// The result is indexed by length minus one.
func (gen *Generator) findLeftParts(rack *tilemapping.Rack) [][]*leftPart {
	d := gen.dawg
	maxLen := int(rack.NumTiles()) - 1
	if maxLen > tilemapping.RackSize-1 {
		maxLen = tilemapping.RackSize - 1
	}
	parts := make([][]*leftPart, 0)
	for i := 0; i < maxLen; i++ {
		parts = append(parts, nil)
	}
	if maxLen < 1 {
		return parts
	}

	scratch := rack.Copy()
	word := make(tilemapping.MachineWord, 0, maxLen)

	type lpFrame struct {
		nodeIdx uint32
		letters []tilemapping.MachineLetter
		idx     int
		placed  tilemapping.MachineLetter
	}

	candidates := func(nodeIdx uint32) []tilemapping.MachineLetter {
		var out []tilemapping.MachineLetter
		hasBlank := scratch.CountOf(0) > 0
		d.IterateArcs(nodeIdx, func(l tilemapping.MachineLetter, child uint32) {
			if scratch.Has(l) {
				out = append(out, l)
			}
			if hasBlank {
				out = append(out, l.Blank())
			}
		})
		return out
	}

	stack := []lpFrame{{nodeIdx: d.GetRootNodeIndex(),
		letters: candidates(d.GetRootNodeIndex())}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.placed != 0 {
			scratch.Add(rackIdx(f.placed))
			word = word[:len(word)-1]
			f.placed = 0
		}
		if f.idx >= len(f.letters) {
			stack = stack[:len(stack)-1]
			continue
		}
		ml := f.letters[f.idx]
		f.idx++
		f.placed = ml
		scratch.Take(rackIdx(ml))
		word = append(word, ml)

		child := d.NextNodeIdx(f.nodeIdx, ml)
		lp := &leftPart{
			word:    append(tilemapping.MachineWord{}, word...),
			nodeIdx: child,
			rack:    scratch.Copy(),
		}
		parts[len(word)-1] = append(parts[len(word)-1], lp)

		if len(word) < maxLen {
			stack = append(stack, lpFrame{nodeIdx: child, letters: candidates(child)})
		}
	}
	return parts
}

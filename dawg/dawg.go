// Package dawg implements a DAWG (directed acyclic word graph), a compact
// automaton over a set of valid word strings. Nodes live in a packed
// integer arena; heavy suffix sharing makes it practical to hold
// multi-million-word lexicons in memory and traverse them during move
// generation.
package dawg

import (
	"github.com/domino14/crosshatch/tilemapping"
)

// The arena is a slice of 32-bit words. Index 0 is a sentinel and never a
// valid node, so 0 can mean "no such child" during traversal. A node is a
// header word followed immediately by its arc words:
//
//	header: letterSetIdx | numArcs << NumArcsBitLoc
//	arc:    letter << LetterBitLoc | childNodeIdx
//
// A word w1..wn is in the lexicon iff descending the arcs for w1..wn-1
// reaches a node whose letter set contains wn. The letter sets live in
// their own deduplicated table.
const (
	// NumArcsBitLoc is the bit location where the number of arcs starts
	// within a node's header word.
	NumArcsBitLoc = 24
	// LetterSetBitMask masks the letter-set index out of a header word.
	LetterSetBitMask = (1 << NumArcsBitLoc) - 1
	// LetterBitLoc is the bit location where the letter starts within an
	// arc word.
	LetterBitLoc = 24
	// NodeIdxBitMask masks the child node index out of an arc word.
	NodeIdxBitMask = (1 << LetterBitLoc) - 1
)

// SimpleDawg is a read-only DAWG over a single lexicon. It is immutable
// after load and safe for concurrent traversal from any number of
// goroutines.
type SimpleDawg struct {
	nodes       []uint32
	letterSets  []tilemapping.LetterSet
	alphabet    *tilemapping.TileMapping
	lexiconName string
}

// GetRootNodeIndex returns the index of the root node.
func (d *SimpleDawg) GetRootNodeIndex() uint32 {
	return 1
}

// NumArcs returns the number of arcs leaving the node at nodeIdx.
func (d *SimpleDawg) NumArcs(nodeIdx uint32) byte {
	return byte(d.nodes[nodeIdx] >> NumArcsBitLoc)
}

// NextNodeIdx returns the index of the child node for the given letter,
// or 0 if the node has no arc for that letter. Traversal can resume from
// any node index previously returned, which is how partial words already
// fixed on the board are walked before rack exploration begins.
func (d *SimpleDawg) NextNodeIdx(nodeIdx uint32, letter tilemapping.MachineLetter) uint32 {
	letter = letter.Unblank()
	numArcs := uint32(d.NumArcs(nodeIdx))
	for i := nodeIdx + 1; i <= nodeIdx+numArcs; i++ {
		arc := d.nodes[i]
		arcLetter := tilemapping.MachineLetter(arc >> LetterBitLoc)
		if arcLetter == letter {
			return arc & NodeIdxBitMask
		}
		if arcLetter > letter {
			// Arcs are sorted by letter.
			return 0
		}
	}
	return 0
}

// IterateArcs calls fn for every arc leaving the node at nodeIdx, in
// letter order.
func (d *SimpleDawg) IterateArcs(nodeIdx uint32, fn func(letter tilemapping.MachineLetter, childIdx uint32)) {
	numArcs := uint32(d.NumArcs(nodeIdx))
	for i := nodeIdx + 1; i <= nodeIdx+numArcs; i++ {
		arc := d.nodes[i]
		fn(tilemapping.MachineLetter(arc>>LetterBitLoc), arc&NodeIdxBitMask)
	}
}

// GetLetterSet returns the letter set of the node at nodeIdx. Each letter
// in the set terminates a valid word at this node.
func (d *SimpleDawg) GetLetterSet(nodeIdx uint32) tilemapping.LetterSet {
	return d.letterSets[d.nodes[nodeIdx]&LetterSetBitMask]
}

// InLetterSet returns whether the letter is in the node's letter set;
// i.e. whether a word ends here with this letter. Blanked letters are
// checked as the letter they designate.
func (d *SimpleDawg) InLetterSet(letter tilemapping.MachineLetter, nodeIdx uint32) bool {
	letter = letter.Unblank()
	return d.GetLetterSet(nodeIdx)&(1<<letter) != 0
}

// HasWord returns whether the given machine word is in the lexicon.
// Words shorter than two letters are never valid.
func (d *SimpleDawg) HasWord(word tilemapping.MachineWord) bool {
	if len(word) < 2 {
		return false
	}
	nodeIdx := d.GetRootNodeIndex()
	for _, ml := range word[:len(word)-1] {
		nodeIdx = d.NextNodeIdx(nodeIdx, ml)
		if nodeIdx == 0 {
			return false
		}
	}
	return d.InLetterSet(word[len(word)-1], nodeIdx)
}

// TileMapping returns the alphabet this lexicon was compiled with.
func (d *SimpleDawg) TileMapping() *tilemapping.TileMapping {
	return d.alphabet
}

// LexiconName returns the name the lexicon was compiled under.
func (d *SimpleDawg) LexiconName() string {
	return d.lexiconName
}

// NumNodeWords returns the size of the packed node arena, in 32-bit
// words. Mostly useful for logging and cache accounting.
func (d *SimpleDawg) NumNodeWords() int {
	return len(d.nodes)
}

package dawg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/domino14/crosshatch/tilemapping"
)

const (
	// MaxWordLength bounds the depth of the trie; it also sizes the
	// minimizer's depth buckets.
	MaxWordLength = 35
	letterBuckets = 997
)

// WordListEncoding selects how BuildFromTextFile decodes its input.
type WordListEncoding string

const (
	EncodingUTF8   WordListEncoding = "utf8"
	EncodingLatin1 WordListEncoding = "latin1"
)

// node and arc are temporary types used while building; they are not
// used after serialization.
type node struct {
	arcs      []*arc
	letterSet tilemapping.LetterSet
	// Utility fields for minimization and serialization:
	visited           bool
	copyOf            *node
	depth             uint8
	letterSum         uint32
	indexInSerialized uint32
}

type arc struct {
	letter      tilemapping.MachineLetter
	destination *node
}

// A Builder accumulates words and compiles them into a SimpleDawg. It is
// not safe for concurrent use.
type Builder struct {
	root        *node
	alphabet    *tilemapping.TileMapping
	lexiconName string

	numNodes uint32
	numArcs  uint32
	numWords int
	skipped  int
}

// NewBuilder creates a builder for the given alphabet. The lexicon name
// is stored in the serialized file.
func NewBuilder(rm *tilemapping.TileMapping, lexiconName string) *Builder {
	b := &Builder{alphabet: rm, lexiconName: lexiconName}
	b.root = b.createNode()
	return b
}

func (b *Builder) createNode() *node {
	b.numNodes++
	return &node{}
}

func (n *node) containsArc(c tilemapping.MachineLetter) *arc {
	for _, a := range n.arcs {
		if a.letter == c {
			return a
		}
	}
	return nil
}

func (b *Builder) addArc(n *node, c tilemapping.MachineLetter) *node {
	if existing := n.containsArc(c); existing != nil {
		return existing.destination
	}
	dest := b.createNode()
	n.arcs = append(n.arcs, &arc{letter: c, destination: dest})
	b.numArcs++
	return dest
}

// addFinalArc adds an arc for c1 and marks c2 as a word terminator in
// the destination's letter set. Inserting the same word twice is a no-op.
func (b *Builder) addFinalArc(n *node, c1, c2 tilemapping.MachineLetter) *node {
	dest := b.addArc(n, c1)
	dest.letterSet |= 1 << c2
	return dest
}

// AddWord inserts a machine word into the trie. Words must be at least
// two letters long and at most MaxWordLength.
func (b *Builder) AddWord(word tilemapping.MachineWord) error {
	n := len(word)
	if n < 2 {
		return fmt.Errorf("word too short: %v letters", n)
	}
	if n > MaxWordLength {
		return fmt.Errorf("word too long: %v letters", n)
	}
	st := b.root
	for j := 0; j < n-2; j++ {
		st = b.addArc(st, word[j])
	}
	b.addFinalArc(st, word[n-2], word[n-1])
	b.numWords++
	return nil
}

// AddWords inserts user-visible words, skipping (and counting) any that
// contain runes outside the alphabet or that are too short or long.
func (b *Builder) AddWords(words []string) {
	for _, w := range words {
		mw, err := tilemapping.ToMachineWord(w, b.alphabet)
		if err != nil {
			b.skipped++
			log.Debug().Str("word", w).Err(err).Msg("skipping word")
			continue
		}
		if err := b.AddWord(mw); err != nil {
			b.skipped++
			log.Debug().Str("word", w).Err(err).Msg("skipping word")
		}
	}
}

// Skipped returns the number of input words that could not be inserted.
func (b *Builder) Skipped() int {
	return b.skipped
}

type nodeTraversalFn func(*node)

func traverseTreeAndExecute(n *node, fn nodeTraversalFn) {
	fn(n)
	for _, a := range n.arcs {
		traverseTreeAndExecute(a.destination, fn)
	}
}

func calculateDepth(n *node) uint8 {
	maxDepth := uint8(0)
	for _, a := range n.arcs {
		thisDepth := calculateDepth(a.destination)
		if thisDepth > maxDepth {
			maxDepth = thisDepth
		}
	}
	n.depth = 1 + maxDepth
	return n.depth
}

func calculateSums(n *node) uint32 {
	if len(n.arcs) == 0 {
		n.letterSum = 0
		return 0
	}
	sum := uint32(0)
	for _, a := range n.arcs {
		sum += uint32(a.letter) + calculateSums(a.destination)
	}
	n.letterSum = sum
	return n.letterSum
}

func (n *node) equals(other *node) bool {
	if len(n.arcs) != len(other.arcs) {
		return false
	}
	if n.letterSet != other.letterSet {
		return false
	}
	if n.letterSum != other.letterSum {
		return false
	}
	if n.depth != other.depth {
		return false
	}
	for idx, a := range n.arcs {
		if a.letter != other.arcs[idx].letter {
			return false
		}
		if !a.destination.equals(other.arcs[idx].destination) {
			return false
		}
	}
	return true
}

// minimize turns the trie into a DAG by merging equivalent subtrees.
// Nodes are bucketed by depth and letter sum to cut down the number of
// direct comparisons.
func (b *Builder) minimize() {
	log.Debug().Msg("minimizing...")
	calculateDepth(b.root)
	calculateSums(b.root)
	bucket := make([][][]*node, MaxWordLength)
	for i := range bucket {
		bucket[i] = make([][]*node, letterBuckets)
	}
	visits := 0
	traverseTreeAndExecute(b.root, func(n *node) {
		key := n.letterSum % letterBuckets
		if !n.visited {
			bucket[n.depth-1][key] = append(bucket[n.depth-1][key], n)
			visits++
		}
		n.visited = true
	})
	log.Debug().Int("nodes", visits).Msg("bucketed nodes")
	for i := 0; i < MaxWordLength; i++ {
		for j := 0; j < letterBuckets; j++ {
			narr := bucket[i][j]
			if len(narr) < 2 {
				continue
			}
			for idx1, n1 := range narr[:len(narr)-1] {
				if n1.copyOf != nil {
					continue
				}
				for _, n2 := range narr[idx1+1:] {
					if n2.copyOf != nil {
						continue
					}
					if n1.equals(n2) {
						n2.copyOf = n1
					}
				}
			}
		}
	}
	b.numArcs = 0
	nodeArr := []*node{}
	nodesAppended := make(map[*node]bool)
	traverseTreeAndExecute(b.root, func(n *node) {
		keep := n
		if n.copyOf != nil {
			keep = n.copyOf
		}
		if !nodesAppended[keep] {
			nodeArr = append(nodeArr, keep)
			nodesAppended[keep] = true
		}
	})
	for _, n := range nodeArr {
		b.numArcs += uint32(len(n.arcs))
		for _, a := range n.arcs {
			if a.destination.copyOf != nil {
				a.destination = a.destination.copyOf
				if a.destination.copyOf != nil {
					panic("chain of copied nodes; minimization bug")
				}
			}
		}
	}
	b.root = nodeArr[0]
	b.numNodes = uint32(len(nodeArr))
	log.Debug().Uint32("arcs", b.numArcs).Uint32("nodes", b.numNodes).
		Msg("minimized")
}

// Compile minimizes the trie and packs it into an immutable SimpleDawg.
// The builder must not be reused afterwards.
func (b *Builder) Compile() (*SimpleDawg, error) {
	if b.numWords == 0 {
		return nil, fmt.Errorf("no words were added to lexicon %q", b.lexiconName)
	}
	// Arcs must be sorted by letter before minimization so equivalent
	// nodes compare equal, and before serialization so NextNodeIdx can
	// stop scanning early.
	traverseTreeAndExecute(b.root, func(n *node) {
		sort.Slice(n.arcs, func(i, j int) bool {
			return n.arcs[i].letter < n.arcs[j].letter
		})
	})
	b.minimize()
	if b.numNodes+b.numArcs+1 > NodeIdxBitMask {
		return nil, fmt.Errorf("lexicon too large: %v nodes and %v arcs exceed the arena bound",
			b.numNodes, b.numArcs)
	}

	// Deduplicate letter sets.
	letterSets := make(map[tilemapping.LetterSet]uint32)
	serializedLetterSets := []tilemapping.LetterSet{}
	traverseTreeAndExecute(b.root, func(n *node) {
		n.visited = false
		if _, ok := letterSets[n.letterSet]; !ok {
			letterSets[n.letterSet] = uint32(len(serializedLetterSets))
			serializedLetterSets = append(serializedLetterSets, n.letterSet)
		}
	})
	if uint32(len(serializedLetterSets)) > LetterSetBitMask {
		return nil, fmt.Errorf("too many letter sets: %v", len(serializedLetterSets))
	}
	log.Debug().Int("letterSets", len(serializedLetterSets)).Msg("serializing")

	// Pack nodes. Index 0 is the sentinel; the root follows at index 1.
	// Arc destinations are fixed up in a second pass once every node has
	// its final index.
	nodes := make([]uint32, 1)
	missingElements := make(map[uint32]*node)
	traverseTreeAndExecute(b.root, func(n *node) {
		if n.visited {
			return
		}
		n.visited = true
		n.indexInSerialized = uint32(len(nodes))
		nodes = append(nodes, letterSets[n.letterSet]|uint32(len(n.arcs))<<NumArcsBitLoc)
		for _, a := range n.arcs {
			missingElements[uint32(len(nodes))] = a.destination
			nodes = append(nodes, uint32(a.letter)<<LetterBitLoc)
		}
	})
	for idx, n := range missingElements {
		nodes[idx] |= n.indexInSerialized
	}

	log.Info().Str("lexicon", b.lexiconName).
		Int("words", b.numWords).
		Int("skipped", b.skipped).
		Int("nodeWords", len(nodes)).
		Msg("compiled dawg")

	return &SimpleDawg{
		nodes:       nodes,
		letterSets:  serializedLetterSets,
		alphabet:    b.alphabet,
		lexiconName: b.lexiconName,
	}, nil
}

// BuildFromWords compiles a word list directly into a SimpleDawg. Tests
// use this to construct small hermetic lexicons.
func BuildFromWords(rm *tilemapping.TileMapping, lexiconName string, words []string) (*SimpleDawg, error) {
	b := NewBuilder(rm, lexiconName)
	b.AddWords(words)
	return b.Compile()
}

// BuildFromTextFile compiles a newline-separated word list file. The
// first whitespace-separated field of each line is the word; anything
// after it (definitions, counts) is ignored. UTF-8 input is normalized
// to NFC; latin1 input is decoded through the ISO 8859-1 charmap.
func BuildFromTextFile(rm *tilemapping.TileMapping, lexiconName, path string,
	enc WordListEncoding) (*SimpleDawg, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader
	switch enc {
	case EncodingLatin1:
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case EncodingUTF8, "":
		r = norm.NFC.Reader(f)
	default:
		return nil, fmt.Errorf("unknown word list encoding %q", enc)
	}

	b := NewBuilder(rm, lexiconName)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	words := []string{}
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) > 0 {
			words = append(words, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	log.Info().Int("words", len(words)).Str("path", path).Msg("read word list")
	b.AddWords(words)
	return b.Compile()
}

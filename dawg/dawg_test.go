package dawg

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/crosshatch/tilemapping"
)

var testWords = []string{
	"AA", "AB", "BA", "CARE", "CARES", "CAT", "CATS", "DOG", "DOGS", "GOD",
}

func testDawg(t *testing.T, words []string) *SimpleDawg {
	t.Helper()
	d, err := BuildFromWords(tilemapping.EnglishAlphabet(), "test", words)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestHasWord(t *testing.T) {
	is := is.New(t)
	d := testDawg(t, testWords)
	alph := d.TileMapping()

	type wordCase struct {
		word string
		has  bool
	}
	cases := []wordCase{
		{"AA", true},
		{"AB", true},
		{"BA", true},
		{"CARE", true},
		{"CARES", true},
		{"CAT", true},
		{"CATS", true},
		{"DOG", true},
		{"GOD", true},
		{"CA", false},   // prefix only
		{"CAR", false},  // prefix only
		{"ARES", false}, // suffix only
		{"A", false},    // too short
		{"TACS", false},
		{"ZZZZ", false},
		{"CATSS", false}, // past a terminal
	}
	for _, tc := range cases {
		mw, err := tilemapping.ToMachineWord(tc.word, alph)
		is.NoErr(err)
		if d.HasWord(mw) != tc.has {
			t.Errorf("HasWord(%v): expected %v", tc.word, tc.has)
		}
	}
}

func TestRootArcs(t *testing.T) {
	is := is.New(t)
	d := testDawg(t, testWords)
	root := d.GetRootNodeIndex()
	is.Equal(root, uint32(1))

	// First letters of the word list: A, B, C, D, G.
	is.Equal(d.NumArcs(root), byte(5))
	letters := []tilemapping.MachineLetter{}
	d.IterateArcs(root, func(letter tilemapping.MachineLetter, childIdx uint32) {
		is.True(childIdx != 0)
		letters = append(letters, letter)
	})
	is.Equal(letters, []tilemapping.MachineLetter{1, 2, 3, 4, 7})
}

func TestNextNodeIdxAndLetterSet(t *testing.T) {
	is := is.New(t)
	d := testDawg(t, testWords)
	root := d.GetRootNodeIndex()

	aNode := d.NextNodeIdx(root, 1)
	is.True(aNode != 0)
	// AA and AB terminate here.
	is.True(d.InLetterSet(1, aNode))
	is.True(d.InLetterSet(2, aNode))
	is.True(!d.InLetterSet(3, aNode))

	// No arc for E from the root.
	is.Equal(d.NextNodeIdx(root, 5), uint32(0))

	// Blanked letters traverse as their designated letter.
	is.True(d.InLetterSet(tilemapping.MachineLetter(2).Blank(), aNode))
	is.True(d.NextNodeIdx(root, tilemapping.MachineLetter(3).Blank()) != 0)
}

func TestHasWordWithBlanks(t *testing.T) {
	is := is.New(t)
	d := testDawg(t, testWords)
	mw, err := tilemapping.ToMachineWord("cAt", d.TileMapping())
	is.NoErr(err)
	is.True(d.HasWord(mw))
}

func TestMinimizationSharesStructure(t *testing.T) {
	is := is.New(t)
	// CATS and DOGS share their S tails, CARE/CARES collapse too; the
	// minimized arena has to be smaller than the raw trie's nine words
	// worth of nodes would suggest.
	d := testDawg(t, testWords)
	flat := testDawg(t, []string{"AA", "AB", "BA"})
	is.True(d.NumNodeWords() > flat.NumNodeWords())

	// Insertion order must not matter.
	reversed := make([]string, len(testWords))
	for i, w := range testWords {
		reversed[len(testWords)-1-i] = w
	}
	d2 := testDawg(t, reversed)
	is.Equal(d.NumNodeWords(), d2.NumNodeWords())
}

func TestAddWordBounds(t *testing.T) {
	is := is.New(t)
	b := NewBuilder(tilemapping.EnglishAlphabet(), "bounds")
	err := b.AddWord(tilemapping.MachineWord{1})
	is.True(err != nil)
	long := make(tilemapping.MachineWord, MaxWordLength+1)
	for i := range long {
		long[i] = 1
	}
	is.True(b.AddWord(long) != nil)
	is.NoErr(b.AddWord(tilemapping.MachineWord{1, 1}))
}

func TestAddWordsSkipsBadInput(t *testing.T) {
	is := is.New(t)
	b := NewBuilder(tilemapping.EnglishAlphabet(), "skips")
	b.AddWords([]string{"HELLO", "X", "NAÏVE", "WORLD"})
	is.Equal(b.Skipped(), 2)
	d, err := b.Compile()
	is.NoErr(err)
	mw, err := tilemapping.ToMachineWord("HELLO", d.TileMapping())
	is.NoErr(err)
	is.True(d.HasWord(mw))
}

func TestDuplicateAddIsIdempotent(t *testing.T) {
	is := is.New(t)
	d1 := testDawg(t, []string{"CAT", "DOG"})
	d2 := testDawg(t, []string{"CAT", "CAT", "DOG", "DOG", "CAT"})
	is.Equal(d1.NumNodeWords(), d2.NumNodeWords())
}

func TestCompileEmptyFails(t *testing.T) {
	is := is.New(t)
	b := NewBuilder(tilemapping.EnglishAlphabet(), "empty")
	_, err := b.Compile()
	is.True(err != nil)
}

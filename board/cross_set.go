package board

import (
	"github.com/domino14/crosshatch/tilemapping"
)

const (
	// TrivialCrossSet allows every possible letter. It is the default
	// state of a square with no perpendicular neighbors.
	TrivialCrossSet = CrossSet((1 << tilemapping.MaxAlphabetSize) - 1)
)

// A CrossSet is a bit mask of letters that are allowed on a square. It is
// inherently directional. The set stored under a direction label was
// computed from the word fragments running in that direction, so when
// generating moves HORIZONTALLY we consult the VERTICAL cross set: it is
// the one built from the tile(s) above and/or below the relevant square.
type CrossSet uint64

func (c CrossSet) Allowed(letter tilemapping.MachineLetter) bool {
	return c&(1<<uint8(letter.Unblank())) != 0
}

func (c *CrossSet) Set(letter tilemapping.MachineLetter) {
	*c = *c | (1 << letter)
}

func (c *CrossSet) SetAll() {
	*c = TrivialCrossSet
}

func (c *CrossSet) Clear() {
	*c = 0
}

// CrossSetFromString is a test convenience to build a cross set out of
// the given letters.
func CrossSetFromString(letters string, alph *tilemapping.TileMapping) CrossSet {
	c := CrossSet(0)
	for _, l := range letters {
		v, err := alph.Val(l)
		if err != nil {
			panic("letter error: " + string(l))
		}
		c.Set(v)
	}
	return c
}

package tilemapping

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// A Bag is the bag o'tiles! It contains the unseen tiles for a game,
// drawn from a letter distribution.
type Bag struct {
	numTiles        int
	initialNumTiles int

	initialUniqueLetters []MachineLetter
	initialTileMap       map[MachineLetter]uint8
	tileMap              map[MachineLetter]uint8
	letterDistribution   *LetterDistribution
	rng                  *frand.RNG
}

func copyTileMap(orig map[MachineLetter]uint8) map[MachineLetter]uint8 {
	tm := make(map[MachineLetter]uint8)
	for k, v := range orig {
		tm[k] = v
	}
	return tm
}

// NewBag creates a full bag from the letter distribution.
func NewBag(ld *LetterDistribution, rm *TileMapping) *Bag {
	tileMap := map[MachineLetter]uint8{}

	numTiles := 0
	initialUniqueLetters := []MachineLetter{}
	for ml, ct := range ld.Distribution() {
		tileMap[MachineLetter(ml)] = ct
		numTiles += int(ct)
		initialUniqueLetters = append(initialUniqueLetters, MachineLetter(ml))
	}

	sort.Slice(initialUniqueLetters, func(a, b int) bool {
		return initialUniqueLetters[a] < initialUniqueLetters[b]
	})

	return &Bag{
		tileMap:         tileMap,
		numTiles:        numTiles,
		initialNumTiles: numTiles,
		initialTileMap:  copyTileMap(tileMap),

		initialUniqueLetters: initialUniqueLetters,
		letterDistribution:   ld,
		rng:                  frand.New(),
	}
}

// SetRandomSource sets the random source used for tile draws. Tests use
// this with a seeded generator for reproducibility.
func (b *Bag) SetRandomSource(rng *frand.RNG) {
	b.rng = rng
}

// Refill refills the bag.
func (b *Bag) Refill() {
	b.tileMap = copyTileMap(b.initialTileMap)
	b.numTiles = b.initialNumTiles
}

// DrawAtMost draws at most n tiles from the bag. It can draw fewer if there
// are fewer tiles than n, and even draw no tiles at all :o
func (b *Bag) DrawAtMost(n int) ([]MachineLetter, error) {
	if n > b.numTiles {
		n = b.numTiles
	}
	return b.Draw(n)
}

func (b *Bag) drawTileAt(idx int) (MachineLetter, error) {
	// Draw the tile "at" the given index, counting up through the
	// remaining tile counts.
	if idx >= b.numTiles {
		return 0, errors.New("tile index out of range")
	}
	counter := 0
	potentialLetterIdx := 0
	var drawn MachineLetter
	for {
		potentialLetter := b.initialUniqueLetters[potentialLetterIdx]
		counter += int(b.tileMap[potentialLetter])
		if counter > idx {
			drawn = potentialLetter
			break
		}
		potentialLetterIdx++
	}
	b.tileMap[drawn]--
	b.numTiles--
	return drawn, nil
}

// Draw draws n tiles from the bag.
func (b *Bag) Draw(n int) ([]MachineLetter, error) {
	if n > b.numTiles {
		return nil, fmt.Errorf("tried to draw %v tiles, tile bag has %v",
			n, b.numTiles)
	}
	drawnTiles := make([]MachineLetter, n)
	var err error
	for i := 0; i < n; i++ {
		drawnTiles[i], err = b.drawTileAt(b.rng.Intn(b.numTiles))
		if err != nil {
			return nil, err
		}
	}
	return drawnTiles, nil
}

// Peek returns the tiles remaining in the bag, in machine letter order.
func (b *Bag) Peek() []MachineLetter {
	ret := make([]MachineLetter, b.numTiles)
	idx := 0
	for _, lt := range b.initialUniqueLetters {
		for i := uint8(0); i < b.tileMap[lt]; i++ {
			ret[idx] = lt
			idx++
		}
	}
	return ret
}

// Exchange exchanges the junk in your rack with new tiles.
func (b *Bag) Exchange(letters []MachineLetter) ([]MachineLetter, error) {
	newTiles, err := b.Draw(len(letters))
	if err != nil {
		return nil, err
	}
	// put exchanged tiles back into the bag
	b.PutBack(letters)
	return newTiles, nil
}

// PutBack puts the tiles back in the bag.
func (b *Bag) PutBack(letters []MachineLetter) {
	if len(letters) == 0 {
		return
	}
	for _, ml := range letters {
		if ml.IsBlanked() {
			ml = 0
		}
		b.tileMap[ml]++
	}
	b.numTiles += len(letters)
}

// hasTiles returns a boolean indicating whether the passed-in tiles are
// in the bag, in their entirety.
func (b *Bag) hasTiles(letters []MachineLetter) bool {
	submap := make(map[MachineLetter]uint8)

	for _, ml := range letters {
		if ml.IsBlanked() {
			submap[0]++
		} else {
			submap[ml]++
		}
	}
	for ml, ct := range submap {
		if b.tileMap[ml] < ct {
			return false
		}
	}

	return true
}

func (b *Bag) TilesRemaining() int {
	return b.numTiles
}

func (b *Bag) remove(t MachineLetter) {
	if b.tileMap[t] == 0 {
		log.Fatal().Msgf("tile %v not found in bag", t)
	}
	b.tileMap[t]--
}

// RemoveTiles removes the given tiles from the bag, and returns an error
// if it can't.
func (b *Bag) RemoveTiles(tiles []MachineLetter) error {
	if !b.hasTiles(tiles) {
		return fmt.Errorf("cannot remove the tiles %v from the bag, as they are not in the bag",
			MachineWord(tiles).UserVisible(b.letterDistribution.TileMapping()))
	}
	for _, t := range tiles {
		if t.IsBlanked() {
			b.remove(0)
		} else {
			b.remove(t)
		}
	}
	b.numTiles -= len(tiles)
	return nil
}

// CountOf returns the number of copies of the given letter left in the bag.
func (b *Bag) CountOf(ml MachineLetter) uint8 {
	if ml.IsBlanked() {
		ml = 0
	}
	return b.tileMap[ml]
}

// Copy copies to a new bag and returns it. The initial tile structures
// are shared; they never change after initialization. If rng is nil the
// copy shares the original's random source.
func (b *Bag) Copy(rng *frand.RNG) *Bag {
	tileMap := copyTileMap(b.tileMap)
	if rng == nil {
		rng = b.rng
	}

	return &Bag{
		tileMap:              tileMap,
		numTiles:             b.numTiles,
		initialNumTiles:      b.initialNumTiles,
		initialUniqueLetters: b.initialUniqueLetters,

		initialTileMap:     b.initialTileMap,
		letterDistribution: b.letterDistribution,
		rng:                rng,
	}
}

func (b *Bag) LetterDistribution() *LetterDistribution {
	return b.letterDistribution
}

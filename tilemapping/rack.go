package tilemapping

import (
	"github.com/rs/zerolog/log"
)

// RackSize is the maximum number of tiles a player may hold.
const RackSize = 7

// Rack is a machine-friendly representation of a player's rack. It is
// a count of tiles per machine letter; the blank is at 0.
type Rack struct {
	LetArr             []int
	numLetters         uint8
	alphabet           *TileMapping
	numPossibleLetters uint8
}

// NewRack creates a brand new rack structure with an alphabet.
func NewRack(alph *TileMapping) *Rack {
	return &Rack{
		alphabet:           alph,
		LetArr:             make([]int, int(alph.NumLetters())+1),
		numPossibleLetters: alph.NumLetters(),
	}
}

// String returns a user-visible version of this rack.
func (r *Rack) String() string {
	return r.TilesOn().UserVisible(r.alphabet)
}

// Copy returns a deep copy of this rack.
func (r *Rack) Copy() *Rack {
	n := &Rack{
		numLetters:         r.numLetters,
		alphabet:           r.alphabet,
		numPossibleLetters: r.numPossibleLetters,
	}
	n.LetArr = make([]int, len(r.LetArr))
	copy(n.LetArr, r.LetArr)
	return n
}

// CopyFrom copies the passed-in rack into this one, reusing the letter
// array if possible.
func (r *Rack) CopyFrom(other *Rack) {
	r.numLetters = other.numLetters
	r.alphabet = other.alphabet
	r.numPossibleLetters = other.numPossibleLetters
	if r.LetArr == nil || len(r.LetArr) != len(other.LetArr) {
		r.LetArr = make([]int, len(other.LetArr))
	}
	copy(r.LetArr, other.LetArr)
}

// RackFromString creates a Rack from a string and an alphabet.
func RackFromString(rack string, a *TileMapping) *Rack {
	r := NewRack(a)
	r.setFromStr(rack)
	return r
}

func (r *Rack) setFromStr(rack string) {
	r.Clear()
	mls, err := ToMachineLetters(rack, r.alphabet)
	if err != nil {
		log.Error().Err(err).Msg("unable to convert rack")
		return
	}

	for _, ml := range mls {
		r.LetArr[ml]++
	}
	r.numLetters = uint8(len(mls))
}

// Set sets the rack from a list of machine letters.
func (r *Rack) Set(mls []MachineLetter) {
	r.Clear()
	for _, ml := range mls {
		r.LetArr[ml]++
	}
	r.numLetters = uint8(len(mls))
}

func (r *Rack) Clear() {
	for i := range r.LetArr {
		r.LetArr[i] = 0
	}
	r.numLetters = 0
}

// Take removes a letter from the rack. It does not check whether the
// letter is actually there; that is the caller's responsibility.
func (r *Rack) Take(letter MachineLetter) {
	r.LetArr[letter]--
	r.numLetters--
}

func (r *Rack) Has(letter MachineLetter) bool {
	return r.LetArr[letter] > 0
}

func (r *Rack) CountOf(letter MachineLetter) int {
	return r.LetArr[letter]
}

func (r *Rack) Add(letter MachineLetter) {
	r.LetArr[letter]++
	r.numLetters++
}

// TilesOn returns the MachineLetters of the rack's current tiles,
// alphabetized.
func (r *Rack) TilesOn() MachineWord {
	if r.numLetters == 0 {
		return MachineWord([]MachineLetter{})
	}
	letters := make([]MachineLetter, r.numLetters)
	ct := 0
	for i := 0; i < len(r.LetArr); i++ {
		for j := 0; j < r.LetArr[i]; j++ {
			letters[ct] = MachineLetter(i)
			ct++
		}
	}
	return MachineWord(letters)
}

// ScoreOn returns the total score of the tiles on this rack.
func (r *Rack) ScoreOn(ld *LetterDistribution) int {
	score := 0
	for i := 0; i < len(r.LetArr); i++ {
		if r.LetArr[i] > 0 {
			score += ld.Score(MachineLetter(i)) * r.LetArr[i]
		}
	}
	return score
}

// NumTiles returns the current number of tiles on this rack.
func (r *Rack) NumTiles() uint8 {
	return r.numLetters
}

func (r *Rack) Empty() bool {
	return r.numLetters == 0
}

func (r *Rack) Alphabet() *TileMapping {
	return r.alphabet
}

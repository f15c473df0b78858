package tilemapping

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
)

//go:embed data/*.csv
var defaultDistributions embed.FS

// LetterDistribution encodes the tile distribution for the relevant game.
// The blank must be the first row of the source CSV so that machine letter
// values index the distribution and score arrays directly.
type LetterDistribution struct {
	tilemapping      *TileMapping
	Vowels           []MachineLetter
	distribution     []uint8
	scores           []int
	numUniqueLetters uint
	numLetters       uint
	Name             string
}

// ScanLetterDistribution reads a letter distribution from a CSV stream.
// Rows look like `letter,quantity,value,vowel`; the first row describes
// the blank.
func ScanLetterDistribution(data io.Reader, name string) (*LetterDistribution, error) {
	r := csv.NewReader(data)
	dist := []uint8{}
	ptValues := []int{}
	vowels := []MachineLetter{}
	rm := &TileMapping{}
	rm.Init()
	sortMap := map[rune]int{}
	idx := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		letter := []rune(record[0])
		if len(letter) != 1 {
			return nil, fmt.Errorf("letter %v must be a single rune", record[0])
		}
		n, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, err
		}
		p, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, err
		}
		if idx == 0 && letter[0] != BlankToken {
			return nil, fmt.Errorf("first row of distribution %v must be the blank", name)
		}
		if v == 1 {
			vowels = append(vowels, MachineLetter(idx))
		}
		if letter[0] != BlankToken {
			if err := rm.Update(string(letter)); err != nil {
				return nil, err
			}
			sortMap[letter[0]] = idx
		}
		dist = append(dist, uint8(n))
		ptValues = append(ptValues, p)
		idx++
	}
	rm.Reconcile(sortMap)
	ld := newLetterDistribution(rm, dist, ptValues, vowels)
	ld.Name = name
	return ld, nil
}

func newLetterDistribution(rm *TileMapping, dist []uint8,
	ptValues []int, vowels []MachineLetter) *LetterDistribution {

	numTotalLetters := uint(0)
	numUniqueLetters := uint(len(dist))
	for _, v := range dist {
		numTotalLetters += uint(v)
	}
	// Note: numUniqueLetters/numTotalLetters includes the blank.

	return &LetterDistribution{
		tilemapping:      rm,
		distribution:     dist,
		scores:           ptValues,
		Vowels:           vowels,
		numUniqueLetters: numUniqueLetters,
		numLetters:       numTotalLetters,
	}
}

// NamedLetterDistribution loads a letter distribution by name, looking
// in dataPath first and then falling back to the embedded defaults.
func NamedLetterDistribution(dataPath string, name string) (*LetterDistribution, error) {
	filename := name + ".csv"
	if dataPath != "" {
		ondisk := filepath.Join(dataPath, "letterdistributions", filename)
		if f, err := os.Open(ondisk); err == nil {
			defer f.Close()
			return ScanLetterDistribution(f, name)
		}
	}
	f, err := defaultDistributions.Open("data/" + filename)
	if err != nil {
		return nil, fmt.Errorf("letter distribution %v not found", name)
	}
	defer f.Close()
	log.Debug().Str("name", name).Msg("using embedded letter distribution")
	return ScanLetterDistribution(f, name)
}

// EnglishLetterDistribution returns the English letter distribution. Useful
// for tests.
func EnglishLetterDistribution() (*LetterDistribution, error) {
	return NamedLetterDistribution("", "english")
}

// Score gives the score of the given machine letter. This is used by the
// move generator to score plays more rapidly than looking up a map.
func (ld *LetterDistribution) Score(ml MachineLetter) int {
	if ml.IsBlanked() {
		return ld.scores[0] // the blank
	}
	return ld.scores[ml]
}

func (ld *LetterDistribution) TileMapping() *TileMapping {
	return ld.tilemapping
}

// WordScore returns the sum of the letter scores of this word.
func (ld *LetterDistribution) WordScore(mw MachineWord) int {
	score := 0
	for _, c := range mw {
		score += ld.Score(c)
	}
	return score
}

func (ld *LetterDistribution) Distribution() []uint8 {
	return ld.distribution
}

// NumTotalTiles returns the number of tiles in the full bag.
func (ld *LetterDistribution) NumTotalTiles() int {
	return int(ld.numLetters)
}

// MakeBag returns a shuffled bag of tiles.
func (ld *LetterDistribution) MakeBag() *Bag {
	return NewBag(ld, ld.tilemapping)
}

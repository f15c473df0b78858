package movegen

import (
	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

// generateExchangeMoves appends an exchange move for every non-empty
// subset of the rack's tiles. Subsets are enumerated with an odometer
// over the distinct letters, so the order is deterministic.
func (gen *Generator) generateExchangeMoves(rack *tilemapping.Rack) {
	alph := gen.dawg.TileMapping()

	var distinct []tilemapping.MachineLetter
	var avail []int
	for i := 0; i < len(rack.LetArr); i++ {
		if rack.LetArr[i] > 0 {
			distinct = append(distinct, tilemapping.MachineLetter(i))
			avail = append(avail, rack.LetArr[i])
		}
	}
	if len(distinct) == 0 {
		return
	}
	counts := make([]int, len(distinct))
	for {
		i := 0
		for i < len(counts) {
			counts[i]++
			if counts[i] <= avail[i] {
				break
			}
			counts[i] = 0
			i++
		}
		if i == len(counts) {
			break
		}
		tiles := tilemapping.MachineWord{}
		leave := tilemapping.MachineWord{}
		for j, ml := range distinct {
			for k := 0; k < counts[j]; k++ {
				tiles = append(tiles, ml)
			}
			for k := counts[j]; k < avail[j]; k++ {
				leave = append(leave, ml)
			}
		}
		gen.plays = append(gen.plays, move.NewExchangeMove(tiles, leave, alph))
	}
}

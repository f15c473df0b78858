package move

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/domino14/crosshatch/tilemapping"
)

// MoveType is a type of move; a play, an exchange, a pass.
type MoveType uint8

const (
	MoveTypePlay MoveType = iota
	MoveTypeExchange
	MoveTypePass
)

// Move is a candidate move. For a tile play, the tiles are the strip of
// machine letters covering the main word; 0 marks a play-through square
// whose letter was already on the board. Candidates are ephemeral: the
// generator creates them, the selector compares them, and only the
// chosen one is ever applied to a board.
type Move struct {
	action      MoveType
	score       int
	coords      string
	tiles       tilemapping.MachineWord
	leave       tilemapping.MachineWord
	rowStart    int
	colStart    int
	vertical    bool
	bingo       bool
	tilesPlayed int
	alph        *tilemapping.TileMapping
}

var reVertical, reHorizontal *regexp.Regexp

func init() {
	reVertical = regexp.MustCompile(`^(?P<col>[A-Z])(?P<row>[0-9]+)$`)
	reHorizontal = regexp.MustCompile(`^(?P<row>[0-9]+)(?P<col>[A-Z])$`)
}

// String provides a string just for debugging purposes.
func (m *Move) String() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf(
			"<action: play word: %v %v score: %v tp: %v leave: %v>",
			m.coords, m.TilesString(), m.score, m.tilesPlayed, m.LeaveString())
	case MoveTypePass:
		return fmt.Sprintf("<action: pass leave: %v>", m.LeaveString())
	case MoveTypeExchange:
		return fmt.Sprintf("<action: exchange %v leave: %v>",
			m.TilesString(), m.LeaveString())
	}
	return "<unhandled move>"
}

func (m *Move) TilesString() string {
	return m.tiles.UserVisiblePlayedTiles(m.alph)
}

func (m *Move) LeaveString() string {
	return m.leave.UserVisible(m.alph)
}

// ShortDescription provides a short description, useful for logging or
// user display.
func (m *Move) ShortDescription() string {
	switch m.action {
	case MoveTypePlay:
		return fmt.Sprintf("%v %v", m.coords, m.TilesString())
	case MoveTypePass:
		return "(Pass)"
	case MoveTypeExchange:
		return fmt.Sprintf("(exch %v)", m.TilesString())
	}
	return "UNHANDLED"
}

func (m *Move) Action() MoveType {
	return m.action
}

// TilesPlayed returns the number of tiles placed from the rack by this
// move.
func (m *Move) TilesPlayed() int {
	return m.tilesPlayed
}

// Bingo returns whether this play used the player's entire rack.
func (m *Move) Bingo() bool {
	return m.bingo
}

// SetScore assigns the score. Used when a move is built before the
// board context that determines its score is consulted.
func (m *Move) SetScore(score int) {
	m.score = score
}

func (m *Move) Score() int {
	return m.score
}

func (m *Move) Leave() tilemapping.MachineWord {
	return m.leave
}

func (m *Move) Tiles() tilemapping.MachineWord {
	return m.tiles
}

func (m *Move) Alphabet() *tilemapping.TileMapping {
	return m.alph
}

func (m *Move) CoordsAndVertical() (int, int, bool) {
	return m.rowStart, m.colStart, m.vertical
}

func (m *Move) BoardCoords() string {
	return m.coords
}

// NewScoringMove creates a tile-play move.
func NewScoringMove(score int, tiles tilemapping.MachineWord,
	leave tilemapping.MachineWord, vertical bool, tilesPlayed int,
	alph *tilemapping.TileMapping, rowStart, colStart int) *Move {

	return &Move{
		action: MoveTypePlay, score: score, tiles: tiles, leave: leave,
		vertical: vertical, bingo: tilesPlayed == tilemapping.RackSize,
		tilesPlayed: tilesPlayed, alph: alph,
		rowStart: rowStart, colStart: colStart,
		coords: ToBoardGameCoords(rowStart, colStart, vertical),
	}
}

// NewScoringMoveSimple takes in user-visible strings. It is a little
// slower than NewScoringMove, so it is mostly for tests.
func NewScoringMoveSimple(score int, coords string, word string, leave string,
	alph *tilemapping.TileMapping) (*Move, error) {

	row, col, vertical := FromBoardGameCoords(coords)

	tiles, err := tilemapping.ToMachineWord(word, alph)
	if err != nil {
		return nil, err
	}
	leaveMW, err := tilemapping.ToMachineWord(leave, alph)
	if err != nil {
		return nil, err
	}
	tilesPlayed := 0
	for _, t := range tiles {
		if t != 0 {
			tilesPlayed++
		}
	}

	return &Move{
		action:      MoveTypePlay,
		score:       score,
		tiles:       tiles,
		leave:       leaveMW,
		vertical:    vertical,
		bingo:       tilesPlayed == tilemapping.RackSize,
		tilesPlayed: tilesPlayed,
		alph:        alph,
		rowStart:    row,
		colStart:    col,
		coords:      coords,
	}, nil
}

// NewExchangeMove creates an exchange.
func NewExchangeMove(tiles tilemapping.MachineWord, leave tilemapping.MachineWord,
	alph *tilemapping.TileMapping) *Move {
	return &Move{
		action:      MoveTypeExchange,
		tiles:       tiles,
		leave:       leave,
		tilesPlayed: len(tiles), // tiles exchanged, really..
		alph:        alph,
	}
}

// NewPassMove creates a pass with the given leave.
func NewPassMove(leave tilemapping.MachineWord, alph *tilemapping.TileMapping) *Move {
	return &Move{
		action: MoveTypePass,
		leave:  leave,
		alph:   alph,
	}
}

// UniqueSingleTileKey returns a key that is identical for single-tile
// plays that place the same tile on the same square, regardless of the
// direction they were generated in.
func (m *Move) UniqueSingleTileKey() int {
	// Find the tile.
	var idx int
	var ml tilemapping.MachineLetter
	for idx, ml = range m.tiles {
		if ml != 0 {
			break
		}
	}

	row := m.rowStart
	col := m.colStart
	// We want to get the coordinate of the tile that is on the board itself.
	if m.vertical {
		row += idx
	} else {
		col += idx
	}
	return row + tilemapping.MaxAlphabetSize*col +
		tilemapping.MaxAlphabetSize*tilemapping.MaxAlphabetSize*int(ml)
}

// Compare orders two moves canonically: higher score first, then lower
// starting row, then lower starting column, then horizontal before
// vertical, then lexicographically smaller tile strip. It returns a
// negative number if m sorts before o, positive if after, and zero only
// for identical plays, so the ordering is total.
func (m *Move) Compare(o *Move) int {
	if m.score != o.score {
		return o.score - m.score
	}
	if m.rowStart != o.rowStart {
		return m.rowStart - o.rowStart
	}
	if m.colStart != o.colStart {
		return m.colStart - o.colStart
	}
	if m.vertical != o.vertical {
		if m.vertical {
			return 1
		}
		return -1
	}
	for i := 0; i < len(m.tiles) && i < len(o.tiles); i++ {
		if m.tiles[i] != o.tiles[i] {
			return int(m.tiles[i]) - int(o.tiles[i])
		}
	}
	return len(m.tiles) - len(o.tiles)
}

// ToBoardGameCoords converts the row, col, and orientation of the play to
// a coordinate like 5F or G4.
func ToBoardGameCoords(row int, col int, vertical bool) string {
	colCoords := string(rune('A' + col))
	rowCoords := strconv.Itoa(row + 1)
	if vertical {
		return colCoords + rowCoords
	}
	return rowCoords + colCoords
}

// FromBoardGameCoords does the inverse operation of ToBoardGameCoords
// above.
func FromBoardGameCoords(c string) (int, int, bool) {
	vMatches := reVertical.FindStringSubmatch(c)
	var row, col int
	if len(vMatches) == 3 {
		row, _ = strconv.Atoi(vMatches[2])
		col = int(vMatches[1][0] - 'A')
		return row - 1, col, true
	}
	hMatches := reHorizontal.FindStringSubmatch(c)
	if len(hMatches) == 3 {
		row, _ = strconv.Atoi(hMatches[1])
		col = int(hMatches[2][0] - 'A')
		return row - 1, col, false
	}

	return 0, 0, false
}

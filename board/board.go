package board

import (
	"fmt"

	"github.com/domino14/crosshatch/move"
	"github.com/domino14/crosshatch/tilemapping"
)

type BoardDirection uint8
type WordDirection int

func (bd BoardDirection) String() string {
	if bd == HorizontalDirection {
		return "(horizontal)"
	} else if bd == VerticalDirection {
		return "(vertical)"
	}
	return "none"
}

const (
	HorizontalDirection BoardDirection = iota
	VerticalDirection
)

const (
	LeftDirection  WordDirection = -1
	RightDirection WordDirection = 1
)

// An IllegalPlacementError is returned for any attempt to put a tile on
// an occupied square. Squares never free up during a game, so this is
// always a caller bug or an illegal play, and is surfaced rather than
// silently ignored.
type IllegalPlacementError struct {
	Row, Col int
}

func (e *IllegalPlacementError) Error() string {
	return fmt.Sprintf("square at row %d, col %d is already occupied", e.Row, e.Col)
}

// A GameBoard is the main board structure. It contains all of the
// Squares, with bonuses or filled letters, as well as cross-sets,
// cross-scores and anchors for move generation. (See the Appel &
// Jacobson paper for the definitions of the latter terms.)
type GameBoard struct {
	squares     [][]*Square
	transposed  bool
	tilesPlayed int
}

// CrosshatchGameBoard is the standard 15x15 letterpress layout. The
// center square is a double word score.
var CrosshatchGameBoard = []string{
	`=  '   =   '  =`,
	` -   "   "   - `,
	`  -   ' '   -  `,
	`'  -   '   -  '`,
	`    -     -    `,
	` "   "   "   " `,
	`  '   ' '   '  `,
	`=  '   -   '  =`,
	`  '   ' '   '  `,
	` "   "   "   " `,
	`    -     -    `,
	`'  -   '   -  '`,
	`  -   ' '   -  `,
	` -   "   "   - `,
	`=  '   =   '  =`,
}

// MakeBoard creates a board from a description string array.
func MakeBoard(desc []string) *GameBoard {
	rows := [][]*Square{}
	for _, s := range desc {
		row := []*Square{}
		for _, c := range s {
			row = append(row, &Square{letter: 0, bonus: BonusSquare(c)})
		}
		rows = append(rows, row)
	}
	g := &GameBoard{squares: rows}
	g.SetAllCrosses()
	g.UpdateAllAnchors()
	return g
}

// Dim is the dimension of the board. It assumes the board is square.
func (g *GameBoard) Dim() int {
	return len(g.squares)
}

func (g *GameBoard) GetBonus(row int, col int) BonusSquare {
	return g.squares[row][col].bonus
}

func (g *GameBoard) GetSquare(row int, col int) *Square {
	return g.squares[row][col]
}

func (g *GameBoard) SetLetter(row int, col int, letter tilemapping.MachineLetter) {
	wasEmpty := g.squares[row][col].IsEmpty()
	if wasEmpty && letter != 0 {
		g.tilesPlayed++
	} else if !wasEmpty && letter == 0 {
		g.tilesPlayed--
	}
	g.squares[row][col].letter = letter
}

func (g *GameBoard) GetLetter(row int, col int) tilemapping.MachineLetter {
	return g.squares[row][col].letter
}

func (g *GameBoard) HasLetter(row int, col int) bool {
	return !g.squares[row][col].IsEmpty()
}

func (g *GameBoard) GetCrossSet(row int, col int, dir BoardDirection) CrossSet {
	return *g.squares[row][col].getCrossSet(dir) // the actual value
}

func (g *GameBoard) ClearCrossSet(row int, col int, dir BoardDirection) {
	g.squares[row][col].getCrossSet(dir).Clear()
}

func (g *GameBoard) SetCrossSet(row int, col int, cs CrossSet, dir BoardDirection) {
	g.squares[row][col].setCrossSet(cs, dir)
}

func (g *GameBoard) SetCrossSetLetter(row int, col int, dir BoardDirection,
	ml tilemapping.MachineLetter) {
	g.squares[row][col].getCrossSet(dir).Set(ml)
}

func (g *GameBoard) GetCrossScore(row int, col int, dir BoardDirection) int {
	return g.squares[row][col].getCrossScore(dir)
}

func (g *GameBoard) SetCrossScore(row int, col int, score int, dir BoardDirection) {
	g.squares[row][col].setCrossScore(score, dir)
}

// Transpose transposes the board, swapping rows and columns. The move
// generator uses this to reuse its one-dimensional row logic for
// vertical plays.
func (g *GameBoard) Transpose() {
	n := g.Dim()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			g.squares[i][j], g.squares[j][i] = g.squares[j][i], g.squares[i][j]
		}
	}
	g.transposed = !g.transposed
}

func (g *GameBoard) IsTransposed() bool {
	return g.transposed
}

// SetAllCrosses sets the cross sets of every square to every acceptable
// letter.
func (g *GameBoard) SetAllCrosses() {
	n := g.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.squares[i][j].hcrossSet.SetAll()
			g.squares[i][j].vcrossSet.SetAll()
		}
	}
}

// ClearAllCrosses disallows all letters on all squares (more or less).
func (g *GameBoard) ClearAllCrosses() {
	n := g.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.squares[i][j].hcrossSet.Clear()
			g.squares[i][j].vcrossSet.Clear()
		}
	}
}

// Clear clears the board.
func (g *GameBoard) Clear() {
	n := g.Dim()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			g.squares[i][j].letter = 0
		}
	}
	g.tilesPlayed = 0
	// We set all crosses because every letter is technically allowed
	// on every cross-set at the very beginning.
	g.SetAllCrosses()
	g.UpdateAllAnchors()
}

// IsEmpty returns if the board is empty. This governs the first-move
// special case: the single opening anchor is the center square, and the
// first move must cover it.
func (g *GameBoard) IsEmpty() bool {
	return g.tilesPlayed == 0
}

// TilesPlayed returns the number of tiles on the board.
func (g *GameBoard) TilesPlayed() int {
	return g.tilesPlayed
}

func (g *GameBoard) updateAnchors(row int, col int) {
	sq := g.squares[row][col]
	sq.resetAnchors()
	if !sq.IsEmpty() {
		return
	}
	// An anchor is an empty square with at least one occupied neighbor;
	// a new placement must run through one to connect to what is
	// already on the board.
	var neighbor bool
	if row > 0 {
		neighbor = neighbor || !g.squares[row-1][col].IsEmpty()
	}
	if col > 0 {
		neighbor = neighbor || !g.squares[row][col-1].IsEmpty()
	}
	if row < g.Dim()-1 {
		neighbor = neighbor || !g.squares[row+1][col].IsEmpty()
	}
	if col < g.Dim()-1 {
		neighbor = neighbor || !g.squares[row][col+1].IsEmpty()
	}
	if neighbor {
		sq.setAnchor(HorizontalDirection)
		sq.setAnchor(VerticalDirection)
	}
}

// UpdateAllAnchors recomputes every anchor flag. On an empty board the
// single anchor is the center square, for horizontal generation only so
// the opening move is not enumerated twice.
func (g *GameBoard) UpdateAllAnchors() {
	n := g.Dim()
	if g.tilesPlayed > 0 {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				g.updateAnchors(i, j)
			}
		}
	} else {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				g.squares[i][j].resetAnchors()
			}
		}
		rc := n / 2
		g.squares[rc][rc].hAnchor = true
	}
}

// IsAnchor returns whether the row/col pair is an anchor in the given
// direction.
func (g *GameBoard) IsAnchor(row int, col int, dir BoardDirection) bool {
	return g.squares[row][col].anchor(dir)
}

func (g *GameBoard) PosExists(row int, col int) bool {
	d := g.Dim()
	return row >= 0 && row < d && col >= 0 && col < d
}

// LeftAndRightEmpty returns true if the squares at col - 1 and col + 1
// on this row are empty, checking carefully for boundary conditions.
func (g *GameBoard) LeftAndRightEmpty(row int, col int) bool {
	if g.PosExists(row, col-1) {
		if !g.squares[row][col-1].IsEmpty() {
			return false
		}
	}
	if g.PosExists(row, col+1) {
		if !g.squares[row][col+1].IsEmpty() {
			return false
		}
	}
	return true
}

// WordEdge finds the edge of a word on the board, returning the column.
func (g *GameBoard) WordEdge(row int, col int, dir WordDirection) int {
	for g.PosExists(row, col) && !g.squares[row][col].IsEmpty() {
		col += int(dir)
	}
	return col - int(dir)
}

// TraverseBackwardsForScore sums the tile scores of the contiguous word
// fragment ending at the given column, going left.
func (g *GameBoard) TraverseBackwardsForScore(row int, col int,
	ld *tilemapping.LetterDistribution) int {
	score := 0
	for g.PosExists(row, col) {
		ml := g.squares[row][col].letter
		if ml == 0 {
			break
		}
		score += ld.Score(ml)
		col--
	}
	return score
}

func (g *GameBoard) updateAnchorsForMove(m *move.Move) {
	row, col, vertical := m.CoordsAndVertical()
	// Anchors are a purely local property, so only the played squares
	// and their neighbors can change.
	for idx := range m.Tiles() {
		var r, c int
		if vertical {
			r, c = row+idx, col
		} else {
			r, c = row, col+idx
		}
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if g.PosExists(r+dr, c+dc) {
					g.updateAnchors(r+dr, c+dc)
				}
			}
		}
	}
}

func (g *GameBoard) placeMoveTiles(m *move.Move) {
	rowStart, colStart, vertical := m.CoordsAndVertical()
	for idx, tile := range m.Tiles() {
		if tile == 0 {
			continue
		}
		if vertical {
			g.squares[rowStart+idx][colStart].letter = tile
		} else {
			g.squares[rowStart][colStart+idx].letter = tile
		}
		g.tilesPlayed++
	}
}

// PlayMove puts a move's tiles on the board and recalculates anchors.
// It validates every target square before mutating anything, so a
// failed placement leaves the board untouched. Cross-set recomputation
// is the crosses package's job and must follow every successful call.
func (g *GameBoard) PlayMove(m *move.Move) error {
	rowStart, colStart, vertical := m.CoordsAndVertical()
	for idx, tile := range m.Tiles() {
		row, col := rowStart, colStart+idx
		if vertical {
			row, col = rowStart+idx, colStart
		}
		if !g.PosExists(row, col) {
			return fmt.Errorf("play runs off the board at row %d, col %d", row, col)
		}
		if tile == 0 {
			// A play-through marker must sit on an occupied square.
			if g.squares[row][col].IsEmpty() {
				return fmt.Errorf("play-through marker over empty square at row %d, col %d",
					row, col)
			}
			continue
		}
		if !g.squares[row][col].IsEmpty() {
			return &IllegalPlacementError{Row: row, Col: col}
		}
	}
	g.placeMoveTiles(m)
	g.updateAnchorsForMove(m)
	return nil
}

// FormedWords returns the main word and every cross word that the given
// move would form, in strip order, main word first. The board must be in
// its natural (untransposed) orientation and the move must not have been
// played yet.
func (g *GameBoard) FormedWords(m *move.Move) ([]tilemapping.MachineWord, error) {
	rowStart, colStart, vertical := m.CoordsAndVertical()

	// Work in a normalized orientation where the main word runs along
	// a "row"; ri/ci swap the lookup for vertical plays.
	at := func(r, c int) tilemapping.MachineLetter {
		if vertical {
			return g.GetLetter(c, r)
		}
		return g.GetLetter(r, c)
	}
	exists := func(r, c int) bool {
		if vertical {
			return g.PosExists(c, r)
		}
		return g.PosExists(r, c)
	}
	row, col := rowStart, colStart
	if vertical {
		row, col = colStart, rowStart
	}

	words := []tilemapping.MachineWord{}
	mainWord := tilemapping.MachineWord{}
	// Letters of the word that extend before the strip.
	start := col
	for exists(row, start-1) && at(row, start-1) != 0 {
		start--
	}
	for c := start; c < col; c++ {
		mainWord = append(mainWord, at(row, c))
	}
	for idx, tile := range m.Tiles() {
		c := col + idx
		if tile == 0 {
			onBoard := at(row, c)
			if onBoard == 0 {
				return nil, fmt.Errorf("malformed move; play-through marker over empty square")
			}
			mainWord = append(mainWord, onBoard)
			continue
		}
		mainWord = append(mainWord, tile)
	}
	end := col + len(m.Tiles())
	for exists(row, end) && at(row, end) != 0 {
		mainWord = append(mainWord, at(row, end))
		end++
	}
	words = append(words, mainWord)

	// Cross words for every fresh tile.
	for idx, tile := range m.Tiles() {
		if tile == 0 {
			continue
		}
		c := col + idx
		crossWord := tilemapping.MachineWord{}
		r := row
		for exists(r-1, c) && at(r-1, c) != 0 {
			r--
		}
		for ; r < row; r++ {
			crossWord = append(crossWord, at(r, c))
		}
		crossWord = append(crossWord, tile)
		for r = row + 1; exists(r, c) && at(r, c) != 0; r++ {
			crossWord = append(crossWord, at(r, c))
		}
		if len(crossWord) > 1 {
			words = append(words, crossWord)
		}
	}
	return words, nil
}

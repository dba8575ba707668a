package entity

import (
	"bytes"
	"fmt"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = Cell("")

	BoardSize = 9
)

// WinCombos - the 8 triples that decide a game: 3 rows, 3 columns, 2 diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

var nullBytes = []byte("null")

// Cell is one square of the board: empty, "X" or "O".
// An empty cell serializes as JSON null, a mark as its literal string.
type Cell string

func (that Cell) MarshalJSON() ([]byte, error) {
	if that == EmptyCell {
		return nullBytes, nil
	}

	return []byte(`"` + string(that) + `"`), nil
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullBytes) {
		*that = EmptyCell
		return nil
	}

	switch string(data) {
	case `"` + PlayerX + `"`:
		*that = PlayerX
	case `"` + PlayerO + `"`:
		*that = PlayerO
	default:
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, data)
	}

	return nil
}

// Board is the 3x3 grid in row-major order, index 0..8.
type Board [BoardSize]Cell

// Place - puts the player's mark on the given cell.
// Callers validate turn order first; the index and occupancy checks stay
// here so an out-of-range or occupied placement can never corrupt the grid.
func (that *Board) Place(cell int, mark Cell) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that[cell] = mark

	return nil
}

// Winner - returns the mark owning a complete triple, or EmptyCell if none.
// At most one player can hold a triple in any reachable state, since moves
// alternate and the game stops the instant a win is detected.
func (that *Board) Winner() Cell {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

// IsDraw - reports whether every cell is taken and nobody won.
func (that *Board) IsDraw() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return that.Winner() == EmptyCell
}

// ToggleMark - returns the opposing mark.
func ToggleMark(mark Cell) Cell {
	if mark == PlayerX {
		return PlayerO
	}

	return PlayerX
}

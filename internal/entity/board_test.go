package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/gameroom-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: X is placed on cell 4
		err := board.Place(4, PlayerX)

		// Then: the cell holds X and nothing else changed
		require.NoError(t, err)
		assert.Equal(t, Cell(PlayerX), board[4])
		assert.Equal(t, EmptyCell, board[0])
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with X on cell 0
		board := Board{}
		require.NoError(t, board.Place(0, PlayerX))

		// When: O is placed on the same cell
		err := board.Place(0, PlayerO)

		// Then: ErrCellOccupied is returned and the cell keeps X
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, Cell(PlayerX), board[0])
	})

	t.Run("Rejects an out-of-range index", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: placing outside 0..8
		errLow := board.Place(-1, PlayerX)
		errHigh := board.Place(9, PlayerX)

		// Then: both fail with ErrInvalidCell and the board stays empty
		require.ErrorIs(t, errLow, apperror.ErrInvalidCell)
		require.ErrorIs(t, errHigh, apperror.ErrInvalidCell)
		assert.Equal(t, Board{}, board)
	})
}

func TestBoard_Winner(t *testing.T) {
	t.Run("Detects every winning triple", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where X owns one full triple
			board := Board{}
			for _, cell := range combo {
				board[cell] = PlayerX
			}

			// When: evaluating the winner
			winner := board.Winner()

			// Then: X is reported
			assert.Equal(t, Cell(PlayerX), winner, "combo %v", combo)
		}
	})

	t.Run("Returns no winner for an empty board", func(t *testing.T) {
		board := Board{}

		assert.Equal(t, EmptyCell, board.Winner())
	})

	t.Run("Returns no winner for an incomplete triple", func(t *testing.T) {
		// Given: two of three cells in a row
		board := Board{PlayerX, PlayerX, EmptyCell}

		assert.Equal(t, EmptyCell, board.Winner())
	})

	t.Run("Detects O winning a diagonal", func(t *testing.T) {
		// Given: O on 2, 4, 6
		board := Board{}
		board[2], board[4], board[6] = PlayerO, PlayerO, PlayerO

		assert.Equal(t, Cell(PlayerO), board.Winner())
	})
}

func TestBoard_IsDraw(t *testing.T) {
	t.Run("Full board without a winner is a draw", func(t *testing.T) {
		// Given: a full board with no triple
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		assert.True(t, board.IsDraw())
	})

	t.Run("Board with an empty cell is not a draw", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, EmptyCell,
		}

		assert.False(t, board.IsDraw())
	})

	t.Run("Full board with a winner is not a draw", func(t *testing.T) {
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerO, PlayerO, PlayerX,
			PlayerO, PlayerX, PlayerO,
		}

		assert.False(t, board.IsDraw())
	})
}

func TestCell_JSON(t *testing.T) {
	t.Run("Board serializes empty cells as null and marks as literals", func(t *testing.T) {
		// Given: a board with one of each cell state
		board := Board{PlayerX, PlayerO, EmptyCell}

		// When: marshaling to JSON
		data, err := json.Marshal(board)

		// Then: the wire shape is the three-valued domain from the protocol
		require.NoError(t, err)
		assert.JSONEq(t, `["X","O",null,null,null,null,null,null,null]`, string(data))
	})

	t.Run("Board deserializes from the wire shape", func(t *testing.T) {
		// Given: a wire board
		data := []byte(`["X",null,"O",null,null,null,null,null,null]`)

		// When: unmarshaling
		var board Board
		err := json.Unmarshal(data, &board)

		// Then: cells round-trip
		require.NoError(t, err)
		assert.Equal(t, Board{PlayerX, EmptyCell, PlayerO}, board)
	})

	t.Run("Rejects an unknown mark", func(t *testing.T) {
		var cell Cell
		err := json.Unmarshal([]byte(`"Z"`), &cell)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, Cell(PlayerO), ToggleMark(PlayerX))
	assert.Equal(t, Cell(PlayerX), ToggleMark(PlayerO))
}

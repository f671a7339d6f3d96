package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playrooms/tictactoe-server/internal/entity"
)

func TestBestMove(t *testing.T) {
	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: O can complete the top row at cell 2
		board := [9]string{
			entity.MarkO, entity.MarkO, entity.EmptyCell,
			entity.MarkX, entity.MarkX, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// When: the solver picks a move for O
		cell := BestMove(board, entity.MarkO)

		// Then: it completes the row
		assert.Equal(t, 2, cell)
	})

	t.Run("Blocks the opponent's winning threat", func(t *testing.T) {
		// Given: X threatens the top row; O has no win of its own
		board := [9]string{
			entity.MarkX, entity.MarkX, entity.EmptyCell,
			entity.EmptyCell, entity.MarkO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// When: the solver picks a move for O
		cell := BestMove(board, entity.MarkO)

		// Then: it blocks at cell 2
		assert.Equal(t, 2, cell)
	})

	t.Run("Prefers winning over blocking", func(t *testing.T) {
		// Given: both sides threaten a row; O is to move
		board := [9]string{
			entity.MarkX, entity.MarkX, entity.EmptyCell,
			entity.MarkO, entity.MarkO, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// When: the solver picks a move for O
		cell := BestMove(board, entity.MarkO)

		// Then: it takes its own win instead of blocking
		assert.Equal(t, 5, cell)
	})

	t.Run("Breaks ties by lowest cell index", func(t *testing.T) {
		// Given: an empty board, where every opening scores a draw under
		// perfect play
		var board [9]string

		// When: the solver picks a move for X
		cell := BestMove(board, entity.MarkX)

		// Then: the first empty cell in scan order wins the tie
		assert.Equal(t, 0, cell)
	})

	t.Run("Returns -1 when no cell is free", func(t *testing.T) {
		board := [9]string{
			entity.MarkX, entity.MarkO, entity.MarkX,
			entity.MarkX, entity.MarkO, entity.MarkO,
			entity.MarkO, entity.MarkX, entity.MarkX,
		}

		assert.Equal(t, -1, BestMove(board, entity.MarkO))
	})

	t.Run("Never loses as the second player", func(t *testing.T) {
		// Given: X opens in the corner and then always takes the lowest
		// free cell, O answers with the solver
		var board [9]string
		board[0] = entity.MarkX

		turn := entity.MarkO
		for {
			if winner, _ := entity.ScanWinner(board); winner != entity.EmptyCell {
				// Then: only the solver can have won
				assert.Equal(t, entity.MarkO, winner)
				return
			}

			if entity.IsBoardFull(board) {
				return // draw is acceptable
			}

			var cell int
			if turn == entity.MarkO {
				cell = BestMove(board, entity.MarkO)
			} else {
				for board[cell] != entity.EmptyCell {
					cell++
				}
			}

			board[cell] = turn
			turn = entity.OpposingMark(turn)
		}
	})
}

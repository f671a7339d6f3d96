package tictactoe

import (
	"math"

	"github.com/playrooms/tictactoe-server/internal/entity"
)

// BestMove returns the optimal cell for the given mark by exhaustively
// searching every legal continuation. The board has at most 9 cells, so the
// full tree is cheap to enumerate and no pruning or heuristic is needed.
// Ties are broken by the lowest cell index; -1 means no cell is free.
func BestMove(board [9]string, mark string) int {
	bestCell := -1
	bestScore := math.MinInt

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mark
		score := search(board, entity.OpposingMark(mark), mark)
		board[cell] = entity.EmptyCell

		// strictly greater keeps the lowest index on equal scores
		if score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell
}

// search - backs up +1/-1/0 leaf scores, maximizing on the solver's ply and
// minimizing on the opponent's.
func search(board [9]string, turn, solverMark string) int {
	if winner, _ := entity.ScanWinner(board); winner != entity.EmptyCell {
		if winner == solverMark {
			return 1
		}

		return -1
	}

	if entity.IsBoardFull(board) {
		return 0
	}

	best := math.MinInt
	if turn != solverMark {
		best = math.MaxInt
	}

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = turn
		score := search(board, entity.OpposingMark(turn), solverMark)
		board[cell] = entity.EmptyCell

		if turn == solverMark && score > best {
			best = score
		}

		if turn != solverMark && score < best {
			best = score
		}
	}

	return best
}

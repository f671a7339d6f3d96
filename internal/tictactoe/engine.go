package tictactoe

import (
	"github.com/playrooms/tictactoe-server/internal/apperror"
	"github.com/playrooms/tictactoe-server/internal/entity"
)

// ApplyMove validates one move against the match and applies it. Callers must
// hold the room lock so that check, mutation and snapshot form one atomic
// unit.
//
// Preconditions are checked in a fixed order and each failure leaves the
// match untouched: finished match, wrong turn, cell out of range, cell
// occupied.
func ApplyMove(match *entity.Match, mark string, cell int) error {
	if !match.Active {
		return apperror.ErrGameFinished
	}

	if match.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(match.Board) {
		return apperror.ErrInvalidCell
	}

	if match.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	match.Board[cell] = mark
	settle(match)

	return nil
}

// settle - evaluates termination after an accepted move: capture the winner
// and its triple, or declare a draw on a full board, or hand the turn over.
func settle(match *entity.Match) {
	if winner, line := entity.ScanWinner(match.Board); winner != entity.EmptyCell {
		match.Winner = winner
		match.Line = line
		match.Active = false
		match.Turn = entity.EmptyCell

		return
	}

	if entity.IsBoardFull(match.Board) {
		match.Active = false
		match.Turn = entity.EmptyCell

		return
	}

	match.Turn = entity.OpposingMark(match.Turn)
}

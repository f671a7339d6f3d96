package apperror

import "errors"

var (
	ErrGameFinished   = errors.New("game is already over")
	ErrGameNotStarted = errors.New("game has not started")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrCellOccupied   = errors.New("cell is already occupied")

	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
	ErrNotInRoom    = errors.New("not in a room")
)

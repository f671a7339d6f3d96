package websocket

import (
	"encoding/json"
	"math"

	"github.com/playrooms/tictactoe-server/internal/entity"
)

// Inbound message types.
const (
	actionCreateRoom = "create_room"
	actionJoinRoom   = "join_room"
	actionMove       = "move"
	actionReset      = "reset"
)

// Outbound message types.
const (
	actionRoomCreated  = "room_created"
	actionRoomJoined   = "room_joined"
	actionStart        = "start"
	actionState        = "state"
	actionError        = "error"
	actionOpponentLeft = "opponent_left"
)

// Message is the inbound wire envelope: a flat JSON object discriminated by
// the type field. Index is kept as a raw number so that fractional values can
// be rejected as invalid moves rather than silently truncated.
type Message struct {
	Type     string   `json:"type"`
	RoomCode string   `json:"roomCode,omitempty"`
	Mode     string   `json:"mode,omitempty"`
	Index    *float64 `json:"index,omitempty"`
}

// CellIndex returns the move's cell and whether the payload carried a whole
// number at all. Range checking belongs to the engine.
func (that *Message) CellIndex() (int, bool) {
	if that.Index == nil {
		return 0, false
	}

	if *that.Index != math.Trunc(*that.Index) {
		return 0, false
	}

	return int(*that.Index), true
}

type roomMessage struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	Symbol   string `json:"symbol"`
}

type startMessage struct {
	Type        string    `json:"type"`
	Board       [9]string `json:"board"`
	CurrentTurn string    `json:"currentTurn"`
}

// stateMessage is the single canonical state shape reused for moves and
// resets: a client's whole view is derivable from the last one alone.
type stateMessage struct {
	Type        string    `json:"type"`
	Board       [9]string `json:"board"`
	CurrentTurn string    `json:"currentTurn"`
	Winner      *string   `json:"winner"`
	Line        *[3]int   `json:"line"`
	Draw        bool      `json:"draw"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type opponentLeftMessage struct {
	Type string `json:"type"`
}

func newRoomMessage(action, roomCode, symbol string) []byte {
	return mustMarshal(roomMessage{Type: action, RoomCode: roomCode, Symbol: symbol})
}

func newStartMessage(state entity.MatchState) []byte {
	return mustMarshal(startMessage{
		Type:        actionStart,
		Board:       state.Board,
		CurrentTurn: state.CurrentTurn,
	})
}

func newStateMessage(state entity.MatchState) []byte {
	message := stateMessage{
		Type:        actionState,
		Board:       state.Board,
		CurrentTurn: state.CurrentTurn,
		Line:        state.Line,
		Draw:        state.Draw,
	}

	if state.Winner != entity.EmptyCell {
		winner := state.Winner
		message.Winner = &winner
	}

	return mustMarshal(message)
}

func newErrorMessage(text string) []byte {
	return mustMarshal(errorMessage{Type: actionError, Message: text})
}

func newOpponentLeftMessage() []byte {
	return mustMarshal(opponentLeftMessage{Type: actionOpponentLeft})
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return b
}

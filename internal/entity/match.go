package entity

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

// WinningTriples are the 8 cell index sets that decide a match, scanned in
// this order: 3 rows, 3 columns, 2 diagonals.
var WinningTriples = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Match is the authoritative game record for one room: the board in
// row-major order, the mark whose turn it is, and whether the match is still
// running. Winner and Line are only set once Active drops to false.
type Match struct {
	Board  [9]string
	Turn   string
	Active bool
	Winner string
	Line   *[3]int
}

// MatchState is the canonical snapshot broadcast to every participant of a
// room. A client's entire view is derivable from the last snapshot alone.
type MatchState struct {
	Board       [9]string
	CurrentTurn string
	Winner      string
	Line        *[3]int
	Draw        bool
}

func NewMatch() *Match {
	match := &Match{}
	match.Reset()

	return match
}

// Reset re-initializes the match in place: all cells empty, X to move,
// no winner.
func (that *Match) Reset() {
	that.Board = [9]string{}
	that.Turn = MarkX
	that.Active = true
	that.Winner = EmptyCell
	that.Line = nil
}

// IsDraw reports whether the match ended with a full board and no winner.
func (that *Match) IsDraw() bool {
	return !that.Active && that.Winner == EmptyCell
}

// State returns a copy of the match safe to hand out after the room lock is
// released.
func (that *Match) State() MatchState {
	state := MatchState{
		Board:       that.Board,
		CurrentTurn: that.Turn,
		Winner:      that.Winner,
		Draw:        that.IsDraw(),
	}

	if that.Line != nil {
		line := *that.Line
		state.Line = &line
	}

	return state
}

// ScanWinner scans the 8 winning triples in their fixed order and returns the
// winning mark and triple of the first one uniformly occupied, or an empty
// mark if none is.
func ScanWinner(board [9]string) (string, *[3]int) {
	for _, triple := range WinningTriples {
		a, b, c := board[triple[0]], board[triple[1]], board[triple[2]]
		if a != EmptyCell && a == b && b == c {
			line := triple
			return a, &line
		}
	}

	return EmptyCell, nil
}

// IsBoardFull reports whether every cell is occupied.
func IsBoardFull(board [9]string) bool {
	for _, cell := range board {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// OpposingMark returns the other of the two marks.
func OpposingMark(mark string) string {
	if mark == MarkX {
		return MarkO
	}

	return MarkX
}

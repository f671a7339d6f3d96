package entity

import (
	"sync"

	"github.com/playrooms/tictactoe-server/internal/apperror"
)

const (
	ModeVersus = "versus"
	ModeBot    = "bot"

	// BotID is the participant ID reserved for the automated opponent.
	BotID = "bot"

	maxParticipants = 2
)

// Participant is one seat in a room. The first seat always holds X, the
// second always holds O.
type Participant struct {
	ID   string `json:"id"`
	Mark string `json:"mark"`
}

func (that *Participant) IsBot() bool {
	return that.ID == BotID
}

// Room binds a short code to one match and its 1-2 participants. All
// read-modify-write sequences against the match must run under the room's
// own lock; distinct rooms never serialize against each other.
type Room struct {
	Code         string
	Mode         string
	Match        *Match
	Participants []*Participant

	mu sync.Mutex
}

func NewRoom(code, mode string) *Room {
	return &Room{
		Code:  code,
		Mode:  mode,
		Match: NewMatch(),
	}
}

func (that *Room) Lock()   { that.mu.Lock() }
func (that *Room) Unlock() { that.mu.Unlock() }

// AddParticipant seats a participant and assigns its mark by position.
// Callers must hold the room lock.
func (that *Room) AddParticipant(id string) (*Participant, error) {
	if len(that.Participants) >= maxParticipants {
		return nil, apperror.ErrRoomFull
	}

	mark := MarkX
	if len(that.Participants) == 1 {
		mark = MarkO
	}

	participant := &Participant{ID: id, Mark: mark}
	that.Participants = append(that.Participants, participant)

	return participant, nil
}

// ParticipantByID returns the seated participant with the given ID, or nil.
// Callers must hold the room lock.
func (that *Room) ParticipantByID(id string) *Participant {
	for _, participant := range that.Participants {
		if participant.ID == id {
			return participant
		}
	}

	return nil
}

// IsFull reports whether both seats are taken. Callers must hold the room lock.
func (that *Room) IsFull() bool {
	return len(that.Participants) == maxParticipants
}

func (that *Room) IsWithBot() bool {
	return that.Mode == ModeBot
}

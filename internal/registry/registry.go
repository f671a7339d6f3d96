package registry

import (
	"sync"

	"github.com/playrooms/tictactoe-server/internal/apperror"
	"github.com/playrooms/tictactoe-server/internal/entity"
	"github.com/playrooms/tictactoe-server/internal/pkg"
)

// Registry maps live room codes to rooms. It is owned by the application and
// handed to the transport at startup; its lock covers only the map
// operations, never a room's match or a connection's lifetime.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func New() *Registry {
	return &Registry{
		rooms: make(map[string]*entity.Room),
	}
}

// CreateRoom allocates a fresh code, inserts a room and seats the owner on
// the first seat (mark X). Codes are redrawn until unused; with a 32^5 code
// space collisions are rare enough that the retry loop is effectively O(1).
func (that *Registry) CreateRoom(ownerID, mode string) *entity.Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	code := pkg.GenerateRoomCode()
	for _, taken := that.rooms[code]; taken; _, taken = that.rooms[code] {
		code = pkg.GenerateRoomCode()
	}

	room := entity.NewRoom(code, mode)
	// the room is not reachable by any other goroutine until inserted,
	// so seating the owner needs no room lock yet
	if _, err := room.AddParticipant(ownerID); err != nil {
		panic(err) // empty room can never be full
	}

	that.rooms[code] = room

	return room
}

// JoinRoom seats the joiner on the second seat (mark O) of the room with the
// given code. Filling the second seat is the only transition that starts a
// match.
func (that *Registry) JoinRoom(code, joinerID string) (*entity.Room, *entity.Participant, error) {
	room, err := that.GetRoom(code)
	if err != nil {
		return nil, nil, err
	}

	room.Lock()
	defer room.Unlock()

	joiner, err := room.AddParticipant(joinerID)
	if err != nil {
		return nil, nil, err
	}

	return room, joiner, nil
}

// GetRoom resolves a room by its code, case-insensitively.
func (that *Registry) GetRoom(code string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[pkg.NormalizeRoomCode(code)]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// RemoveRoom deletes the registry entry unconditionally. The code may
// recirculate afterwards.
func (that *Registry) RemoveRoom(code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, pkg.NormalizeRoomCode(code))
}

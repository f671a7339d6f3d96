package websocket

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playrooms/tictactoe-server/internal/entity"
	"github.com/playrooms/tictactoe-server/internal/usecase"
)

type stubGameManager struct {
	hasRoom bool
}

func (that *stubGameManager) CreateRoom(_ context.Context, _, _ string) (*usecase.RoomUpdate, error) {
	return nil, nil
}

func (that *stubGameManager) JoinRoom(_ context.Context, _, _ string) (*usecase.RoomUpdate, error) {
	return nil, nil
}

func (that *stubGameManager) MakeMove(_ context.Context, _, _ string, _ int) (*usecase.RoomUpdate, error) {
	return nil, nil
}

func (that *stubGameManager) ResetMatch(_ context.Context, _ string) (*usecase.RoomUpdate, error) {
	return nil, nil
}

func (that *stubGameManager) HandleDisconnect(_ context.Context, _, _ string) []string {
	return nil
}

func (that *stubGameManager) HasRoom(_ string) bool {
	return that.hasRoom
}

func newEntryUpdate(t *testing.T, playerID string) *usecase.RoomUpdate {
	t.Helper()

	room := entity.NewRoom("K3M9P", entity.ModeVersus)
	_, err := room.AddParticipant(playerID)
	require.NoError(t, err)

	return &usecase.RoomUpdate{
		Room:         room,
		PlayerIDs:    []string{playerID},
		State:        room.Match.State(),
		MatchStarted: false,
	}
}

func TestFinishRoomEntry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	t.Run("Live room is stamped on the client", func(t *testing.T) {
		// Given: a room that is still resolvable
		server := New(logger, &stubGameManager{hasRoom: true})
		client := newClient("bob", nil, logger)

		// When: the entry is finished
		server.finishRoomEntry(client, newEntryUpdate(t, "bob"), actionRoomJoined)

		// Then: the client is routed to the room
		assert.Equal(t, "K3M9P", client.RoomCode())
	})

	t.Run("Room torn down during entry leaves no stale stamp", func(t *testing.T) {
		// Given: a room the owner abandoned while the joiner was seated
		server := New(logger, &stubGameManager{hasRoom: false})
		client := newClient("bob", nil, logger)

		// When: the entry is finished
		server.finishRoomEntry(client, newEntryUpdate(t, "bob"), actionRoomJoined)

		// Then: the client's routing metadata is cleared again
		assert.Equal(t, "", client.RoomCode())
	})
}

package websocket

import (
	"context"
	"errors"

	"github.com/playrooms/tictactoe-server/internal/apperror"
	"github.com/playrooms/tictactoe-server/internal/usecase"
)

func (that *Server) handleCreateRoom(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleCreateRoom", "clientID", client.id)

	if client.RoomCode() != "" {
		client.Send(newErrorMessage("Already in a room."))
		return nil
	}

	update, err := that.gameManager.CreateRoom(ctx, client.id, msg.Mode)

	switch {
	case errors.Is(err, usecase.ErrUnknownMode):
		client.Send(newErrorMessage("Invalid payload."))
		return nil
	case err != nil:
		log.Error("failed to create room", "error", err)
		client.Send(newErrorMessage("Failed to create room."))

		return nil
	}

	that.finishRoomEntry(client, update, actionRoomCreated)

	return nil
}

func (that *Server) handleJoinRoom(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleJoinRoom", "clientID", client.id)

	if client.RoomCode() != "" {
		client.Send(newErrorMessage("Already in a room."))
		return nil
	}

	update, err := that.gameManager.JoinRoom(ctx, msg.RoomCode, client.id)

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		client.Send(newErrorMessage("Room not found."))
		return nil
	case errors.Is(err, apperror.ErrRoomFull):
		client.Send(newErrorMessage("Room is full."))
		return nil
	case err != nil:
		log.Error("failed to join room", "roomCode", msg.RoomCode, "error", err)
		client.Send(newErrorMessage("Failed to join room."))

		return nil
	}

	that.finishRoomEntry(client, update, actionRoomJoined)

	return nil
}

// finishRoomEntry stamps the client's routing metadata, confirms the seat to
// the new participant, and broadcasts the start snapshot once both seats are
// filled.
func (that *Server) finishRoomEntry(client *Client, update *usecase.RoomUpdate, action string) {
	update.Room.Lock()
	participant := update.Room.ParticipantByID(client.id)
	update.Room.Unlock()

	client.SetRoom(update.Room.Code, participant.Mark)
	client.Send(newRoomMessage(action, update.Room.Code, participant.Mark))

	// a peer disconnect can tear the room down between the seat assignment
	// and the stamp above; its cleanup may have cleared our metadata before
	// the stamp landed, so never leave the client pointing at a dead room
	if !that.gameManager.HasRoom(update.Room.Code) {
		client.ClearRoom()
		return
	}

	if update.MatchStarted {
		that.broadcast(update.PlayerIDs, newStartMessage(update.State))
	}
}

func (that *Server) handleMove(ctx context.Context, client *Client, msg *Message) error {
	log := that.logger.With("method", "handleMove", "clientID", client.id)

	code := client.RoomCode()
	if code == "" {
		client.Send(newErrorMessage("Not in a room."))
		return nil
	}

	// a missing or fractional index is funneled through the engine as an
	// out-of-range cell so the rejection order stays fixed
	cell, ok := msg.CellIndex()
	if !ok {
		cell = -1
	}

	update, err := that.gameManager.MakeMove(ctx, code, client.id, cell)

	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		client.Send(newErrorMessage("Game is already over."))
		return nil
	case errors.Is(err, apperror.ErrGameNotStarted):
		client.Send(newErrorMessage("Waiting for an opponent."))
		return nil
	case errors.Is(err, apperror.ErrNotYourTurn):
		client.Send(newErrorMessage("Not your turn."))
		return nil
	case errors.Is(err, apperror.ErrInvalidCell):
		client.Send(newErrorMessage("Invalid move."))
		return nil
	case errors.Is(err, apperror.ErrCellOccupied):
		client.Send(newErrorMessage("Cell already taken."))
		return nil
	case errors.Is(err, apperror.ErrNotInRoom), errors.Is(err, apperror.ErrRoomNotFound):
		client.Send(newErrorMessage("Not in a room."))
		return nil
	case err != nil:
		log.Error("failed to make move", "roomCode", code, "error", err)
		client.Send(newErrorMessage("Failed to make move."))

		return nil
	}

	that.broadcast(update.PlayerIDs, newStateMessage(update.State))

	return nil
}

func (that *Server) handleReset(ctx context.Context, client *Client, _ *Message) error {
	log := that.logger.With("method", "handleReset", "clientID", client.id)

	code := client.RoomCode()
	if code == "" {
		client.Send(newErrorMessage("Not in a room."))
		return nil
	}

	update, err := that.gameManager.ResetMatch(ctx, code)

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound), errors.Is(err, apperror.ErrNotInRoom):
		client.Send(newErrorMessage("Not in a room."))
		return nil
	case err != nil:
		log.Error("failed to reset match", "roomCode", code, "error", err)
		client.Send(newErrorMessage("Failed to reset."))

		return nil
	}

	that.broadcast(update.PlayerIDs, newStateMessage(update.State))

	return nil
}

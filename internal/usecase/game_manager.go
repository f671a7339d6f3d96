package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/playrooms/tictactoe-server/internal/apperror"
	"github.com/playrooms/tictactoe-server/internal/entity"
	"github.com/playrooms/tictactoe-server/internal/registry"
	"github.com/playrooms/tictactoe-server/internal/tictactoe"
)

var ErrUnknownMode = errors.New("unknown room mode")

type statsRepo interface {
	RecordWin(ctx context.Context, mark string) error
	RecordDraw(ctx context.Context) error
	RecordAbandoned(ctx context.Context) error
}

// RoomUpdate carries everything the transport needs after a room operation:
// who to notify, the snapshot they should see, and whether the match just
// started. The snapshot is taken under the room lock, so broadcasting it
// afterwards never races a later mutation.
type RoomUpdate struct {
	Room         *entity.Room
	PlayerIDs    []string
	State        entity.MatchState
	MatchStarted bool
}

// GameManager drives room lifecycle and gameplay against the registry. Every
// mutation of a match happens under that room's lock; the registry's own lock
// only covers code lookups.
type GameManager struct {
	logger    *slog.Logger
	registry  *registry.Registry
	statsRepo statsRepo
}

func NewGameManager(logger *slog.Logger, reg *registry.Registry, statsRepo statsRepo) *GameManager {
	return &GameManager{
		logger:    logger,
		registry:  reg,
		statsRepo: statsRepo,
	}
}

// CreateRoom opens a room with the owner on the first seat. In bot mode the
// solver takes the second seat immediately, so the match starts right away
// with the owner to move.
func (that *GameManager) CreateRoom(ctx context.Context, ownerID, mode string) (*RoomUpdate, error) {
	if mode == "" {
		mode = entity.ModeVersus
	}

	if mode != entity.ModeVersus && mode != entity.ModeBot {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	room := that.registry.CreateRoom(ownerID, mode)

	room.Lock()
	defer room.Unlock()

	if room.IsWithBot() {
		if _, err := room.AddParticipant(entity.BotID); err != nil {
			return nil, fmt.Errorf("failed to seat bot: %w", err)
		}
	}

	that.logger.Info("room created", "roomCode", room.Code, "mode", room.Mode)

	return that.updateLocked(room, room.IsFull()), nil
}

// JoinRoom seats the joiner on the second seat. Filling that seat is the only
// transition that starts a match.
func (that *GameManager) JoinRoom(ctx context.Context, code, joinerID string) (*RoomUpdate, error) {
	room, _, err := that.registry.JoinRoom(code, joinerID)
	if err != nil {
		return nil, err
	}

	room.Lock()
	defer room.Unlock()

	that.logger.Info("room joined", "roomCode", room.Code)

	return that.updateLocked(room, true), nil
}

// HasRoom reports whether a room with the given code is still live.
func (that *GameManager) HasRoom(code string) bool {
	_, err := that.registry.GetRoom(code)
	return err == nil
}

// MakeMove applies one move for the participant with the given ID. In a bot
// room the solver answers immediately while the match is still running.
// A rejection leaves the match untouched and produces no update.
func (that *GameManager) MakeMove(ctx context.Context, code, playerID string, cell int) (*RoomUpdate, error) {
	room, err := that.registry.GetRoom(code)
	if err != nil {
		return nil, err
	}

	room.Lock()

	participant := room.ParticipantByID(playerID)
	if participant == nil {
		room.Unlock()
		return nil, apperror.ErrNotInRoom
	}

	if !room.IsFull() {
		room.Unlock()
		return nil, apperror.ErrGameNotStarted
	}

	if err = tictactoe.ApplyMove(room.Match, participant.Mark, cell); err != nil {
		room.Unlock()
		return nil, err
	}

	if room.IsWithBot() && room.Match.Active {
		that.makeBotMove(room)
	}

	// the outcome is snapshotted under the lock but recorded after it, so
	// stats I/O never stalls another operation on this room
	update := that.updateLocked(room, false)
	finished := !room.Match.Active
	winner := room.Match.Winner
	draw := room.Match.IsDraw()

	room.Unlock()

	if finished {
		that.recordOutcome(ctx, winner, draw)
	}

	return update, nil
}

// ResetMatch re-initializes the match in place without touching the room's
// code or participants. The fresh state is broadcast like any other update so
// both sides stay synchronized even when only one requested the reset.
func (that *GameManager) ResetMatch(ctx context.Context, code string) (*RoomUpdate, error) {
	room, err := that.registry.GetRoom(code)
	if err != nil {
		return nil, err
	}

	room.Lock()
	defer room.Unlock()

	if len(room.Participants) == 0 {
		return nil, apperror.ErrNotInRoom
	}

	room.Match.Reset()

	that.logger.Info("match reset", "roomCode", room.Code)

	return that.updateLocked(room, false), nil
}

// HandleDisconnect tears the room down after one participant's connection
// closed and returns the IDs of the remaining participants to evict. A match
// is never left waiting for a peer that will not return.
func (that *GameManager) HandleDisconnect(ctx context.Context, code, playerID string) []string {
	room, err := that.registry.GetRoom(code)
	if err != nil {
		return nil
	}

	that.registry.RemoveRoom(code)

	room.Lock()

	abandoned := room.IsFull() && room.Match.Active && !room.IsWithBot()

	var evicted []string
	for _, participant := range room.Participants {
		if participant.ID == playerID || participant.IsBot() {
			continue
		}

		evicted = append(evicted, participant.ID)
	}

	room.Unlock()

	if abandoned {
		if err = that.statsRepo.RecordAbandoned(ctx); err != nil {
			that.logger.Error("failed to record abandoned match", "error", err)
		}
	}

	that.logger.Info("room removed", "roomCode", room.Code)

	return evicted
}

// makeBotMove lets the solver answer on the bot's seat. Callers must hold the
// room lock.
func (that *GameManager) makeBotMove(room *entity.Room) {
	bot := room.ParticipantByID(entity.BotID)
	if bot == nil {
		return
	}

	cell := tictactoe.BestMove(room.Match.Board, bot.Mark)
	if cell < 0 {
		return
	}

	if err := tictactoe.ApplyMove(room.Match, bot.Mark, cell); err != nil {
		that.logger.Error("bot failed to make turn", "roomCode", room.Code, "error", err)
	}
}

// recordOutcome counts a terminal outcome. Callers must not hold the room
// lock; recording failures are logged and never surfaced to players.
func (that *GameManager) recordOutcome(ctx context.Context, winner string, draw bool) {
	log := that.logger.With("method", "recordOutcome")

	var err error
	if draw {
		err = that.statsRepo.RecordDraw(ctx)
	} else {
		err = that.statsRepo.RecordWin(ctx, winner)
	}

	if err != nil {
		log.Error("failed to record match result", "error", err)
	}
}

// updateLocked snapshots the room for broadcast. Callers must hold the room
// lock.
func (that *GameManager) updateLocked(room *entity.Room, matchStarted bool) *RoomUpdate {
	update := &RoomUpdate{
		Room:         room,
		State:        room.Match.State(),
		MatchStarted: matchStarted,
	}

	for _, participant := range room.Participants {
		if participant.IsBot() {
			continue
		}

		update.PlayerIDs = append(update.PlayerIDs, participant.ID)
	}

	return update
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/coder/websocket"

	"golf-server/internal/golf"
)

// Room is the authority for one multiplayer game. It is the single
// writer of its GameState: every join, action, and leave runs to
// completion under one mutex, broadcast included, so actions from the
// two connections can never interleave.
type Room struct {
	Code string

	mu    sync.Mutex
	state *golf.GameState
	conns map[golf.Seat]*websocket.Conn
}

func newRoom(code string) *Room {
	return &Room{
		Code:  code,
		state: golf.NewGameState(golf.WithSaltedDecks()),
		conns: make(map[golf.Seat]*websocket.Conn),
	}
}

// Join seats a new connection. The first connection takes player1, the
// second player2; a third is rejected with ErrRoomFull without touching
// the game state. Everyone already seated is told about the newcomer and
// all participants receive a fresh snapshot.
func (r *Room) Join(conn *websocket.Conn) (golf.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.conns) >= 2 {
		return "", ErrRoomFull
	}

	seat := golf.SeatPlayer1
	if _, taken := r.conns[seat]; taken {
		seat = golf.SeatPlayer2
	}
	r.conns[seat] = conn

	for other, otherConn := range r.conns {
		if other != seat {
			r.send(otherConn, ServerMessage{Type: golf.EventPlayerJoined})
		}
	}
	r.broadcastLocked()

	return seat, nil
}

// Leave unseats a connection and reports how many players remain. With
// players left the departure is announced and a fresh snapshot sent; the
// caller destroys the room when the count reaches zero.
func (r *Room) Leave(seat golf.Seat) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, seat)
	remaining := len(r.conns)
	if remaining > 0 {
		for _, conn := range r.conns {
			r.send(conn, ServerMessage{Type: golf.EventPlayerLeft})
		}
		r.broadcastLocked()
	}
	return remaining
}

// HandleAction validates and applies one action message, then broadcasts
// the post-action state to every connection whether or not the action
// changed anything.
func (r *Room) HandleAction(seat golf.Seat, msg ClientMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.apply(seat, msg); err != nil {
		log.Printf("Room %s: %s from %s rejected: %v", r.Code, msg.Type, seat, err)
		if conn := r.conns[seat]; conn != nil {
			r.send(conn, ServerMessage{
				Type:    golf.EventError,
				Payload: ErrorMessage{Message: err.Error()},
			})
		}
	}

	r.broadcastLocked()
}

func (r *Room) apply(seat golf.Seat, msg ClientMessage) error {
	position := -1
	if msg.Position != nil {
		position = *msg.Position
	}

	switch msg.Type {
	case golf.ActionDealInitialCards:
		if len(r.conns) < 2 {
			return errors.New("WAITING_FOR_OPPONENT: both players must be connected to deal")
		}
		return r.state.Deal()

	case golf.ActionPeekCard:
		if err := r.state.Peek(seat, position); err != nil {
			return err
		}
		return r.advancePeek(seat)

	case golf.ActionDrawFromDeck:
		return r.state.DrawFromDeck(seat)

	case golf.ActionDrawFromDiscard:
		return r.state.DrawFromDiscard(seat)

	case golf.ActionReplaceCard:
		return r.state.ReplaceCard(seat, position)

	case golf.ActionDiscardDrawnCard:
		return r.state.DiscardDrawn(seat)

	case golf.ActionLockCardAfterDiscard:
		return r.state.FlipAfterDiscard(seat, position)

	case golf.ActionFlipCardDirectly:
		return r.state.FlipDirect(seat, position)

	case golf.ActionNewRound:
		return r.state.NewRound()

	default:
		return fmt.Errorf("UNKNOWN_ACTION: unknown action type %q", msg.Type)
	}
}

// advancePeek moves the peek phase along once a budget is exhausted: the
// peek turn passes to player2 if they have not peeked yet, otherwise
// play begins.
func (r *Room) advancePeek(seat golf.Seat) error {
	if r.state.PeeksRemaining != 0 {
		return nil
	}
	if seat == golf.SeatPlayer1 && !r.state.Player2Hand.AnyPeeked() {
		return r.state.PassPeekTurn()
	}
	return r.state.BeginPlay()
}

// broadcastLocked sends every connection its own personalized snapshot.
// Callers must hold r.mu.
func (r *Room) broadcastLocked() {
	for seat, conn := range r.conns {
		view := r.state.View(seat)
		view.RoomCode = r.Code
		view.ConnectedPlayers = len(r.conns)

		r.send(conn, ServerMessage{
			Type:    golf.EventGameState,
			Payload: view,
		})
	}
}

func (r *Room) send(conn *websocket.Conn, msg ServerMessage) {
	if conn == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Room %s: marshal error: %v", r.Code, err)
		return
	}
	if err := conn.Write(context.Background(), websocket.MessageText, data); err != nil {
		log.Printf("Room %s: write error: %v", r.Code, err)
	}
}

// Close shuts down every connection in the room, used on server shutdown.
func (r *Room) Close(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for seat, conn := range r.conns {
		conn.Close(websocket.StatusGoingAway, reason)
		delete(r.conns, seat)
	}
}

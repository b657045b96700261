// Package client is the player-side adapter for the multiplayer server.
// It keeps the latest authoritative snapshot and turns UI intents into
// action messages, rejecting locally what the last snapshot already shows
// to be illegal so the common mistakes never cost a round trip.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"sync"

	"github.com/coder/websocket"

	"golf-server/internal/golf"
)

// StateHandler receives every authoritative snapshot as it arrives.
type StateHandler func(golf.ClientView)

// EventHandler receives non-state events: player-joined, player-left,
// room-full, and error. The message is empty for events without one.
type EventHandler func(golf.EventType, string)

type Option func(*Client)

func WithStateHandler(fn StateHandler) Option {
	return func(c *Client) { c.onState = fn }
}

func WithEventHandler(fn EventHandler) Option {
	return func(c *Client) { c.onEvent = fn }
}

// Client is one seat's connection to a game room. All methods are safe
// for concurrent use; the read loop runs until the connection drops or
// Close is called.
type Client struct {
	conn   *websocket.Conn
	cancel context.CancelFunc
	done   chan struct{}

	mu   sync.RWMutex
	view *golf.ClientView

	onState StateHandler
	onEvent EventHandler
}

// Wire shapes, kept private: the adapter speaks the envelope, callers
// speak golf types.
type actionMessage struct {
	Type     golf.ActionType `json:"type"`
	Position *int            `json:"position,omitempty"`
}

type serverMessage struct {
	Type    golf.EventType  `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// Dial connects to a room on the given websocket endpoint, e.g.
// "ws://localhost:8080/websocket". The room code travels as a query
// parameter; the server seats whoever arrives first as player1.
func Dial(ctx context.Context, endpoint, roomCode string, opts ...Option) (*Client, error) {
	conn, _, err := websocket.Dial(ctx, fmt.Sprintf("%s?room=%s", endpoint, url.QueryEscape(roomCode)), nil)
	if err != nil {
		return nil, fmt.Errorf("dial room %s: %w", roomCode, err)
	}

	readCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:   conn,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.readLoop(readCtx)

	return c, nil
}

// Close tears down the connection. Done is closed once the read loop
// has stopped.
func (c *Client) Close() {
	c.cancel()
	c.conn.Close(websocket.StatusNormalClosure, "Client closing")
	<-c.done
}

// Done is closed when the read loop exits, whether by Close or because
// the server went away.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) readLoop(ctx context.Context) {
	defer close(c.done)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var msg serverMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("Client: unparseable server message: %v", err)
			continue
		}

		switch msg.Type {
		case golf.EventGameState:
			var view golf.ClientView
			if err := json.Unmarshal(msg.Payload, &view); err != nil {
				log.Printf("Client: unparseable game state: %v", err)
				continue
			}
			c.mu.Lock()
			c.view = &view
			c.mu.Unlock()
			if c.onState != nil {
				c.onState(view)
			}

		case golf.EventError, golf.EventRoomFull:
			var errMsg errorPayload
			if err := json.Unmarshal(msg.Payload, &errMsg); err != nil {
				log.Printf("Client: unparseable error payload: %v", err)
			}
			if c.onEvent != nil {
				c.onEvent(msg.Type, errMsg.Message)
			}

		default:
			if c.onEvent != nil {
				c.onEvent(msg.Type, "")
			}
		}
	}
}

// State returns a copy of the latest snapshot, or nil before the first
// one arrives.
func (c *Client) State() *golf.ClientView {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.view == nil {
		return nil
	}
	view := *c.view
	return &view
}

// Seat reports which seat the server assigned this client, empty before
// the first snapshot.
func (c *Client) Seat() golf.Seat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.view == nil {
		return ""
	}
	return c.view.PlayerID
}

// DrawnCard returns the card this client is currently holding, if the
// latest snapshot shows one during play on this client's turn.
func (c *Client) DrawnCard() *golf.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.view == nil || c.view.Phase != golf.PhasePlaying || c.view.DrawnCard == nil {
		return nil
	}
	if c.view.CurrentTurn != c.view.PlayerID {
		return nil
	}
	card := *c.view.DrawnCard
	return &card
}

// Deal asks the authority to start the round.
func (c *Client) Deal() error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if view.Phase != golf.PhaseInitial {
		return errors.New("WRONG_PHASE: cards are already dealt")
	}
	return c.send(golf.ActionDealInitialCards, nil)
}

// Peek asks to look at one of this client's own face-down cards.
func (c *Client) Peek(pos int) error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if view.Phase != golf.PhasePeek {
		return errors.New("WRONG_PHASE: peeking is only allowed before play begins")
	}
	if err := requireTurn(view); err != nil {
		return err
	}
	if view.PeeksRemaining <= 0 {
		return errors.New("NO_PEEKS_LEFT: peek budget exhausted")
	}
	hand := ownHand(view)
	if err := checkPosition(hand, pos); err != nil {
		return err
	}
	if hand.Peeked[pos] {
		return errors.New("ALREADY_PEEKED: that card was already peeked")
	}
	return c.send(golf.ActionPeekCard, &pos)
}

// DrawFromDeck asks for the top card of the face-down deck.
func (c *Client) DrawFromDeck() error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if err := checkCanDraw(view); err != nil {
		return err
	}
	if view.DeckCount == 0 {
		return errors.New("DECK_EMPTY: no cards left to draw")
	}
	return c.send(golf.ActionDrawFromDeck, nil)
}

// DrawFromDiscard asks for the top card of the discard pile.
func (c *Client) DrawFromDiscard() error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if err := checkCanDraw(view); err != nil {
		return err
	}
	if len(view.DiscardPile) == 0 {
		return errors.New("DISCARD_EMPTY: discard pile is empty")
	}
	return c.send(golf.ActionDrawFromDiscard, nil)
}

// Replace swaps the drawn card into a position, locking it face up.
func (c *Client) Replace(pos int) error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if err := checkHoldsDrawnCard(view); err != nil {
		return err
	}
	if err := checkPosition(ownHand(view), pos); err != nil {
		return err
	}
	return c.send(golf.ActionReplaceCard, &pos)
}

// DiscardDrawn throws the drawn card away, which will owe a flip.
func (c *Client) DiscardDrawn() error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if err := checkHoldsDrawnCard(view); err != nil {
		return err
	}
	return c.send(golf.ActionDiscardDrawnCard, nil)
}

// LockAfterDiscard flips a face-down card to settle a discard.
func (c *Client) LockAfterDiscard(pos int) error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if view.Phase != golf.PhaseFlipAfterDiscard {
		return errors.New("WRONG_PHASE: no flip is owed right now")
	}
	if err := requireTurn(view); err != nil {
		return err
	}
	if err := checkPosition(ownHand(view), pos); err != nil {
		return err
	}
	return c.send(golf.ActionLockCardAfterDiscard, &pos)
}

// FlipDirect reveals a face-down card without drawing, ending the turn.
func (c *Client) FlipDirect(pos int) error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if err := checkCanDraw(view); err != nil {
		return err
	}
	if err := checkPosition(ownHand(view), pos); err != nil {
		return err
	}
	return c.send(golf.ActionFlipCardDirectly, &pos)
}

// NewRound asks for the next round, or a fresh game after a finish.
func (c *Client) NewRound() error {
	view, err := c.snapshot()
	if err != nil {
		return err
	}
	if view.Phase != golf.PhaseRoundFinished && view.Phase != golf.PhaseGameFinished {
		return errors.New("WRONG_PHASE: the round is still in progress")
	}
	return c.send(golf.ActionNewRound, nil)
}

func (c *Client) send(action golf.ActionType, position *int) error {
	data, err := json.Marshal(actionMessage{Type: action, Position: position})
	if err != nil {
		return err
	}
	return c.conn.Write(context.Background(), websocket.MessageText, data)
}

func (c *Client) snapshot() (*golf.ClientView, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.view == nil {
		return nil, errors.New("NO_STATE: no snapshot received from the server yet")
	}
	view := *c.view
	return &view, nil
}

func requireTurn(view *golf.ClientView) error {
	if view.CurrentTurn != view.PlayerID {
		return errors.New("NOT_YOUR_TURN: waiting for the opponent")
	}
	return nil
}

func checkCanDraw(view *golf.ClientView) error {
	if view.Phase != golf.PhasePlaying {
		return errors.New("WRONG_PHASE: that move is only allowed during play")
	}
	if err := requireTurn(view); err != nil {
		return err
	}
	if view.DrawnCard != nil {
		return errors.New("CARD_ALREADY_DRAWN: resolve the drawn card first")
	}
	return nil
}

func checkHoldsDrawnCard(view *golf.ClientView) error {
	if view.Phase != golf.PhasePlaying {
		return errors.New("WRONG_PHASE: that move is only allowed during play")
	}
	if err := requireTurn(view); err != nil {
		return err
	}
	if view.DrawnCard == nil {
		return errors.New("NO_DRAWN_CARD: draw a card first")
	}
	return nil
}

func checkPosition(hand golf.HandView, pos int) error {
	if pos < 0 || pos >= golf.HandSize {
		return fmt.Errorf("INVALID_POSITION: position %d is out of range", pos)
	}
	if hand.Revealed[pos] {
		return errors.New("POSITION_LOCKED: that card is already face up")
	}
	return nil
}

func ownHand(view *golf.ClientView) golf.HandView {
	if view.PlayerID == golf.SeatPlayer2 {
		return view.Player2Hand
	}
	return view.Player1Hand
}

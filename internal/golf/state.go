package golf

import (
	"strings"

	"github.com/google/uuid"
)

type Phase string

const (
	PhaseInitial          Phase = "initial"
	PhasePeek             Phase = "peek"
	PhasePlaying          Phase = "playing"
	PhaseFlipAfterDiscard Phase = "flip-after-discard"
	PhaseRoundFinished    Phase = "round-finished"
	PhaseGameFinished     Phase = "game-finished"
)

type Seat string

const (
	SeatPlayer1 Seat = "player1"
	SeatPlayer2 Seat = "player2"
)

func (s Seat) Opponent() Seat {
	if s == SeatPlayer1 {
		return SeatPlayer2
	}
	return SeatPlayer1
}

// HandSize is the fixed number of positions in a golf hand.
const HandSize = 4

// WinningThreshold ends the match: the first side to accumulate this
// many points loses.
const WinningThreshold = 100

// Hand holds four fixed positions. A position's card pointer is nil only
// before the deal. Revealed positions are locked for the rest of the round;
// peeked positions are known to their owner but still face down.
type Hand struct {
	Cards    [HandSize]*Card `json:"cards"`
	Revealed [HandSize]bool  `json:"revealedCards"`
	Peeked   [HandSize]bool  `json:"peekedCards"`
}

func (h *Hand) AllRevealed() bool {
	for _, revealed := range h.Revealed {
		if !revealed {
			return false
		}
	}
	return true
}

func (h *Hand) AnyPeeked() bool {
	for _, peeked := range h.Peeked {
		if peeked {
			return true
		}
	}
	return false
}

func (h *Hand) Complete() bool {
	for _, card := range h.Cards {
		if card == nil {
			return false
		}
	}
	return true
}

type Scores struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

func (s Scores) Seat(seat Seat) int {
	if seat == SeatPlayer1 {
		return s.Player1
	}
	return s.Player2
}

// GameState is the full authoritative state of one golf match. It is shared
// verbatim by the local engine and the room authority; neither reimplements
// the rules.
type GameState struct {
	Player1Hand    *Hand  `json:"player1Hand"`
	Player2Hand    *Hand  `json:"player2Hand"`
	Deck           *Deck  `json:"deck"`
	DiscardPile    []Card `json:"discardPile"`
	DrawnCard      *Card  `json:"drawnCard,omitempty"`
	CurrentTurn    Seat   `json:"currentTurn"`
	Phase          Phase  `json:"gamePhase"`
	RoundScore     Scores `json:"roundScore"`
	GameScore      Scores `json:"gameScore"`
	PeeksRemaining int    `json:"peeksRemaining"`

	saltedDecks bool
}

type Option func(*GameState)

// WithSaltedDecks makes every deck built for this state carry a fresh
// random ID suffix. Room authorities use this so card IDs stay unique
// across rooms and rounds.
func WithSaltedDecks() Option {
	return func(g *GameState) {
		g.saltedDecks = true
	}
}

func NewGameState(opts ...Option) *GameState {
	g := &GameState{}
	for _, opt := range opts {
		opt(g)
	}
	g.resetRound()
	return g
}

func (g *GameState) newDeck() *Deck {
	if g.saltedDecks {
		return NewDeck(WithIDSalt(strings.SplitN(uuid.NewString(), "-", 2)[0]))
	}
	return NewDeck()
}

// resetRound rebuilds everything except the cumulative game score.
func (g *GameState) resetRound() {
	deck := g.newDeck()
	deck.Shuffle()

	g.Player1Hand = &Hand{}
	g.Player2Hand = &Hand{}
	g.Deck = deck
	g.DiscardPile = nil
	g.DrawnCard = nil
	g.CurrentTurn = SeatPlayer1
	g.Phase = PhaseInitial
	g.RoundScore = Scores{}
	g.PeeksRemaining = 0
}

func (g *GameState) Hand(seat Seat) *Hand {
	if seat == SeatPlayer1 {
		return g.Player1Hand
	}
	return g.Player2Hand
}

// DiscardTop returns the top of the discard pile, or nil when empty.
func (g *GameState) DiscardTop() *Card {
	if len(g.DiscardPile) == 0 {
		return nil
	}
	return &g.DiscardPile[len(g.DiscardPile)-1]
}

// Winner reports the winning seat once the game has finished. Lower
// cumulative score wins; player1 takes ties.
func (g *GameState) Winner() (Seat, bool) {
	if g.Phase != PhaseGameFinished {
		return "", false
	}
	if g.GameScore.Player1 <= g.GameScore.Player2 {
		return SeatPlayer1, true
	}
	return SeatPlayer2, true
}

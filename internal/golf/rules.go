package golf

import (
	"errors"
	"fmt"
)

/*
 * Deal & Peek Phase
 */

// Deal shuffles in a fresh round: four cards to each hand in alternating
// order, one card seeding the discard pile, then the peek phase opens with
// a budget of two for player1.
func (g *GameState) Deal() error {
	if g.Phase != PhaseInitial {
		return errors.New("WRONG_PHASE: cards have already been dealt")
	}

	for i := 0; i < HandSize; i++ {
		player1Card := g.Deck.Draw(1)[0]
		player2Card := g.Deck.Draw(1)[0]
		g.Player1Hand.Cards[i] = &player1Card
		g.Player2Hand.Cards[i] = &player2Card
	}

	g.DiscardPile = g.Deck.Draw(1)
	g.Phase = PhasePeek
	g.CurrentTurn = SeatPlayer1
	g.PeeksRemaining = 2
	return nil
}

// Peek privately reveals a position to its owner and consumes one peek.
// It never advances the phase itself; the caller decides between
// PassPeekTurn and BeginPlay once the budget hits zero.
func (g *GameState) Peek(seat Seat, position int) error {
	if g.Phase != PhasePeek {
		return errors.New("WRONG_PHASE: peeking is only allowed before the round starts")
	}
	if g.CurrentTurn != seat {
		return errors.New("NOT_YOUR_TURN: waiting for the other player to peek")
	}
	if g.PeeksRemaining <= 0 {
		return errors.New("NO_PEEKS_LEFT: peek budget exhausted")
	}
	if err := validPosition(position); err != nil {
		return err
	}
	hand := g.Hand(seat)
	if hand.Peeked[position] {
		return errors.New("ALREADY_PEEKED: that card has been peeked")
	}

	hand.Peeked[position] = true
	g.PeeksRemaining--
	return nil
}

// PassPeekTurn hands the peek turn, with a fresh budget, to player2.
func (g *GameState) PassPeekTurn() error {
	if g.Phase != PhasePeek || g.PeeksRemaining != 0 {
		return errors.New("WRONG_PHASE: current peek budget is not exhausted")
	}
	if g.CurrentTurn != SeatPlayer1 {
		return errors.New("WRONG_PHASE: both players have already peeked")
	}

	g.CurrentTurn = SeatPlayer2
	g.PeeksRemaining = 2
	return nil
}

// BeginPlay closes the peek phase. Player1 always moves first.
func (g *GameState) BeginPlay() error {
	if g.Phase != PhasePeek {
		return errors.New("WRONG_PHASE: round is not in the peek phase")
	}
	if g.PeeksRemaining != 0 {
		return errors.New("WRONG_PHASE: peek budget is not exhausted")
	}

	g.Phase = PhasePlaying
	g.CurrentTurn = SeatPlayer1
	return nil
}

/*
 * Playing Phase
 */

func (g *GameState) DrawFromDeck(seat Seat) error {
	if err := g.checkCanDraw(seat); err != nil {
		return err
	}
	if g.Deck.Count() == 0 {
		return errors.New("DECK_EMPTY: the deck has no cards left")
	}

	card := g.Deck.Draw(1)[0]
	g.DrawnCard = &card
	return nil
}

func (g *GameState) DrawFromDiscard(seat Seat) error {
	if err := g.checkCanDraw(seat); err != nil {
		return err
	}
	if len(g.DiscardPile) == 0 {
		return errors.New("DISCARD_EMPTY: the discard pile has no cards")
	}

	card := g.DiscardPile[len(g.DiscardPile)-1]
	g.DiscardPile = g.DiscardPile[:len(g.DiscardPile)-1]
	g.DrawnCard = &card
	return nil
}

// ReplaceCard locks the drawn card into a face-down position, sending the
// old occupant to the discard pile.
func (g *GameState) ReplaceCard(seat Seat, position int) error {
	if err := g.checkHoldsDrawnCard(seat); err != nil {
		return err
	}
	if err := validPosition(position); err != nil {
		return err
	}
	hand := g.Hand(seat)
	if hand.Revealed[position] {
		return errors.New("POSITION_LOCKED: that card is already revealed")
	}

	oldCard := hand.Cards[position]
	hand.Cards[position] = g.DrawnCard
	hand.Revealed[position] = true
	g.DrawnCard = nil
	if oldCard != nil {
		g.DiscardPile = append(g.DiscardPile, *oldCard)
	}

	return g.finishLockingAction(seat)
}

// DiscardDrawn throws the drawn card away. The acting player still owes a
// flip before the turn can pass.
func (g *GameState) DiscardDrawn(seat Seat) error {
	if err := g.checkHoldsDrawnCard(seat); err != nil {
		return err
	}

	g.DiscardPile = append(g.DiscardPile, *g.DrawnCard)
	g.DrawnCard = nil
	g.Phase = PhaseFlipAfterDiscard
	return nil
}

// FlipAfterDiscard resolves the flip owed after discarding a drawn card.
func (g *GameState) FlipAfterDiscard(seat Seat, position int) error {
	if g.Phase != PhaseFlipAfterDiscard {
		return errors.New("WRONG_PHASE: no flip is owed right now")
	}
	if g.CurrentTurn != seat {
		return errors.New("NOT_YOUR_TURN: it is the other player's move")
	}
	if err := validPosition(position); err != nil {
		return err
	}
	hand := g.Hand(seat)
	if hand.Revealed[position] {
		return errors.New("POSITION_LOCKED: that card is already revealed")
	}

	hand.Revealed[position] = true
	g.Phase = PhasePlaying
	return g.finishLockingAction(seat)
}

// FlipDirect reveals one of the acting player's own face-down cards
// without drawing first.
func (g *GameState) FlipDirect(seat Seat, position int) error {
	if g.Phase != PhasePlaying {
		return errors.New("WRONG_PHASE: flipping is only allowed during play")
	}
	if g.CurrentTurn != seat {
		return errors.New("NOT_YOUR_TURN: it is the other player's move")
	}
	if g.DrawnCard != nil {
		return errors.New("CARD_ALREADY_DRAWN: resolve the drawn card first")
	}
	if err := validPosition(position); err != nil {
		return err
	}
	hand := g.Hand(seat)
	if hand.Revealed[position] {
		return errors.New("POSITION_LOCKED: that card is already revealed")
	}

	hand.Revealed[position] = true
	return g.finishLockingAction(seat)
}

/*
 * Round & Game End
 */

// NewRound starts the next round after scoring, or rebuilds the whole
// match from scratch once the game has finished.
func (g *GameState) NewRound() error {
	switch g.Phase {
	case PhaseRoundFinished:
		g.resetRound()
	case PhaseGameFinished:
		g.resetRound()
		g.GameScore = Scores{}
	default:
		return errors.New("WRONG_PHASE: the round is still in progress")
	}
	return nil
}

// finishLockingAction runs after every action that reveals a position:
// the round ends the instant either hand is fully revealed, otherwise the
// turn passes.
func (g *GameState) finishLockingAction(seat Seat) error {
	if !g.Player1Hand.AllRevealed() && !g.Player2Hand.AllRevealed() {
		g.CurrentTurn = seat.Opponent()
		return nil
	}

	player1Score, err := g.Player1Hand.Score()
	if err != nil {
		return err
	}
	player2Score, err := g.Player2Hand.Score()
	if err != nil {
		return err
	}

	g.RoundScore = Scores{Player1: player1Score, Player2: player2Score}
	g.GameScore.Player1 += player1Score
	g.GameScore.Player2 += player2Score

	g.Phase = PhaseRoundFinished
	if g.GameScore.Player1 >= WinningThreshold || g.GameScore.Player2 >= WinningThreshold {
		g.Phase = PhaseGameFinished
	}
	return nil
}

func (g *GameState) checkCanDraw(seat Seat) error {
	if g.Phase != PhasePlaying {
		return errors.New("WRONG_PHASE: drawing is only allowed during play")
	}
	if g.CurrentTurn != seat {
		return errors.New("NOT_YOUR_TURN: it is the other player's move")
	}
	if g.DrawnCard != nil {
		return errors.New("CARD_ALREADY_DRAWN: resolve the drawn card first")
	}
	return nil
}

func (g *GameState) checkHoldsDrawnCard(seat Seat) error {
	if g.Phase != PhasePlaying {
		return errors.New("WRONG_PHASE: not in the playing phase")
	}
	if g.CurrentTurn != seat {
		return errors.New("NOT_YOUR_TURN: it is the other player's move")
	}
	if g.DrawnCard == nil {
		return errors.New("NO_DRAWN_CARD: draw a card first")
	}
	return nil
}

func validPosition(position int) error {
	if position < 0 || position >= HandSize {
		return fmt.Errorf("INVALID_POSITION: position %d is out of range", position)
	}
	return nil
}

package golf

// ClientView is the snapshot a single recipient is allowed to see. Hand
// cards are withheld unless they are locked face-up, the recipient peeked
// them, or the round is over; the deck is reduced to a count and the drawn
// card travels only to its holder. The original behavior of shipping every
// hand verbatim let any client read the opponent's cards off the wire.
type ClientView struct {
	Player1Hand      HandView `json:"player1Hand"`
	Player2Hand      HandView `json:"player2Hand"`
	DeckCount        int      `json:"deckCount"`
	DiscardPile      []Card   `json:"discardPile"`
	DrawnCard        *Card    `json:"drawnCard,omitempty"`
	CurrentTurn      Seat     `json:"currentTurn"`
	Phase            Phase    `json:"gamePhase"`
	RoundScore       Scores   `json:"roundScore"`
	GameScore        Scores   `json:"gameScore"`
	PeeksRemaining   int      `json:"peeksRemaining"`
	PlayerID         Seat     `json:"playerId"`
	Opponent         Seat     `json:"opponent"`
	RoomCode         string   `json:"roomCode,omitempty"`
	ConnectedPlayers int      `json:"connectedPlayers,omitempty"`
}

type HandView struct {
	Cards    [HandSize]*Card `json:"cards"`
	Revealed [HandSize]bool  `json:"revealedCards"`
	Peeked   [HandSize]bool  `json:"peekedCards"`
}

// View builds the personalized snapshot for one seat. RoomCode and
// ConnectedPlayers are left for the room authority to fill in.
func (g *GameState) View(seat Seat) *ClientView {
	view := &ClientView{
		Player1Hand:    g.handView(SeatPlayer1, seat),
		Player2Hand:    g.handView(SeatPlayer2, seat),
		DeckCount:      g.Deck.Count(),
		DiscardPile:    append([]Card(nil), g.DiscardPile...),
		CurrentTurn:    g.CurrentTurn,
		Phase:          g.Phase,
		RoundScore:     g.RoundScore,
		GameScore:      g.GameScore,
		PeeksRemaining: g.PeeksRemaining,
		PlayerID:       seat,
		Opponent:       seat.Opponent(),
	}

	if g.DrawnCard != nil && g.CurrentTurn == seat {
		card := *g.DrawnCard
		view.DrawnCard = &card
	}

	return view
}

func (g *GameState) handView(owner, recipient Seat) HandView {
	hand := g.Hand(owner)
	view := HandView{
		Revealed: hand.Revealed,
		Peeked:   hand.Peeked,
	}

	roundOver := g.Phase == PhaseRoundFinished || g.Phase == PhaseGameFinished
	for i, card := range hand.Cards {
		if card == nil {
			continue
		}
		visible := hand.Revealed[i] || roundOver || (owner == recipient && hand.Peeked[i])
		if visible {
			c := *card
			view.Cards[i] = &c
		}
	}
	return view
}

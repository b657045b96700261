package golf_test

import (
	"encoding/json"
	"slices"
	"testing"

	"golf-server/internal/golf"
)

func TestPointValues(t *testing.T) {
	var tests = []struct {
		rank golf.Rank
		want int
	}{
		{golf.Ace, 11},
		{golf.Two, 0},
		{golf.Jack, 0},
		{golf.Queen, 10},
		{golf.King, 10},
		{golf.Three, 3},
		{golf.Seven, 7},
		{golf.Ten, 10},
	}

	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			if value := tt.rank.Value(); value != tt.want {
				t.Errorf("Rank valued at %d, %d expected.", value, tt.want)
			}
		})
	}
}

func TestBuildDeck(t *testing.T) {
	deck := golf.NewDeck()

	if deck.Count() != 52 {
		t.Errorf("Deck should be 52 cards, %d given.", deck.Count())
	}

	ids := make(map[string]bool)
	pairs := make(map[[2]int]bool)
	for _, card := range deck.Cards {
		if ids[card.ID] {
			t.Errorf("Duplicate card ID %s", card.ID)
		}
		ids[card.ID] = true

		pair := [2]int{int(card.Suit), int(card.Rank)}
		if pairs[pair] {
			t.Errorf("Duplicate card %s", card)
		}
		pairs[pair] = true
	}
}

func TestDeckIDSalt(t *testing.T) {
	plain := golf.NewDeck()
	salted := golf.NewDeck(golf.WithIDSalt("abc123"))

	if plain.Cards[0].ID == salted.Cards[0].ID {
		t.Errorf("Salted deck should not reuse plain IDs, both are %s", plain.Cards[0].ID)
	}
	if salted.Cards[0].ID != plain.Cards[0].ID+"-abc123" {
		t.Errorf("Expected salt suffix on %s", salted.Cards[0].ID)
	}
}

func TestDraw(t *testing.T) {
	deck := golf.NewDeck()
	drawn := deck.Draw(3)

	if deck.Count() != 49 {
		t.Errorf("Deck should have 49 cards, %d given", deck.Count())
	}

	// Unshuffled deck ends with the kings of spades on top.
	expected := []golf.Card{
		{golf.Spades, golf.King, "spades-K"},
		{golf.Spades, golf.Queen, "spades-Q"},
		{golf.Spades, golf.Jack, "spades-J"},
	}

	for i, expectedCard := range expected {
		if expectedCard != drawn[i] {
			t.Errorf("Expected to draw %s, got %s", expectedCard, drawn[i])
		}
	}
}

func TestShuffle(t *testing.T) {
	deckA := golf.NewDeck()
	deckB := golf.NewDeck()

	if !slices.Equal(deckA.Cards, deckB.Cards) {
		t.Error("Your decks aren't equal to start")
	}

	deckB.Shuffle()

	if slices.Equal(deckA.Cards, deckB.Cards) {
		t.Error("Shuffling didn't work")
	}
}

func TestCardJSON(t *testing.T) {
	card := golf.Card{Suit: golf.Hearts, Rank: golf.Ace, ID: "hearts-A"}

	data, err := json.Marshal(card)
	if err != nil {
		t.Fatal(err)
	}

	expected := `{"suit":"hearts","rank":"A","id":"hearts-A"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}

	var decoded golf.Card
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded != card {
		t.Errorf("Expected %v after decode, got %v", card, decoded)
	}
}

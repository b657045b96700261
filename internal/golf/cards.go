package golf

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitString = map[Suit]string{
	Hearts:   "hearts",
	Diamonds: "diamonds",
	Clubs:    "clubs",
	Spades:   "spades",
}

var suitFromString = map[string]Suit{}

func (s Suit) String() string {
	return suitString[s]
}

func (s Suit) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	suit, ok := suitFromString[name]
	if !ok {
		return fmt.Errorf("unknown suit %q", name)
	}
	*s = suit
	return nil
}

type Rank int

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankString = map[Rank]string{
	Ace:   "A",
	Two:   "2",
	Three: "3",
	Four:  "4",
	Five:  "5",
	Six:   "6",
	Seven: "7",
	Eight: "8",
	Nine:  "9",
	Ten:   "10",
	Jack:  "J",
	Queen: "Q",
	King:  "K",
}

var rankFromString = map[string]Rank{}

func init() {
	for suit, name := range suitString {
		suitFromString[name] = suit
	}
	for rank, name := range rankString {
		rankFromString[name] = rank
	}
}

// Golf values: aces are heavy, twos and jacks are free, faces are ten.
var pointValues = map[Rank]int{
	Ace:   11,
	Two:   0,
	Three: 3,
	Four:  4,
	Five:  5,
	Six:   6,
	Seven: 7,
	Eight: 8,
	Nine:  9,
	Ten:   10,
	Jack:  0,
	Queen: 10,
	King:  10,
}

func (r Rank) String() string {
	return rankString[r]
}

func (r Rank) Value() int {
	return pointValues[r]
}

func (r Rank) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	rank, ok := rankFromString[name]
	if !ok {
		return fmt.Errorf("unknown rank %q", name)
	}
	*r = rank
	return nil
}

type Card struct {
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
	ID   string `json:"id"`
}

func (c Card) Value() int {
	return c.Rank.Value()
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank.String(), c.Suit.String())
}

type Deck struct {
	Cards []Card `json:"cards"`
}

type DeckOption func(*deckConfig)

type deckConfig struct {
	idSalt string
}

// WithIDSalt appends a suffix to every card ID so decks built for
// different rooms or rounds never hand out colliding IDs.
func WithIDSalt(salt string) DeckOption {
	return func(cfg *deckConfig) {
		cfg.idSalt = salt
	}
}

func NewDeck(opts ...DeckOption) *Deck {
	var cfg deckConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	cards := make([]Card, 0, 52)
	suits := []Suit{Hearts, Diamonds, Clubs, Spades}
	ranks := []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

	for _, suit := range suits {
		for _, rank := range ranks {
			id := fmt.Sprintf("%s-%s", suit, rank)
			if cfg.idSalt != "" {
				id = fmt.Sprintf("%s-%s", id, cfg.idSalt)
			}
			cards = append(cards, Card{Suit: suit, Rank: rank, ID: id})
		}
	}

	return &Deck{cards}
}

func (d Deck) Count() int {
	return len(d.Cards)
}

// Draw removes n cards from the top of the deck.
func (d *Deck) Draw(n int) (cards []Card) {
	for i := 0; i < n; i++ {
		card := d.Cards[len(d.Cards)-1]
		cards = append(cards, card)
		d.Cards = d.Cards[:len(d.Cards)-1]
	}
	return
}

func (d *Deck) Shuffle() {
	rand.Shuffle(d.Count(), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

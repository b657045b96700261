package golf

import "errors"

// ErrIncompleteHand means a hand with empty positions was scored. The
// phase machine only scores at round end, after every card is dealt, so
// hitting this is a programming error rather than a user mistake.
var ErrIncompleteHand = errors.New("INCOMPLETE_HAND: cannot score a hand with empty positions")

// Score totals a hand with pair cancellation: ranks held an even number
// of times contribute nothing, ranks held an odd number of times count
// once. Four of a kind therefore always scores zero.
func (h *Hand) Score() (int, error) {
	if !h.Complete() {
		return 0, ErrIncompleteHand
	}

	counts := make(map[Rank]int, HandSize)
	for _, card := range h.Cards {
		counts[card.Rank]++
	}

	total := 0
	for rank, count := range counts {
		total += rank.Value() * (count % 2)
	}
	return total, nil
}

// FourOfAKind reports whether all four positions hold the same rank.
func (h *Hand) FourOfAKind() bool {
	if !h.Complete() {
		return false
	}
	for _, card := range h.Cards {
		if card.Rank != h.Cards[0].Rank {
			return false
		}
	}
	return true
}

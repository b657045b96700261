package engine

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"golf-server/internal/golf"
)

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	infos     []string
	errors    []string
}

func (r *recordingNotifier) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recordingNotifier) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *recordingNotifier) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func newTestEngine(notify Notifier) *Engine {
	if notify == nil {
		notify = NopNotifier{}
	}
	return New(WithNotifier(notify), WithCPUDelay(0), WithAbsorbDelay(0))
}

func TestDealAndPeekFlow(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	assert.NoError(e.Deal())
	assert.Equal(golf.PhasePeek, e.state.Phase)

	assert.NoError(e.Peek(0))
	assert.NoError(e.Peek(1))

	// Zero absorb delay starts play inline.
	assert.Equal(golf.PhasePlaying, e.state.Phase)
	assert.Equal(HumanSeat, e.state.CurrentTurn)
}

func TestRejectedActionEmitsErrorNotice(t *testing.T) {
	assert := assert.New(t)
	notifier := &recordingNotifier{}
	e := newTestEngine(notifier)

	err := e.DrawFromDeck()
	assert.Error(err)
	assert.Len(notifier.errors, 1)
	assert.Equal(golf.PhaseInitial, e.state.Phase)
}

func TestReplaceHandsTurnToCPU(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	assert.NoError(e.Deal())
	assert.NoError(e.Peek(0))
	assert.NoError(e.Peek(1))
	assert.NoError(e.DrawFromDeck())
	assert.NoError(e.ReplaceCard(0))

	assert.True(e.state.Player1Hand.Revealed[0])

	// The CPU replied inline, so the turn is back with the human unless
	// its locking action just ended the round.
	if e.state.Phase == golf.PhasePlaying {
		assert.Equal(HumanSeat, e.state.CurrentTurn)
	}
}

func TestDiscardOwesFlip(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	assert.NoError(e.Deal())
	assert.NoError(e.Peek(0))
	assert.NoError(e.Peek(1))
	assert.NoError(e.DrawFromDiscard())
	assert.NoError(e.DiscardDrawn())

	assert.Equal(golf.PhaseFlipAfterDiscard, e.state.Phase)
	assert.Error(e.DrawFromDeck())

	assert.NoError(e.FlipAfterDiscard(2))
	assert.True(e.state.Player1Hand.Revealed[2])
}

// setupCPUTurn puts the engine into playing phase with the CPU to move,
// a crafted CPU hand, and a known card on top of the deck.
func setupCPUTurn(t *testing.T, e *Engine, handRanks [4]golf.Rank, topOfDeck golf.Rank) {
	t.Helper()

	if err := e.state.Deal(); err != nil {
		t.Fatal(err)
	}
	e.state.PeeksRemaining = 0
	if err := e.state.BeginPlay(); err != nil {
		t.Fatal(err)
	}
	e.state.CurrentTurn = CPUSeat

	for i, rank := range handRanks {
		e.state.Player2Hand.Cards[i] = &golf.Card{Suit: golf.Clubs, Rank: rank}
	}
	e.state.Deck.Cards = append(e.state.Deck.Cards, golf.Card{Suit: golf.Hearts, Rank: topOfDeck})
}

func TestCPUReplacesWorstCardWhenDrawImproves(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	// Worst card is the ace at position 2; the drawn two beats it.
	setupCPUTurn(t, e, [4]golf.Rank{golf.Five, golf.Six, golf.Ace, golf.Seven}, golf.Two)
	e.cpuTurn()

	assert.Equal(golf.Two, e.state.Player2Hand.Cards[2].Rank)
	assert.True(e.state.Player2Hand.Revealed[2])
	assert.Equal(golf.Ace, e.state.DiscardPile[len(e.state.DiscardPile)-1].Rank)
	assert.Equal(HumanSeat, e.state.CurrentTurn)
}

func TestCPUDiscardsAndFlipsWhenDrawDoesNotImprove(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	// Drawn king (10) is not strictly lower than the worst card (jack, 0),
	// so the CPU discards it and flips its first face-down position.
	setupCPUTurn(t, e, [4]golf.Rank{golf.Jack, golf.Two, golf.Jack, golf.Two}, golf.King)
	e.cpuTurn()

	assert.Equal(golf.King, e.state.DiscardPile[len(e.state.DiscardPile)-1].Rank)
	assert.True(e.state.Player2Hand.Revealed[0])
	assert.Equal(golf.Jack, e.state.Player2Hand.Cards[0].Rank)
	assert.Equal(HumanSeat, e.state.CurrentTurn)
}

func TestCPUSkipsLockedPositions(t *testing.T) {
	assert := assert.New(t)
	e := newTestEngine(nil)

	setupCPUTurn(t, e, [4]golf.Rank{golf.Ace, golf.Two, golf.Ace, golf.Two}, golf.Three)
	e.state.Player2Hand.Revealed[0] = true

	e.cpuTurn()

	// Position 0 was locked, so the replacement hit the other ace.
	assert.Equal(golf.Ace, e.state.Player2Hand.Cards[0].Rank)
	assert.Equal(golf.Three, e.state.Player2Hand.Cards[2].Rank)
	assert.True(e.state.Player2Hand.Revealed[2])
}

func TestCPUFourOfAKindNotice(t *testing.T) {
	assert := assert.New(t)
	notifier := &recordingNotifier{}
	e := newTestEngine(notifier)

	if err := e.state.Deal(); err != nil {
		t.Fatal(err)
	}
	e.state.PeeksRemaining = 0
	if err := e.state.BeginPlay(); err != nil {
		t.Fatal(err)
	}

	// Give the CPU four twos and leave the human one card to flip so the
	// next action ends the round.
	suits := []golf.Suit{golf.Hearts, golf.Diamonds, golf.Clubs, golf.Spades}
	for i := range suits {
		e.state.Player2Hand.Cards[i] = &golf.Card{Suit: suits[i], Rank: golf.Two}
	}
	for pos := 0; pos < 3; pos++ {
		e.state.Player1Hand.Revealed[pos] = true
	}

	assert.NoError(e.FlipDirect(3))
	assert.Equal(0, e.state.RoundScore.Player2)

	found := false
	for _, msg := range notifier.infos {
		if strings.Contains(msg, "four of a kind") {
			found = true
		}
	}
	assert.True(found, "expected a four of a kind notice for the CPU hand")
}

func TestFullGameRoundEnds(t *testing.T) {
	assert := assert.New(t)
	notifier := &recordingNotifier{}
	e := newTestEngine(notifier)

	assert.NoError(e.Deal())
	assert.NoError(e.Peek(0))
	assert.NoError(e.Peek(1))

	// Flip everything; the CPU answers inline each time.
	for turns := 0; turns < 20; turns++ {
		snapshot := e.Snapshot()
		if snapshot.Phase != golf.PhasePlaying {
			break
		}
		pos := -1
		for i, revealed := range snapshot.Player1Hand.Revealed {
			if !revealed {
				pos = i
				break
			}
		}
		if pos == -1 {
			break
		}
		assert.NoError(e.FlipDirect(pos))
	}

	snapshot := e.Snapshot()
	assert.Contains([]golf.Phase{golf.PhaseRoundFinished, golf.PhaseGameFinished}, snapshot.Phase)
	assert.NotEmpty(notifier.infos)

	// Scores in the snapshot match a direct recount.
	player1Score, err := e.state.Player1Hand.Score()
	assert.NoError(err)
	assert.Equal(player1Score, snapshot.RoundScore.Player1)
}

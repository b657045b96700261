package engine

import (
	"fmt"
	"sync"
	"time"

	"golf-server/internal/golf"
)

// Seats are fixed in single-player: the human always opens.
const (
	HumanSeat = golf.SeatPlayer1
	CPUSeat   = golf.SeatPlayer2
)

// Notifier is the user-facing notification sink. The engine calls it on
// every accepted action and every rejected precondition; return values
// are deliberately absent.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Info(string)    {}
func (NopNotifier) Error(string)   {}

// Engine owns the single-player game state. All operations are
// serialized through one mutex; the CPU's deferred move takes the same
// lock, so human and CPU actions never interleave.
type Engine struct {
	mu     sync.Mutex
	state  *golf.GameState
	notify Notifier

	// cpuDelay spaces the CPU's reply after the human's locking action.
	// absorbDelay lets the last peeked card linger face-up before play
	// starts. Zero runs either step inline, which tests rely on.
	cpuDelay    time.Duration
	absorbDelay time.Duration
}

type Option func(*Engine)

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notify = n }
}

func WithCPUDelay(d time.Duration) Option {
	return func(e *Engine) { e.cpuDelay = d }
}

func WithAbsorbDelay(d time.Duration) Option {
	return func(e *Engine) { e.absorbDelay = d }
}

func New(opts ...Option) *Engine {
	e := &Engine{
		state:       golf.NewGameState(),
		notify:      NopNotifier{},
		cpuDelay:    time.Second,
		absorbDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns the human's personalized view of the current state.
func (e *Engine) Snapshot() *golf.ClientView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.View(HumanSeat)
}

// DrawnCard returns the card the human currently holds, if any.
func (e *Engine) DrawnCard() *golf.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.DrawnCard == nil || e.state.CurrentTurn != HumanSeat {
		return nil
	}
	card := *e.state.DrawnCard
	return &card
}

func (e *Engine) Deal() error {
	e.mu.Lock()
	err := e.state.Deal()
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success("Cards dealt! Peek at two of your cards.")
	return nil
}

func (e *Engine) Peek(position int) error {
	e.mu.Lock()
	err := e.state.Peek(HumanSeat, position)
	exhausted := err == nil && e.state.PeeksRemaining == 0
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Info("Card peeked")
	if exhausted {
		e.scheduleBeginPlay()
	}
	return nil
}

func (e *Engine) DrawFromDeck() error {
	e.mu.Lock()
	err := e.state.DrawFromDeck(HumanSeat)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Info("Card drawn from the deck")
	return nil
}

func (e *Engine) DrawFromDiscard() error {
	e.mu.Lock()
	err := e.state.DrawFromDiscard(HumanSeat)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Info("Card drawn from the discard pile")
	return nil
}

func (e *Engine) ReplaceCard(position int) error {
	e.mu.Lock()
	err := e.state.ReplaceCard(HumanSeat, position)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success("Card replaced and locked")
	e.afterLockingAction()
	return nil
}

func (e *Engine) DiscardDrawn() error {
	e.mu.Lock()
	err := e.state.DiscardDrawn(HumanSeat)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Info("Card discarded. Flip one of your cards.")
	return nil
}

func (e *Engine) FlipAfterDiscard(position int) error {
	e.mu.Lock()
	err := e.state.FlipAfterDiscard(HumanSeat, position)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success("Card revealed")
	e.afterLockingAction()
	return nil
}

func (e *Engine) FlipDirect(position int) error {
	e.mu.Lock()
	err := e.state.FlipDirect(HumanSeat, position)
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success("Card revealed")
	e.afterLockingAction()
	return nil
}

func (e *Engine) NewRound() error {
	e.mu.Lock()
	err := e.state.NewRound()
	e.mu.Unlock()

	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.notify.Success("New round ready. Deal when you are.")
	return nil
}

// scheduleBeginPlay ends the peek phase after the absorb delay. The CPU
// does not peek in single-player, so the budget never passes to it.
func (e *Engine) scheduleBeginPlay() {
	run := func() {
		e.mu.Lock()
		err := e.state.BeginPlay()
		e.mu.Unlock()
		if err == nil {
			e.notify.Success("Round started. Your move.")
		}
	}
	if e.absorbDelay <= 0 {
		run()
		return
	}
	time.AfterFunc(e.absorbDelay, run)
}

// afterLockingAction inspects the state after a human locking action and
// either reports the round result or hands the turn to the CPU.
func (e *Engine) afterLockingAction() {
	e.mu.Lock()
	phase := e.state.Phase
	turn := e.state.CurrentTurn
	e.mu.Unlock()

	switch phase {
	case golf.PhaseRoundFinished, golf.PhaseGameFinished:
		e.reportRoundEnd()
	case golf.PhasePlaying:
		if turn == CPUSeat {
			e.scheduleCPU()
		}
	}
}

func (e *Engine) reportRoundEnd() {
	e.mu.Lock()
	round := e.state.RoundScore
	total := e.state.GameScore
	phase := e.state.Phase
	humanFourOfAKind := e.state.Player1Hand.FourOfAKind()
	cpuFourOfAKind := e.state.Player2Hand.FourOfAKind()
	winner, gameOver := e.state.Winner()
	e.mu.Unlock()

	if humanFourOfAKind {
		e.notify.Success("Four of a kind! Your hand scores zero.")
	}
	if cpuFourOfAKind {
		e.notify.Info("CPU has four of a kind. Its hand scores zero.")
	}
	e.notify.Info(fmt.Sprintf("Round over. You scored %d, CPU scored %d.", round.Player1, round.Player2))

	if phase == golf.PhaseGameFinished && gameOver {
		if winner == HumanSeat {
			e.notify.Success(fmt.Sprintf("You win the game, %d to %d!", total.Player1, total.Player2))
		} else {
			e.notify.Info(fmt.Sprintf("CPU wins the game, %d to %d.", total.Player2, total.Player1))
		}
	}
}

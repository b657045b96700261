package engine

import (
	"time"

	"golf-server/internal/golf"
)

func (e *Engine) scheduleCPU() {
	if e.cpuDelay <= 0 {
		e.cpuTurn()
		return
	}
	time.AfterFunc(e.cpuDelay, e.cpuTurn)
}

// cpuTurn runs the scripted policy: draw from the deck, swap out the
// worst face-down card when the draw strictly improves on it, otherwise
// discard and flip the first face-down position.
func (e *Engine) cpuTurn() {
	e.mu.Lock()
	notices := e.playCPU()
	finished := e.state.Phase == golf.PhaseRoundFinished || e.state.Phase == golf.PhaseGameFinished
	e.mu.Unlock()

	for _, notice := range notices {
		e.notify.Info(notice)
	}
	if finished {
		e.reportRoundEnd()
	}
}

// playCPU mutates the state under the engine lock and returns the
// notices to emit once the lock is released.
func (e *Engine) playCPU() []string {
	g := e.state
	if g.Phase != golf.PhasePlaying || g.CurrentTurn != CPUSeat {
		return nil
	}

	hand := g.Hand(CPUSeat)
	firstFaceDown, worstPos, worstValue := -1, -1, -1
	for i, card := range hand.Cards {
		if hand.Revealed[i] || card == nil {
			continue
		}
		if firstFaceDown == -1 {
			firstFaceDown = i
		}
		if card.Value() > worstValue {
			worstValue = card.Value()
			worstPos = i
		}
	}
	if firstFaceDown == -1 {
		return nil
	}

	if err := g.DrawFromDeck(CPUSeat); err != nil {
		// Deck exhausted: fall back to revealing a card so the round
		// still makes progress.
		if err := g.FlipDirect(CPUSeat, firstFaceDown); err != nil {
			return nil
		}
		return []string{"CPU flipped a card"}
	}

	if g.DrawnCard.Value() < worstValue {
		if err := g.ReplaceCard(CPUSeat, worstPos); err != nil {
			return nil
		}
		return []string{"CPU replaced a card"}
	}

	if err := g.DiscardDrawn(CPUSeat); err != nil {
		return nil
	}
	if err := g.FlipAfterDiscard(CPUSeat, firstFaceDown); err != nil {
		return nil
	}
	return []string{"CPU discarded the drawn card", "CPU flipped a card"}
}

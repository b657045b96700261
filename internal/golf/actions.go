package golf

// ActionType tags a client-to-authority action message.
type ActionType string

const (
	ActionDealInitialCards     ActionType = "deal-initial-cards"
	ActionPeekCard             ActionType = "peek-card"
	ActionDrawFromDeck         ActionType = "draw-from-deck"
	ActionDrawFromDiscard      ActionType = "draw-from-discard"
	ActionReplaceCard          ActionType = "replace-card"
	ActionDiscardDrawnCard     ActionType = "discard-drawn-card"
	ActionLockCardAfterDiscard ActionType = "lock-card-after-discard"
	ActionFlipCardDirectly     ActionType = "flip-card-directly"
	ActionNewRound             ActionType = "new-round"
)

// EventType tags an authority-to-client message.
type EventType string

const (
	EventGameState    EventType = "game-state"
	EventPlayerJoined EventType = "player-joined"
	EventPlayerLeft   EventType = "player-left"
	EventRoomFull     EventType = "room-full"
	EventError        EventType = "error"
)

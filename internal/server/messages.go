package server

import "golf-server/internal/golf"

type ClientMessage struct {
	Type     golf.ActionType `json:"type"`
	Position *int            `json:"position,omitempty"`
}

type ServerMessage struct {
	Type    golf.EventType `json:"type"`
	Payload interface{}    `json:"payload,omitempty"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

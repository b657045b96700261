package server

import (
	"errors"
	"log"
	"sync"

	"github.com/coder/websocket"

	"golf-server/internal/golf"
)

// ErrRoomFull is returned when a third connection tries to join a room.
var ErrRoomFull = errors.New("ROOM_FULL: room already has two players")

// RoomManager is the shared table of live rooms. Rooms are created on
// demand when the first player joins and destroyed when the last player
// leaves; the room code is an opaque string chosen by the client.
// Seating and removal both run under the table lock, so a connection can
// never be seated in a room that is being removed and a room with a live
// occupant always stays reachable by its code.
type RoomManager struct {
	rooms map[string]*Room
	mu    sync.Mutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*Room),
	}
}

// Join seats a connection in the room for code, creating the room if it
// does not exist yet.
func (rm *RoomManager) Join(code string, conn *websocket.Conn) (*Room, golf.Seat, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[code]
	if !exists {
		room = newRoom(code)
		rm.rooms[code] = room
	}

	seat, err := room.Join(conn)
	if err != nil {
		return nil, "", err
	}
	return room, seat, nil
}

// Leave unseats a connection and drops the room from the table if that
// left it empty. The emptiness check happens under the table lock, so a
// join racing with the last disconnect either lands before removal and
// keeps the room alive, or lands after and gets a fresh room.
func (rm *RoomManager) Leave(code string, seat golf.Seat) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[code]
	if !exists {
		return
	}
	if room.Leave(seat) == 0 {
		delete(rm.rooms, code)
		log.Printf("Room %s destroyed", code)
	}
}

func (rm *RoomManager) Count() int {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return len(rm.rooms)
}

// Rooms snapshots the current room handles, for shutdown.
func (rm *RoomManager) Rooms() []*Room {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rooms := make([]*Room, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

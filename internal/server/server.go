package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	port        int
	rooms       *RoomManager
	rateLimiter *RateLimiter
}

// NewServer builds the room-backed game server and the http.Server that
// fronts it. PORT comes from the environment (.env is auto-loaded).
func NewServer() (*Server, *http.Server) {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	srv := &Server{
		port:        port,
		rooms:       NewRoomManager(),
		rateLimiter: NewRateLimiter(20, time.Second),
	}

	// Declare Server config
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return srv, httpServer
}

// Shutdown tells every room to close its sockets so clients see a clean
// going-away instead of a dropped TCP connection.
func (s *Server) Shutdown(ctx context.Context) {
	for _, room := range s.rooms.Rooms() {
		room.Close("Server shutting down")
	}
}

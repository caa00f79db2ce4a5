package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/pkg/types"
)

// StreamServer pushes completed analyses to websocket subscribers
type StreamServer struct {
	upgrader  websocket.Upgrader
	logger    *zap.Logger
	broadcast chan *types.TransactionAnalysis

	mu      sync.Mutex
	clients map[*websocket.Conn]chan *types.TransactionAnalysis
	closed  bool
}

// NewStreamServer creates the websocket streaming server
func NewStreamServer(logger *zap.Logger) *StreamServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger:    logger,
		broadcast: make(chan *types.TransactionAnalysis, 100),
		clients:   make(map[*websocket.Conn]chan *types.TransactionAnalysis),
	}
}

// Run fans the broadcast channel out to all connected clients until the
// context is cancelled
func (s *StreamServer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case analysis, ok := <-s.broadcast:
			if !ok {
				return
			}
			s.mu.Lock()
			for conn, send := range s.clients {
				select {
				case send <- analysis:
				default:
					// Slow consumer: drop the connection rather than block
					// the broadcast.
					close(send)
					delete(s.clients, conn)
					conn.Close()
				}
			}
			s.mu.Unlock()
		}
	}
}

// Broadcast queues an analysis for delivery to all subscribers. It never
// blocks the analysis pipeline; messages are dropped when the queue is full.
func (s *StreamServer) Broadcast(analysis *types.TransactionAnalysis) {
	if analysis == nil {
		return
	}
	select {
	case s.broadcast <- analysis:
	default:
		s.logger.Debug("stream queue full, dropping analysis",
			zap.String("hash", analysis.Hash))
	}
}

// HandleWebSocket upgrades the connection and streams analyses to it
func (s *StreamServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	send := make(chan *types.TransactionAnalysis, 32)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.clients[conn] = send
	s.mu.Unlock()

	go s.writeLoop(conn, send)
	go s.readLoop(conn)
}

func (s *StreamServer) writeLoop(conn *websocket.Conn, send chan *types.TransactionAnalysis) {
	for analysis := range send {
		if err := conn.WriteJSON(analysis); err != nil {
			s.remove(conn)
			return
		}
	}
}

// readLoop drains client frames so pings are answered and closes are seen
func (s *StreamServer) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.remove(conn)
			return
		}
	}
}

func (s *StreamServer) remove(conn *websocket.Conn) {
	s.mu.Lock()
	if send, ok := s.clients[conn]; ok {
		close(send)
		delete(s.clients, conn)
	}
	s.mu.Unlock()
	conn.Close()
}

// Shutdown closes all client connections
func (s *StreamServer) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for conn, send := range s.clients {
		close(send)
		conn.Close()
		delete(s.clients, conn)
	}
}

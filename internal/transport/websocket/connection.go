package websocket

import (
	"sync"
	"time"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// ConnectionManager maps guest session ids to their live connections.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// writeMu holds one mutex per socket. conn.WriteJSON is not safe for
	// concurrent use, so every data write to a socket goes through its mutex.
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex // protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(guestID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[guestID] = conn
	cm.writeMu[guestID] = &sync.Mutex{}
}

// RemoveConnectionIfMatching drops the mapping only when it still points at
// this connection, so a reconnect is not clobbered by the old socket dying.
func (cm *ConnectionManager) RemoveConnectionIfMatching(guestID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if current, ok := cm.connections[guestID]; ok && current == conn {
		delete(cm.connections, guestID)
		delete(cm.writeMu, guestID)
	}
}

func (cm *ConnectionManager) SendMessage(guestID string, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, ok := cm.connections[guestID]
	mu, muOK := cm.writeMu[guestID]
	cm.mu.RUnlock()
	if !ok || !muOK {
		return domain.Error("connection not found")
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(message)
}

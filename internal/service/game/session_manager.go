package game

import (
	"log"
	"sync"

	"github.com/adaptiveplay/tictactoe/backend/internal/domain"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/bot"
	"github.com/adaptiveplay/tictactoe/backend/internal/service/persist"
)

// SessionManager tracks the active game of each guest session.
type SessionManager struct {
	sessions map[string]*Session // guest sessionID → active game
	mu       sync.RWMutex
	engine   *bot.Engine
	store    *persist.Store
	repo     GameRecorder
}

func NewSessionManager(engine *bot.Engine, store *persist.Store, repo GameRecorder) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		engine:   engine,
		store:    store,
		repo:     repo,
	}
}

// StartGame replaces any game the guest already has with a fresh one.
func (sm *SessionManager) StartGame(guestID string, variant domain.Variant, difficulty domain.Difficulty, humanMark domain.Mark) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := NewSession(variant, difficulty, humanMark, sm.engine, sm.store, sm.repo)
	sm.sessions[guestID] = session
	log.Printf("[SESSION] Guest %s started game %s (%s, %s)", guestID, session.GameID, variant, difficulty)
	return session
}

func (sm *SessionManager) GetSession(guestID string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	session, exists := sm.sessions[guestID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(guestID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, guestID)
}

// ActiveCount reports how many games are currently tracked.
func (sm *SessionManager) ActiveCount() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

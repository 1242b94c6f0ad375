// Package session keeps per-chat conversation state for the bot.
package session

import "sync"

// State names the step a chat is currently at
type State string

const (
	StateIdle               State = "idle"
	StateWaitingWord        State = "waiting_word"
	StateWaitingTranslation State = "waiting_translation"
	StateWaitingText        State = "waiting_text"
)

// Data holds temporary data for a chat's current state
type Data struct {
	State       State
	CurrentWord string
	LastWordID  int
}

// Store is a mutex-guarded session map keyed by chat id. It is injected
// into handlers so they stay testable; there is no package-level state.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Data
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Data)}
}

// Get returns the chat's session, idle when none exists yet
func (s *Store) Get(chatID int64) *Data {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, exists := s.sessions[chatID]
	if !exists {
		return &Data{State: StateIdle}
	}
	copied := *data
	return &copied
}

// Set stores a snapshot of the chat's session. The caller keeps its
// pointer; later mutations do not leak into the store.
func (s *Store) Set(chatID int64, data *Data) {
	copied := *data
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = &copied
}

// Reset returns the chat to the idle state
func (s *Store) Reset(chatID int64) {
	s.Set(chatID, &Data{State: StateIdle})
}

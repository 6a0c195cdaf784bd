// Package chat owns the live session collection and the active
// chat/persona/model selection. It is the single source of truth the
// UI renders from; every mutation of the collection is mirrored to the
// durable snapshot before the call returns.
package chat

import (
	"context"
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/neuralchat/backend/internal/model/chat"
	"github.com/neuralchat/backend/internal/store"
)

var ErrSessionNotFound = errors.New("session not found")

const titleLimit = 30

// Service encapsulates conversation state management.
type Service struct {
	mu       sync.RWMutex
	sessions chat.Collection
	snapshot store.Snapshot
	lastID   int64

	// Active selection is transient: it is never persisted, and the
	// persona is re-derived from whichever chat is reselected.
	activeChatID    string
	activePersonaID string
	activeModel     chat.ModelTier
}

// NewService restores the collection from the snapshot and starts with
// the given persona selected, no active chat, and the fast model.
func NewService(snapshot store.Snapshot, defaultPersonaID string) *Service {
	s := &Service{
		sessions:        snapshot.Load(),
		snapshot:        snapshot,
		activePersonaID: defaultPersonaID,
		activeModel:     chat.ModelFast,
	}
	for _, sess := range s.sessions {
		if id, err := strconv.ParseInt(sess.ID, 10, 64); err == nil && id > s.lastID {
			s.lastID = id
		}
	}
	return s
}

// CreateSession provisions a new session holding the initiating user
// message, bound to the given persona, and makes it the active chat.
func (s *Service) CreateSession(_ context.Context, firstMessage, personaID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := chat.Session{
		ID:        s.nextIDLocked(),
		Title:     truncateTitle(firstMessage),
		Messages:  []chat.Message{{Role: chat.RoleUser, Content: firstMessage}},
		PersonaID: personaID,
		CreatedAt: time.Now().UTC(),
	}
	s.sessions = append(s.sessions, session)
	s.activeChatID = session.ID
	s.activePersonaID = personaID
	s.persistLocked()
	return session.ID
}

// AppendMessage adds a message to the session history. A session that
// no longer exists (deleted mid-flight) makes this a silent no-op.
func (s *Service) AppendMessage(_ context.Context, sessionID string, message chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessions.Index(sessionID)
	if i < 0 {
		return
	}
	s.sessions[i].Messages = append(s.sessions[i].Messages, message)
	s.persistLocked()
}

// DeleteSession removes a session. If it was the active chat the
// active selection is cleared.
func (s *Service) DeleteSession(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessions.Index(sessionID)
	if i < 0 {
		return
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	if s.activeChatID == sessionID {
		s.activeChatID = ""
	}
	s.persistLocked()
}

// SelectSession makes a session the active chat and adopts its persona
// as the active persona, so subsequent requests use the persona the
// conversation was started with.
func (s *Service) SelectSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.sessions.Index(sessionID)
	if i < 0 {
		return ErrSessionNotFound
	}
	s.activeChatID = sessionID
	s.activePersonaID = s.sessions[i].PersonaID
	return nil
}

// SelectPersona sets the active persona and clears the active chat:
// switching persona outside a session always starts a fresh
// conversation context. Stored sessions keep their original persona.
func (s *Service) SelectPersona(_ context.Context, personaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activePersonaID = personaID
	s.activeChatID = ""
}

// SelectModel sets the model tier used for subsequent requests.
func (s *Service) SelectModel(_ context.Context, tier chat.ModelTier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeModel = tier
}

// NewChat clears the active chat so the next submission starts a
// fresh session with the currently selected persona.
func (s *Service) NewChat(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeChatID = ""
}

// Sessions returns a copy of the full collection in display order.
func (s *Service) Sessions() chat.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions.Clone()
}

// Session retrieves one session by id.
func (s *Service) Session(sessionID string) (chat.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.sessions.Index(sessionID)
	if i < 0 {
		return chat.Session{}, false
	}
	return s.sessions[i].Clone(), true
}

// ActiveChatID returns the id of the active chat, or "" when none.
func (s *Service) ActiveChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeChatID
}

// ActivePersonaID returns the currently selected persona id.
func (s *Service) ActivePersonaID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePersonaID
}

// ActiveModel returns the currently selected model tier.
func (s *Service) ActiveModel() chat.ModelTier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeModel
}

// persistLocked mirrors the collection to the durable snapshot. A
// storage fault never rolls back the in-memory state; the live
// session stays correct and the fault is only logged.
func (s *Service) persistLocked() {
	if err := s.snapshot.Save(s.sessions.Clone()); err != nil {
		log.Printf("[chat] snapshot save failed: %v", err)
	}
}

// nextIDLocked allocates a time-derived id that stays monotonic even
// when two sessions land on the same millisecond.
func (s *Service) nextIDLocked() string {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// truncateTitle derives a session title from the first user message,
// counting characters rather than bytes.
func truncateTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= titleLimit {
		return message
	}
	return string(runes[:titleLimit])
}

// Package turn drives the lifecycle of a single user turn: resolve or
// create the target session, append the user message, call the
// completion gateway, and append the reply or a visible error. At most
// one turn is in flight per Service; concurrent submissions are
// rejected, not queued.
package turn

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/neuralchat/backend/internal/model/chat"
	"github.com/neuralchat/backend/internal/model/persona"
	chatservice "github.com/neuralchat/backend/internal/service/chat"
)

var (
	ErrEmptyInput = errors.New("input is empty")
	ErrBusy       = errors.New("a request is already in flight")
)

// ConnectionErrorMessage is appended as an assistant message when the
// completion call fails, so failures stay visible in-conversation.
const ConnectionErrorMessage = "System Error: Connection disrupted"

// Gateway performs one completion round-trip.
type Gateway interface {
	Complete(ctx context.Context, systemInstruction string, history []chat.Message, userMessage string, tier chat.ModelTier) (string, error)
}

// Notifier receives a best-effort notification per submission.
type Notifier interface {
	Notify(personaID, message string)
}

// Result reports the outcome of a submitted turn.
type Result struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
	Failed    bool   `json:"failed,omitempty"`
}

// Service is the turn orchestrator.
type Service struct {
	mu      sync.Mutex
	sending bool

	sessions *chatservice.Service
	personas persona.Registry
	gateway  Gateway
	notifier Notifier
}

// NewService wires the orchestrator. The notifier may be nil.
func NewService(sessions *chatservice.Service, personas persona.Registry, gateway Gateway, notifier Notifier) *Service {
	return &Service{
		sessions: sessions,
		personas: personas,
		gateway:  gateway,
		notifier: notifier,
	}
}

// Sending reports whether a turn is currently in flight.
func (s *Service) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Submit runs one turn. Empty input and submissions while a turn is
// outstanding are rejected synchronously with no session mutation.
// Gateway failures are translated into an in-conversation assistant
// message, never propagated; the returned Result carries the
// originating session id and the appended reply text either way.
func (s *Service) Submit(ctx context.Context, input string) (Result, error) {
	if strings.TrimSpace(input) == "" {
		return Result{}, ErrEmptyInput
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return Result{}, ErrBusy
	}
	s.sending = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	sessionID, history, active, tier := s.beginTurn(ctx, input)

	if s.notifier != nil {
		s.notifier.Notify(active.ID, input)
	}

	content, err := s.gateway.Complete(ctx, active.SystemInstruction, history, input, tier)
	if err != nil {
		log.Printf("[turn] completion failed for session=%s: %v", sessionID, err)
		s.sessions.AppendMessage(ctx, sessionID, chat.Message{Role: chat.RoleAssistant, Content: ConnectionErrorMessage})
		return Result{SessionID: sessionID, Reply: ConnectionErrorMessage, Failed: true}, nil
	}

	// The append targets the session captured at submission time, not
	// whatever is active now; if that session was deleted mid-flight
	// this is a silent no-op.
	s.sessions.AppendMessage(ctx, sessionID, chat.Message{Role: chat.RoleAssistant, Content: content})
	return Result{SessionID: sessionID, Reply: content}, nil
}

// beginTurn resolves the target session, appends the user message, and
// snapshots the prior history before the network round-trip, so turns
// submitted later can never leak into this request.
func (s *Service) beginTurn(ctx context.Context, input string) (sessionID string, history []chat.Message, active persona.Persona, tier chat.ModelTier) {
	tier = s.sessions.ActiveModel()

	activeID := s.sessions.ActiveChatID()
	if activeID != "" {
		if sess, ok := s.sessions.Session(activeID); ok {
			history = sess.Messages
			active = s.personas.Get(sess.PersonaID)
			s.sessions.AppendMessage(ctx, activeID, chat.Message{Role: chat.RoleUser, Content: input})
			return activeID, history, active, tier
		}
	}

	active = s.personas.Get(s.sessions.ActivePersonaID())
	sessionID = s.sessions.CreateSession(ctx, input, active.ID)
	return sessionID, nil, active, tier
}

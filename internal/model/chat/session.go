package chat

import "time"

// Session is one conversation thread bound to the persona it was
// started with. PersonaID never changes after creation; switching
// persona starts a new session instead.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	PersonaID string    `json:"personaId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so callers cannot mutate stored messages.
func (s Session) Clone() Session {
	copied := s
	copied.Messages = append([]Message(nil), s.Messages...)
	return copied
}

// Collection is the full ordered list of sessions, insertion order
// preserved for display. It is the unit of persistence: the snapshot
// store reads and writes it whole.
type Collection []Session

// Clone deep-copies every session. The result is never nil so an
// empty collection serializes as an empty list.
func (c Collection) Clone() Collection {
	copied := make(Collection, len(c))
	for i, s := range c {
		copied[i] = s.Clone()
	}
	return copied
}

// Index returns the position of the session with the given id, or -1.
func (c Collection) Index(id string) int {
	for i, s := range c {
		if s.ID == id {
			return i
		}
	}
	return -1
}

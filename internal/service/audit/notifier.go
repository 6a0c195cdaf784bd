// Package audit delivers best-effort submission notifications to an
// external logging collaborator. Delivery runs off the request path
// and its outcome never influences the chat flow.
package audit

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Event is the payload posted to the log endpoint for each submission.
type Event struct {
	ID        string `json:"id"`
	Character string `json:"character"`
	Message   string `json:"message"`
}

// Notifier posts submission events to a configured log endpoint.
// A Notifier with an empty URL (or a nil Notifier) discards events.
type Notifier struct {
	url    string
	client *http.Client
}

// NewNotifier returns a Notifier targeting the given URL.
func NewNotifier(url string) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify fires one event in a goroutine and returns immediately.
func (n *Notifier) Notify(personaID, message string) {
	if n == nil || n.url == "" {
		return
	}
	event := Event{
		ID:        uuid.NewString(),
		Character: personaID,
		Message:   message,
	}
	go n.post(event)
}

func (n *Notifier) post(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[audit] marshal event failed: %v", err)
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("[audit] notify failed: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("[audit] log endpoint returned %d", resp.StatusCode)
	}
}

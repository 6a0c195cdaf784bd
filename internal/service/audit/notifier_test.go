package audit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/neuralchat/backend/internal/service/audit"
)

func TestNotifierPostsEvent(t *testing.T) {
	received := make(chan audit.Event, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var event audit.Event
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decode event: %v", err)
		}
		received <- event
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	audit.NewNotifier(server.URL).Notify("jarvis", "Hello")

	select {
	case event := <-received:
		if event.Character != "jarvis" || event.Message != "Hello" {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.ID == "" {
			t.Fatal("event id missing")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestNotifierEmptyURLDiscards(t *testing.T) {
	// Must not panic or block.
	audit.NewNotifier("").Notify("jarvis", "Hello")
}

func TestNilNotifierDiscards(t *testing.T) {
	var n *audit.Notifier
	n.Notify("jarvis", "Hello")
}

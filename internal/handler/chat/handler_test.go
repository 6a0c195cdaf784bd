package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	chatmodel "github.com/neuralchat/backend/internal/model/chat"
	"github.com/neuralchat/backend/internal/model/persona"
	chatservice "github.com/neuralchat/backend/internal/service/chat"
	turnservice "github.com/neuralchat/backend/internal/service/turn"
	"github.com/neuralchat/backend/internal/store"
)

type stubGateway struct {
	reply string
	err   error
}

func (g *stubGateway) Complete(_ context.Context, _ string, _ []chatmodel.Message, _ string, _ chatmodel.ModelTier) (string, error) {
	return g.reply, g.err
}

func setupRouter(gw turnservice.Gateway) (*chi.Mux, *chatservice.Service) {
	registry := persona.NewStaticRegistry(persona.Seed())
	sessions := chatservice.NewService(store.NewMemoryStore(), registry.List()[0].ID)

	var turns *turnservice.Service
	if gw != nil {
		turns = turnservice.NewService(sessions, registry, gw, nil)
	}
	handler := New(sessions, turns)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sessions
}

func TestSubmitReturnsReply(t *testing.T) {
	r, sessions := setupRouter(&stubGateway{reply: "Hi there"})

	payload, _ := json.Marshal(map[string]string{"message": "Hello"})
	req := httptest.NewRequest(http.MethodPost, "/chats/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var result turnservice.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Reply != "Hi there" || result.SessionID == "" {
		t.Fatalf("unexpected result: %+v", result)
	}

	sess, ok := sessions.Session(result.SessionID)
	if !ok || len(sess.Messages) != 2 {
		t.Fatalf("session state wrong after submit: %+v", sess)
	}
}

func TestSubmitEmptyMessage(t *testing.T) {
	r, sessions := setupRouter(&stubGateway{reply: "unused"})

	payload := []byte(`{"message":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if len(sessions.Sessions()) != 0 {
		t.Fatal("rejected submission created a session")
	}
}

func TestSubmitWithoutGateway(t *testing.T) {
	r, _ := setupRouter(nil)

	payload := []byte(`{"message":"Hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/chats/submit", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestGetStateIncludesSelection(t *testing.T) {
	r, sessions := setupRouter(&stubGateway{reply: "ok"})
	id := sessions.CreateSession(context.Background(), "Hello", "jarvis")

	req := httptest.NewRequest(http.MethodGet, "/chats", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var state struct {
		Sessions        chatmodel.Collection `json:"sessions"`
		ActiveChatID    string               `json:"activeChatId"`
		ActivePersonaID string               `json:"activePersonaId"`
		ActiveModel     string               `json:"activeModel"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(state.Sessions) != 1 || state.ActiveChatID != id {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.ActivePersonaID != "jarvis" || state.ActiveModel != "fast" {
		t.Fatalf("unexpected selection: %+v", state)
	}
}

func TestSelectUnknownChat(t *testing.T) {
	r, _ := setupRouter(&stubGateway{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/chats/missing/select", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteChat(t *testing.T) {
	r, sessions := setupRouter(&stubGateway{reply: "ok"})
	id := sessions.CreateSession(context.Background(), "Hello", "jarvis")

	req := httptest.NewRequest(http.MethodDelete, "/chats/"+id, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if len(sessions.Sessions()) != 0 {
		t.Fatal("session not deleted")
	}
}

func TestSelectModelValidation(t *testing.T) {
	r, sessions := setupRouter(&stubGateway{reply: "ok"})

	req := httptest.NewRequest(http.MethodPost, "/model", bytes.NewReader([]byte(`{"model":"turbo"}`)))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown tier, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/model", bytes.NewReader([]byte(`{"model":"advanced"}`)))
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sessions.ActiveModel() != chatmodel.ModelAdvanced {
		t.Fatalf("model not selected: %q", sessions.ActiveModel())
	}
}

package persona

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/neuralchat/backend/internal/model/persona"
	chatservice "github.com/neuralchat/backend/internal/service/chat"
	"github.com/neuralchat/backend/internal/store"
)

func setupRouter() (*chi.Mux, *chatservice.Service) {
	registry := personaModel.NewStaticRegistry(personaModel.Seed())
	sessions := chatservice.NewService(store.NewMemoryStore(), registry.List()[0].ID)
	handler := New(registry, sessions)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sessions
}

func TestListPersonas(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var personas []personaModel.Persona
	if err := json.NewDecoder(resp.Body).Decode(&personas); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(personas) != len(personaModel.Seed()) {
		t.Fatalf("expected %d personas, got %d", len(personaModel.Seed()), len(personas))
	}
}

func TestSelectPersonaClearsActiveChat(t *testing.T) {
	r, sessions := setupRouter()
	sessions.CreateSession(context.Background(), "Hello", "kratos")

	req := httptest.NewRequest(http.MethodPost, "/personas/joker/select", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sessions.ActiveChatID() != "" {
		t.Fatal("active chat not cleared by persona selection")
	}
	if sessions.ActivePersonaID() != "joker" {
		t.Fatalf("persona not selected: %q", sessions.ActivePersonaID())
	}
}

func TestSelectUnknownPersonaFallsBack(t *testing.T) {
	r, sessions := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/personas/nonexistent/select", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sessions.ActivePersonaID() != "cyberpunk" {
		t.Fatalf("expected fallback to default persona, got %q", sessions.ActivePersonaID())
	}
}

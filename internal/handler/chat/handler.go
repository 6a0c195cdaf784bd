package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neuralchat/backend/internal/model/chat"
	chatservice "github.com/neuralchat/backend/internal/service/chat"
	turnservice "github.com/neuralchat/backend/internal/service/turn"
	"github.com/neuralchat/backend/pkg/utils"
)

// Handler exposes session state and the turn submission endpoint.
type Handler struct {
	sessions *chatservice.Service
	turns    *turnservice.Service
}

// New creates the chat handler. turns may be nil when the completion
// backend is not configured; submissions then return 503.
func New(sessions *chatservice.Service, turns *turnservice.Service) *Handler {
	return &Handler{
		sessions: sessions,
		turns:    turns,
	}
}

// RegisterRoutes registers chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/chats", h.handleGetState)
	r.Post("/chats/submit", h.handleSubmit)
	r.Post("/chats/new", h.handleNewChat)
	r.Post("/chats/{chatID}/select", h.handleSelectChat)
	r.Delete("/chats/{chatID}", h.handleDeleteChat)
	r.Post("/model", h.handleSelectModel)
}

// handleGetState returns everything the UI renders from: the session
// list and the active selection.
func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Sessions        chat.Collection `json:"sessions"`
		ActiveChatID    string          `json:"activeChatId,omitempty"`
		ActivePersonaID string          `json:"activePersonaId"`
		ActiveModel     chat.ModelTier  `json:"activeModel"`
	}{
		Sessions:        h.sessions.Sessions(),
		ActiveChatID:    h.sessions.ActiveChatID(),
		ActivePersonaID: h.sessions.ActivePersonaID(),
		ActiveModel:     h.sessions.ActiveModel(),
	}
	utils.RespondJSON(w, http.StatusOK, payload)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if h.turns == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "completion backend not configured")
		return
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.turns.Submit(r.Context(), payload.Message)
	switch {
	case errors.Is(err, turnservice.ErrEmptyInput):
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	case errors.Is(err, turnservice.ErrBusy):
		utils.RespondError(w, http.StatusConflict, "a request is already in flight")
		return
	case err != nil:
		utils.RespondError(w, http.StatusInternalServerError, "submission failed")
		return
	}

	utils.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) handleNewChat(w http.ResponseWriter, r *http.Request) {
	h.sessions.NewChat(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleSelectChat(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	if err := h.sessions.SelectSession(r.Context(), chatID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "chat not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"activeChatId":    chatID,
		"activePersonaId": h.sessions.ActivePersonaID(),
	})
}

func (h *Handler) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	h.sessions.DeleteSession(r.Context(), chi.URLParam(r, "chatID"))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) handleSelectModel(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tier, ok := chat.ParseModelTier(payload.Model)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, "unknown model tier")
		return
	}

	h.sessions.SelectModel(r.Context(), tier)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"activeModel": string(tier)})
}

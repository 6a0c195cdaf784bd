package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neuralchat/backend/internal/model/persona"
	chatservice "github.com/neuralchat/backend/internal/service/chat"
	"github.com/neuralchat/backend/pkg/utils"
)

// Handler exposes the persona catalog and persona selection.
type Handler struct {
	personas persona.Registry
	sessions *chatservice.Service
}

// New creates the persona handler.
func New(personas persona.Registry, sessions *chatservice.Service) *Handler {
	return &Handler{
		personas: personas,
		sessions: sessions,
	}
}

// RegisterRoutes registers persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
	r.Post("/personas/{personaID}/select", h.handleSelectPersona)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}

// handleSelectPersona sets the active persona and clears the active
// chat; selecting a persona always starts a fresh conversation
// context. Unknown ids resolve to the default persona.
func (h *Handler) handleSelectPersona(w http.ResponseWriter, r *http.Request) {
	selected := h.personas.Get(chi.URLParam(r, "personaID"))
	h.sessions.SelectPersona(r.Context(), selected.ID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"activePersonaId": selected.ID})
}

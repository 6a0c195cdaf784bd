package audit

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neuralchat/backend/pkg/utils"
)

// Handler is the server-side sink for submission log events.
type Handler struct{}

// New creates the audit log handler.
func New() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the log sink route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/log", h.handleLog)
}

// handleLog records message metadata. It only logs; nothing is stored.
func (h *Handler) handleLog(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID        string `json:"id"`
		Character string `json:"character"`
		Message   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("[log] decode failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "Failed to log")
		return
	}

	log.Printf("[log] === New Chat Message ===")
	log.Printf("[log] Time: %s", time.Now().UTC().Format(time.RFC3339))
	log.Printf("[log] Character: %s", payload.Character)
	log.Printf("[log] Message: %s", payload.Message)
	log.Printf("[log] User Agent: %s", r.Header.Get("User-Agent"))
	log.Printf("[log] Referer: %s", r.Header.Get("Referer"))

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "logged"})
}

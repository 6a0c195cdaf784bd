package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neuralchat/backend/internal/handler/audit"
	"github.com/neuralchat/backend/internal/handler/chat"
	"github.com/neuralchat/backend/internal/handler/persona"
	middlewarePkg "github.com/neuralchat/backend/internal/middleware"
	personaModel "github.com/neuralchat/backend/internal/model/persona"
	chatService "github.com/neuralchat/backend/internal/service/chat"
	turnService "github.com/neuralchat/backend/internal/service/turn"
)

// NewRouter wires HTTP routes to core services. turns may be nil when
// the completion backend is not configured.
func NewRouter(personas personaModel.Registry, sessions *chatService.Service, turns *turnService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaHandler := persona.New(personas, sessions)
	chatHandler := chat.New(sessions, turns)
	auditHandler := audit.New()

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		auditHandler.RegisterRoutes(api)
	})

	return r
}

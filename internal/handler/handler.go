package handler

import (
	"github.com/gorilla/mux"

	"sadaka/internal/config"
	"sadaka/internal/hub"
	"sadaka/internal/service"
)

// Handler holds application dependencies
type Handler struct {
	Config    config.Config
	Hub       *hub.Hub
	Mutations *service.Mutation
	Queries   *service.Query
}

// New creates a new Handler with the given dependencies
func New(cfg config.Config, h *hub.Hub, mutations *service.Mutation, queries *service.Query) *Handler {
	return &Handler{
		Config:    cfg,
		Hub:       h,
		Mutations: mutations,
		Queries:   queries,
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// REST API
	r.HandleFunc("/donation", h.GetDonation).Methods("GET")
	r.HandleFunc("/donation/update", h.UpdateDonation).Methods("POST")
	r.HandleFunc("/gallery", h.GetGallery).Methods("GET")
	r.HandleFunc("/gallery/add", h.AddPhoto).Methods("POST")
	r.HandleFunc("/gallery/{id}", h.DeletePhoto).Methods("DELETE")
	r.HandleFunc("/health", h.Health).Methods("GET")

	// WebSocket
	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	return r
}

package handler

import (
	"log"
	"net/http"
)

// Health handles GET /health. It always answers 200; storage trouble shows
// up as storageConnected=false, never as an error response.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Queries.Health(r.Context())

	if !status.StorageConnected {
		log.Printf("[GET /health] ⚠️  Storage unreachable")
	}

	writeJSON(w, http.StatusOK, status)
}

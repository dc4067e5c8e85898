package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

// GetDonation handles GET /donation
func (h *Handler) GetDonation(w http.ResponseWriter, r *http.Request) {
	log.Printf("[GET /donation] Request received from %s", r.RemoteAddr)

	snap, err := h.Queries.Donation(r.Context())
	if err != nil {
		log.Printf("[GET /donation] ❌ Storage error: %v", err)
		writeServiceError(w, err)
		return
	}

	log.Printf("[GET /donation] ✅ familiesSupported=%d lastUpdated=%q", snap.FamiliesSupported, snap.LastUpdated)

	writeJSON(w, http.StatusOK, snap)
}

// UpdateDonation handles POST /donation/update
func (h *Handler) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	log.Printf("[POST /donation/update] Request received from %s", r.RemoteAddr)

	// Cap request body size at 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req struct {
		Credential        string `json:"credential"`
		FamiliesSupported *int   `json:"familiesSupported"`
		LastUpdated       string `json:"lastUpdated"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[POST /donation/update] ❌ Bad Request: %v", err)
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "Invalid request body"))
		return
	}

	// A pointer distinguishes a missing count from an explicit zero.
	if req.FamiliesSupported == nil {
		log.Printf("[POST /donation/update] ❌ Bad Request: missing familiesSupported")
		writeJSON(w, http.StatusBadRequest, errorBody("invalid_input", "familiesSupported must be a non-negative integer"))
		return
	}

	snap, err := h.Mutations.UpdateDonation(r.Context(), req.Credential, *req.FamiliesSupported, req.LastUpdated)
	if err != nil {
		log.Printf("[POST /donation/update] ❌ Rejected: %v", err)
		writeServiceError(w, err)
		return
	}

	log.Printf("[POST /donation/update] ✅ familiesSupported=%d lastUpdated=%q", snap.FamiliesSupported, snap.LastUpdated)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": snap})
}

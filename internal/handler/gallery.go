package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"sadaka/internal/model"
)

// GetGallery handles GET /gallery
func (h *Handler) GetGallery(w http.ResponseWriter, r *http.Request) {
	log.Printf("[GET /gallery] Request received from %s", r.RemoteAddr)

	photos, err := h.Queries.Photos(r.Context())
	if err != nil {
		log.Printf("[GET /gallery] ❌ Storage error: %v", err)
		writeServiceError(w, err)
		return
	}

	if photos == nil {
		photos = []model.GalleryPhoto{}
	}

	log.Printf("[GET /gallery] ✅ Returned %d photos", len(photos))

	writeJSON(w, http.StatusOK, photos)
}

// AddPhoto handles POST /gallery/add
func (h *Handler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	log.Printf("[POST /gallery/add] Request received from %s", r.RemoteAddr)

	// Cap request body size at 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req struct {
		Credential string `json:"credential"`
		URL        string `json:"url"`
		Caption    string `json:"caption"`
		Date       string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[POST /gallery/add] ❌ Bad Request: %v", err)
		writeJSON(w, http.StatusBadRequest, errorBody("bad_request", "Invalid request body"))
		return
	}

	photo, err := h.Mutations.AddPhoto(r.Context(), req.Credential, req.URL, req.Caption, req.Date)
	if err != nil {
		log.Printf("[POST /gallery/add] ❌ Rejected: %v", err)
		writeServiceError(w, err)
		return
	}

	log.Printf("[POST /gallery/add] ✅ Added photo: ID=%s URL=%q", photo.ID, photo.URL)

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "photo": photo})
}

// DeletePhoto handles DELETE /gallery/{id}
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Printf("[DELETE /gallery/%s] Request received from %s", id, r.RemoteAddr)

	var req struct {
		Credential string `json:"credential"`
	}
	// A missing or malformed body counts as a missing credential, which
	// the guard rejects.
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req)

	if err := h.Mutations.DeletePhoto(r.Context(), req.Credential, id); err != nil {
		log.Printf("[DELETE /gallery/%s] ❌ Rejected: %v", id, err)
		writeServiceError(w, err)
		return
	}

	log.Printf("[DELETE /gallery/%s] ✅ Deleted", id)

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

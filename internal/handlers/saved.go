package handlers

import (
	"net/http"

	"binder-backend/internal/middleware"
	"binder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// SavedHandler handles saved-shortlist HTTP requests
type SavedHandler struct {
	savedService *services.SavedService
}

// NewSavedHandler creates a new saved handler
func NewSavedHandler(savedService *services.SavedService) *SavedHandler {
	return &SavedHandler{savedService: savedService}
}

// GetSaved handles GET /api/v1/saved
func (h *SavedHandler) GetSaved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetActorID(ctx)

	startups, err := h.savedService.List(ctx, actorID)
	if err != nil {
		log.Error().
			Err(err).
			Str("actor_id", actorID).
			Msg("Failed to list saved startups")
		respondError(w, "Failed to fetch saved startups", http.StatusInternalServerError)
		return
	}

	respondJSON(w, DeckResponse{Candidates: startups}, http.StatusOK)
}

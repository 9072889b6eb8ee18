package handlers

import (
	"net/http"

	"binder-backend/internal/middleware"
	"binder-backend/internal/models"
	"binder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	deckService *services.DeckService
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(deckService *services.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

// DeckResponse represents a composed deck
type DeckResponse struct {
	Candidates []*models.Startup `json:"candidates"`
}

// GetDeck handles GET /api/v1/decisions/deck
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetActorID(ctx)
	category := r.URL.Query().Get("category")

	deck, err := h.deckService.Compose(ctx, actorID, category)
	if err != nil {
		log.Error().
			Err(err).
			Str("actor_id", actorID).
			Str("category", category).
			Msg("Failed to compose deck")
		respondError(w, "Failed to fetch deck", http.StatusInternalServerError)
		return
	}

	log.Debug().
		Str("actor_id", actorID).
		Str("category", category).
		Int("size", len(deck)).
		Msg("Deck composed")

	respondJSON(w, DeckResponse{Candidates: deck}, http.StatusOK)
}

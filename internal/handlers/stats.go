package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"binder-backend/internal/middleware"
	"binder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// StatsHandler handles stats-aggregation HTTP requests
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// StatsRequest represents the request body for stats aggregation
type StatsRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

// GetStats handles POST /api/v1/decisions/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetActorID(ctx)

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	stats, err := h.statsService.Aggregate(ctx, req.CandidateIDs)
	if err != nil {
		if errors.Is(err, services.ErrBatchTooLarge) {
			respondError(w, "candidate_ids is limited to one deck page", http.StatusBadRequest)
			return
		}
		log.Error().
			Err(err).
			Str("actor_id", actorID).
			Int("ids", len(req.CandidateIDs)).
			Msg("Failed to aggregate stats")
		respondError(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}

	respondJSON(w, stats, http.StatusOK)
}

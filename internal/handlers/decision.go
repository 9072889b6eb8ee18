package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"binder-backend/internal/middleware"
	"binder-backend/internal/models"
	"binder-backend/internal/repository"
	"binder-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// DecisionHandler handles decision-recording HTTP requests
type DecisionHandler struct {
	swipeService *services.SwipeService
}

// NewDecisionHandler creates a new decision handler
func NewDecisionHandler(swipeService *services.SwipeService) *DecisionHandler {
	return &DecisionHandler{swipeService: swipeService}
}

// RecordDecisionRequest represents the request body for recording a decision.
// Direction is wire-level: "left" or "right".
type RecordDecisionRequest struct {
	CandidateID string `json:"candidate_id"`
	Direction   string `json:"direction"`
}

// RecordDecisionResponse echoes the persisted decision so the caller can
// reconcile optimistic state.
type RecordDecisionResponse struct {
	CandidateID string    `json:"candidate_id"`
	ActorID     string    `json:"actor_id"`
	Direction   string    `json:"direction"`
	Timestamp   time.Time `json:"timestamp"`
}

// RecordDecision handles POST /api/v1/decisions
func (h *DecisionHandler) RecordDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actorID := middleware.GetActorID(ctx)

	var req RecordDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.CandidateID == "" {
		respondError(w, "candidate_id is required", http.StatusBadRequest)
		return
	}

	direction, err := models.DirectionFromWire(req.Direction)
	if err != nil {
		respondError(w, "direction must be left or right", http.StatusBadRequest)
		return
	}

	swipe, err := h.swipeService.Record(ctx, req.CandidateID, actorID, direction)
	if err != nil {
		log.Error().
			Err(err).
			Str("actor_id", actorID).
			Str("candidate_id", req.CandidateID).
			Str("direction", req.Direction).
			Msg("Failed to record decision")

		statusCode := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidDirection) {
			statusCode = http.StatusBadRequest
		} else if errors.Is(err, repository.ErrNotFound) {
			statusCode = http.StatusNotFound
		}
		respondError(w, "Failed to record decision", statusCode)
		return
	}

	log.Info().
		Str("actor_id", actorID).
		Str("candidate_id", swipe.StartupID).
		Str("direction", string(swipe.Direction)).
		Msg("Decision recorded")

	respondJSON(w, RecordDecisionResponse{
		CandidateID: swipe.StartupID,
		ActorID:     swipe.ActorID,
		Direction:   swipe.Direction.Wire(),
		Timestamp:   swipe.CreatedAt,
	}, http.StatusOK)
}

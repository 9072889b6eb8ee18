package binder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"binder-backend/internal/models"
)

// Client talks to the decisions API over HTTP. It implements DeckSource,
// DecisionRecorder and StatsSource for the engine.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new API client. The token is the actor's bearer
// credential issued by the identity service.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type deckResponse struct {
	Candidates []*models.Startup `json:"candidates"`
}

// Compose fetches a fresh deck, optionally filtered to one category.
func (c *Client) Compose(ctx context.Context, category string) ([]*models.Startup, error) {
	endpoint := c.baseURL + "/api/v1/decisions/deck"
	if category != "" {
		endpoint += "?category=" + url.QueryEscape(category)
	}

	var resp deckResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch deck: %w", err)
	}
	return resp.Candidates, nil
}

type recordRequest struct {
	CandidateID string `json:"candidate_id"`
	Direction   string `json:"direction"`
}

type recordResponse struct {
	CandidateID string    `json:"candidate_id"`
	ActorID     string    `json:"actor_id"`
	Direction   string    `json:"direction"`
	Timestamp   time.Time `json:"timestamp"`
}

// Record persists one decision, mapping the direction to its wire form.
func (c *Client) Record(ctx context.Context, startupID string, direction models.Direction) (*models.Swipe, error) {
	req := recordRequest{
		CandidateID: startupID,
		Direction:   direction.Wire(),
	}

	var resp recordResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/decisions", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to record decision: %w", err)
	}

	dir, err := models.DirectionFromWire(resp.Direction)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recorded direction: %w", err)
	}
	return &models.Swipe{
		StartupID: resp.CandidateID,
		ActorID:   resp.ActorID,
		Direction: dir,
		CreatedAt: resp.Timestamp,
	}, nil
}

type statsRequest struct {
	CandidateIDs []string `json:"candidate_ids"`
}

// Aggregate fetches display counts for a batch of startup ids.
func (c *Client) Aggregate(ctx context.Context, startupIDs []string) (map[string]models.SwipeStats, error) {
	req := statsRequest{CandidateIDs: startupIDs}

	var resp map[string]models.SwipeStats
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/api/v1/decisions/stats", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

package models

import (
	"fmt"
	"time"
)

// Direction is an actor's judgment about a startup.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// Wire-level direction values used by the HTTP API and the swipe client.
const (
	WireRight = "right"
	WireLeft  = "left"
)

// Valid reports whether d is one of the two accepted directions.
func (d Direction) Valid() bool {
	return d == DirectionPositive || d == DirectionNegative
}

// Wire returns the wire-level representation of the direction.
func (d Direction) Wire() string {
	if d == DirectionPositive {
		return WireRight
	}
	return WireLeft
}

// DirectionFromWire maps a wire-level direction ("left"/"right") to a Direction.
func DirectionFromWire(s string) (Direction, error) {
	switch s {
	case WireRight:
		return DirectionPositive, nil
	case WireLeft:
		return DirectionNegative, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Startup represents a startup eligible to be swiped on. Startups are
// registered by an external flow and are read-only to this service.
type Startup struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ImageKey     string    `json:"-"`
	ImageURL     string    `json:"image_url,omitempty"`
	Description  string    `json:"description,omitempty"`
	StageTags    []string  `json:"stage_tags"`
	SizeTags     []string  `json:"size_tags"`
	CategoryTags []string  `json:"category_tags"`
	QualityScore *int      `json:"quality_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Swipe records one actor's decision about one startup. At most one swipe
// exists per (startup, actor) pair; a repeated swipe overwrites direction
// and timestamp.
type Swipe struct {
	StartupID string    `json:"startup_id"`
	ActorID   string    `json:"actor_id"`
	Direction Direction `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

// SavedStartup records that an actor has shortlisted a startup. Created by
// the cascade on positive swipes; its existence is independent of the swipe
// that spawned it.
type SavedStartup struct {
	ActorID   string    `json:"actor_id"`
	StartupID string    `json:"startup_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SwipeStats holds decision counts for one startup.
type SwipeStats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
}

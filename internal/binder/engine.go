package binder

import (
	"context"
	"math"
	"sync"
	"time"

	"binder-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// SwipeThreshold is the horizontal displacement, in pixels, at which a
// released drag resolves into a decision instead of snapping back.
const SwipeThreshold = 100.0

const (
	replenishDelay = 300 * time.Millisecond

	rotationPerPixel = 0.08 // degrees of card tilt per pixel of horizontal drag
	stackScaleStep   = 0.05
	stackOpacityStep = 0.15
	stackOffsetY     = 12.0
)

// State is the engine's gesture state. Only the front card is ever
// interactive, so at most one card is in any state past Idle.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResolving
	StateCommitted
)

// DeckSource composes a fresh deck for the engine.
type DeckSource interface {
	Compose(ctx context.Context, category string) ([]*models.Startup, error)
}

// DecisionRecorder persists one resolved decision.
type DecisionRecorder interface {
	Record(ctx context.Context, startupID string, direction models.Direction) (*models.Swipe, error)
}

// StatsSource fetches display counts for a batch of startup ids.
type StatsSource interface {
	Aggregate(ctx context.Context, startupIDs []string) (map[string]models.SwipeStats, error)
}

// CardTransform is the cosmetic rendering state of one card in the stack.
// It carries no commitment: a dragged card below threshold snaps back.
type CardTransform struct {
	TranslateX float64
	TranslateY float64
	Rotation   float64
	Scale      float64
	Opacity    float64
}

// Config configures an Engine.
type Config struct {
	Source   DeckSource
	Recorder DecisionRecorder
	Stats    StatsSource

	// Category filters deck composition; empty or "All" means everything.
	Category string

	// OnError surfaces deck/stats fetch failures so the UI can render a
	// retry affordance. The previous deck stays visible.
	OnError func(error)

	// OnNothingLeft signals an empty composed deck, which is a distinct
	// "nothing left to show" state, not an error.
	OnNothingLeft func()
}

// Engine is the gesture interaction engine. It owns the pending-card queue,
// serializes gesture handling so decisions commit in exactly the order cards
// are resolved, and replenishes the deck when the last card is committed.
//
// Card removal is optimistic: once the off-screen animation is scheduled the
// commit is certain, and a failed network write lands in the outbox instead
// of resurrecting the dismissed card.
type Engine struct {
	mu sync.Mutex

	source   DeckSource
	recorder DecisionRecorder
	stats    StatsSource
	category string

	onError       func(error)
	onNothingLeft func()

	deck   *Deck
	cards  map[string]*models.Startup
	counts map[string]models.SwipeStats

	state  State
	dragID string
	dragX  float64
	dragY  float64

	outbox *Outbox

	// Injection points for tests; defaults run asynchronously.
	schedule func(d time.Duration, fn func())
	animate  func(direction models.Direction, done func())
	dispatch func(fn func())
}

// NewEngine creates a new engine. Call Refresh to load the first deck.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		source:        cfg.Source,
		recorder:      cfg.Recorder,
		stats:         cfg.Stats,
		category:      cfg.Category,
		onError:       cfg.OnError,
		onNothingLeft: cfg.OnNothingLeft,
		deck:          NewDeck(nil),
		cards:         make(map[string]*models.Startup),
		counts:        make(map[string]models.SwipeStats),
		outbox:        NewOutbox(),
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
		animate: func(_ models.Direction, done func()) {
			done()
		},
		dispatch: func(fn func()) {
			go fn()
		},
	}
	return e
}

// Refresh composes a fresh deck and fetches its display stats, replacing the
// local deck and active subset wholesale. On failure the previous deck stays
// visible and the error is surfaced through OnError. An in-progress gesture
// is never interrupted: it keeps operating on the card id it captured.
func (e *Engine) Refresh(ctx context.Context) error {
	startups, err := e.source.Compose(ctx, e.category)
	if err != nil {
		e.fail(err)
		return err
	}

	ids := make([]string, 0, len(startups))
	for _, st := range startups {
		ids = append(ids, st.ID)
	}

	var counts map[string]models.SwipeStats
	if e.stats != nil && len(ids) > 0 {
		counts, err = e.stats.Aggregate(ctx, ids)
		if err != nil {
			e.fail(err)
			return err
		}
	}

	e.mu.Lock()
	e.deck = NewDeck(ids)
	e.cards = make(map[string]*models.Startup, len(startups))
	for _, st := range startups {
		e.cards[st.ID] = st
	}
	e.counts = counts
	if e.counts == nil {
		e.counts = make(map[string]models.SwipeStats)
	}
	empty := len(ids) == 0
	e.mu.Unlock()

	if empty && e.onNothingLeft != nil {
		e.onNothingLeft()
	}
	return nil
}

func (e *Engine) fail(err error) {
	log.Error().Err(err).Msg("Deck refresh failed")
	if e.onError != nil {
		e.onError(err)
	}
}

// State returns the current gesture state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// FrontCard returns the card currently on top of the stack.
func (e *Engine) FrontCard() (*models.Startup, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frontCardLocked()
}

func (e *Engine) frontCardLocked() (*models.Startup, bool) {
	id := e.dragID
	if id == "" {
		var ok bool
		id, ok = e.deck.Front()
		if !ok {
			return nil, false
		}
	}
	card, ok := e.cards[id]
	return card, ok
}

// Stats returns the display counts for a card.
func (e *Engine) Stats(startupID string) models.SwipeStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counts[startupID]
}

// Remaining returns the number of cards still pending.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deck.Remaining()
}

// NothingLeft reports whether the last composed deck was empty.
func (e *Engine) NothingLeft() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deck.Size() == 0
}

// Pending returns the number of unconfirmed decisions in the outbox.
func (e *Engine) Pending() int {
	return e.outbox.Pending()
}

// Flush retries unconfirmed decisions in commit order. Intended for
// reconnect handling; see Outbox.
func (e *Engine) Flush(ctx context.Context) error {
	return e.outbox.Flush(ctx, e.recorder)
}

// PointerDown starts a drag on the given card. Only the front card is
// interactive; pointer input on any other card, or while a gesture is
// already active, is ignored.
func (e *Engine) PointerDown(startupID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return false
	}
	front, ok := e.deck.Front()
	if !ok || front != startupID {
		return false
	}

	e.state = StateDragging
	e.dragID = startupID
	e.dragX, e.dragY = 0, 0
	return true
}

// PointerMove updates the tracked displacement of the dragged card. The
// resulting transform is purely cosmetic and reversible.
func (e *Engine) PointerMove(dx, dy float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateDragging {
		return
	}
	e.dragX, e.dragY = dx, dy
}

// PointerUp releases the drag. Below SwipeThreshold of horizontal
// displacement the card snaps back and no decision is made; at or past it
// the displacement sign picks the direction and the card resolves.
func (e *Engine) PointerUp() {
	e.mu.Lock()

	if e.state != StateDragging {
		e.mu.Unlock()
		return
	}

	if math.Abs(e.dragX) < SwipeThreshold {
		e.state = StateIdle
		e.dragID = ""
		e.dragX, e.dragY = 0, 0
		e.mu.Unlock()
		return
	}

	direction := models.DirectionNegative
	if e.dragX > 0 {
		direction = models.DirectionPositive
	}
	e.resolveLocked(direction)
}

// SwipeRight resolves the front card positively without pointer tracking,
// as from an action button.
func (e *Engine) SwipeRight() bool {
	return e.trigger(models.DirectionPositive)
}

// SwipeLeft resolves the front card negatively without pointer tracking.
func (e *Engine) SwipeLeft() bool {
	return e.trigger(models.DirectionNegative)
}

// ViewDetails returns the front card without resolving it; the engine stays
// in Idle and the card stays on the stack.
func (e *Engine) ViewDetails() (*models.Startup, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return nil, false
	}
	return e.frontCardLocked()
}

func (e *Engine) trigger(direction models.Direction) bool {
	e.mu.Lock()

	if e.state != StateIdle {
		e.mu.Unlock()
		return false
	}
	front, ok := e.deck.Front()
	if !ok {
		e.mu.Unlock()
		return false
	}

	e.dragID = front
	e.resolveLocked(direction)
	return true
}

// resolveLocked enters Resolving and schedules the off-screen animation.
// Once scheduled, commit is certain: there is no mid-Resolving cancellation.
// Called with e.mu held; releases it.
func (e *Engine) resolveLocked(direction models.Direction) {
	e.state = StateResolving
	id := e.dragID
	e.mu.Unlock()

	e.animate(direction, func() {
		e.commit(id, direction)
	})
}

// commit removes the card from the queue, dispatches the decision write
// fire-and-forget, returns to Idle, and schedules replenishment if the deck
// is exhausted. The visual removal is never rolled back; a failed write goes
// to the outbox.
func (e *Engine) commit(id string, direction models.Direction) {
	e.mu.Lock()
	e.state = StateCommitted
	e.deck.Remove(id)
	e.dragID = ""
	e.dragX, e.dragY = 0, 0
	exhausted := e.deck.Exhausted()
	e.state = StateIdle
	e.mu.Unlock()

	e.dispatch(func() {
		if _, err := e.recorder.Record(context.Background(), id, direction); err != nil {
			log.Error().
				Err(err).
				Str("startup_id", id).
				Str("direction", string(direction)).
				Msg("Failed to record decision, queued in outbox")
			e.outbox.Add(id, direction)
		}
	})

	if exhausted {
		e.schedule(replenishDelay, func() {
			_ = e.Refresh(context.Background())
		})
	}
}

// Transform returns the rendering transform for the card at the given stack
// depth. The front card follows the drag with a tilt proportional to its
// horizontal displacement; deeper cards shrink and fade, which is the
// stacking illusion that keeps them non-interactive.
func (e *Engine) Transform(depth int) CardTransform {
	e.mu.Lock()
	defer e.mu.Unlock()

	if depth == 0 && e.state == StateDragging {
		return CardTransform{
			TranslateX: e.dragX,
			TranslateY: e.dragY,
			Rotation:   e.dragX * rotationPerPixel,
			Scale:      1,
			Opacity:    1,
		}
	}

	scale := 1 - stackScaleStep*float64(depth)
	opacity := 1 - stackOpacityStep*float64(depth)
	if scale < 0 {
		scale = 0
	}
	if opacity < 0 {
		opacity = 0
	}
	return CardTransform{
		TranslateY: stackOffsetY * float64(depth),
		Scale:      scale,
		Opacity:    opacity,
	}
}

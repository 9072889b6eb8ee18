// Package binder implements the client-side swipe loop: an ordered deck of
// startup cards, the pointer-gesture state machine that turns drags and
// button presses into committed decisions, and an outbox for decisions whose
// network write failed.
package binder

// Deck is an explicit ordered queue of the startup ids still pending from
// the last composed batch. It is owned by the engine, not by any rendering
// tree: removal is by identifier and exhaustion is an explicit predicate.
type Deck struct {
	order    []string
	composed int
	removed  int
}

// NewDeck creates a deck over the given ids, front card first.
func NewDeck(ids []string) *Deck {
	order := make([]string, len(ids))
	copy(order, ids)
	return &Deck{
		order:    order,
		composed: len(ids),
	}
}

// Front returns the id of the front card, if any.
func (d *Deck) Front() (string, bool) {
	if len(d.order) == 0 {
		return "", false
	}
	return d.order[0], true
}

// At returns the id at the given stack depth (0 is the front card).
func (d *Deck) At(depth int) (string, bool) {
	if depth < 0 || depth >= len(d.order) {
		return "", false
	}
	return d.order[depth], true
}

// Remove removes the card with the given id from the queue. Removing an id
// that is not pending is a no-op.
func (d *Deck) Remove(id string) bool {
	for i, pending := range d.order {
		if pending == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			d.removed++
			return true
		}
	}
	return false
}

// Exhausted reports whether every card of the composed batch has been
// removed. An empty composed batch is not exhausted, it is "nothing left".
func (d *Deck) Exhausted() bool {
	return d.composed > 0 && d.removed == d.composed
}

// Remaining returns the number of pending cards.
func (d *Deck) Remaining() int {
	return len(d.order)
}

// Size returns the size of the composed batch.
func (d *Deck) Size() int {
	return d.composed
}

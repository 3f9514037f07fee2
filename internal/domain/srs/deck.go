package srs

import (
	"time"

	"github.com/recitelabs/recite-api/internal/domain"
)

// Deck is the working queue of one study session. It is owned by the
// session for its duration and discarded at session end; reinserting a
// failed card only ever reorders this queue, never the canonical card
// list in the slot.
type Deck struct {
	order []string
	index int
}

// NewDeck builds a session deck from the slot's cards and their SRS
// state. Cards that are due (never reviewed, or due date on or before
// today) come first, the rest are appended after, preserving the
// original relative order within each partition. A due card is
// therefore never skipped.
func NewDeck(cards []domain.Card, states map[string]*domain.CardState, now time.Time) *Deck {
	due := make([]string, 0, len(cards))
	later := make([]string, 0, len(cards))
	for _, card := range cards {
		state, ok := states[card.ID]
		if !ok || state.IsDue(now) {
			due = append(due, card.ID)
		} else {
			later = append(later, card.ID)
		}
	}
	return &Deck{order: append(due, later...)}
}

// Len returns the current queue length, including reinserted repeats.
func (d *Deck) Len() int { return len(d.order) }

// Order returns a copy of the current queue.
func (d *Deck) Order() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Current returns the card at the session position, or ok=false when
// the session is exhausted.
func (d *Deck) Current() (string, bool) {
	if d.index >= len(d.order) {
		return "", false
	}
	return d.order[d.index], true
}

// Advance moves past the current card and reports whether another card
// remains.
func (d *Deck) Advance() bool {
	if d.index < len(d.order) {
		d.index++
	}
	return d.index < len(d.order)
}

// ReinsertCurrent queues a repeat of the current card a short distance
// ahead, at min(currentIndex+offset, queue length). Used after an
// "Again" grade so the card resurfaces within the same sitting instead
// of waiting for the next calendar day. Returns the insertion position.
func (d *Deck) ReinsertCurrent(offset int) int {
	id, ok := d.Current()
	if !ok {
		return -1
	}
	pos := d.index + offset
	if pos > len(d.order) {
		pos = len(d.order)
	}
	d.order = append(d.order, "")
	copy(d.order[pos+1:], d.order[pos:])
	d.order[pos] = id
	return pos
}

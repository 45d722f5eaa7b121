// Package learn tracks the passive walkthrough of a block: one card at a
// time, wrap-around navigation and the set of cards already seen.
package learn

// Walkthrough is the learn-mode cursor over a block of n cards.
type Walkthrough struct {
	n      int
	index  int
	viewed map[int]bool
}

// New creates a walkthrough over n cards positioned on the first one,
// which counts as viewed.
func New(n int) *Walkthrough {
	w := &Walkthrough{n: max(n, 0), viewed: make(map[int]bool)}
	if w.n > 0 {
		w.viewed[0] = true
	}
	return w
}

// Len returns the number of cards.
func (w *Walkthrough) Len() int { return w.n }

// Index returns the 0-based position of the card on screen.
func (w *Walkthrough) Index() int { return w.index }

// Next moves to the following card, wrapping past the last one.
func (w *Walkthrough) Next() {
	w.move(1)
}

// Prev moves to the preceding card, wrapping before the first one.
func (w *Walkthrough) Prev() {
	w.move(-1)
}

func (w *Walkthrough) move(delta int) {
	if w.n == 0 {
		return
	}
	w.index = ((w.index+delta)%w.n + w.n) % w.n
	w.viewed[w.index] = true
}

// Viewed returns how many distinct cards have been shown.
func (w *Walkthrough) Viewed() int { return len(w.viewed) }

// Complete reports whether every card has been shown at least once.
func (w *Walkthrough) Complete() bool {
	return w.n > 0 && len(w.viewed) == w.n
}

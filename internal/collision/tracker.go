package collision

import "bytes"

// Tracker records the payload attached to every occupied terminal cell and
// detects points that land in an already occupied cell.
//
// Cells are keyed by their Morton code. A repeated cell replaces the stored
// payload, so the last point written to a cell wins.
type Tracker struct {
	payloads   map[uint64][]byte // cell key → latest payload (nil when no attributes)
	hits       int               // points tracked, including repeats
	collisions int               // points that landed in an occupied cell
	overwrites int               // collisions whose payload differed from the stored one
}

// NewTracker creates a new cell tracker with room for sizeHint cells.
func NewTracker(sizeHint int) *Tracker {
	return &Tracker{
		payloads: make(map[uint64][]byte, sizeHint),
	}
}

// Track records payload for cell key and reports whether the cell was newly
// occupied. The tracker keeps payload as is; callers must not reuse it.
func (t *Tracker) Track(key uint64, payload []byte) bool {
	t.hits++

	prev, exists := t.payloads[key]
	if exists {
		t.collisions++
		if !bytes.Equal(prev, payload) {
			t.overwrites++
		}
	}
	t.payloads[key] = payload

	return !exists
}

// Payload returns the payload stored for key.
func (t *Tracker) Payload(key uint64) ([]byte, bool) {
	p, ok := t.payloads[key]
	return p, ok
}

// Count returns the number of distinct occupied cells.
func (t *Tracker) Count() int {
	return len(t.payloads)
}

// Hits returns the number of Track calls.
func (t *Tracker) Hits() int {
	return t.hits
}

// Collisions returns the number of points that hit an occupied cell.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Overwrites returns the number of collisions that replaced a different payload.
func (t *Tracker) Overwrites() int {
	return t.overwrites
}

// HasCollision reports whether any two points shared a cell.
func (t *Tracker) HasCollision() bool {
	return t.collisions > 0
}

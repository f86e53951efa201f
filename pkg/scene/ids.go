package scene

import "fmt"

// IDSource produces unique element identifiers for one synthesis run.
// The seed is supplied by the caller - typically a timestamp or a
// monotonic counter - which keeps the engine free of global clock reads:
// the same seed always yields the same identifier sequence, and distinct
// seeds keep concurrent runs from colliding.
//
// An IDSource is not safe for concurrent use; give each run its own.
type IDSource struct {
	seed uint64
	n    int
}

// NewIDSource creates an IDSource for the given seed.
func NewIDSource(seed uint64) *IDSource {
	return &IDSource{seed: seed}
}

// Next returns the next identifier. Identifiers embed the seed and a
// per-run sequence number, so they are unique within a run and across
// runs with distinct seeds.
func (s *IDSource) Next() string {
	s.n++
	return fmt.Sprintf("el-%x-%d", s.seed, s.n)
}

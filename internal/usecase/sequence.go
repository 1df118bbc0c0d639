package usecase

import "sync/atomic"

// Sequencer issues monotonically increasing request numbers so that only the
// response to the most recently issued request is applied.
type Sequencer struct {
	n atomic.Uint64
}

// Next issues a new request number
func (s *Sequencer) Next() uint64 {
	return s.n.Add(1)
}

// IsLatest reports whether seq is still the newest issued number
func (s *Sequencer) IsLatest(seq uint64) bool {
	return s.n.Load() == seq
}

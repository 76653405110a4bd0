package dice

import "sync"

// Sequence is a Source that replays fixed faces in order, cycling when
// exhausted. Faces are 1-based; values outside [1, n] are clamped.
type Sequence struct {
	mu    sync.Mutex
	faces []int
	next  int
}

// NewSequence creates a replaying source.
func NewSequence(faces ...int) *Sequence {
	return &Sequence{faces: faces}
}

// IntN returns the next scripted face minus one.
func (s *Sequence) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.faces) == 0 {
		return 0
	}
	face := s.faces[s.next%len(s.faces)]
	s.next++

	switch {
	case face < 1:
		face = 1
	case face > n:
		face = n
	}
	return face - 1
}

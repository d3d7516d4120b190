package scheduler

// GetTransitions returns a copy of the recorded status transitions.
// This is exported for testing purposes only.
func (s *Scheduler) GetTransitions() []Transition {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transition, len(s.history))
	copy(out, s.history)
	return out
}

package flappy

// Score counts cleared obstacles within one run.
type Score struct {
	value int
}

// Add increases the score by n. Non-positive values are ignored.
func (s *Score) Add(n int) {
	if n > 0 {
		s.value += n
	}
}

// Value returns the current score.
func (s *Score) Value() int {
	return s.value
}

// Reset sets the score back to zero.
func (s *Score) Reset() {
	s.value = 0
}

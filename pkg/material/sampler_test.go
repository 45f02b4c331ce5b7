package material

import "testing"

// sequenceSampler replays fixed values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// noRandomSampler fails the test if any random number is drawn
type noRandomSampler struct {
	t *testing.T
}

func (s noRandomSampler) Get1D() float64 {
	s.t.Helper()
	s.t.Fatal("unexpected random draw")
	return 0
}

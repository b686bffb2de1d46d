package randomorg

import (
	"context"
	"errors"
	"sync"
)

var ErrSequenceExhausted = errors.New("scripted sequence exhausted")

type Step struct {
	Value int
	Err   error
}

// Sequence replays scripted draws in order. It is the deterministic source used by tests.
type Sequence struct {
	mu    sync.Mutex
	steps []Step
	calls int
}

func NewSequence(steps ...Step) *Sequence {
	return &Sequence{steps: steps}
}

// Values scripts successful draws only.
func Values(values ...int) *Sequence {
	steps := make([]Step, 0, len(values))
	for _, v := range values {
		steps = append(steps, Step{Value: v})
	}
	return NewSequence(steps...)
}

func (s *Sequence) Draw(_ context.Context, _, _ int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.steps) {
		s.calls++
		return 0, ErrSequenceExhausted
	}
	step := s.steps[s.calls]
	s.calls++
	return step.Value, step.Err
}

// Calls reports how many draws were requested.
func (s *Sequence) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

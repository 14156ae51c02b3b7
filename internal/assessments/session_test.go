package assessments

import (
	"errors"
	"testing"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testBank(t))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionRejectsInvalidBank(t *testing.T) {
	for name, bank := range map[string]Bank{
		"empty":      {Version: "test"},
		"no version": {Questions: testBank(t).Questions},
	} {
		if s, err := NewSession(bank); !errors.Is(err, ErrInvalidBank) || s != nil {
			t.Fatalf("%s: expected ErrInvalidBank, got %v", name, err)
		}
	}
}

func TestSessionWalkthrough(t *testing.T) {
	s := newTestSession(t)

	if s.Progress() != 17 {
		t.Fatalf("expected 17%% progress, got %d", s.Progress())
	}
	if _, err := s.Next(); !errors.Is(err, ErrIncompleteAssessment) {
		t.Fatalf("expected Next to refuse unanswered question, got %v", err)
	}
	if err := s.Answer(7); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}

	for i := 0; i < 6; i++ {
		if err := s.Answer(1); err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if err := s.Answer(4); err != nil {
			t.Fatalf("Answer overwrite: %v", err)
		}
		moved, err := s.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if moved != (i < 5) {
			t.Fatalf("step %d: unexpected moved=%v", i, moved)
		}
	}
	if s.Index() != 5 || s.Progress() != 100 {
		t.Fatalf("expected last question at 100%%, got index %d progress %d", s.Index(), s.Progress())
	}

	result, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if result.Score != 100 || result.SupportLevel != SupportMild {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSessionBackKeepsAnswers(t *testing.T) {
	s := newTestSession(t)
	if s.Back() {
		t.Fatalf("Back on first question should not move")
	}
	_ = s.Answer(2)
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !s.Back() {
		t.Fatalf("expected Back to move")
	}
	if v, ok := s.Selected(); !ok || v != 2 {
		t.Fatalf("expected kept answer 2, got %d %v", v, ok)
	}
	if _, err := s.Complete(); !errors.Is(err, ErrIncompleteAssessment) {
		t.Fatalf("expected incomplete, got %v", err)
	}

	answers := s.Answers()
	*answers[0] = 0
	if v, _ := s.Selected(); v != 2 {
		t.Fatalf("Answers must return a copy")
	}
}

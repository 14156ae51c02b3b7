package assessments

import (
	"fmt"
	"math"
)

// Session tracks one in-progress walk through a bank. It is not safe for
// concurrent use; each respondent owns their own Session.
type Session struct {
	bank    Bank
	answers []*int
	current int
}

// NewSession starts at the first question of bank, which must be valid.
func NewSession(bank Bank) (*Session, error) {
	if err := bank.Validate(); err != nil {
		return nil, err
	}
	return &Session{bank: bank, answers: make([]*int, bank.Len())}, nil
}

// Current returns the active question.
func (s *Session) Current() Question {
	return s.bank.Questions[s.current]
}

// Index is the zero-based position of the active question.
func (s *Session) Index() int { return s.current }

// Answer sets or overwrites the answer for the active question.
func (s *Session) Answer(option int) error {
	if option < 0 || option >= OptionsPerQuestion {
		return fmt.Errorf("%w: option %d out of range", ErrInvalidAnswer, option)
	}
	v := option
	s.answers[s.current] = &v
	return nil
}

// Selected returns the answer for the active question, if any.
func (s *Session) Selected() (int, bool) {
	if p := s.answers[s.current]; p != nil {
		return *p, true
	}
	return 0, false
}

// Next moves to the following question. It reports false without moving when
// the active question is the last one.
func (s *Session) Next() (bool, error) {
	if s.answers[s.current] == nil {
		return false, fmt.Errorf("%w: question %d unanswered", ErrIncompleteAssessment, s.Current().ID)
	}
	if s.current >= s.bank.Len()-1 {
		return false, nil
	}
	s.current++
	return true, nil
}

// Back returns to the previous question, keeping recorded answers.
func (s *Session) Back() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Progress is the percentage position of the active question.
func (s *Session) Progress() int {
	return int(math.Round(float64(s.current+1) / float64(s.bank.Len()) * 100))
}

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() []*int {
	out := make([]*int, len(s.answers))
	for i, p := range s.answers {
		if p != nil {
			v := *p
			out[i] = &v
		}
	}
	return out
}

// Complete scores the recorded answers.
func (s *Session) Complete() (Result, error) {
	return Score(s.bank, s.answers)
}

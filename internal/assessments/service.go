package assessments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"nurture-backend/internal/shared/metrics"
	"nurture-backend/internal/shared/telemetry"
)

type Service struct {
	Repo Repo
	Bank Bank
	Now  func() time.Time
}

func NewService(repo Repo, bank Bank) *Service {
	return &Service{Repo: repo, Bank: bank, Now: time.Now}
}

// Submit scores answers for childID and persists the result. Scoring errors
// are returned before anything is stored. A storage failure yields a
// *PersistenceError carrying the computed result.
func (s *Service) Submit(ctx context.Context, childID string, answers []*int) (Assessment, error) {
	if s == nil || s.Repo == nil {
		return Assessment{}, errors.New("assessments service not configured")
	}
	if strings.TrimSpace(childID) == "" {
		return Assessment{}, errors.New("child id is required")
	}

	result, err := Score(s.Bank, answers)
	if err != nil {
		if errors.Is(err, ErrIncompleteAssessment) {
			metrics.IncAssessmentsIncomplete()
		}
		return Assessment{}, err
	}
	metrics.IncAssessmentsScored()

	now := s.now()
	record := Assessment{
		ID:              uuid.NewString(),
		ChildID:         childID,
		AssessmentType:  TypeComprehensive,
		BankVersion:     s.Bank.Version,
		Questions:       s.pairs(answers),
		Score:           result.Score,
		SupportLevel:    result.SupportLevel,
		Recommendations: result.Recommendations,
		CompletedAt:     now,
		CreatedAt:       now,
	}

	if err := s.Repo.Save(ctx, record); err != nil {
		metrics.IncPersistenceFailures()
		telemetry.Error("assessment.persist_failed", map[string]any{
			"assessment_id": record.ID,
			"child_id":      childID,
			"score":         result.Score,
			"error":         err,
		})
		return record, &PersistenceError{Result: result, Err: err}
	}

	telemetry.Info("assessment.scored", map[string]any{
		"assessment_id": record.ID,
		"child_id":      childID,
		"score":         result.Score,
		"support_level": string(result.SupportLevel),
		"bank_version":  s.Bank.Version,
	})
	return record, nil
}

// List returns the newest assessments for childID.
func (s *Service) List(ctx context.Context, childID string, limit int) ([]Assessment, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("assessments service not configured")
	}
	return s.Repo.ListByChild(ctx, childID, limit)
}

// Get returns one assessment owned by childID.
func (s *Service) Get(ctx context.Context, childID, assessmentID string) (Assessment, error) {
	if s == nil || s.Repo == nil {
		return Assessment{}, errors.New("assessments service not configured")
	}
	a, err := s.Repo.GetByID(ctx, assessmentID)
	if err != nil {
		return Assessment{}, err
	}
	if a.ChildID != childID {
		return Assessment{}, ErrNotFound
	}
	return a, nil
}

// pairs assumes answers already passed Score.
func (s *Service) pairs(answers []*int) []QuestionAnswer {
	out := make([]QuestionAnswer, len(s.Bank.Questions))
	for i, q := range s.Bank.Questions {
		out[i] = QuestionAnswer{Question: q.Prompt, Answer: q.Options[*answers[i]]}
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

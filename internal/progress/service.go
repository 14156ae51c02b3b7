package progress

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nurture-backend/internal/shared/telemetry"
)

// RecordInput is a manual progress entry. Date defaults to today (UTC).
type RecordInput struct {
	Date               string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FocusScore         int     `json:"focusScore" validate:"min=0,max=100"`
	MemoryScore        int     `json:"memoryScore" validate:"min=0,max=100"`
	ReadingScore       int     `json:"readingScore" validate:"min=0,max=100"`
	EmotionalStability int     `json:"emotionalStability" validate:"min=0,max=100"`
	Notes              *string `json:"notes" validate:"omitempty,max=2000"`
}

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

func (s *Service) Record(ctx context.Context, childID string, in RecordInput) (Entry, error) {
	if s == nil || s.Repo == nil {
		return Entry{}, errors.New("progress service not configured")
	}
	if strings.TrimSpace(childID) == "" {
		return Entry{}, errors.New("child id is required")
	}
	for _, v := range []int{in.FocusScore, in.MemoryScore, in.ReadingScore, in.EmotionalStability} {
		if v < MinScore || v > MaxScore {
			return Entry{}, fmt.Errorf("%w: %d", ErrInvalidScore, v)
		}
	}
	now := s.now()
	day := Day(now)
	if raw := strings.TrimSpace(in.Date); raw != "" {
		parsed, err := time.Parse(DateLayout, raw)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
		}
		day = parsed
	}

	entry, err := s.Repo.Upsert(ctx, Entry{
		ID:                 uuid.NewString(),
		ChildID:            childID,
		Date:               day,
		FocusScore:         in.FocusScore,
		MemoryScore:        in.MemoryScore,
		ReadingScore:       in.ReadingScore,
		EmotionalStability: in.EmotionalStability,
		Notes:              in.Notes,
		CreatedAt:          now,
	})
	if err != nil {
		return Entry{}, fmt.Errorf("save progress: %w", err)
	}
	telemetry.Info("progress.recorded", map[string]any{
		"child_id": childID,
		"date":     entry.Date.Format(DateLayout),
	})
	return entry, nil
}

func (s *Service) List(ctx context.Context, childID string, limit int) ([]Entry, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("progress service not configured")
	}
	return s.Repo.ListByChild(ctx, childID, limit)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

package games

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nurture-backend/internal/shared/metrics"
	"nurture-backend/internal/shared/telemetry"
)

// RecordInput is a finished round reported by the client.
type RecordInput struct {
	GameType   GameType `json:"gameType" validate:"required,oneof=memory focus pattern language"`
	Difficulty int      `json:"difficulty" validate:"required,min=1,max=3"`
	Clicks     int      `json:"clicks" validate:"min=0"`
	TimeLeft   int      `json:"timeLeft" validate:"min=0,max=60"`
}

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Record scores and stores a finished round for childID.
func (s *Service) Record(ctx context.Context, childID string, in RecordInput) (Session, error) {
	if s == nil || s.Repo == nil {
		return Session{}, errors.New("games service not configured")
	}
	if strings.TrimSpace(childID) == "" {
		return Session{}, errors.New("child id is required")
	}
	if _, ok := Lookup(in.GameType); !ok {
		return Session{}, fmt.Errorf("%w: %q", ErrUnknownGame, in.GameType)
	}
	if in.Difficulty < MinDifficulty || in.Difficulty > MaxDifficulty {
		return Session{}, fmt.Errorf("%w: difficulty must be within %d..%d", ErrInvalidSession, MinDifficulty, MaxDifficulty)
	}
	score, spent, err := ComputeScore(in.Clicks, in.TimeLeft)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		ID:               uuid.NewString(),
		ChildID:          childID,
		GameType:         in.GameType,
		Difficulty:       in.Difficulty,
		Score:            score,
		TimeSpentSeconds: spent,
		Completed:        true,
		Performance:      Performance{Clicks: in.Clicks, TimeLeft: in.TimeLeft},
		CreatedAt:        s.now(),
	}
	if err := s.Repo.Save(ctx, session); err != nil {
		return Session{}, fmt.Errorf("save game session: %w", err)
	}
	metrics.IncGameSessions()
	telemetry.Info("game.session_recorded", map[string]any{
		"game_session_id": session.ID,
		"child_id":        childID,
		"game_type":       string(session.GameType),
		"score":           score,
	})
	return session, nil
}

func (s *Service) List(ctx context.Context, childID string, limit int) ([]Session, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("games service not configured")
	}
	return s.Repo.ListByChild(ctx, childID, limit)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

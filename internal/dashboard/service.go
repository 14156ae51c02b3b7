// Package dashboard aggregates a child's recent activity for the parent view.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"nurture-backend/internal/assessments"
	"nurture-backend/internal/games"
	"nurture-backend/internal/progress"
)

const (
	assessmentLimit = 5
	gameLimit       = 10
	progressLimit   = 7
)

type AssessmentLister interface {
	List(ctx context.Context, childID string, limit int) ([]assessments.Assessment, error)
}

type GameLister interface {
	List(ctx context.Context, childID string, limit int) ([]games.Session, error)
}

type ProgressLister interface {
	List(ctx context.Context, childID string, limit int) ([]progress.Entry, error)
}

// Summary is the dashboard payload.
type Summary struct {
	LatestAssessment  *assessments.Assessment  `json:"latestAssessment"`
	RecentAssessments []assessments.Assessment `json:"recentAssessments"`
	RecentGames       []games.Session          `json:"recentGames"`
	TotalGames        int                      `json:"totalGames"`
	AverageGameScore  int                      `json:"averageGameScore"`
	RecentProgress    []progress.Entry         `json:"recentProgress"`
}

type Service struct {
	Assessments AssessmentLister
	Games       GameLister
	Progress    ProgressLister
}

func NewService(a AssessmentLister, g GameLister, p ProgressLister) *Service {
	return &Service{Assessments: a, Games: g, Progress: p}
}

// Summary loads the three activity feeds concurrently; any failure fails the call.
func (s *Service) Summary(ctx context.Context, childID string) (Summary, error) {
	if s == nil || s.Assessments == nil || s.Games == nil || s.Progress == nil {
		return Summary{}, errors.New("dashboard service not configured")
	}
	var (
		recentAssessments []assessments.Assessment
		recentGames       []games.Session
		recentProgress    []progress.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.Assessments.List(gctx, childID, assessmentLimit)
		if err != nil {
			return fmt.Errorf("load assessments: %w", err)
		}
		recentAssessments = items
		return nil
	})
	g.Go(func() error {
		items, err := s.Games.List(gctx, childID, gameLimit)
		if err != nil {
			return fmt.Errorf("load game sessions: %w", err)
		}
		recentGames = items
		return nil
	})
	g.Go(func() error {
		items, err := s.Progress.List(gctx, childID, progressLimit)
		if err != nil {
			return fmt.Errorf("load progress: %w", err)
		}
		recentProgress = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	out := Summary{
		RecentAssessments: nonNil(recentAssessments),
		RecentGames:       nonNil(recentGames),
		TotalGames:        len(recentGames),
		AverageGameScore:  averageScore(recentGames),
		RecentProgress:    nonNil(recentProgress),
	}
	if len(recentAssessments) > 0 {
		latest := recentAssessments[0]
		out.LatestAssessment = &latest
	}
	return out, nil
}

func averageScore(sessions []games.Session) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.Score
	}
	return int(math.Round(float64(total) / float64(len(sessions))))
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

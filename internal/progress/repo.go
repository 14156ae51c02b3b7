package progress

import (
	"context"
	"time"
)

type Repo interface {
	// Upsert writes e, replacing any entry for the same child and day. The
	// stored entry is returned.
	Upsert(ctx context.Context, e Entry) (Entry, error)
	// MergeSkills sets the non-nil scores on the child's entry for day,
	// creating the entry when missing.
	MergeSkills(ctx context.Context, childID string, day time.Time, scores SkillScores) error
	// ListByChild returns entries newest day first.
	ListByChild(ctx context.Context, childID string, limit int) ([]Entry, error)
}

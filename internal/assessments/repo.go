package assessments

import "context"

// Repo defines persistence operations for assessments.
type Repo interface {
	Save(ctx context.Context, assessment Assessment) error
	GetByID(ctx context.Context, assessmentID string) (Assessment, error)
	ListByChild(ctx context.Context, childID string, limit int) ([]Assessment, error)
}

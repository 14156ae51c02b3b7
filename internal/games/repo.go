package games

import (
	"context"
	"time"
)

type Repo interface {
	Save(ctx context.Context, session Session) error
	ListByChild(ctx context.Context, childID string, limit int) ([]Session, error)
	// DailyAverages aggregates sessions created in [from, to).
	DailyAverages(ctx context.Context, from, to time.Time) ([]DailyAverage, error)
}

package games

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	sessions []Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Save(ctx context.Context, session Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *MemoryRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Session, 0)
	for _, s := range r.sessions {
		if s.ChildID == childID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) DailyAverages(ctx context.Context, from, to time.Time) ([]DailyAverage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type key struct {
		child string
		game  GameType
	}
	sums := make(map[key]*DailyAverage)
	var order []key

	r.mu.RLock()
	for _, s := range r.sessions {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		k := key{s.ChildID, s.GameType}
		agg, ok := sums[k]
		if !ok {
			agg = &DailyAverage{ChildID: s.ChildID, GameType: s.GameType}
			sums[k] = agg
			order = append(order, k)
		}
		agg.Average += float64(s.Score)
		agg.Sessions++
	}
	r.mu.RUnlock()

	out := make([]DailyAverage, 0, len(order))
	for _, k := range order {
		agg := sums[k]
		agg.Average /= float64(agg.Sessions)
		out = append(out, *agg)
	}
	return out, nil
}

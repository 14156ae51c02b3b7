package assessments

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu          sync.RWMutex
	assessments map[string]Assessment
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{assessments: make(map[string]Assessment)}
}

func (r *MemoryRepo) Save(ctx context.Context, assessment Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessments[assessment.ID] = assessment
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, assessmentID string) (Assessment, error) {
	if err := ctx.Err(); err != nil {
		return Assessment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assessments[assessmentID]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Assessment, 0)
	for _, a := range r.assessments {
		if a.ChildID == childID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

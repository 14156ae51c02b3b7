package progress

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[string]Entry)}
}

func entryKey(childID string, day time.Time) string {
	return childID + "|" + Day(day).Format(DateLayout)
}

func (r *MemoryRepo) Upsert(ctx context.Context, e Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	e.Date = Day(e.Date)
	r.mu.Lock()
	defer r.mu.Unlock()
	k := entryKey(e.ChildID, e.Date)
	if prev, ok := r.entries[k]; ok {
		e.ID = prev.ID
		e.CreatedAt = prev.CreatedAt
	}
	r.entries[k] = e
	return e, nil
}

func (r *MemoryRepo) MergeSkills(ctx context.Context, childID string, day time.Time, scores SkillScores) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	k := entryKey(childID, day)
	e, ok := r.entries[k]
	if !ok {
		e = Entry{ID: uuid.NewString(), ChildID: childID, Date: Day(day), CreatedAt: time.Now().UTC()}
	}
	if scores.Focus != nil {
		e.FocusScore = *scores.Focus
	}
	if scores.Memory != nil {
		e.MemoryScore = *scores.Memory
	}
	if scores.Reading != nil {
		e.ReadingScore = *scores.Reading
	}
	r.entries[k] = e
	return nil
}

func (r *MemoryRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.ChildID == childID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

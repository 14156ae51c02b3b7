package chatbot

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	convs []Conversation
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Save(ctx context.Context, conv Conversation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.convs = append(r.convs, conv)
	return nil
}

// ListByUser returns newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Conversation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Conversation, 0)
	for i := len(r.convs) - 1; i >= 0; i-- {
		if r.convs[i].UserID != userID {
			continue
		}
		out = append(out, r.convs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

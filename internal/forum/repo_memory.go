package forum

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	posts map[string]Post
	votes map[string]map[string]struct{}
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		posts: make(map[string]Post),
		votes: make(map[string]map[string]struct{}),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, post Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = post
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, postID string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[postID]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) List(ctx context.Context, category Category, limit int) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Post, 0, len(r.posts))
	for _, p := range r.posts {
		if category == "" || p.Category == category {
			out = append(out, p)
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

func (r *MemoryRepo) Upvote(ctx context.Context, postID, userID string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return 0, false, ErrNotFound
	}
	voters, ok := r.votes[postID]
	if !ok {
		voters = make(map[string]struct{})
		r.votes[postID] = voters
	}
	if _, voted := voters[userID]; voted {
		return p.Upvotes, false, nil
	}
	voters[userID] = struct{}{}
	p.Upvotes++
	p.UpdatedAt = time.Now().UTC()
	r.posts[postID] = p
	return p.Upvotes, true, nil
}

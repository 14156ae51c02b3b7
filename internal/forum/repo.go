package forum

import "context"

type Repo interface {
	Create(ctx context.Context, post Post) error
	GetByID(ctx context.Context, postID string) (Post, error)
	// List returns newest first; an empty category means every category.
	List(ctx context.Context, category Category, limit int) ([]Post, error)
	// Upvote records userID's vote once and returns the post's vote count and
	// whether this call added a vote.
	Upvote(ctx context.Context, postID, userID string) (int, bool, error)
}

package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"nurture-backend/internal/shared/telemetry"
)

// NewPost is the payload for creating a post.
type NewPost struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Content     string   `json:"content" validate:"required,max=10000"`
	Category    Category `json:"category" validate:"required,oneof=autism dyslexia adhd general"`
	IsAnonymous bool     `json:"isAnonymous"`
}

type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// ParseCategory maps a query value to a filter; "" and "all" mean no filter.
func ParseCategory(raw string) (Category, error) {
	v := Category(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" || v == "all" {
		return "", nil
	}
	for _, c := range Categories() {
		if c == v {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

func (s *Service) Create(ctx context.Context, authorID string, in NewPost) (Post, error) {
	if s == nil || s.Repo == nil {
		return Post{}, errors.New("forum service not configured")
	}
	if _, err := ParseCategory(string(in.Category)); err != nil || in.Category == "" {
		return Post{}, fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
	}
	now := s.now()
	post := Post{
		ID:          uuid.NewString(),
		AuthorID:    authorID,
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Category:    in.Category,
		IsAnonymous: in.IsAnonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, post); err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	telemetry.Info("forum.post_created", map[string]any{
		"post_id":   post.ID,
		"category":  string(post.Category),
		"anonymous": post.IsAnonymous,
	})
	return post, nil
}

func (s *Service) List(ctx context.Context, category Category, limit int) ([]Post, error) {
	return s.Repo.List(ctx, category, limit)
}

func (s *Service) Get(ctx context.Context, postID string) (Post, error) {
	return s.Repo.GetByID(ctx, postID)
}

// Upvote adds userID's vote once; repeated calls leave the count unchanged.
func (s *Service) Upvote(ctx context.Context, postID, userID string) (int, bool, error) {
	return s.Repo.Upvote(ctx, postID, userID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

package forum

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"nurture-backend/internal/shared/testutil"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	testutil.CaptureLogs(t)
	svc := NewService(NewMemoryRepo())
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	n := 0
	svc.Now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

func TestParseCategory(t *testing.T) {
	for _, raw := range []string{"", "all", " ALL "} {
		if c, err := ParseCategory(raw); err != nil || c != "" {
			t.Fatalf("ParseCategory(%q) = %q, %v", raw, c, err)
		}
	}
	if c, err := ParseCategory("ADHD"); err != nil || c != CategoryADHD {
		t.Fatalf("ParseCategory(ADHD) = %q, %v", c, err)
	}
	if _, err := ParseCategory("cooking"); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	a, _ := svc.Create(ctx, "u1", NewPost{Title: "A", Content: "a", Category: CategoryAutism})
	b, _ := svc.Create(ctx, "u1", NewPost{Title: "B", Content: "b", Category: CategoryGeneral})
	c, _ := svc.Create(ctx, "u2", NewPost{Title: "C", Content: "c", Category: CategoryAutism})

	all, err := svc.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 || all[0].ID != c.ID || all[1].ID != b.ID || all[2].ID != a.ID {
		t.Fatalf("unexpected order %+v", all)
	}

	autism, _ := svc.List(ctx, CategoryAutism, 10)
	if len(autism) != 2 || autism[0].ID != c.ID {
		t.Fatalf("unexpected filtered list %+v", autism)
	}
}

func TestUpvoteIsIdempotentPerUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	post, _ := svc.Create(ctx, "author", NewPost{Title: "T", Content: "c", Category: CategoryADHD})

	count, added, err := svc.Upvote(ctx, post.ID, "u1")
	if err != nil || count != 1 || !added {
		t.Fatalf("first upvote = %d, %v, %v", count, added, err)
	}
	count, added, err = svc.Upvote(ctx, post.ID, "u1")
	if err != nil || count != 1 || added {
		t.Fatalf("repeat upvote = %d, %v, %v", count, added, err)
	}
	count, _, _ = svc.Upvote(ctx, post.ID, "u2")
	if count != 2 {
		t.Fatalf("expected 2 votes, got %d", count)
	}
	if _, _, err := svc.Upvote(ctx, "missing", "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestViewHidesAnonymousAuthor(t *testing.T) {
	p := Post{ID: "p", AuthorID: "author", IsAnonymous: true}
	if v := p.View("someone"); v.AuthorID != "" || v.Mine {
		t.Fatalf("anonymous author leaked: %+v", v)
	}
	if v := p.View(""); v.AuthorID != "" {
		t.Fatalf("anonymous author leaked to guest: %+v", v)
	}
	if v := p.View("author"); v.AuthorID != "author" || !v.Mine {
		t.Fatalf("author should see own post: %+v", v)
	}
	p.IsAnonymous = false
	if v := p.View("someone"); v.AuthorID != "author" {
		t.Fatalf("expected author id on public post: %+v", v)
	}
}

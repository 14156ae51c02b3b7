package forum

import "time"

type Category string

const (
	CategoryAutism   Category = "autism"
	CategoryDyslexia Category = "dyslexia"
	CategoryADHD     Category = "adhd"
	CategoryGeneral  Category = "general"
)

// Categories lists the valid post categories in display order.
func Categories() []Category {
	return []Category{CategoryAutism, CategoryDyslexia, CategoryADHD, CategoryGeneral}
}

// Post is a stored forum post.
type Post struct {
	ID          string
	AuthorID    string
	Title       string
	Content     string
	Category    Category
	IsAnonymous bool
	Upvotes     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostView is the public shape of a post. AuthorID is empty for anonymous
// posts unless the viewer wrote them.
type PostView struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"authorId,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    Category  `json:"category"`
	IsAnonymous bool      `json:"isAnonymous"`
	Upvotes     int       `json:"upvotes"`
	Mine        bool      `json:"mine"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Post) View(viewerID string) PostView {
	mine := viewerID != "" && viewerID == p.AuthorID
	v := PostView{
		ID:          p.ID,
		Title:       p.Title,
		Content:     p.Content,
		Category:    p.Category,
		IsAnonymous: p.IsAnonymous,
		Upvotes:     p.Upvotes,
		Mine:        mine,
		CreatedAt:   p.CreatedAt,
	}
	if !p.IsAnonymous || mine {
		v.AuthorID = p.AuthorID
	}
	return v
}

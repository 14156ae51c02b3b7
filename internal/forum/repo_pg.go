package forum

import (
	"context"
	"database/sql"
	"errors"

	"nurture-backend/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

const postColumns = `id, author_id, title, content, category, is_anonymous, upvotes, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, p Post) error {
	const query = `
INSERT INTO forum_posts (id, author_id, title, content, category, is_anonymous, upvotes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID,
		p.AuthorID,
		p.Title,
		p.Content,
		string(p.Category),
		p.IsAnonymous,
		p.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, postID string) (Post, error) {
	query := `SELECT ` + postColumns + ` FROM forum_posts WHERE id = $1 LIMIT 1`
	p, err := scanPost(r.DB.QueryRowContext(ctx, query, postID))
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) List(ctx context.Context, category Category, limit int) ([]Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		query := `SELECT ` + postColumns + ` FROM forum_posts ORDER BY created_at DESC LIMIT $1`
		rows, err = r.DB.QueryContext(ctx, query, limit)
	} else {
		query := `SELECT ` + postColumns + ` FROM forum_posts WHERE category = $1 ORDER BY created_at DESC LIMIT $2`
		rows, err = r.DB.QueryContext(ctx, query, string(category), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Upvote(ctx context.Context, postID, userID string) (int, bool, error) {
	var (
		upvotes int
		added   bool
	)
	err := db.InTx(ctx, r.DB, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT upvotes FROM forum_posts WHERE id = $1 FOR UPDATE`, postID).Scan(&upvotes); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
		res, err := tx.ExecContext(ctx, `
INSERT INTO forum_post_votes (post_id, user_id) VALUES ($1, $2)
ON CONFLICT (post_id, user_id) DO NOTHING`, postID, userID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		added = true
		return tx.QueryRowContext(ctx, `
UPDATE forum_posts SET upvotes = upvotes + 1, updated_at = now()
WHERE id = $1
RETURNING upvotes`, postID).Scan(&upvotes)
	})
	if err != nil {
		return 0, false, err
	}
	return upvotes, added, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var (
		p        Post
		category string
	)
	err := row.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &category, &p.IsAnonymous, &p.Upvotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Post{}, err
	}
	p.Category = Category(category)
	return p, nil
}

package progress

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, e Entry) (Entry, error) {
	const query = `
INSERT INTO progress_tracking (id, child_id, date, focus_score, memory_score, reading_score, emotional_stability, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (child_id, date) DO UPDATE SET
  focus_score = EXCLUDED.focus_score,
  memory_score = EXCLUDED.memory_score,
  reading_score = EXCLUDED.reading_score,
  emotional_stability = EXCLUDED.emotional_stability,
  notes = EXCLUDED.notes
RETURNING id, created_at`
	e.Date = Day(e.Date)
	var notes sql.NullString
	if e.Notes != nil {
		notes = sql.NullString{String: *e.Notes, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		e.ID,
		e.ChildID,
		e.Date,
		e.FocusScore,
		e.MemoryScore,
		e.ReadingScore,
		e.EmotionalStability,
		notes,
		e.CreatedAt,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *PGRepo) MergeSkills(ctx context.Context, childID string, day time.Time, scores SkillScores) error {
	const query = `
INSERT INTO progress_tracking (id, child_id, date, focus_score, memory_score, reading_score, emotional_stability, created_at)
VALUES ($1, $2, $3, COALESCE($4::int, 0), COALESCE($5::int, 0), COALESCE($6::int, 0), 0, now())
ON CONFLICT (child_id, date) DO UPDATE SET
  focus_score = COALESCE($4::int, progress_tracking.focus_score),
  memory_score = COALESCE($5::int, progress_tracking.memory_score),
  reading_score = COALESCE($6::int, progress_tracking.reading_score)`
	_, err := r.DB.ExecContext(ctx, query,
		uuid.NewString(),
		childID,
		Day(day),
		nullableInt(scores.Focus),
		nullableInt(scores.Memory),
		nullableInt(scores.Reading),
	)
	return err
}

func (r *PGRepo) ListByChild(ctx context.Context, childID string, limit int) ([]Entry, error) {
	const query = `
SELECT id, child_id, date, focus_score, memory_score, reading_score, emotional_stability, notes, created_at
FROM progress_tracking
WHERE child_id = $1
ORDER BY date DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, childID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var (
			e     Entry
			notes sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ChildID, &e.Date, &e.FocusScore, &e.MemoryScore, &e.ReadingScore, &e.EmotionalStability, &notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		if notes.Valid {
			n := notes.String
			e.Notes = &n
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
